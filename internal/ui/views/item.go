package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"

	"selectiongroup/internal/domain"
)

// ItemRenderer handles rendering of selectable items
type ItemRenderer struct {
	styles           *Styles
	labelWidth       int
	showDescriptions bool
}

// NewItemRenderer creates a new item renderer.
// labelWidth <= 0 disables truncation and padding of labels.
func NewItemRenderer(styles *Styles, labelWidth int, showDescriptions bool) *ItemRenderer {
	return &ItemRenderer{
		styles:           styles,
		labelWidth:       labelWidth,
		showDescriptions: showDescriptions,
	}
}

// RenderItem renders one item line
func (r *ItemRenderer) RenderItem(item domain.Item, isFocused, isSelected, isMultiSelect bool) string {
	// Background color for the cursor line
	bg := lipgloss.NewStyle()
	if isFocused {
		bg = r.styles.SelectionBg
	}

	var parts []string

	cursor := lo.Ternary(isFocused, "›", " ")
	parts = append(parts, r.styles.Cursor.Inherit(bg).Render(cursor+" "))

	parts = append(parts, r.renderIndicator(isSelected, isMultiSelect, bg))
	parts = append(parts, bg.Render(" "))

	parts = append(parts, r.styles.Label.Inherit(bg).Render(r.formatLabel(item.Label)))

	if r.showDescriptions && item.Description != "" {
		parts = append(parts, bg.Render("  "))
		parts = append(parts, r.styles.Description.Inherit(bg).Render(item.Description))
	}

	return strings.Join(parts, "")
}

// renderIndicator returns a checkbox for multi-select and a radio button otherwise
func (r *ItemRenderer) renderIndicator(isSelected, isMultiSelect bool, bg lipgloss.Style) string {
	var indicator string
	if isMultiSelect {
		indicator = lo.Ternary(isSelected, "[x]", "[ ]")
	} else {
		indicator = lo.Ternary(isSelected, "(•)", "( )")
	}

	style := lo.Ternary(isSelected, r.styles.Checked, r.styles.Unchecked)
	return style.Inherit(bg).Render(indicator)
}

// formatLabel fits a label into the configured display width
func (r *ItemRenderer) formatLabel(label string) string {
	if r.labelWidth <= 0 {
		return label
	}
	label = runewidth.Truncate(label, r.labelWidth, "…")
	if r.showDescriptions {
		label = runewidth.FillRight(label, r.labelWidth)
	}
	return label
}
