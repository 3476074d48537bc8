package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"selectiongroup/internal/ui/selectablelist"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	ListContent   string // list rows already wrapped in their container
	ItemCount     int
	MoreAbove     bool
	MoreBelow     bool
	SelectedCount int
	MaxSelected   int
	StatusMessage string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	items  *ItemRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles, labelWidth int, showDescriptions bool) *Renderer {
	return &Renderer{
		styles: styles,
		items:  NewItemRenderer(styles, labelWidth, showDescriptions),
	}
}

// Styles returns the styles in use
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Items returns the per-item renderer
func (r *Renderer) Items() *ItemRenderer {
	return r.items
}

// Container draws the list box. A "title" attribute is shown above the rows.
func (r *Renderer) Container(style lipgloss.Style, attrs selectablelist.Attributes, rows []string) string {
	var b strings.Builder
	if title, ok := attrs["title"].(string); ok && title != "" {
		b.WriteString(r.styles.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(rows, "\n"))
	return style.Render(b.String())
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	if state.ItemCount == 0 {
		content.WriteString(r.styles.Dim.Render("Nothing to select."))
	} else {
		if state.MoreAbove {
			content.WriteString(r.styles.Scroll.Render("↑ (more above)"))
			content.WriteString("\n")
		}
		content.WriteString(state.ListContent)
		if state.MoreBelow {
			content.WriteString("\n")
			content.WriteString(r.styles.Scroll.Render("↓ (more below)"))
		}
	}

	content.WriteString("\n")
	content.WriteString(r.styles.Status.Render(r.statusLine(state)))

	if state.HelpView != "" {
		// Push help to the bottom when the terminal is taller than the content
		currentLines := strings.Count(content.String(), "\n") + 1
		helpLines := strings.Count(state.HelpView, "\n") + 1
		availableLines := state.Height - 2 // Main style padding
		if padding := availableLines - currentLines - helpLines - 1; padding > 0 {
			content.WriteString(strings.Repeat("\n", padding))
		}
		content.WriteString("\n\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// statusLine summarises the selection and the last event
func (r *Renderer) statusLine(state ViewState) string {
	var count string
	if state.MaxSelected > 1 {
		count = fmt.Sprintf("%d/%d selected", state.SelectedCount, state.MaxSelected)
	} else {
		count = fmt.Sprintf("%d selected", state.SelectedCount)
	}
	if state.StatusMessage == "" {
		return count
	}
	return fmt.Sprintf("%s · %s", count, state.StatusMessage)
}
