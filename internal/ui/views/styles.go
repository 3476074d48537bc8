package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Container   lipgloss.Style
	Cursor      lipgloss.Style
	Checked     lipgloss.Style
	Unchecked   lipgloss.Style
	Label       lipgloss.Style
	Description lipgloss.Style
	SelectionBg lipgloss.Style
}

// NewStyles creates a new Styles instance with default values.
// accent colours the title and checked markers; border wraps the list.
func NewStyles(accent string, border bool) *Styles {
	if accent == "" {
		accent = "99"
	}

	container := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	if border {
		container = container.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(accent)).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Container:   container,
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Checked:     lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		Unchecked:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Label:       lipgloss.NewStyle(),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}
