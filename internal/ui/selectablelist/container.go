package selectablelist

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Attributes are extra container settings passed through untouched
type Attributes map[string]any

// ContainerFunc wraps rendered rows into the enclosing visual container
type ContainerFunc func(style lipgloss.Style, attrs Attributes, rows []string) string

// DefaultContainer stacks the rows and applies style.
// Attributes are ignored.
func DefaultContainer(style lipgloss.Style, _ Attributes, rows []string) string {
	return style.Render(strings.Join(rows, "\n"))
}

// normalizeStyle turns a missing style into an empty one
func normalizeStyle(s *lipgloss.Style) lipgloss.Style {
	if s == nil {
		return lipgloss.NewStyle()
	}
	return *s
}
