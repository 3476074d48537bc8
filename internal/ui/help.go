package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"selectiongroup/internal/ui/input"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys  input.KeyMap
	title string
}

// NewHelpRenderer creates a new help renderer for the given key map
func NewHelpRenderer(keys input.KeyMap, title string) *HelpRenderer {
	return &HelpRenderer{keys: keys, title: title}
}

type helpSection struct {
	name     string
	bindings []key.Binding
}

func (r *HelpRenderer) sections() []helpSection {
	return []helpSection{
		{"Navigation", []key.Binding{r.keys.Up, r.keys.Down, r.keys.PageUp, r.keys.PageDown, r.keys.Home, r.keys.End}},
		{"Selection", []key.Binding{r.keys.Toggle}},
		{"Other", []key.Binding{r.keys.Help, r.keys.Pager, r.keys.Quit}},
	}
}

// RenderHelpContentPlain generates help content with colors for pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	title := "Help"
	if r.title != "" {
		title = r.title + " - Help"
	}
	help.WriteString(titleStyle.Render(title))
	help.WriteString("\n")

	for _, section := range r.sections() {
		help.WriteString(sectionStyle.Render(section.name))
		help.WriteString("\n")
		for _, b := range section.bindings {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			// Pad before styling so ANSI codes don't skew the columns
			help.WriteString(fmt.Sprintf("  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-12s", h.Key)),
				descStyle.Render(h.Desc)))
		}
		help.WriteString("\n")
	}

	notes := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(notes.Render("  Selecting past the limit drops the oldest selection."))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
