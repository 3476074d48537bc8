package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"selectiongroup/internal/config"
	"selectiongroup/internal/domain"
	"selectiongroup/internal/eventbus"
	"selectiongroup/internal/selection"
	"selectiongroup/internal/ui/input"
	"selectiongroup/internal/ui/logic"
	"selectiongroup/internal/ui/selectablelist"
	"selectiongroup/internal/ui/views"
)

// statusTimeout is how long a status message stays on screen
const statusTimeout = 3 * time.Second

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	selection *selection.State
	list      *selectablelist.List[domain.Item]

	// UI-specific state
	width         int
	height        int
	help          help.Model
	showFullHelp  bool
	inPagerMode   bool
	statusMessage string
	statusAt      time.Time
	lastEvicted   []int

	// toggles holds the press closures handed out by the last render pass
	toggles []func()

	navigator    *logic.Navigator
	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	unsubscribe func()

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model showing cfg's items with sel as the
// selection. sel should publish on bus so the list redraws on changes.
func NewModel(bus eventbus.EventBus, cfg *config.Config, sel *selection.State) (*Model, error) {
	items := cfg.DomainItems()
	styles := views.NewStyles(cfg.UI.AccentColor, cfg.UI.Border)
	inputHandler := input.New()

	m := &Model{
		bus:          bus,
		config:       cfg,
		selection:    sel,
		help:         help.New(),
		navigator:    logic.NewNavigator(len(items), 20), // Updated on first WindowSizeMsg
		renderer:     views.NewRenderer(styles, cfg.UI.LabelWidth, cfg.UI.ShowDescriptions),
		inputHandler: inputHandler,
		helpRenderer: NewHelpRenderer(inputHandler.KeyMap(), cfg.Title),
		helpOps:      NewHelpOps(nil),
	}

	list, err := selectablelist.New(selectablelist.Props[domain.Item]{
		Items:                     items,
		OnPress:                   sel.Toggle,
		IsSelected:                sel.IsSelected,
		RenderContent:             m.renderItem,
		GetAllSelectedItemIndexes: sel.SelectedIndexes,
		OnItemSelected:            m.onItemSelected,
		OnItemDeselected:          m.onItemDeselected,
		ContainerStyle:            &styles.Container,
		Attributes:                selectablelist.Attributes{"title": cfg.Title},
		Container:                 m.renderer.Container,
		Changes:                   bus,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	m.list = list

	// Evictions happen inside OnPress, before the selected notification
	m.unsubscribe = sel.Subscribe(func(e domain.SelectionChangedEvent) {
		m.lastEvicted = e.Evicted
	})

	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Close releases the model's subscriptions
func (m *Model) Close() {
	m.list.Close()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// List returns the selectable list shown by the model
func (m *Model) List() *selectablelist.List[domain.Item] {
	return m.list
}

// StatusMessage returns the current status line message
func (m *Model) StatusMessage() string {
	return m.statusMessage
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		var cmds []tea.Cmd
		for _, action := range m.inputHandler.HandleKey(msg) {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	start, end, above, below := m.navigator.VisibleRange()

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		ListContent:   m.list.ViewRange(start, end),
		ItemCount:     m.list.Len(),
		MoreAbove:     above,
		MoreBelow:     below,
		SelectedCount: m.selection.Count(),
		MaxSelected:   m.selection.MaxSelected(),
		StatusMessage: m.statusMessage,
		HelpView:      m.helpView(),
	})
}

// renderItem is the list's render strategy. It keeps the toggle closure so
// key presses go through the same path as the rendered row.
func (m *Model) renderItem(item domain.Item, index int, selected bool, toggle func()) string {
	if index == 0 || len(m.toggles) != m.list.Len() {
		m.toggles = make([]func(), m.list.Len())
	}
	m.toggles[index] = toggle

	focused := index == m.navigator.Cursor()
	return m.renderer.Items().RenderItem(item, focused, selected, m.selection.IsMultiSelect())
}

func (m *Model) onItemSelected(item domain.Item, selectedItems []domain.Item) {
	msg := fmt.Sprintf("Selected %s", item.Label)
	if evicted := m.labels(m.lastEvicted); len(evicted) > 0 {
		msg += fmt.Sprintf(" (dropped %s)", strings.Join(evicted, ", "))
	}
	m.lastEvicted = nil
	log.Printf("%s; selection: %s", msg, strings.Join(itemLabels(selectedItems), ", "))
	m.setStatus(msg)
}

func (m *Model) onItemDeselected(item domain.Item, selectedItems []domain.Item) {
	msg := fmt.Sprintf("Deselected %s", item.Label)
	log.Printf("%s; selection: %s", msg, strings.Join(itemLabels(selectedItems), ", "))
	m.setStatus(msg)
}

// labels resolves indexes to item labels, skipping unknown ones
func (m *Model) labels(indexes []int) []string {
	items := m.list.Items()
	return lo.FilterMap(indexes, func(i int, _ int) (string, bool) {
		if i < 0 || i >= len(items) {
			return "", false
		}
		return items[i].Label, true
	})
}

func itemLabels(items []domain.Item) []string {
	return lo.Map(items, func(item domain.Item, _ int) string {
		return item.Label
	})
}

func (m *Model) setStatus(msg string) {
	m.statusMessage = msg
	m.statusAt = time.Now()
}

// clearStatusLater returns a command that clears the current status message
func (m *Model) clearStatusLater() tea.Cmd {
	at := m.statusAt
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{at: at}
	})
}

// helpView renders the key help below the list
func (m *Model) helpView() string {
	m.help.ShowAll = m.showFullHelp
	return m.help.View(m.inputHandler.KeyMap())
}

// updateViewportHeight sizes the navigator to the rows left for items
func (m *Model) updateViewportHeight() {
	// Main padding and status line with its margin
	reserved := 2 + 2
	if m.config.Title != "" {
		reserved += 2 // title and its margin
	}
	if m.config.UI.Border {
		reserved += 2
	}
	reserved += lipgloss.Height(m.helpView()) + 2

	m.navigator.SetViewportHeight(max(1, m.height-reserved))
	m.list.Invalidate()
}

// toggleAt presses index, preferring the closure from the last render pass
func (m *Model) toggleAt(index int) {
	if index >= 0 && index < len(m.toggles) && m.toggles[index] != nil {
		m.toggles[index]()
		return
	}
	if err := m.list.Press(index); err != nil {
		log.Printf("Toggle failed: %v", err)
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action input.Action) tea.Cmd {
	log.Printf("processAction: %T", action)
	switch a := action.(type) {
	case input.NavigateAction:
		before := m.navigator.Cursor()
		m.navigator.Move(a.Direction)
		if m.navigator.Cursor() != before {
			// Focus moved; rows carry the cursor marker
			m.list.Invalidate()
		}

	case input.ToggleAction:
		index := a.Index
		if index < 0 {
			index = m.navigator.Cursor()
		}
		if m.list.Len() == 0 {
			return nil
		}
		m.toggleAt(index)
		if m.statusMessage != "" {
			return m.clearStatusLater()
		}

	case input.ToggleHelpAction:
		m.showFullHelp = !m.showFullHelp
		m.updateViewportHeight()

	case input.OpenHelpPagerAction:
		if m.program == nil {
			m.setStatus("Help pager unavailable")
			return m.clearStatusLater()
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContentPlain())

	case input.QuitAction:
		return tea.Quit
	}

	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		m.list.Invalidate()
		return m, nil

	case clearStatusMsg:
		// Only clear the message the timer was started for
		if msg.at.Equal(m.statusAt) {
			m.statusMessage = ""
		}
		return m, nil

	default:
		return m, nil
	}
}
