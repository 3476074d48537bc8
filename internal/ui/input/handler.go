package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler translates key presses into actions
type Handler struct {
	keys KeyMap
}

// New creates a handler with the default key map
func New() *Handler {
	return NewWithKeyMap(DefaultKeyMap())
}

// NewWithKeyMap creates a handler with custom bindings
func NewWithKeyMap(keys KeyMap) *Handler {
	return &Handler{keys: keys}
}

// KeyMap returns the bindings, for rendering help
func (h *Handler) KeyMap() KeyMap {
	return h.keys
}

// HandleKey returns the actions for msg, or nil if the key is not bound
func (h *Handler) HandleKey(msg tea.KeyMsg) []Action {
	switch {
	case key.Matches(msg, h.keys.Quit):
		return []Action{QuitAction{}}
	case key.Matches(msg, h.keys.Up):
		return []Action{NavigateAction{Direction: "up"}}
	case key.Matches(msg, h.keys.Down):
		return []Action{NavigateAction{Direction: "down"}}
	case key.Matches(msg, h.keys.PageUp):
		return []Action{NavigateAction{Direction: "pageup"}}
	case key.Matches(msg, h.keys.PageDown):
		return []Action{NavigateAction{Direction: "pagedown"}}
	case key.Matches(msg, h.keys.Home):
		return []Action{NavigateAction{Direction: "home"}}
	case key.Matches(msg, h.keys.End):
		return []Action{NavigateAction{Direction: "end"}}
	case key.Matches(msg, h.keys.Toggle):
		return []Action{ToggleAction{Index: -1}}
	case key.Matches(msg, h.keys.Help):
		return []Action{ToggleHelpAction{}}
	case key.Matches(msg, h.keys.Pager):
		return []Action{OpenHelpPagerAction{}}
	}
	return nil
}
