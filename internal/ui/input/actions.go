package input

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions
type ToggleAction struct {
	Index int // -1 for the item under the cursor
}

func (a ToggleAction) Type() string { return "toggle" }

// Help actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

// Application actions
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
