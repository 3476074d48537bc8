package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted after a toggle changed the selection
type SelectionChangedEvent struct {
	Index    int   // index that was toggled
	Added    []int // indexes that became selected
	Removed  []int // indexes deselected or replaced
	Evicted  []int // indexes dropped because the selection overflowed
	Selected []int // selection after the change, in insertion order
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path      string
	ItemCount int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
