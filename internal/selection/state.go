package selection

import (
	"sync"

	"github.com/samber/lo"

	"selectiongroup/internal/domain"
	"selectiongroup/internal/eventbus"
)

// State tracks which item indexes are selected under a fixed policy.
//
// With MaxMultiSelect == 1 it holds at most one index and toggling another
// index replaces it. Otherwise it holds up to MaxMultiSelect indexes in
// insertion order and drops the oldest one when a new index overflows it.
// AllowDeselect controls whether toggling a selected index removes it.
// When it is false in multi-select mode, toggling an index that is already
// selected changes nothing rather than appending it a second time, so the
// selection stays a set and eviction order ignores repeated presses.
type State struct {
	mu            sync.RWMutex
	current       Selection
	maxSelected   int
	allowDeselect bool
	bus           eventbus.EventBus
}

// New creates a selection state with its own event bus
func New(opts Options) (*State, error) {
	return NewWithBus(opts, eventbus.New())
}

// NewWithBus creates a selection state publishing changes on bus
func NewWithBus(opts Options, bus eventbus.EventBus) (*State, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if bus == nil {
		bus = &eventbus.NullBus{}
	}

	s := &State{
		maxSelected:   opts.MaxMultiSelect,
		allowDeselect: opts.AllowDeselect,
		bus:           bus,
	}

	switch {
	case len(opts.DefaultSelection) == 0:
		s.current = None()
	case opts.MaxMultiSelect == 1:
		s.current = One(opts.DefaultSelection[0])
	default:
		s.current = Many(opts.DefaultSelection)
	}

	return s, nil
}

// Toggle applies the selection policy to index.
// Indexes are not range checked; that is up to the caller.
func (s *State) Toggle(index int) {
	s.mu.Lock()
	event, changed := s.toggle(index)
	s.mu.Unlock()

	if changed {
		s.bus.Publish(event)
	}
}

// toggle mutates the selection and describes the change. Caller holds mu.
func (s *State) toggle(index int) (domain.SelectionChangedEvent, bool) {
	event := domain.SelectionChangedEvent{Index: index}
	single := s.maxSelected == 1

	switch {
	case single && s.current.Contains(index) && s.allowDeselect:
		s.current = None()
		event.Removed = []int{index}

	case !single && s.current.Contains(index) && s.allowDeselect:
		s.current = Many(lo.Without(s.current.indexes, index))
		event.Removed = []int{index}

	case single:
		if s.current.Contains(index) {
			// Deselect disallowed and already selected
			return event, false
		}
		if prev, ok := s.current.Index(); ok {
			event.Removed = []int{prev}
		}
		s.current = One(index)
		event.Added = []int{index}

	case s.current.Contains(index):
		// Multi-select, deselect disallowed: keep the selection a set
		return event, false

	default:
		next := append(s.current.Indexes(), index)
		if len(next) > s.maxSelected {
			event.Evicted = next[:len(next)-s.maxSelected]
			next = next[len(next)-s.maxSelected:]
		}
		s.current = Many(next)
		event.Added = []int{index}
	}

	event.Selected = s.current.Indexes()
	return event, true
}

// IsSelected reports whether index is currently selected
func (s *State) IsSelected(index int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Contains(index)
}

// AllSelectedIndexes returns the selection in its tagged form:
// KindOne in single-select mode, KindMany in multi-select mode, KindNone when empty.
func (s *State) AllSelectedIndexes() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SelectedIndexes returns the selected indexes as a list, oldest first
func (s *State) SelectedIndexes() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Indexes()
}

// Count returns the number of selected indexes
func (s *State) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Len()
}

// IsMultiSelect reports whether more than one index may be selected
func (s *State) IsMultiSelect() bool {
	return s.maxSelected > 1
}

// MaxSelected returns the selection capacity
func (s *State) MaxSelected() int {
	return s.maxSelected
}

// AllowDeselect reports whether toggling a selected index removes it
func (s *State) AllowDeselect() bool {
	return s.allowDeselect
}

// Subscribe registers fn for selection changes published by this state's bus.
// Returns an unsubscribe function.
func (s *State) Subscribe(fn func(domain.SelectionChangedEvent)) func() {
	return s.bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SelectionChangedEvent); ok {
			fn(event)
		}
	})
}
