// Package selectablelist renders a list of items through a caller supplied
// strategy and turns presses into selection notifications.
//
// The list stores no selection of its own. It asks IsSelected when rendering
// and after each press, so the selection may live anywhere, typically in a
// selection.State whose OnPress is State.Toggle.
package selectablelist

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"selectiongroup/internal/eventbus"
)

var (
	// ErrInvalidProps is returned by New when a required callback is missing
	ErrInvalidProps = errors.New("invalid selectable list props")

	// ErrIndexOutOfRange is returned by Press for an index outside the items
	ErrIndexOutOfRange = errors.New("index out of range")
)

// RenderFunc produces the content of one item. toggle runs the press
// sequence for that item.
type RenderFunc[T any] func(item T, index int, selected bool, toggle func()) string

// NotifyFunc receives the pressed item and every currently selected item
type NotifyFunc[T any] func(item T, selectedItems []T)

// Props configures a List
type Props[T any] struct {
	Items         []T
	OnPress       func(index int)      // required, called first on every press
	IsSelected    func(index int) bool // required
	RenderContent RenderFunc[T]        // required

	GetAllSelectedItemIndexes func() []int  // optional, resolves selectedItems
	OnItemSelected            NotifyFunc[T] // optional
	OnItemDeselected          NotifyFunc[T] // optional

	ContainerStyle *lipgloss.Style // nil means no style override
	Attributes     Attributes      // forwarded to Container
	Container      ContainerFunc   // defaults to DefaultContainer

	// Changes, when set, invalidates the list on every selection change
	Changes eventbus.EventBus
}

// List is a view over externally owned items and selection
type List[T any] struct {
	props Props[T]
	style lipgloss.Style

	pressMu sync.Mutex   // serializes presses
	mu      sync.RWMutex // guards props.Items

	renderMu sync.Mutex
	rows     []string
	dirty    bool
	passes   int

	unsubscribe func()
}

// New creates a list from props
func New[T any](props Props[T]) (*List[T], error) {
	switch {
	case props.OnPress == nil:
		return nil, fmt.Errorf("%w: OnPress is required", ErrInvalidProps)
	case props.IsSelected == nil:
		return nil, fmt.Errorf("%w: IsSelected is required", ErrInvalidProps)
	case props.RenderContent == nil:
		return nil, fmt.Errorf("%w: RenderContent is required", ErrInvalidProps)
	}
	if props.Container == nil {
		props.Container = DefaultContainer
	}

	l := &List[T]{
		props: props,
		style: normalizeStyle(props.ContainerStyle),
		dirty: true,
	}

	if props.Changes != nil {
		l.unsubscribe = props.Changes.Subscribe(eventbus.EventSelectionChanged, func(eventbus.DomainEvent) {
			l.Invalidate()
		})
	}

	return l, nil
}

// Close stops listening for selection changes
func (l *List[T]) Close() {
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
}

// Items returns the items being shown
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.props.Items
}

// Len returns the number of items
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.props.Items)
}

// SetItems replaces the items and invalidates the list
func (l *List[T]) SetItems(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.props.Items = items
	l.Invalidate()
}

// Invalidate marks every row stale; the next view re-renders all items
func (l *List[T]) Invalidate() {
	l.renderMu.Lock()
	l.dirty = true
	l.renderMu.Unlock()
}

// Passes returns how many full render passes have run
func (l *List[T]) Passes() int {
	l.renderMu.Lock()
	defer l.renderMu.Unlock()
	return l.passes
}

// Rows returns the rendered content of every item, rendering them first if
// the list is stale. A render pass calls RenderContent once per item in order.
func (l *List[T]) Rows() []string {
	items := l.Items()

	l.renderMu.Lock()
	defer l.renderMu.Unlock()

	if l.dirty || len(l.rows) != len(items) {
		rows := make([]string, len(items))
		for i, item := range items {
			rows[i] = l.props.RenderContent(item, i, l.props.IsSelected(i), l.Toggle(i))
		}
		l.rows = rows
		l.dirty = false
		l.passes++
	}

	out := make([]string, len(l.rows))
	copy(out, l.rows)
	return out
}

// View renders all rows inside the container
func (l *List[T]) View() string {
	return l.props.Container(l.style, l.props.Attributes, l.Rows())
}

// ViewRange renders rows [start, end) inside the container.
// Every item is still rendered; only the output is windowed.
func (l *List[T]) ViewRange(start, end int) string {
	rows := l.Rows()
	start = max(0, min(start, len(rows)))
	end = max(start, min(end, len(rows)))
	return l.props.Container(l.style, l.props.Attributes, rows[start:end])
}

// Toggle returns the press closure for index
func (l *List[T]) Toggle(index int) func() {
	return func() {
		if err := l.Press(index); err != nil {
			log.Printf("selectable list: press ignored: %v", err)
		}
	}
}

// Press runs the press sequence for index: OnPress, invalidate, then exactly
// one of OnItemSelected or OnItemDeselected depending on IsSelected.
//
// Callbacks run with no list lock held except the press lock. They may call
// Items, Len, SetItems, Invalidate, Rows, View, ViewRange, Passes and Toggle
// (to build a closure). They must not call Press or run a toggle closure:
// presses are serialized and a nested one blocks forever. The press resolves
// items against the slice it started with, even if a callback calls SetItems.
func (l *List[T]) Press(index int) error {
	l.pressMu.Lock()
	defer l.pressMu.Unlock()

	items := l.Items()
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(items))
	}
	item := items[index]

	l.props.OnPress(index)
	l.Invalidate()

	if l.props.IsSelected(index) {
		l.notify(l.props.OnItemSelected, item, items)
	} else {
		l.notify(l.props.OnItemDeselected, item, items)
	}
	return nil
}

// notify calls fn when it is set
func (l *List[T]) notify(fn NotifyFunc[T], item T, items []T) {
	if fn == nil {
		return
	}
	fn(item, l.selectedItems(items))
}

// selectedItems resolves the selected indexes to items, in selection order.
// Indexes outside items are skipped.
func (l *List[T]) selectedItems(items []T) []T {
	if l.props.GetAllSelectedItemIndexes == nil {
		return []T{}
	}

	return lo.FilterMap(l.props.GetAllSelectedItemIndexes(), func(index int, _ int) (T, bool) {
		if index < 0 || index >= len(items) {
			log.Printf("selectable list: skipping selected index %d, have %d items", index, len(items))
			var zero T
			return zero, false
		}
		return items[index], true
	})
}
