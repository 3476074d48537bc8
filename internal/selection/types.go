package selection

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Kind tells which shape a Selection has
type Kind int

const (
	KindNone Kind = iota
	KindOne
	KindMany
)

func (k Kind) String() string {
	switch k {
	case KindOne:
		return "one"
	case KindMany:
		return "many"
	default:
		return "none"
	}
}

// Selection is the selected value of a State: nothing, a single index
// (single-select mode) or an ordered list of indexes (multi-select mode).
// The zero value selects nothing.
type Selection struct {
	kind    Kind
	index   int
	indexes []int
}

// None returns an empty selection
func None() Selection {
	return Selection{}
}

// One returns a single-index selection
func One(index int) Selection {
	return Selection{kind: KindOne, index: index}
}

// Many returns a multi-index selection in the given order.
// An empty list yields None.
func Many(indexes []int) Selection {
	if len(indexes) == 0 {
		return None()
	}
	return Selection{kind: KindMany, indexes: slices.Clone(indexes)}
}

// Kind returns the shape of the selection
func (s Selection) Kind() Kind {
	return s.kind
}

// IsEmpty reports whether nothing is selected
func (s Selection) IsEmpty() bool {
	return s.kind == KindNone
}

// Len returns the number of selected indexes
func (s Selection) Len() int {
	switch s.kind {
	case KindOne:
		return 1
	case KindMany:
		return len(s.indexes)
	default:
		return 0
	}
}

// Index returns the selected index of a single selection
func (s Selection) Index() (int, bool) {
	if s.kind != KindOne {
		return 0, false
	}
	return s.index, true
}

// Contains reports whether index is selected
func (s Selection) Contains(index int) bool {
	switch s.kind {
	case KindOne:
		return s.index == index
	case KindMany:
		return lo.Contains(s.indexes, index)
	default:
		return false
	}
}

// Indexes returns the selected indexes as a list regardless of shape.
// Returns nil when nothing is selected.
func (s Selection) Indexes() []int {
	switch s.kind {
	case KindOne:
		return []int{s.index}
	case KindMany:
		return slices.Clone(s.indexes)
	default:
		return nil
	}
}

// Raw returns nil, an int or a []int depending on the shape.
// Kept for callers that branch on the scalar-or-list representation.
func (s Selection) Raw() any {
	switch s.kind {
	case KindOne:
		return s.index
	case KindMany:
		return slices.Clone(s.indexes)
	default:
		return nil
	}
}

func (s Selection) String() string {
	switch s.kind {
	case KindOne:
		return fmt.Sprintf("%d", s.index)
	case KindMany:
		return fmt.Sprintf("%v", s.indexes)
	default:
		return "none"
	}
}

// Options configures a State
type Options struct {
	MaxMultiSelect   int   // 1 selects single-select mode
	AllowDeselect    bool  // re-toggling a selected index removes it
	DefaultSelection []int // initial selection, at most one index in single-select mode
}

// DefaultOptions returns single-select options with deselection allowed
func DefaultOptions() Options {
	return Options{
		MaxMultiSelect: 1,
		AllowDeselect:  true,
	}
}
