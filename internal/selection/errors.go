package selection

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned when Options cannot describe a valid state
var ErrInvalidConfiguration = errors.New("invalid selection configuration")

// Validate checks the options and returns ErrInvalidConfiguration with detail
func (o Options) Validate() error {
	if o.MaxMultiSelect <= 0 {
		return fmt.Errorf("%w: max multi select must be positive, got %d", ErrInvalidConfiguration, o.MaxMultiSelect)
	}
	if len(o.DefaultSelection) > o.MaxMultiSelect {
		return fmt.Errorf("%w: default selection has %d indexes, capacity is %d",
			ErrInvalidConfiguration, len(o.DefaultSelection), o.MaxMultiSelect)
	}
	seen := make(map[int]bool, len(o.DefaultSelection))
	for _, index := range o.DefaultSelection {
		if seen[index] {
			return fmt.Errorf("%w: index %d appears twice in default selection", ErrInvalidConfiguration, index)
		}
		seen[index] = true
	}
	return nil
}
