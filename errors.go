package tagdict

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation targets a ref that is not
	// resident, or a tag the item does not carry.
	ErrNotFound = errors.New("not found")

	// ErrZeroRef is returned when the zero Ref is passed where a real
	// handle is required. The zero Ref is never issued and never resident.
	ErrZeroRef = errors.New("zero ref")
)

// ErrDuplicateItem indicates an attempt to register a ref that is already
// resident.
type ErrDuplicateItem struct {
	Ref Ref
}

func (e *ErrDuplicateItem) Error() string {
	return fmt.Sprintf("duplicate item: ref %d already resident", e.Ref)
}

// ErrAmbiguousSelection indicates that an operation requiring exactly one
// item was applied to a selection matching several.
type ErrAmbiguousSelection struct {
	Count int
}

func (e *ErrAmbiguousSelection) Error() string {
	return fmt.Sprintf("ambiguous selection: %d items match", e.Count)
}

// notFound wraps ErrNotFound with the offending ref.
func notFound(ref Ref) error {
	return fmt.Errorf("%w: ref %d", ErrNotFound, ref)
}
