package reorder

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex is returned when a move references a position outside
	// the list. It indicates a caller bug; the list is left untouched.
	ErrInvalidIndex = errors.New("reorder: index out of range")

	// ErrMoveInFlight is returned when a move is requested while another one
	// is still being persisted. Nothing is changed.
	ErrMoveInFlight = errors.New("reorder: another move is in flight")

	// ErrClosed is returned by operations on a list that has been closed.
	ErrClosed = errors.New("reorder: list closed")

	// ErrDuplicateID is wrapped in a load StoreError when the store returns
	// two items with the same id.
	ErrDuplicateID = errors.New("reorder: duplicate item id")
)

// Store operations reported in StoreError.Op.
const (
	OpLoad = "load"
	OpSwap = "swap"
)

// StoreError wraps a failure reported by the Store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("reorder: store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Outcome reports how a move settled. SwapErr and ReloadErr are *StoreError
// values or nil.
type Outcome struct {
	SourceID      string
	DestinationID string
	SwapErr       error
	ReloadErr     error
}

// Err returns the combined failure of the move, or nil when both the swap and
// the reload succeeded.
func (o Outcome) Err() error {
	return errors.Join(o.SwapErr, o.ReloadErr)
}

// OK reports whether the move settled without errors.
func (o Outcome) OK() bool {
	return o.SwapErr == nil && o.ReloadErr == nil
}
