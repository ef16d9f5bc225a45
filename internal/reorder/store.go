package reorder

import "context"

// Identifiable is implemented by list items. ItemID must be stable and
// unique within one list.
type Identifiable interface {
	ItemID() string
}

// Store is the authoritative source of a list's order.
//
// LoadItems returns the full current order on every call. SwapPosition asks
// the store to exchange the positions of two items; the store may apply
// any normalization it likes, which is why the list always reloads after it.
type Store[T any] interface {
	LoadItems(ctx context.Context) ([]T, error)
	SwapPosition(ctx context.Context, idA, idB string) error
}

// StoreFuncs adapts a pair of functions to Store.
type StoreFuncs[T any] struct {
	Load func(ctx context.Context) ([]T, error)
	Swap func(ctx context.Context, idA, idB string) error
}

func (f StoreFuncs[T]) LoadItems(ctx context.Context) ([]T, error) {
	return f.Load(ctx)
}

func (f StoreFuncs[T]) SwapPosition(ctx context.Context, idA, idB string) error {
	return f.Swap(ctx, idA, idB)
}
