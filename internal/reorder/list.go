// Package reorder keeps a client-side ordered list in step with an
// authoritative store.
//
// A move is applied to the local order immediately, then persisted through
// Store.SwapPosition using the identities of the two items involved, and
// finally reconciled by reloading the whole list from the store. The reload
// runs whether the swap succeeded or not, so the visible order never stays on
// an unconfirmed guess for longer than one round trip. At most one move is in
// flight at a time.
package reorder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/toursite/internal/logging"
)

const defaultOpTimeout = 30 * time.Second

// Option configures a List.
type Option func(*options)

type options struct {
	log       logging.Logger
	onSettle  func(Outcome)
	opTimeout time.Duration
}

// WithLogger sets the logger used for move diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSettleHook registers fn to be called after every move settles on a
// list that is still open. It runs on the settling goroutine, outside the
// list lock.
func WithSettleHook(fn func(Outcome)) Option {
	return func(o *options) { o.onSettle = fn }
}

// WithTimeout bounds each store call made on behalf of a move.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.opTimeout = d
		}
	}
}

// List is an ordered collection of T kept consistent with a Store.
// It is safe for concurrent use.
type List[T Identifiable] struct {
	store Store[T]
	opts  options

	mu      sync.Mutex
	items   []T
	pending bool
	closed  bool
	lastErr error
	// gen changes whenever a move starts or settles. A Load whose fetch
	// overlapped a move drops its result.
	gen uint64

	wg sync.WaitGroup
}

// New returns an empty list backed by store. Call Load to populate it.
func New[T Identifiable](store Store[T], opts ...Option) *List[T] {
	o := options{log: logging.Nop(), opTimeout: defaultOpTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &List[T]{store: store, opts: o}
}

// Load replaces the items with the store's current order. It is rejected
// while a move is in flight because that move ends with a reload anyway.
// If a move started and settled during the fetch, the fetched order is
// older than the move's reload and is discarded.
func (l *List[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	switch {
	case l.closed:
		l.mu.Unlock()
		return ErrClosed
	case l.pending:
		l.mu.Unlock()
		return ErrMoveInFlight
	}
	gen := l.gen
	l.mu.Unlock()

	items, err := l.load(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if l.pending {
		return ErrMoveInFlight
	}
	if l.gen != gen {
		return nil
	}
	if err != nil {
		l.lastErr = err
		return err
	}
	l.items = items
	l.lastErr = nil
	return nil
}

// Items returns a copy of the current order.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Pending reports whether a move is being persisted.
func (l *List[T]) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// LastError returns the failure recorded by the last load or move, if any.
func (l *List[T]) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// RequestMove moves the item at index from to index to.
//
// The local order changes before RequestMove returns. The returned Move
// settles after the store swap and the reload that always follows it.
// Equal indices are a no-op and return a nil Move and a nil error.
//
// Store calls are detached from ctx cancellation so an abandoned request
// still reconciles; they are bounded by the list timeout instead.
func (l *List[T]) RequestMove(ctx context.Context, from, to int) (*Move, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrClosed
	}
	n := len(l.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("%w: move %d -> %d in list of %d", ErrInvalidIndex, from, to, n)
	}
	if from == to {
		return nil, nil
	}
	if l.pending {
		return nil, ErrMoveInFlight
	}

	snapshot := make([]T, n)
	copy(snapshot, l.items)

	m := newMove(l.items[from].ItemID(), l.items[to].ItemID())
	l.items = splice(snapshot, from, to)
	l.pending = true
	l.gen++

	l.wg.Add(1)
	go l.settle(context.WithoutCancel(ctx), m, snapshot)

	return m, nil
}

// Close detaches the list from further settlements. A move still in flight
// completes its store calls but no longer changes the list or runs the
// settle hook.
func (l *List[T]) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}

// Wait blocks until every move started on the list has settled.
func (l *List[T]) Wait() {
	l.wg.Wait()
}

func (l *List[T]) settle(ctx context.Context, m *Move, snapshot []T) {
	defer l.wg.Done()
	defer close(m.done)

	log := l.opts.log.With("source_id", m.SourceID, "destination_id", m.DestinationID)

	if err := l.swap(ctx, m.SourceID, m.DestinationID); err != nil {
		m.outcome.SwapErr = err
		log.Warn(ctx, "swap failed, reloading", "error", err)
	}

	items, err := l.load(ctx)
	if err != nil {
		m.outcome.ReloadErr = err
		log.Error(ctx, "reload after move failed", "error", err)
	}

	l.mu.Lock()
	if l.closed {
		l.pending = false
		l.mu.Unlock()
		log.Debug(ctx, "list closed before move settled")
		return
	}
	if err != nil {
		l.items = snapshot
	} else {
		l.items = items
	}
	l.pending = false
	l.gen++
	l.lastErr = m.outcome.Err()
	hook := l.opts.onSettle
	l.mu.Unlock()

	log.Debug(ctx, "move settled", "ok", m.outcome.OK())
	if hook != nil {
		hook(m.outcome)
	}
}

func (l *List[T]) swap(ctx context.Context, idA, idB string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, l.opts.opTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = &StoreError{Op: OpSwap, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := l.store.SwapPosition(ctx, idA, idB); err != nil {
		return &StoreError{Op: OpSwap, Err: err}
	}
	return nil
}

func (l *List[T]) load(ctx context.Context) (items []T, err error) {
	ctx, cancel := context.WithTimeout(ctx, l.opts.opTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			items, err = nil, &StoreError{Op: OpLoad, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	items, err = l.store.LoadItems(ctx)
	if err != nil {
		return nil, &StoreError{Op: OpLoad, Err: err}
	}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		id := it.ItemID()
		if _, dup := seen[id]; dup {
			return nil, &StoreError{Op: OpLoad, Err: fmt.Errorf("%w: %q", ErrDuplicateID, id)}
		}
		seen[id] = struct{}{}
	}
	return items, nil
}

// splice returns a new slice with the element at from removed and
// reinserted at to.
func splice[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	moved := items[from]
	for i, it := range items {
		if i != from {
			out = append(out, it)
		}
	}
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out
}
