package reorder

import "context"

// Move tracks a single reorder transaction from the optimistic splice to the
// reload that follows it.
type Move struct {
	SourceID      string
	DestinationID string

	done    chan struct{}
	outcome Outcome
}

func newMove(sourceID, destinationID string) *Move {
	return &Move{
		SourceID:      sourceID,
		DestinationID: destinationID,
		done:          make(chan struct{}),
		outcome:       Outcome{SourceID: sourceID, DestinationID: destinationID},
	}
}

// Done is closed once the move has settled.
func (m *Move) Done() <-chan struct{} { return m.done }

// Wait blocks until the move settles or ctx is done.
func (m *Move) Wait(ctx context.Context) error {
	select {
	case <-m.done:
		return m.outcome.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Outcome returns the settlement report. It is only meaningful after Done
// is closed.
func (m *Move) Outcome() Outcome {
	select {
	case <-m.done:
		return m.outcome
	default:
		return Outcome{SourceID: m.SourceID, DestinationID: m.DestinationID}
	}
}

// Err returns the settlement error, or nil while the move is still running.
func (m *Move) Err() error {
	return m.Outcome().Err()
}
