// Package scheduler runs periodic maintenance jobs for the server.
package scheduler

import (
	"context"
	"time"

	"github.com/dmitrijs2005/toursite/internal/logging"
)

// Expirer deactivates promotions that have ended and reports how many.
type Expirer interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Sweeper deactivates ended promotions on a fixed interval.
type Sweeper struct {
	expirer  Expirer
	interval time.Duration
	logger   logging.Logger
}

func NewSweeper(e Expirer, interval time.Duration, l logging.Logger) *Sweeper {
	return &Sweeper{expirer: e, interval: interval, logger: l.With("module", "sweeper")}
}

// Run sweeps once immediately and then every interval until ctx is done.
// A non-positive interval disables the sweeper.
func (s *Sweeper) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info(ctx, "promotion sweeper disabled")
		return nil
	}

	s.sweep(ctx)

	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.expirer.SweepExpired(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error(ctx, "promotion sweep failed", "error", err)
	}
}
