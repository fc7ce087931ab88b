package accounts

import (
	"context"
	"log/slog"
	"time"

	"cradle/internal/logging"
)

// Sweeper periodically removes accounts whose grace period has expired.
type Sweeper struct {
	store    *Store
	grace    time.Duration
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSweeper constructs a sweeper over the given store.
func NewSweeper(store *Store, grace, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		grace:    grace,
		interval: interval,
		logger:   logging.NewComponentLogger(logger, "account-sweeper"),
		now:      time.Now,
	}
}

// SweepOnce runs a single sweep pass.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.grace)
	removed, err := s.store.Sweep(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("removed expired accounts",
			logging.Int64("removed", removed),
			logging.Duration("grace", s.grace))
	}
	return removed, nil
}

// Run sweeps immediately and then on every interval tick until the context
// is cancelled. Sweep failures are logged and retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	if _, err := s.SweepOnce(ctx); err != nil {
		s.logger.Warn("account sweep failed", logging.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Warn("account sweep failed", logging.Error(err))
			}
		}
	}
}
