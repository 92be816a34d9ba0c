package scheduler

import (
	"context"
	"log/slog"
	"time"

	"deal_syncer/internal/domain"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context, opts domain.SyncOptions) (*domain.SyncRun, error)
}

// Scheduler triggers a sync run on a fixed interval. Run-level retry policy
// is deliberately absent: a failed run is simply retried on the next tick.
type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	opts     domain.SyncOptions
	logger   *slog.Logger
}

func NewScheduler(syncer Syncer, interval time.Duration, opts domain.SyncOptions, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		interval: interval,
		opts:     opts,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "all_deals", s.opts.AllDeals)

	s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	// The service enforces its own run budget; the scheduler only decides
	// when a run starts.
	if _, err := s.syncer.Sync(ctx, s.opts); err != nil {
		s.logger.Error("scheduled sync failed", "error", err)
	}
}
