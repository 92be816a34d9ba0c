package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"deal_syncer/internal/config"
	"deal_syncer/internal/domain"
	"deal_syncer/internal/fieldmap"
)

// overlapMargin is subtracted from the last completed run's start when
// anchoring an incremental window, so deals updated while that run was in
// flight are not missed.
const overlapMargin = 15 * time.Minute

// SyncService is the pipeline orchestrator: it walks the remote deal set,
// fans the per-deal field extraction out over a bounded worker pool, writes
// the cache and records one SyncRun row per execution.
type SyncService struct {
	source    DealSource
	deals     DealStore
	runs      SyncRunStore
	txManager TransactionManager
	publisher Publisher
	fields    *fieldmap.Table
	logger    *slog.Logger
	cfg       config.SyncConfig
}

func NewSyncService(
	source DealSource,
	deals DealStore,
	runs SyncRunStore,
	txManager TransactionManager,
	publisher Publisher,
	fields *fieldmap.Table,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *SyncService {
	return &SyncService{
		source:    source,
		deals:     deals,
		runs:      runs,
		txManager: txManager,
		publisher: publisher,
		fields:    fields,
		logger:    logger.With("source", source.ID()),
		cfg:       cfg,
	}
}

// Sync executes one pipeline run under the configured wall-clock budget.
// The returned SyncRun is always finalized; a run never vanishes without a
// trace, whichever way it ends.
func (s *SyncService) Sync(ctx context.Context, opts domain.SyncOptions) (*domain.SyncRun, error) {
	if opts.ClearFirst {
		opts.AllDeals = true
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	run, err := s.runs.Create(runCtx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("create sync run: %w", err)
	}

	logger := s.logger.With(
		"run_id", run.ID,
		"all_deals", opts.AllDeals,
		"clear_first", opts.ClearFirst,
		"dry_run", opts.DryRun,
	)
	logger.Info("starting sync", "concurrency", s.cfg.Concurrency, "budget", s.cfg.RunTimeout)

	execErr := s.execute(runCtx, run, opts, logger)

	completedAt := time.Now().UTC()
	run.CompletedAt = &completedAt
	if execErr != nil {
		run.Status = domain.RunStatusFailed
		msg := execErr.Error()
		run.ErrorMessage = &msg
	} else {
		run.Status = domain.RunStatusCompleted
	}

	// Finalization must survive an exhausted run budget.
	finalizeCtx, finalizeCancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer finalizeCancel()
	if err := s.runs.Finalize(finalizeCtx, run); err != nil {
		logger.Error("finalize sync run", "error", err)
		if execErr == nil {
			execErr = fmt.Errorf("finalize sync run: %w", err)
		}
	}

	logger.Info("sync finished",
		"status", run.Status,
		"processed", run.DealsProcessed,
		"added", run.DealsAdded,
		"updated", run.DealsUpdated,
		"deleted", run.DealsDeleted,
		"errors", run.ErrorCount,
		"duration", run.Duration(),
	)

	return run, execErr
}

func (s *SyncService) execute(ctx context.Context, run *domain.SyncRun, opts domain.SyncOptions, logger *slog.Logger) error {
	// Dry runs derive added/updated from cache membership instead of
	// writing; a clear-first dry run rebuilds from nothing.
	var existing map[int64]struct{}
	if opts.DryRun && !opts.ClearFirst {
		ids, err := s.deals.ListIDs(ctx)
		if err != nil {
			return fmt.Errorf("list cached deals: %w", err)
		}
		existing = make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			existing[id] = struct{}{}
		}
	}

	if opts.ClearFirst && !opts.DryRun {
		if err := s.deals.Truncate(ctx); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		logger.Info("cache cleared for full rebuild")
	}

	cutoff, err := s.incrementalCutoff(ctx, opts)
	if err != nil {
		return err
	}

	seen, walkErr := s.processDeals(ctx, run, opts, existing, cutoff, logger)
	if walkErr != nil {
		// A page gap would corrupt orphan accounting; the whole run
		// aborts with whatever counts were accumulated.
		return fmt.Errorf("pagination walk: %w", walkErr)
	}

	if opts.AllDeals && !opts.ClearFirst {
		deleted, err := s.cleanupOrphans(ctx, seen, opts.DryRun)
		if err != nil {
			return fmt.Errorf("orphan cleanup: %w", err)
		}
		run.DealsDeleted = deleted
	}

	return nil
}

type dealResult struct {
	dealID int64
	deal   *domain.NormalizedDeal
	err    error
}

// processDeals runs the pagination walk and fans field extraction out over
// the worker pool. Results are consumed in arrival order. It returns the
// complete list of deal ids the walk produced; the list is only meaningful
// when the walk error is nil.
func (s *SyncService) processDeals(
	ctx context.Context,
	run *domain.SyncRun,
	opts domain.SyncOptions,
	existing map[int64]struct{},
	cutoff time.Time,
	logger *slog.Logger,
) ([]int64, error) {
	summaries := make(chan domain.DealSummary)
	results := make(chan dealResult)

	// Producer: strictly sequential page walk.
	var (
		seen    []int64
		walkErr error
	)
	go func() {
		defer close(summaries)
		walkErr = s.source.WalkDeals(ctx, func(d domain.DealSummary) error {
			seen = append(seen, d.ID)
			if !cutoff.IsZero() && d.UpdatedAt.Before(cutoff) {
				return nil
			}
			select {
			case summaries <- d:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	// Workers: at most cfg.Concurrency field extractions in flight. One
	// deal's failure never cancels its siblings.
	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for summary := range summaries {
				deal, err := s.buildDeal(ctx, summary)
				select {
				case results <- dealResult{dealID: summary.ID, deal: deal, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collector: single goroutine owns the counters and the cache writes.
	for res := range results {
		run.DealsProcessed++

		if res.err != nil {
			run.ErrorCount++
			logger.Warn("deal sync failed", "deal_id", res.dealID, "error", res.err)
			continue
		}

		outcome, err := s.persist(ctx, res.deal, opts, existing)
		if err != nil {
			run.ErrorCount++
			logger.Warn("cache write failed", "deal_id", res.dealID, "error", err)
			continue
		}

		switch outcome {
		case domain.UpsertInserted:
			run.DealsAdded++
			s.publish(ctx, run, res.deal, true, opts, logger)
		case domain.UpsertUpdated:
			run.DealsUpdated++
			s.publish(ctx, run, res.deal, false, opts, logger)
		}
	}

	// The results channel closes only after the producer finished, so
	// walkErr is settled here.
	return seen, walkErr
}

func (s *SyncService) buildDeal(ctx context.Context, summary domain.DealSummary) (*domain.NormalizedDeal, error) {
	values, err := s.source.FetchDealFields(ctx, summary.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch fields: %w", err)
	}

	attrs := s.fields.Project(values)

	return &domain.NormalizedDeal{
		DealID:          summary.ID,
		Title:           summary.Title,
		Value:           summary.Value,
		Currency:        summary.Currency,
		Status:          summary.Status,
		ClosingDate:     attrs.ClosingDate,
		CreatedDate:     summary.CreatedAt,
		RemoteUpdatedAt: summary.UpdatedAt,
		Seller:          attrs.Seller,
		Designer:        attrs.Designer,
		Region:          attrs.Region,
		PairCount:       attrs.PairCount,
		CampaignSource:  attrs.CampaignSource,
		CampaignMedium:  attrs.CampaignMedium,
		SyncStatus:      domain.SyncStatusSynced,
	}, nil
}

func (s *SyncService) persist(ctx context.Context, deal *domain.NormalizedDeal, opts domain.SyncOptions, existing map[int64]struct{}) (domain.UpsertOutcome, error) {
	if opts.DryRun {
		if _, ok := existing[deal.DealID]; ok {
			return domain.UpsertUpdated, nil
		}
		return domain.UpsertInserted, nil
	}
	return s.deals.Upsert(ctx, deal)
}

func (s *SyncService) publish(ctx context.Context, run *domain.SyncRun, deal *domain.NormalizedDeal, isNew bool, opts domain.SyncOptions, logger *slog.Logger) {
	if s.publisher == nil || opts.DryRun {
		return
	}
	if err := s.publisher.Publish(ctx, deal, isNew); err != nil {
		run.ErrorCount++
		logger.Warn("publish deal event failed", "deal_id", deal.DealID, "error", err)
	}
}

// cleanupOrphans deletes exactly the cache rows whose deal id did not appear
// in the completed walk. The list-then-delete pair runs in one transaction so
// it observes a single snapshot of the cache.
func (s *SyncService) cleanupOrphans(ctx context.Context, seen []int64, dryRun bool) (int, error) {
	seenSet := make(map[int64]struct{}, len(seen))
	for _, id := range seen {
		seenSet[id] = struct{}{}
	}

	var deleted int
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		cached, err := s.deals.ListIDs(txCtx)
		if err != nil {
			return err
		}

		var orphans []int64
		for _, id := range cached {
			if _, ok := seenSet[id]; !ok {
				orphans = append(orphans, id)
			}
		}

		if dryRun || len(orphans) == 0 {
			deleted = len(orphans)
			return nil
		}

		deleted, err = s.deals.DeleteByIDs(txCtx, orphans)
		return err
	})
	return deleted, err
}

func (s *SyncService) incrementalCutoff(ctx context.Context, opts domain.SyncOptions) (time.Time, error) {
	if opts.AllDeals {
		return time.Time{}, nil
	}

	last, err := s.runs.LastCompleted(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("load last completed run: %w", err)
	}
	if last == nil {
		return time.Now().UTC().Add(-s.cfg.IncrementalWindow), nil
	}
	return last.StartedAt.Add(-overlapMargin), nil
}
