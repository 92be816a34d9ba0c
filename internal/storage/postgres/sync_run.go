package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"deal_syncer/internal/domain"
)

// SyncRunStore records one row per pipeline execution. The table is
// append-only: rows are created at run start, finalized exactly once and
// never deleted.
type SyncRunStore struct {
	db *sqlx.DB
}

func NewSyncRunStore(db *sqlx.DB) *SyncRunStore {
	return &SyncRunStore{db: db}
}

// Create inserts a running run row and returns it.
func (s *SyncRunStore) Create(ctx context.Context, startedAt time.Time) (*domain.SyncRun, error) {
	run := &domain.SyncRun{
		StartedAt: startedAt,
		Status:    domain.RunStatusRunning,
	}

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx,
		`INSERT INTO sync_runs (started_at, status) VALUES ($1, $2) RETURNING id`,
		run.StartedAt, run.Status,
	).Scan(&run.ID)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// Finalize moves a running run to its terminal state with the accumulated
// counts. Finalizing a run that is no longer running is a defect and is
// rejected.
func (s *SyncRunStore) Finalize(ctx context.Context, run *domain.SyncRun) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		`UPDATE sync_runs SET
			completed_at = $1,
			status = $2,
			deals_processed = $3,
			deals_added = $4,
			deals_updated = $5,
			deals_deleted = $6,
			error_count = $7,
			error_message = $8
		 WHERE id = $9 AND status = $10`,
		run.CompletedAt,
		run.Status,
		run.DealsProcessed,
		run.DealsAdded,
		run.DealsUpdated,
		run.DealsDeleted,
		run.ErrorCount,
		run.ErrorMessage,
		run.ID,
		domain.RunStatusRunning,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("sync run %d already finalized", run.ID)
	}
	return nil
}

// LastCompleted returns the most recent completed run, or nil when none
// exists. Incremental scans anchor their window on it.
func (s *SyncRunStore) LastCompleted(ctx context.Context) (*domain.SyncRun, error) {
	var run domain.SyncRun
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &run,
		`SELECT id, started_at, completed_at, status, deals_processed,
			deals_added, deals_updated, deals_deleted, error_count, error_message
		 FROM sync_runs
		 WHERE status = $1
		 ORDER BY started_at DESC
		 LIMIT 1`,
		domain.RunStatusCompleted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Get returns one run row.
func (s *SyncRunStore) Get(ctx context.Context, id int64) (*domain.SyncRun, error) {
	var run domain.SyncRun
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &run,
		`SELECT id, started_at, completed_at, status, deals_processed,
			deals_added, deals_updated, deals_deleted, error_count, error_message
		 FROM sync_runs WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
