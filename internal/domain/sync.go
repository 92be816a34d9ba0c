package domain

import "time"

// RunStatus is the terminal-state machine of one pipeline execution:
// running -> completed | failed.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// SyncRun is one row of the append-only run audit log. It is created when a
// run starts, mutated only by the owning run, and finalized exactly once.
type SyncRun struct {
	ID             int64      `db:"id"`
	StartedAt      time.Time  `db:"started_at"`
	CompletedAt    *time.Time `db:"completed_at"`
	Status         RunStatus  `db:"status"`
	DealsProcessed int        `db:"deals_processed"`
	DealsAdded     int        `db:"deals_added"`
	DealsUpdated   int        `db:"deals_updated"`
	DealsDeleted   int        `db:"deals_deleted"`
	ErrorCount     int        `db:"error_count"`
	ErrorMessage   *string    `db:"error_message"`
}

// Duration is zero while the run is still in flight.
func (r *SyncRun) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// SyncOptions selects the run mode.
type SyncOptions struct {
	// AllDeals walks the full remote deal set. When false only deals
	// updated inside the incremental window are processed.
	AllDeals bool
	// ClearFirst truncates the cache before the walk (full rebuild).
	// Implies AllDeals.
	ClearFirst bool
	// DryRun computes all counts without persisting any cache mutation.
	DryRun bool
}
