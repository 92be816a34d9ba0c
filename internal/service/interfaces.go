package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"deal_syncer/internal/domain"
)

// DealSource is the remote CRM: a sequential pagination walk over deal
// summaries plus a per-deal custom-field fetch.
type DealSource interface {
	ID() string
	WalkDeals(ctx context.Context, fn func(domain.DealSummary) error) error
	FetchDealFields(ctx context.Context, dealID int64) ([]domain.CustomFieldValue, error)
}

type DealStore interface {
	Upsert(ctx context.Context, deal *domain.NormalizedDeal) (domain.UpsertOutcome, error)
	ListIDs(ctx context.Context) ([]int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int, error)
	Truncate(ctx context.Context) error
}

type SyncRunStore interface {
	Create(ctx context.Context, startedAt time.Time) (*domain.SyncRun, error)
	Finalize(ctx context.Context, run *domain.SyncRun) error
	LastCompleted(ctx context.Context) (*domain.SyncRun, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, deal *domain.NormalizedDeal, isNew bool) error
	Close() error
}
