package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"deal_syncer/internal/domain"
)

type DealStore struct {
	db *sqlx.DB
}

func NewDealStore(db *sqlx.DB) *DealStore {
	return &DealStore{db: db}
}

// Upsert writes a cache row keyed by deal_id, fully replacing any existing
// row (the remote CRM is the sole source of truth; fields are never merged).
// The update fires only when the incoming row differs, so replaying an
// unchanged remote data set is a no-op.
func (s *DealStore) Upsert(ctx context.Context, deal *domain.NormalizedDeal) (domain.UpsertOutcome, error) {
	query := `
		INSERT INTO deals (
			deal_id, title, value, currency, status, closing_date,
			created_date, remote_updated_at, seller, designer, region,
			pair_count, campaign_source, campaign_medium, sync_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		ON CONFLICT (deal_id) DO UPDATE SET
			title = EXCLUDED.title,
			value = EXCLUDED.value,
			currency = EXCLUDED.currency,
			status = EXCLUDED.status,
			closing_date = EXCLUDED.closing_date,
			created_date = EXCLUDED.created_date,
			remote_updated_at = EXCLUDED.remote_updated_at,
			seller = EXCLUDED.seller,
			designer = EXCLUDED.designer,
			region = EXCLUDED.region,
			pair_count = EXCLUDED.pair_count,
			campaign_source = EXCLUDED.campaign_source,
			campaign_medium = EXCLUDED.campaign_medium,
			sync_status = EXCLUDED.sync_status
		WHERE (
			deals.title, deals.value, deals.currency, deals.status,
			deals.closing_date, deals.created_date, deals.remote_updated_at,
			deals.seller, deals.designer, deals.region, deals.pair_count,
			deals.campaign_source, deals.campaign_medium
		) IS DISTINCT FROM (
			EXCLUDED.title, EXCLUDED.value, EXCLUDED.currency, EXCLUDED.status,
			EXCLUDED.closing_date, EXCLUDED.created_date, EXCLUDED.remote_updated_at,
			EXCLUDED.seller, EXCLUDED.designer, EXCLUDED.region, EXCLUDED.pair_count,
			EXCLUDED.campaign_source, EXCLUDED.campaign_medium
		)
		RETURNING (xmax = 0) AS inserted`

	var inserted bool
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		deal.DealID,
		deal.Title,
		deal.Value,
		deal.Currency,
		deal.Status,
		deal.ClosingDate,
		deal.CreatedDate,
		deal.RemoteUpdatedAt,
		deal.Seller,
		deal.Designer,
		deal.Region,
		deal.PairCount,
		deal.CampaignSource,
		deal.CampaignMedium,
		domain.SyncStatusSynced,
	).Scan(&inserted)

	if err == sql.ErrNoRows {
		// Conflict row already equals the incoming one.
		return domain.UpsertUnchanged, nil
	}
	if err != nil {
		return domain.UpsertUnchanged, err
	}
	if inserted {
		return domain.UpsertInserted, nil
	}
	return domain.UpsertUpdated, nil
}

// ListIDs returns every deal id currently in the cache.
func (s *DealStore) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ids,
		"SELECT deal_id FROM deals ORDER BY deal_id")
	return ids, err
}

// DeleteByIDs removes exactly the given deal ids and reports how many rows
// went away.
func (s *DealStore) DeleteByIDs(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM deals WHERE deal_id = ANY($1)", pq.Array(ids))
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	return int(n), err
}

// Truncate empties the cache. Used by clear-first full rebuilds.
func (s *DealStore) Truncate(ctx context.Context) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, "TRUNCATE TABLE deals")
	return err
}

// CountClosingBetween is the reporting-window predicate the dashboards use.
// Rows with a null closing date never match, whatever the range.
func (s *DealStore) CountClosingBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &count,
		`SELECT COUNT(*) FROM deals
		 WHERE closing_date IS NOT NULL AND closing_date BETWEEN $1 AND $2`,
		from, to)
	return count, err
}

// Get returns one cache row or nil when absent.
func (s *DealStore) Get(ctx context.Context, dealID int64) (*domain.NormalizedDeal, error) {
	var deal domain.NormalizedDeal
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &deal,
		`SELECT deal_id, title, value, currency, status, closing_date,
			created_date, remote_updated_at, seller, designer, region,
			pair_count, campaign_source, campaign_medium, sync_status
		 FROM deals WHERE deal_id = $1`, dealID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}
