package domain

import "time"

// DealStatus mirrors the remote CRM's deal lifecycle.
type DealStatus string

const (
	DealStatusOpen DealStatus = "open"
	DealStatusWon  DealStatus = "won"
	DealStatusLost DealStatus = "lost"
)

// DealSummary is a deal as listed by the paginated endpoint, before any
// custom-field enrichment.
type DealSummary struct {
	ID        int64
	Title     string
	Value     int64 // minor currency units
	Currency  string
	Status    DealStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomFieldValue is one raw custom-field value attached to a deal. FieldID
// is the CRM's opaque field identifier; only allow-listed ids survive
// extraction.
type CustomFieldValue struct {
	DealID   int64
	FieldID  string
	RawValue string
}

// DealAttributes are the named attributes projected from a deal's
// custom-field values via the field allow-list.
type DealAttributes struct {
	ClosingDate    *time.Time
	Seller         *string
	Designer       *string
	Region         *string
	PairCount      *int
	CampaignSource *string
	CampaignMedium *string
}

// NormalizedDeal is the unit persisted to the cache, keyed by DealID.
//
// A nil ClosingDate is a valid, expected state: such deals are excluded from
// every downstream report that filters by closing date. Consumers depend on
// that exclusion.
type NormalizedDeal struct {
	DealID          int64      `db:"deal_id"`
	Title           string     `db:"title"`
	Value           int64      `db:"value"`
	Currency        string     `db:"currency"`
	Status          DealStatus `db:"status"`
	ClosingDate     *time.Time `db:"closing_date"`
	CreatedDate     time.Time  `db:"created_date"`
	RemoteUpdatedAt time.Time  `db:"remote_updated_at"`
	Seller          *string    `db:"seller"`
	Designer        *string    `db:"designer"`
	Region          *string    `db:"region"`
	PairCount       *int       `db:"pair_count"`
	CampaignSource  *string    `db:"campaign_source"`
	CampaignMedium  *string    `db:"campaign_medium"`
	SyncStatus      string     `db:"sync_status"`
}

// SyncStatusSynced marks a cache row written by a completed upsert.
const SyncStatusSynced = "synced"

// UpsertOutcome reports what a cache upsert actually did.
type UpsertOutcome int

const (
	UpsertUnchanged UpsertOutcome = iota
	UpsertInserted
	UpsertUpdated
)
