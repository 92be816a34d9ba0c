package pipedrive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"deal_syncer/internal/domain"
)

const SourceID = "pipedrive"

// ErrPageCapExceeded aborts a walk whose offset grew past the configured
// safety cap. Treating it as fatal keeps a looping remote defect from being
// mistaken for a complete walk during orphan cleanup.
var ErrPageCapExceeded = errors.New("pagination offset safety cap exceeded")

// remote timestamp layout ("2006-01-02 15:04:05" in UTC).
const timeLayout = "2006-01-02 15:04:05"

// Config holds the deal source configuration.
type Config struct {
	BaseURL        string
	APIToken       string
	PageSize       int
	MaxPages       int
	Timeout        time.Duration
	CallTimeout    time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source is the remote deal source client: a sequential pagination walker
// over /deals plus a per-deal custom-field fetch.
type Source struct {
	client   *retryClient
	baseURL  string
	pageSize int
	maxPages int
	logger   *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		client: &retryClient{
			http:           &http.Client{},
			apiToken:       cfg.APIToken,
			attemptTimeout: cfg.Timeout,
			callTimeout:    cfg.CallTimeout,
			maxAttempts:    cfg.MaxAttempts,
			initialBackoff: cfg.InitialBackoff,
			maxBackoff:     cfg.MaxBackoff,
			logger:         logger.With("source", SourceID),
		},
		baseURL:  cfg.BaseURL,
		pageSize: cfg.PageSize,
		maxPages: cfg.MaxPages,
		logger:   logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return SourceID
}

// WalkDeals drives the paginated list endpoint from offset 0 and yields each
// deal summary to fn in page order. The walk ends at the first empty page.
// A page fetch that exhausts its retries aborts the walk; a partial walk is
// never silently reported as complete.
func (s *Source) WalkDeals(ctx context.Context, fn func(domain.DealSummary) error) error {
	start := 0

	for page := 0; ; page++ {
		if page >= s.maxPages {
			return fmt.Errorf("%w: %d pages of %d", ErrPageCapExceeded, page, s.pageSize)
		}

		url := fmt.Sprintf("%s/deals?start=%d&limit=%d", s.baseURL, start, s.pageSize)

		var resp listDealsResponse
		if err := s.client.getJSON(ctx, url, &resp); err != nil {
			return fmt.Errorf("fetch page %d: %w", page, err)
		}

		if len(resp.Data) == 0 {
			return nil
		}

		for _, rec := range resp.Data {
			if err := fn(s.toSummary(rec)); err != nil {
				return err
			}
		}

		s.logger.Debug("fetched page",
			"page", page,
			"deals", len(resp.Data),
			"start", start,
		)

		if resp.AdditionalData != nil && !resp.AdditionalData.Pagination.MoreItemsInCollection {
			return nil
		}

		if resp.AdditionalData != nil && resp.AdditionalData.Pagination.NextStart > start {
			start = resp.AdditionalData.Pagination.NextStart
		} else {
			start += s.pageSize
		}
	}
}

// FetchDealFields returns all field values attached to one deal as raw
// strings. Filtering down to the allow-list happens in the projection layer.
func (s *Source) FetchDealFields(ctx context.Context, dealID int64) ([]domain.CustomFieldValue, error) {
	url := fmt.Sprintf("%s/deals/%d", s.baseURL, dealID)

	var resp getDealResponse
	if err := s.client.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("fetch deal %d: %w", dealID, err)
	}

	values := make([]domain.CustomFieldValue, 0, len(resp.Data))
	for fieldID, raw := range resp.Data {
		str, ok := coerceString(raw)
		if !ok {
			continue
		}
		values = append(values, domain.CustomFieldValue{
			DealID:   dealID,
			FieldID:  fieldID,
			RawValue: str,
		})
	}

	return values, nil
}

func (s *Source) toSummary(rec dealRecord) domain.DealSummary {
	summary := domain.DealSummary{
		ID:       rec.ID,
		Title:    rec.Title,
		Value:    minorUnits(rec.Value),
		Currency: rec.Currency,
		Status:   domain.DealStatus(rec.Status),
	}

	if t, ok := parseRemoteTime(rec.AddTime); ok {
		summary.CreatedAt = t
	} else if rec.AddTime != "" {
		s.logger.Warn("unparseable add_time", "deal_id", rec.ID, "add_time", rec.AddTime)
	}
	if t, ok := parseRemoteTime(rec.UpdateTime); ok {
		summary.UpdatedAt = t
	} else if rec.UpdateTime != "" {
		s.logger.Warn("unparseable update_time", "deal_id", rec.ID, "update_time", rec.UpdateTime)
	}

	return summary
}

func parseRemoteTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(timeLayout, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// minorUnits converts the remote decimal amount into integer minor currency
// units.
func minorUnits(n json.Number) int64 {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 100))
}

// coerceString flattens a raw JSON field value into a string. Objects are
// reduced to their "name" or "value" member (the shape of the CRM's user and
// option fields); nulls and arrays carry no scalar value.
func coerceString(raw json.RawMessage) (string, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}

	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	case map[string]any:
		for _, key := range []string{"name", "value"} {
			if inner, ok := val[key]; ok {
				if b, err := json.Marshal(inner); err == nil {
					return coerceString(b)
				}
			}
		}
		return "", false
	default:
		return "", false
	}
}
