// Package fieldmap projects raw CRM custom-field values onto named deal
// attributes via a versioned allow-list. Adding a tracked field is a
// configuration change, not a code change.
package fieldmap

import (
	"fmt"
	"strconv"
	"strings"

	"deal_syncer/internal/dates"
	"deal_syncer/internal/domain"
)

// Semantic attribute names. These are the only targets a field id may map to.
const (
	AttrClosingDate    = "closing_date"
	AttrSeller         = "seller"
	AttrDesigner       = "designer"
	AttrRegion         = "region"
	AttrPairCount      = "pair_count"
	AttrCampaignSource = "campaign_source"
	AttrCampaignMedium = "campaign_medium"
)

var knownAttrs = map[string]struct{}{
	AttrClosingDate:    {},
	AttrSeller:         {},
	AttrDesigner:       {},
	AttrRegion:         {},
	AttrPairCount:      {},
	AttrCampaignSource: {},
	AttrCampaignMedium: {},
}

// Table is the versioned fieldID -> attribute lookup.
type Table struct {
	version string
	byField map[string]string
}

// New builds a Table from an attribute -> fieldID mapping. Unknown attribute
// names and duplicate field ids are configuration defects and rejected.
func New(version string, mapping map[string]string) (*Table, error) {
	byField := make(map[string]string, len(mapping))
	for attr, fieldID := range mapping {
		if _, ok := knownAttrs[attr]; !ok {
			return nil, fmt.Errorf("field map: unknown attribute %q", attr)
		}
		if fieldID == "" {
			continue
		}
		if prev, dup := byField[fieldID]; dup {
			return nil, fmt.Errorf("field map: field id %q mapped to both %q and %q", fieldID, prev, attr)
		}
		byField[fieldID] = attr
	}
	return &Table{version: version, byField: byField}, nil
}

// Version returns the configured version label of the allow-list.
func (t *Table) Version() string {
	return t.version
}

// FieldIDs returns the allow-listed field identifiers.
func (t *Table) FieldIDs() []string {
	ids := make([]string, 0, len(t.byField))
	for id := range t.byField {
		ids = append(ids, id)
	}
	return ids
}

// Allowed reports whether fieldID is on the allow-list.
func (t *Table) Allowed(fieldID string) bool {
	_, ok := t.byField[fieldID]
	return ok
}

// Project keeps only allow-listed values and maps them onto DealAttributes.
// Values that fail their attribute's parse (unparseable date, non-numeric
// pair count) are dropped, leaving the attribute nil.
func (t *Table) Project(values []domain.CustomFieldValue) domain.DealAttributes {
	var attrs domain.DealAttributes

	for _, v := range values {
		attr, ok := t.byField[v.FieldID]
		if !ok {
			continue
		}
		raw := strings.TrimSpace(v.RawValue)
		if raw == "" {
			continue
		}

		switch attr {
		case AttrClosingDate:
			if d, ok := dates.Normalize(raw); ok {
				attrs.ClosingDate = &d
			}
		case AttrSeller:
			attrs.Seller = &raw
		case AttrDesigner:
			attrs.Designer = &raw
		case AttrRegion:
			attrs.Region = &raw
		case AttrPairCount:
			if n, err := strconv.Atoi(raw); err == nil {
				attrs.PairCount = &n
			}
		case AttrCampaignSource:
			attrs.CampaignSource = &raw
		case AttrCampaignMedium:
			attrs.CampaignMedium = &raw
		}
	}

	return attrs
}
