// Package dates normalizes the heterogeneous date strings found in CRM
// custom fields into one canonical calendar date.
package dates

import "time"

// Canonical is the wire format of a normalized date.
const Canonical = "2006-01-02"

// generic timestamp layouts tried after the two primary shapes.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Normalize converts raw into a canonical calendar date (midnight UTC).
// Accepted shapes are MM/DD/YYYY, YYYY-MM-DD and generic timestamps.
// Anything else reports ok=false; absence of a date is an expected outcome,
// not an error.
func Normalize(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse("01/02/2006", raw); err == nil {
		return midnight(t), true
	}
	if t, err := time.Parse(Canonical, raw); err == nil {
		return midnight(t), true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return midnight(t.UTC()), true
		}
	}

	return time.Time{}, false
}

// NormalizeString is Normalize with the canonical string rendering; it
// returns "" for unparseable input.
func NormalizeString(raw string) string {
	t, ok := Normalize(raw)
	if !ok {
		return ""
	}
	return t.Format(Canonical)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
