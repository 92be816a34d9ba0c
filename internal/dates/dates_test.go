package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_USFormat(t *testing.T) {
	got, ok := Normalize("07/14/2024")
	require.True(t, ok)
	assert.Equal(t, "2024-07-14", got.Format(Canonical))
}

func TestNormalize_ISOPassthrough(t *testing.T) {
	got, ok := Normalize("2024-07-14")
	require.True(t, ok)
	assert.Equal(t, "2024-07-14", got.Format(Canonical))
}

func TestNormalize_Timestamps(t *testing.T) {
	cases := map[string]string{
		"2024-07-14T09:30:00Z":      "2024-07-14",
		"2024-07-14 09:30:00":       "2024-07-14",
		"2024-07-14T09:30:00":       "2024-07-14",
		"2024-12-31T23:59:59+00:00": "2024-12-31",
	}
	for raw, want := range cases {
		got, ok := Normalize(raw)
		require.True(t, ok, "input %q", raw)
		assert.Equal(t, want, got.Format(Canonical), "input %q", raw)
	}
}

func TestNormalize_Invalid(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "13/45/2024", "tomorrow"} {
		_, ok := Normalize(raw)
		assert.False(t, ok, "input %q", raw)
	}
}

func TestNormalize_MidnightUTC(t *testing.T) {
	got, ok := Normalize("07/14/2024")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestNormalizeString(t *testing.T) {
	assert.Equal(t, "2024-07-14", NormalizeString("07/14/2024"))
	assert.Equal(t, "2024-07-14", NormalizeString("2024-07-14"))
	assert.Equal(t, "", NormalizeString("not-a-date"))
	assert.Equal(t, "", NormalizeString(""))
}
