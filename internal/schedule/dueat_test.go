package schedule

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wirePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\+00$`)

func TestNormalizeDueAtInput_RoundTrip(t *testing.T) {
	inputs := map[string]time.Time{
		"2025-03-01T10:15:30Z":          time.Date(2025, 3, 1, 10, 15, 30, 0, time.UTC),
		"2025-03-01T10:15:30.123Z":      time.Date(2025, 3, 1, 10, 15, 30, 0, time.UTC),
		"2025-03-01T18:15:30+08:00":     time.Date(2025, 3, 1, 10, 15, 30, 0, time.UTC),
		"2025-03-01 10:15:30+00":        time.Date(2025, 3, 1, 10, 15, 30, 0, time.UTC),
		"2025-03-01 10:15:30":           time.Date(2025, 3, 1, 10, 15, 30, 0, time.UTC),
		"2025-03-01T10:15":              time.Date(2025, 3, 1, 10, 15, 0, 0, time.UTC),
		"2025-03-01":                    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		"  2025-12-31T23:59:59-05:00  ": time.Date(2026, 1, 1, 4, 59, 59, 0, time.UTC),
	}
	for in, want := range inputs {
		got := NormalizeDueAtInput(in)
		require.NotNil(t, got, "input %q", in)
		assert.Regexp(t, wirePattern, *got)

		parsed, err := ParseDueAt(*got)
		require.NoError(t, err)
		parsed = parsed.UTC()
		assert.Equal(t, want.Year(), parsed.Year(), in)
		assert.Equal(t, want.Month(), parsed.Month(), in)
		assert.Equal(t, want.Day(), parsed.Day(), in)
		assert.Equal(t, want.Hour(), parsed.Hour(), in)
		assert.Equal(t, want.Minute(), parsed.Minute(), in)
		assert.Equal(t, want.Second(), parsed.Second(), in)
	}
}

func TestNormalizeDueAtInput_Unparsable(t *testing.T) {
	for _, in := range []string{"", "   ", "tomorrow", "2025-13-01", "31/12/2025", "2025-02-30T10:00:00Z"} {
		assert.Nil(t, NormalizeDueAtInput(in), "input %q", in)
	}
}

func TestNormalizeDueAtInput_Idempotent(t *testing.T) {
	first := NormalizeDueAtInput("2025-06-15T08:00:00+02:00")
	require.NotNil(t, first)
	second := NormalizeDueAtInput(*first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
	assert.Equal(t, "2025-06-15 06:00:00+00", *first)
}

func TestFormatDueAt(t *testing.T) {
	loc := time.FixedZone("SGT", 8*3600)
	got := FormatDueAt(time.Date(2025, 1, 2, 3, 4, 5, 0, loc))
	assert.Equal(t, "2025-01-01 19:04:05+00", got)
}
