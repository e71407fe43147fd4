// Package schedule holds the reminder encoding rules shared by the SDK and
// the CLI: the backend's due-date wire format, weekday recurrence sets,
// category inference from reminder names and proxy phone formatting.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DueAtLayout is the backend's due-date format: UTC, a space instead of
// "T", and a literal "+00" offset instead of "Z". Go renders UTC with the
// "-07" zone layout as "+00".
const DueAtLayout = "2006-01-02 15:04:05-07"

// inputLayouts are tried in order. Layouts without a zone parse as UTC.
var inputLayouts = []string{
	time.RFC3339Nano,
	DueAtLayout,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDueAtInput parses free-form due-date input.
func ParseDueAtInput(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty due date")
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised due date %q", input)
}

// FormatDueAt renders t in the wire format.
func FormatDueAt(t time.Time) string {
	return t.UTC().Format(DueAtLayout)
}

// NormalizeDueAtInput converts caller input to the wire format. Input that
// cannot be parsed yields nil; the failure is logged, not returned.
func NormalizeDueAtInput(input string) *string {
	t, err := ParseDueAtInput(input)
	if err != nil {
		log.Warn().Err(err).Str("input", input).Msg("dropping unparsable due date")
		return nil
	}
	s := FormatDueAt(t)
	return &s
}

// ParseDueAt parses a wire-format due date.
func ParseDueAt(s string) (time.Time, error) {
	return time.Parse(DueAtLayout, strings.TrimSpace(s))
}
