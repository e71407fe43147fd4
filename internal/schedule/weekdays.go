package schedule

import (
	"sort"
	"time"
)

// NormalizeDueDays keeps valid weekday indices (0=Sunday..6=Saturday),
// drops duplicates and sorts. The result is never nil so it encodes as [].
func NormalizeDueDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// ToggleDueDay adds day when absent and removes it when present.
func ToggleDueDay(days []int, day int) []int {
	out := make([]int, 0, len(days)+1)
	found := false
	for _, d := range days {
		if d == day {
			found = true
			continue
		}
		out = append(out, d)
	}
	if !found {
		out = append(out, day)
	}
	return NormalizeDueDays(out)
}

// DueDaysFromWeekdays converts time.Weekday values to wire indices.
func DueDaysFromWeekdays(ws ...time.Weekday) []int {
	days := make([]int, 0, len(ws))
	for _, w := range ws {
		days = append(days, int(w))
	}
	return NormalizeDueDays(days)
}

// NextOccurrence returns the first instant at or after from that falls on
// one of days at dueAt's UTC clock time. With no days the reminder is a
// one-off and dueAt itself is returned.
func NextOccurrence(dueAt time.Time, days []int, from time.Time) time.Time {
	days = NormalizeDueDays(days)
	if len(days) == 0 {
		return dueAt
	}
	dueAt = dueAt.UTC()
	from = from.UTC()
	start := from
	if dueAt.After(from) {
		start = dueAt
	}
	h, m, s := dueAt.Clock()
	for i := 0; i < 8; i++ {
		day := start.AddDate(0, 0, i)
		candidate := time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, time.UTC)
		if candidate.Before(start) {
			continue
		}
		for _, d := range days {
			if int(candidate.Weekday()) == d {
				return candidate
			}
		}
	}
	return dueAt
}
