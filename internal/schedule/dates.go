package schedule

import (
	"strings"
	"time"
)

var looseDateLayouts = append([]string{
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}, inputLayouts...)

// ParseLooseDate parses the free-text dates stored on proxy contacts.
// Unparsable input reports ok=false rather than an error.
func ParseLooseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range looseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
