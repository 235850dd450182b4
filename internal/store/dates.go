package store

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. The scraper writes C asctime-style stamps
// whose day of month may be zero padded, space padded, or unpadded.
var dateLayouts = []string{
	"Mon Jan 02 15:04:05 2006",
	"Mon Jan _2 15:04:05 2006",
	"Mon Jan 2 15:04:05 2006",
}

// ParseDate parses a message date. It returns nil when raw is empty or matches
// no known layout; callers treat nil as "unknown", never as a zero time.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	return nil
}
