package utils

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000Z",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// ParseDate parses the date formats seen in news provider payloads.
// Values without a zone are read as UTC. It returns nil when nothing matches.
func ParseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
