package evaluate

import (
	"fmt"
	"time"
)

// instantLayouts are tried in order when interpreting a string as an
// ISO-8601 instant. Fractional seconds and timezone offsets may vary
// between the two sides of a comparison; offset-less values are read
// as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05Z0700",
}

// ParseInstant parses an ISO-8601 instant in any tolerated layout.
func ParseInstant(s string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 instant: %q", s)
}
