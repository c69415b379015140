package itinerary

import (
	"fmt"
	"strings"
	"time"
)

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDate reads "2006-01-02" or a date-time in loc. dateOnly reports whether
// the caller gave no time of day.
func ParseDate(value string, loc *time.Location) (t time.Time, dateOnly bool, err error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false, fmt.Errorf("date is empty")
	}
	if loc == nil {
		loc = time.UTC
	}
	if parsed, perr := time.ParseInLocation("2006-01-02", v, loc); perr == nil {
		return parsed, true, nil
	}
	for _, layout := range dateTimeLayouts {
		if parsed, perr := time.ParseInLocation(layout, v, loc); perr == nil {
			return parsed.In(loc), false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognised date %q", value)
}

// atHour returns t's calendar day at hour:00 in loc.
func atHour(t time.Time, hour int, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
}
