package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04"
)

// ParseDate parses YYYY-MM-DD in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.UTC)
}

// InclusiveDays counts calendar days from start to end, both included.
// ok is false when either date does not parse or end is before start.
func InclusiveDays(start, end string) (int, bool) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, false
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, false
	}
	if e.Before(s) {
		return 0, false
	}
	return int(e.Sub(s).Hours()/24) + 1, true
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}
