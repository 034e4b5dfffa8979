package nutrition

import (
	"fmt"
	"strings"
	"time"
)

// Statistics ranges.
const (
	RangeWeek   = "Week"
	Range30Days = "30 Days"
	Range60Days = "60 Days"
	Range90Days = "90 Days"
)

var rangeDays = map[string]int{
	RangeWeek:   7,
	Range30Days: 30,
	Range60Days: 60,
	Range90Days: 90,
}

// NormalizeRange maps unknown ranges to Week.
func NormalizeRange(r string) string {
	if _, ok := rangeDays[r]; ok {
		return r
	}
	return RangeWeek
}

// DayRange returns the window for a statistics range, from midnight of the
// first day to 23:59:59.999 today, in UTC.
func DayRange(r string, now time.Time) (start, end time.Time) {
	days := rangeDays[NormalizeRange(r)]
	today := StartOfDay(now)
	end = today.Add(24*time.Hour - time.Millisecond)
	start = today.AddDate(0, 0, -(days - 1))
	return start, end
}

// StartOfDay truncates to UTC midnight of t's UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts YYYY-MM-DD or an RFC 3339 timestamp and returns UTC
// midnight of the date as written, ignoring the offset.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseTimestamp accepts RFC 3339 with or without fractional seconds,
// and naive ISO timestamps which are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
