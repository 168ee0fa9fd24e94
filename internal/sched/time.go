package sched

import "time"

// Layouts for the timezone-naive date and datetime strings schedules carry.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

// NormalizeTime canonicalizes a raw time-of-day string. Empty input stays
// empty and signals an all-day schedule. Inputs of five or more bytes are
// truncated to the first five, stripping a seconds component from an
// "HH:MM:SS"-shaped value; shorter inputs pass through unvalidated. The cut
// is byte-wise: garbage is tolerated, not repaired, so multibyte input past
// the fifth byte is simply dropped.
func NormalizeTime(t string) string {
	if t == "" {
		return ""
	}
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

// BuildDateTime combines a date and a normalized time into the orderable
// "YYYY-MM-DDTHH:MM" form. All-day schedules anchor at midnight. The date is
// concatenated as-is, without calendar validation.
func BuildDateTime(date, t string) string {
	if t != "" {
		return date + "T" + t
	}
	return date + "T00:00"
}

// ParseDateTime parses a combined datetime string as a local instant.
func ParseDateTime(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateKey formats the calendar date of the given instant.
func DateKey(now time.Time) string {
	return now.Format(DateLayout)
}

// IsPastDate reports whether date falls strictly before now's calendar day,
// comparing at day granularity. An unparseable date is never past.
func IsPastDate(date string, now time.Time) bool {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return d.Before(midnight)
}

// IsToday reports whether date is now's calendar day.
func IsToday(date string, now time.Time) bool {
	return date == DateKey(now)
}
