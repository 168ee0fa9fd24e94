package sched

import "time"

// NotifyTime derives the instant a reminder should fire: minutesBefore
// minutes ahead of the schedule's datetime. Nil when the datetime is empty,
// the offset is absent, or the datetime does not parse. The offset may be
// any integer, including one that lands the result in the past.
func NotifyTime(datetime string, minutesBefore *int) *time.Time {
	if datetime == "" || minutesBefore == nil {
		return nil
	}
	base, ok := ParseDateTime(datetime)
	if !ok {
		return nil
	}
	t := base.Add(-time.Duration(*minutesBefore) * time.Minute)
	return &t
}

// NotifyExpired reports whether a notify instant lies at or behind now. A
// nil or zero instant also counts as expired, so "not a real timestamp" and
// "already due" are indistinguishable here; callers that need the
// difference must check NotifyTime's nil result first.
func NotifyExpired(t *time.Time, now time.Time) bool {
	if t == nil || t.IsZero() {
		return true
	}
	return !t.After(now)
}
