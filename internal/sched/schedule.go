package sched

import (
	"sync/atomic"
	"time"

	"schedtrack/internal/model"
)

// Factory builds new schedule records. Identity comes from a monotonic
// counter seeded with the Unix-millisecond instant at construction, so ids
// stay creation-ordered and do not collide when two schedules land on the
// same clock tick.
type Factory struct {
	now  func() time.Time
	next atomic.Int64
}

// NewFactory returns a Factory using the given clock; a nil clock means
// time.Now.
func NewFactory(now func() time.Time) *Factory {
	if now == nil {
		now = time.Now
	}
	f := &Factory{now: now}
	f.next.Store(now().UnixMilli())
	return f
}

// New constructs a schedule from raw form input: the time is normalized, the
// datetime derived, identity and createdAt assigned. Validation is the
// caller's job and must happen before New.
func (f *Factory) New(title, date, tod string) model.Schedule {
	t := NormalizeTime(tod)
	return model.Schedule{
		ID:        f.next.Add(1),
		Title:     title,
		Date:      date,
		Time:      t,
		DateTime:  BuildDateTime(date, t),
		Completed: false,
		CreatedAt: f.now(),
	}
}

// IsValid checks minimal required-field presence: a title and a date. It
// does not parse the date, inspect the time, or look for duplicates; the
// past-date policy lives in IsPastDate.
func IsValid(title, date string) bool {
	return title != "" && date != ""
}
