package model

import "time"

// Filter selects which schedules the full-list view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a persisted filter string to a Filter. Anything
// unrecognized falls back to FilterAll.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterAll, FilterActive, FilterCompleted:
		return Filter(s)
	default:
		return FilterAll
	}
}

// Schedule is the sole persisted entity: one dated, optionally timed
// reminder.
type Schedule struct {
	// ID is unique within the collection and never reassigned.
	ID int64 `gorm:"primaryKey" json:"id"`

	Title string `gorm:"not null" json:"title"`

	// Date is the calendar date in ISO YYYY-MM-DD form.
	Date string `gorm:"not null" json:"date"`

	// Time is "HH:MM", or empty for an all-day schedule.
	Time string `json:"time"`

	// DateTime is the combined orderable "YYYY-MM-DDTHH:MM" timestamp. It is
	// derived from Date and Time, recomputed on every edit of either, and
	// never mutated independently.
	DateTime string `json:"datetime"`

	// NotifyBefore is the reminder offset in minutes; nil means no reminder.
	NotifyBefore *int `json:"notifyBefore"`

	Completed bool `json:"completed"`

	// CreatedAt is immutable once set and used only as a sort tie-break.
	CreatedAt time.Time `json:"createdAt"`
}

// CalendarCell is one cell of a month grid, produced per render and
// discarded. A leading filler before day 1 carries no date and Day 0.
type CalendarCell struct {
	Date string
	Day  int
}

// Blank reports whether the cell is a leading filler.
func (c CalendarCell) Blank() bool { return c.Day == 0 }
