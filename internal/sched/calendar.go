package sched

import (
	"fmt"
	"time"

	"schedtrack/internal/model"
)

// MonthCalendar lays out the day cells for a month; month is zero-based
// (0 = January). The grid opens with one blank cell per weekday index of the
// month's first day (Sunday = 0), then one cell per day carrying the
// zero-padded date string and the 1-based day number. No trailing padding is
// appended. Out-of-range months are not rejected: weekday and month length
// follow calendar overflow (month 12 behaves like January of year+1), since
// navigation normalizes month before calling.
func MonthCalendar(year, month int) []model.CalendarCell {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local)
	lead := int(first.Weekday())

	// Day zero of the following month is the last day of this one.
	last := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.Local).Day()

	cells := make([]model.CalendarCell, 0, lead+last)
	for i := 0; i < lead; i++ {
		cells = append(cells, model.CalendarCell{})
	}
	for d := 1; d <= last; d++ {
		cells = append(cells, model.CalendarCell{
			Date: fmt.Sprintf("%04d-%02d-%02d", year, month+1, d),
			Day:  d,
		})
	}
	return cells
}

// CountByDate tallies schedules per calendar date, for day-cell badges.
func CountByDate(schedules []model.Schedule) map[string]int {
	counts := make(map[string]int, len(schedules))
	for _, s := range schedules {
		counts[s.Date]++
	}
	return counts
}
