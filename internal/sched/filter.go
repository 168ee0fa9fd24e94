package sched

import (
	"strings"

	"schedtrack/internal/model"
)

// ForDay returns the schedules falling on the given date, in input order.
func ForDay(schedules []model.Schedule, date string) []model.Schedule {
	out := make([]model.Schedule, 0)
	for _, s := range schedules {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// ApplyFilter narrows schedules by completion state and a case-insensitive
// title substring query. A query that is blank after trimming matches
// everything.
func ApplyFilter(schedules []model.Schedule, f model.Filter, query string) []model.Schedule {
	searching := strings.TrimSpace(query) != ""
	q := strings.ToLower(query)

	out := make([]model.Schedule, 0, len(schedules))
	for _, s := range schedules {
		switch f {
		case model.FilterActive:
			if s.Completed {
				continue
			}
		case model.FilterCompleted:
			if !s.Completed {
				continue
			}
		}
		if searching && !strings.Contains(strings.ToLower(s.Title), q) {
			continue
		}
		out = append(out, s)
	}
	return out
}
