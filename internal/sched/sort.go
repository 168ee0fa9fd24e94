package sched

import (
	"sort"

	"schedtrack/internal/model"
)

// Sort returns a chronologically ordered copy of schedules; the input slice
// is left untouched. The primary key is the parsed datetime ascending. When
// either side fails to parse, or both parse to the same instant, the
// createdAt instant decides, so invalid timestamps never fail the sort.
// Ties on both keys keep their relative input order.
func Sort(schedules []model.Schedule) []model.Schedule {
	out := make([]model.Schedule, len(schedules))
	copy(out, schedules)

	sort.SliceStable(out, func(i, j int) bool {
		a, aok := ParseDateTime(out[i].DateTime)
		b, bok := ParseDateTime(out[j].DateTime)
		if aok && bok && !a.Equal(b) {
			return a.Before(b)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out
}
