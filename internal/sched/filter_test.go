package sched

import (
	"testing"

	"schedtrack/internal/model"
)

func named(id int64, title string, completed bool) model.Schedule {
	return model.Schedule{ID: id, Title: title, Date: "2025-06-01", Completed: completed}
}

func TestApplyFilter_Active(t *testing.T) {
	in := []model.Schedule{named(1, "a", false), named(2, "b", true)}
	out := ApplyFilter(in, model.FilterActive, "")
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected only the active schedule, got %+v", out)
	}
}

func TestApplyFilter_Completed(t *testing.T) {
	in := []model.Schedule{named(1, "a", false), named(2, "b", true)}
	out := ApplyFilter(in, model.FilterCompleted, "")
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("expected only the completed schedule, got %+v", out)
	}
}

func TestApplyFilter_SearchCaseInsensitive(t *testing.T) {
	in := []model.Schedule{named(1, "Dentist Visit", false), named(2, "groceries", false)}
	out := ApplyFilter(in, model.FilterAll, "DENT")
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected the dentist schedule, got %+v", out)
	}
}

func TestApplyFilter_BlankQueryMatchesAll(t *testing.T) {
	in := []model.Schedule{named(1, "a", false), named(2, "b", true)}
	out := ApplyFilter(in, model.FilterAll, "   ")
	if len(out) != 2 {
		t.Fatalf("expected both schedules, got %d", len(out))
	}
}

func TestForDay(t *testing.T) {
	in := []model.Schedule{
		{ID: 1, Date: "2025-06-01"},
		{ID: 2, Date: "2025-06-02"},
		{ID: 3, Date: "2025-06-01"},
	}
	out := ForDay(in, "2025-06-01")
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 3 {
		t.Fatalf("unexpected day view %+v", out)
	}
}
