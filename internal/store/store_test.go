package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"schedtrack/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "schedtrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	nb := 15
	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)
	in := model.Schedule{
		ID:           42,
		Title:        "dentist",
		Date:         "2025-06-10",
		Time:         "14:30",
		DateTime:     "2025-06-10T14:30",
		NotifyBefore: &nb,
		Completed:    false,
		CreatedAt:    created,
	}
	if err := s.SaveSchedule(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.LoadSchedules(ctx, time.Now())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(out))
	}
	got := out[0]
	if got.ID != 42 || got.Title != "dentist" || got.Date != "2025-06-10" {
		t.Fatalf("identity fields lost: %+v", got)
	}
	if got.Time != "14:30" || got.DateTime != "2025-06-10T14:30" {
		t.Fatalf("time fields lost: %+v", got)
	}
	if got.NotifyBefore == nil || *got.NotifyBefore != 15 {
		t.Fatalf("notifyBefore lost: %+v", got.NotifyBefore)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed: %v", got.CreatedAt)
	}
}

func TestStore_SaveUpdatesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc := model.Schedule{ID: 7, Title: "a", Date: "2025-06-10", DateTime: "2025-06-10T00:00", CreatedAt: time.Now()}
	if err := s.SaveSchedule(ctx, sc); err != nil {
		t.Fatalf("save: %v", err)
	}
	sc.Title = "b"
	sc.Completed = true
	if err := s.SaveSchedule(ctx, sc); err != nil {
		t.Fatalf("resave: %v", err)
	}

	out, err := s.LoadSchedules(ctx, time.Now())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].Title != "b" || !out[0].Completed {
		t.Fatalf("update not applied: %+v", out)
	}
}

func TestLoadSchedules_DropsCorruptRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Rows written by older versions may miss required fields.
	res := s.db.Exec(
		`INSERT INTO schedules (id, title, date, time, date_time, completed, created_at) VALUES `+
			`(1, '', '2025-06-10', '', '', 0, ?), `+
			`(2, 'kept', '2025-06-10', '09:30:00', '', 0, ?)`,
		time.Now(), time.Now(),
	)
	if res.Error != nil {
		t.Fatalf("seed rows: %v", res.Error)
	}

	out, err := s.LoadSchedules(ctx, time.Now())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("expected only the titled row, got %+v", out)
	}
	if out[0].Time != "09:30" {
		t.Fatalf("expected time renormalized on load, got %q", out[0].Time)
	}
	if out[0].DateTime != "2025-06-10T09:30" {
		t.Fatalf("expected datetime recomputed when absent, got %q", out[0].DateTime)
	}
}

func TestLoadSchedules_PreservesExistingDateTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A stored datetime wins over recomputation, for forward compatibility.
	res := s.db.Exec(
		`INSERT INTO schedules (id, title, date, time, date_time, completed, created_at) VALUES `+
			`(3, 'pinned', '2025-06-10', '09:30', '2025-06-11T10:00', 0, ?)`,
		time.Now(),
	)
	if res.Error != nil {
		t.Fatalf("seed row: %v", res.Error)
	}

	out, err := s.LoadSchedules(ctx, time.Now())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].DateTime != "2025-06-11T10:00" {
		t.Fatalf("stored datetime not preserved: %+v", out)
	}
}

func TestLoadSchedules_DefaultsCreatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	res := s.db.Exec(
		`INSERT INTO schedules (id, title, date, time, date_time, completed, created_at) VALUES ` +
			`(4, 'old', '2025-06-10', '', '2025-06-10T00:00', 0, NULL)`,
	)
	if res.Error != nil {
		t.Fatalf("seed row: %v", res.Error)
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	out, err := s.LoadSchedules(ctx, now)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || !out[0].CreatedAt.Equal(now) {
		t.Fatalf("expected createdAt defaulted to now, got %+v", out)
	}
}

func TestStore_DeleteSchedule(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc := model.Schedule{ID: 9, Title: "x", Date: "2025-06-10", DateTime: "2025-06-10T00:00", CreatedAt: time.Now()}
	if err := s.SaveSchedule(ctx, sc); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.DeleteSchedule(ctx, 9); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteSchedule(ctx, 9); err != nil {
		t.Fatalf("deleting an absent id should not error: %v", err)
	}

	out, err := s.LoadSchedules(ctx, time.Now())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty store, got %+v", out)
	}
}

func TestStore_Settings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, err := s.Setting(ctx, KeyFilter, "all")
	if err != nil || got != "all" {
		t.Fatalf("expected default for unset key, got %q err %v", got, err)
	}

	if err := s.SetSetting(ctx, KeyFilter, "completed"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetSetting(ctx, KeyFilter, "active"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err = s.Setting(ctx, KeyFilter, "all")
	if err != nil || got != "active" {
		t.Fatalf("expected active, got %q err %v", got, err)
	}
}
