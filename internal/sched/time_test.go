package sched

import (
	"testing"
	"time"
)

func mustNow(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

func TestNormalizeTime_StripsSeconds(t *testing.T) {
	if got := NormalizeTime("09:30:00"); got != "09:30" {
		t.Fatalf("expected 09:30, got %q", got)
	}
}

func TestNormalizeTime_Empty(t *testing.T) {
	if got := NormalizeTime(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestNormalizeTime_ShortPassesThrough(t *testing.T) {
	// No padding and no validation for inputs under five characters.
	if got := NormalizeTime("9:3"); got != "9:3" {
		t.Fatalf("expected 9:3, got %q", got)
	}
}

func TestNormalizeTime_TruncatesByBytes(t *testing.T) {
	// The cut happens at the fifth byte; a multibyte suffix past it is
	// dropped whole.
	if got := NormalizeTime("12:34분"); got != "12:34" {
		t.Fatalf("expected 12:34, got %q", got)
	}
}

func TestNormalizeTime_ExactFiveUnchanged(t *testing.T) {
	if got := NormalizeTime("12:34"); got != "12:34" {
		t.Fatalf("expected 12:34, got %q", got)
	}
}

func TestBuildDateTime_Timed(t *testing.T) {
	if got := BuildDateTime("2025-06-01", "09:30"); got != "2025-06-01T09:30" {
		t.Fatalf("unexpected datetime %q", got)
	}
}

func TestBuildDateTime_AllDayAnchorsMidnight(t *testing.T) {
	if got := BuildDateTime("2025-06-01", ""); got != "2025-06-01T00:00" {
		t.Fatalf("unexpected datetime %q", got)
	}
}

func TestBuildDateTime_ComposesWithNormalize(t *testing.T) {
	if got := BuildDateTime("2025-06-01", NormalizeTime("09:30:59")); got != "2025-06-01T09:30" {
		t.Fatalf("unexpected datetime %q", got)
	}
}

func TestParseDateTime(t *testing.T) {
	got, ok := ParseDateTime("2025-06-01T10:00")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if !got.Equal(mustNow(t, 2025, 6, 1, 10, 0)) {
		t.Fatalf("unexpected instant %v", got)
	}

	if _, ok := ParseDateTime("not-a-datetime"); ok {
		t.Fatalf("expected parse to fail")
	}
}

func TestIsPastDate(t *testing.T) {
	now := mustNow(t, 2025, 6, 15, 13, 45)

	if !IsPastDate("2025-06-14", now) {
		t.Fatalf("yesterday should be past")
	}
	if IsPastDate("2025-06-15", now) {
		t.Fatalf("today should not be past, regardless of time of day")
	}
	if IsPastDate("2025-06-16", now) {
		t.Fatalf("tomorrow should not be past")
	}
	if IsPastDate("garbage", now) {
		t.Fatalf("unparseable date should not be past")
	}
}

func TestIsToday(t *testing.T) {
	now := mustNow(t, 2025, 6, 15, 0, 1)
	if !IsToday("2025-06-15", now) {
		t.Fatalf("expected 2025-06-15 to be today")
	}
	if IsToday("2025-06-14", now) {
		t.Fatalf("expected 2025-06-14 not to be today")
	}
}
