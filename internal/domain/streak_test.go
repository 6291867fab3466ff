package domain_test

import (
	"testing"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceStreak_NoPriorLog(t *testing.T) {
	got := domain.AdvanceStreak(0, time.Time{}, date(2025, 6, 10))
	if got != 1 {
		t.Errorf("No prior log: expected 1, got %d", got)
	}
}

func TestAdvanceStreak_SameDay(t *testing.T) {
	today := date(2025, 6, 10)
	got := domain.AdvanceStreak(5, today, today)
	if got != 5 {
		t.Errorf("Same-day repeat: expected 5, got %d", got)
	}
}

func TestAdvanceStreak_ConsecutiveDay(t *testing.T) {
	got := domain.AdvanceStreak(5, date(2025, 6, 9), date(2025, 6, 10))
	if got != 6 {
		t.Errorf("Consecutive day: expected 6, got %d", got)
	}
}

func TestAdvanceStreak_GapResets(t *testing.T) {
	testCases := []struct {
		name string
		last time.Time
	}{
		{"two day gap", date(2025, 6, 8)},
		{"week gap", date(2025, 6, 3)},
		{"year gap", date(2024, 6, 10)},
	}

	for _, tc := range testCases {
		got := domain.AdvanceStreak(12, tc.last, date(2025, 6, 10))
		if got != 1 {
			t.Errorf("%s: expected reset to 1, got %d", tc.name, got)
		}
	}
}

func TestAdvanceStreak_IgnoresTimeOfDay(t *testing.T) {
	// A log at 23:59 yesterday followed by one at 00:01 today is consecutive.
	last := time.Date(2025, 6, 9, 23, 59, 0, 0, time.UTC)
	today := time.Date(2025, 6, 10, 0, 1, 0, 0, time.UTC)
	got := domain.AdvanceStreak(3, last, today)
	if got != 4 {
		t.Errorf("Time-of-day must not matter: expected 4, got %d", got)
	}
}

func TestAdvanceStreak_AlwaysPositiveAfterLog(t *testing.T) {
	lasts := []time.Time{{}, date(2025, 6, 10), date(2025, 6, 9), date(2025, 6, 1)}
	for _, last := range lasts {
		prev := 0
		if !last.IsZero() {
			prev = 2
		}
		if got := domain.AdvanceStreak(prev, last, date(2025, 6, 10)); got < 1 {
			t.Errorf("Streak after a log must be >= 1, got %d (last=%v)", got, last)
		}
	}
}
