package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/domain"
)

func TestEvaluateGoal(t *testing.T) {
	testCases := []struct {
		name          string
		total         int
		goal          int
		wantPercent   float64
		wantRemaining int
	}{
		{"goal met exactly", 540, 540, 100.0, 0},
		{"nothing logged", 0, 540, 0.0, 540},
		{"goal exceeded", 600, 540, 111.1, 0},
		{"halfway", 270, 540, 50.0, 270},
	}

	for _, tc := range testCases {
		got := domain.EvaluateGoal(tc.total, tc.goal)
		if math.Abs(got.ProgressPercent-tc.wantPercent) > 0.05 {
			t.Errorf("%s: expected %.1f%%, got %.1f%%", tc.name, tc.wantPercent, got.ProgressPercent)
		}
		if got.RemainingMinutes != tc.wantRemaining {
			t.Errorf("%s: expected remaining %d, got %d", tc.name, tc.wantRemaining, got.RemainingMinutes)
		}
	}
}

func TestEvaluateGoal_ZeroGoal(t *testing.T) {
	got := domain.EvaluateGoal(120, 0)
	if got.ProgressPercent != 0 || got.RemainingMinutes != 0 {
		t.Errorf("Zero goal must report zero status, got %+v", got)
	}
}

func TestDebtShortfall(t *testing.T) {
	if got := domain.DebtShortfall(400, 540); got != 140 {
		t.Errorf("Expected shortfall 140, got %d", got)
	}
	if got := domain.DebtShortfall(540, 540); got != 0 {
		t.Errorf("Goal met: expected 0, got %d", got)
	}
	if got := domain.DebtShortfall(600, 540); got != 0 {
		t.Errorf("Goal exceeded: expected 0, got %d", got)
	}
	if got := domain.DebtShortfall(100, 0); got != 0 {
		t.Errorf("Zero goal: expected 0, got %d", got)
	}
}

func TestWeekStart(t *testing.T) {
	testCases := []struct {
		day  time.Time
		want time.Time
	}{
		{time.Date(2025, 6, 9, 15, 0, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},  // Monday
		{time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},  // Wednesday
		{time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)}, // Sunday
	}

	for _, tc := range testCases {
		if got := domain.WeekStart(tc.day); !got.Equal(tc.want) {
			t.Errorf("WeekStart(%v): expected %v, got %v", tc.day, tc.want, got)
		}
	}
}
