package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/app/usecase"
	"github.com/dimasfirmansyah/studybot/internal/domain"
)

func TestStats_Snapshot(t *testing.T) {
	repo := newMockRepo()
	recordUC := usecase.NewRecordStudyUsecase(repo)
	statsUC := usecase.NewGetStatsUsecase(repo)
	ctx := context.Background()

	day1 := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC) // Tuesday
	day2 := day1.AddDate(0, 0, 1)

	if _, err := recordUC.Execute(ctx, "user1", "Alice", "2h", day1); err != nil {
		t.Fatal(err)
	}
	if _, err := recordUC.Execute(ctx, "user1", "Alice", "3h", day2); err != nil {
		t.Fatal(err)
	}

	view, err := statsUC.Execute(ctx, "user1", day2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if view.Name != "Alice" {
		t.Errorf("Expected name 'Alice', got '%s'", view.Name)
	}
	if view.TodayMinutes != 180 {
		t.Errorf("Expected 180 today, got %d", view.TodayMinutes)
	}
	if view.TotalMinutes != 300 {
		t.Errorf("Expected 300 total, got %d", view.TotalMinutes)
	}
	if view.WeekMinutes != 300 {
		t.Errorf("Both days fall in one ISO week, expected 300, got %d", view.WeekMinutes)
	}
	if view.Streak != 2 {
		t.Errorf("Expected streak 2, got %d", view.Streak)
	}
	if view.DailyGoal != domain.DefaultDailyGoalMinutes {
		t.Errorf("Expected default goal, got %d", view.DailyGoal)
	}
}

func TestStats_UnknownUser(t *testing.T) {
	repo := newMockRepo()
	uc := usecase.NewGetStatsUsecase(repo)

	_, err := uc.Execute(context.Background(), "ghost", time.Now())
	if !errors.Is(err, domain.ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}
}

func TestReset_PreservesIdentityAndGoals(t *testing.T) {
	repo := newMockRepo()
	recordUC := usecase.NewRecordStudyUsecase(repo)
	goalUC := usecase.NewGoalUsecase(repo)
	resetUC := usecase.NewResetUserUsecase(repo)
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

	if _, err := recordUC.Execute(ctx, "user1", "Alice", "2h", now); err != nil {
		t.Fatal(err)
	}
	if _, err := goalUC.SetDaily(ctx, "user1", "6h"); err != nil {
		t.Fatal(err)
	}

	if err := resetUC.Execute(ctx, "user1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	u := repo.users["user1"]
	if u == nil {
		t.Fatal("Reset must not delete the record")
	}
	if u.Name != "Alice" {
		t.Errorf("Reset must preserve the name, got '%s'", u.Name)
	}
	if u.DailyGoalMinutes != 360 {
		t.Errorf("Reset must preserve the goal, got %d", u.DailyGoalMinutes)
	}
	if u.TotalMinutes != 0 || u.Streak != 0 || u.TotalDebtMinutes != 0 || !u.LastLogDate.IsZero() {
		t.Errorf("Reset must zero the ledger fields, got %+v", u)
	}
}

func TestReset_UnknownUser(t *testing.T) {
	repo := newMockRepo()
	uc := usecase.NewResetUserUsecase(repo)

	err := uc.Execute(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}
}
