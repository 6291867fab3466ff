package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/app/usecase"
	"github.com/dimasfirmansyah/studybot/internal/domain"
)

func seedUsers(t *testing.T, repo *mockRepo, now time.Time) {
	t.Helper()
	uc := usecase.NewRecordStudyUsecase(repo)
	ctx := context.Background()

	// Bob has the longest streak, Alice the biggest totals.
	if _, err := uc.Execute(ctx, "bob", "Bob", "1h", now.AddDate(0, 0, -1)); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Execute(ctx, "bob", "Bob", "1h", now); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Execute(ctx, "alice", "Alice", "5h", now); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Execute(ctx, "carol", "Carol", "2h", now); err != nil {
		t.Fatal(err)
	}
}

func TestLeaderboard_Daily(t *testing.T) {
	repo := newMockRepo()
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	seedUsers(t, repo, now)

	uc := usecase.NewGetLeaderboardUsecase(repo)
	ranked, err := uc.Daily(context.Background(), now, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(ranked) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(ranked))
	}
	if ranked[0].Name != "Alice" || ranked[0].Minutes != 300 {
		t.Errorf("Expected Alice (300m) first, got %s (%dm)", ranked[0].Name, ranked[0].Minutes)
	}
	if ranked[1].Name != "Carol" {
		t.Errorf("Expected Carol second, got %s", ranked[1].Name)
	}
}

func TestLeaderboard_Weekly(t *testing.T) {
	repo := newMockRepo()
	uc := usecase.NewGetLeaderboardUsecase(repo)
	recordUC := usecase.NewRecordStudyUsecase(repo)
	ctx := context.Background()

	// Wednesday; the ISO week runs June 9 (Monday) through June 15 (Sunday).
	now := time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC)

	// Bob's Monday and Wednesday both count; Alice only logged once this
	// week, and Carol's log belongs to the previous week.
	if _, err := recordUC.Execute(ctx, "bob", "Bob", "2h", now.AddDate(0, 0, -2)); err != nil {
		t.Fatal(err)
	}
	if _, err := recordUC.Execute(ctx, "bob", "Bob", "2h", now); err != nil {
		t.Fatal(err)
	}
	if _, err := recordUC.Execute(ctx, "alice", "Alice", "3h", now); err != nil {
		t.Fatal(err)
	}
	if _, err := recordUC.Execute(ctx, "carol", "Carol", "8h", now.AddDate(0, 0, -4)); err != nil {
		t.Fatal(err)
	}

	ranked, err := uc.Weekly(ctx, now, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(ranked) != 2 {
		t.Fatalf("Expected 2 entries this week, got %d", len(ranked))
	}
	if ranked[0].Name != "Bob" || ranked[0].Minutes != 240 {
		t.Errorf("Expected Bob (240m) first, got %s (%dm)", ranked[0].Name, ranked[0].Minutes)
	}
	if ranked[1].Name != "Alice" || ranked[1].Minutes != 180 {
		t.Errorf("Expected Alice (180m) second, got %s (%dm)", ranked[1].Name, ranked[1].Minutes)
	}
}

func TestLeaderboard_AllTime(t *testing.T) {
	repo := newMockRepo()
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	seedUsers(t, repo, now)

	uc := usecase.NewGetLeaderboardUsecase(repo)
	ranked, err := uc.AllTime(context.Background(), 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if ranked[0].Name != "Alice" || ranked[0].Minutes != 300 {
		t.Errorf("Expected Alice (300m) first, got %s (%dm)", ranked[0].Name, ranked[0].Minutes)
	}
}

func TestLeaderboard_Streak(t *testing.T) {
	repo := newMockRepo()
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	seedUsers(t, repo, now)

	uc := usecase.NewGetLeaderboardUsecase(repo)
	ranked, err := uc.Streak(context.Background(), 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if ranked[0].Name != "Bob" || ranked[0].Streak != 2 {
		t.Errorf("Expected Bob (streak 2) first, got %s (%d)", ranked[0].Name, ranked[0].Streak)
	}
}

func TestLeaderboard_Limit(t *testing.T) {
	repo := newMockRepo()
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	seedUsers(t, repo, now)

	uc := usecase.NewGetLeaderboardUsecase(repo)
	ranked, err := uc.Daily(context.Background(), now, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ranked) != 2 {
		t.Errorf("Expected limit of 2 entries, got %d", len(ranked))
	}
}

func TestLeaderboard_Empty(t *testing.T) {
	repo := newMockRepo()
	uc := usecase.NewGetLeaderboardUsecase(repo)
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)

	if _, err := uc.Daily(ctx, now, 10); !errors.Is(err, domain.ErrNoData) {
		t.Errorf("Daily on empty store: expected ErrNoData, got %v", err)
	}
	if _, err := uc.Weekly(ctx, now, 10); !errors.Is(err, domain.ErrNoData) {
		t.Errorf("Weekly on empty store: expected ErrNoData, got %v", err)
	}
	if _, err := uc.AllTime(ctx, 10); !errors.Is(err, domain.ErrNoData) {
		t.Errorf("AllTime on empty store: expected ErrNoData, got %v", err)
	}
	if _, err := uc.Streak(ctx, 10); !errors.Is(err, domain.ErrNoData) {
		t.Errorf("Streak on empty store: expected ErrNoData, got %v", err)
	}
}
