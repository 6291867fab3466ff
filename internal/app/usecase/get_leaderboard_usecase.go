package usecase

import (
	"context"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/domain"
)

// DefaultLeaderboardLimit caps leaderboard views when the caller passes no
// explicit limit.
const DefaultLeaderboardLimit = 10

type GetLeaderboardUsecase struct {
	repo domain.UserRepository
}

func NewGetLeaderboardUsecase(repo domain.UserRepository) *GetLeaderboardUsecase {
	return &GetLeaderboardUsecase{repo: repo}
}

// Daily returns today's top users by minutes logged on the calendar date of now.
func (uc *GetLeaderboardUsecase) Daily(ctx context.Context, now time.Time, limit int) ([]domain.RankedUser, error) {
	ranked, err := uc.repo.DailyTop(ctx, domain.DateOf(now), normalizeLimit(limit))
	return checkEmpty(ranked, err)
}

// Weekly returns the top users by minutes logged in the current ISO week
// (Monday through Sunday, UTC) of now.
func (uc *GetLeaderboardUsecase) Weekly(ctx context.Context, now time.Time, limit int) ([]domain.RankedUser, error) {
	start := domain.WeekStart(now)
	ranked, err := uc.repo.WeeklyTop(ctx, start, start.AddDate(0, 0, 6), normalizeLimit(limit))
	return checkEmpty(ranked, err)
}

// AllTime returns the top users by total minutes ever logged.
func (uc *GetLeaderboardUsecase) AllTime(ctx context.Context, limit int) ([]domain.RankedUser, error) {
	ranked, err := uc.repo.AllTimeTop(ctx, normalizeLimit(limit))
	return checkEmpty(ranked, err)
}

// Streak returns the top users by current streak length.
func (uc *GetLeaderboardUsecase) Streak(ctx context.Context, limit int) ([]domain.RankedUser, error) {
	ranked, err := uc.repo.StreakTop(ctx, normalizeLimit(limit))
	return checkEmpty(ranked, err)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLeaderboardLimit
	}
	return limit
}

// checkEmpty turns an empty result into ErrNoData so callers render an
// explicit empty state instead of a blank list.
func checkEmpty(ranked []domain.RankedUser, err error) ([]domain.RankedUser, error) {
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, domain.ErrNoData
	}
	return ranked, nil
}
