package usecase

import (
	"context"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/domain"
)

// StatsView is a read-only snapshot of one user's ledger.
type StatsView struct {
	Name             string
	TotalMinutes     int
	TodayMinutes     int
	WeekMinutes      int
	Streak           int
	DailyGoal        int
	WeeklyGoal       int
	ProgressPercent  float64
	RemainingMinutes int
	DebtMinutes      int
}

type GetStatsUsecase struct {
	repo domain.UserRepository
}

func NewGetStatsUsecase(repo domain.UserRepository) *GetStatsUsecase {
	return &GetStatsUsecase{repo: repo}
}

func (uc *GetStatsUsecase) Execute(ctx context.Context, userID string, now time.Time) (*StatsView, error) {
	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNoData
	}

	today := domain.DateOf(now)
	todayMinutes, err := uc.repo.GetDayMinutes(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	weekStart := domain.WeekStart(now)
	weekMinutes, err := uc.repo.GetRangeMinutes(ctx, userID, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		return nil, err
	}

	status := domain.EvaluateGoal(todayMinutes, user.DailyGoalMinutes)
	return &StatsView{
		Name:             user.Name,
		TotalMinutes:     user.TotalMinutes,
		TodayMinutes:     todayMinutes,
		WeekMinutes:      weekMinutes,
		Streak:           user.Streak,
		DailyGoal:        user.DailyGoalMinutes,
		WeeklyGoal:       user.WeeklyGoalMinutes,
		ProgressPercent:  status.ProgressPercent,
		RemainingMinutes: status.RemainingMinutes,
		DebtMinutes:      user.TotalDebtMinutes,
	}, nil
}
