package usecase

import (
	"context"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/domain"
)

// GoalProgress reports standing against a daily or weekly goal without
// logging any time.
type GoalProgress struct {
	GoalMinutes      int
	LoggedMinutes    int
	ProgressPercent  float64
	RemainingMinutes int
	DebtMinutes      int
}

type GoalUsecase struct {
	repo domain.UserRepository
}

func NewGoalUsecase(repo domain.UserRepository) *GoalUsecase {
	return &GoalUsecase{repo: repo}
}

// SetDaily parses rawText as a duration and stores it as the user's daily goal.
func (uc *GoalUsecase) SetDaily(ctx context.Context, userID, rawText string) (int, error) {
	minutes, err := domain.ParseDuration(rawText)
	if err != nil {
		return 0, err
	}
	return minutes, uc.repo.SetDailyGoal(ctx, userID, minutes)
}

// ClearDaily puts the daily goal back to the default.
func (uc *GoalUsecase) ClearDaily(ctx context.Context, userID string) error {
	return uc.repo.SetDailyGoal(ctx, userID, domain.DefaultDailyGoalMinutes)
}

// SetWeekly parses rawText as a duration and stores it as the user's weekly goal.
func (uc *GoalUsecase) SetWeekly(ctx context.Context, userID, rawText string) (int, error) {
	minutes, err := domain.ParseDuration(rawText)
	if err != nil {
		return 0, err
	}
	return minutes, uc.repo.SetWeeklyGoal(ctx, userID, minutes)
}

// ClearWeekly removes the weekly goal (zero means unset).
func (uc *GoalUsecase) ClearWeekly(ctx context.Context, userID string) error {
	return uc.repo.SetWeeklyGoal(ctx, userID, 0)
}

// DailyProgress reports today's standing against the daily goal, including
// accumulated debt.
func (uc *GoalUsecase) DailyProgress(ctx context.Context, userID string, now time.Time) (*GoalProgress, error) {
	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNoData
	}

	todayMinutes, err := uc.repo.GetDayMinutes(ctx, userID, domain.DateOf(now))
	if err != nil {
		return nil, err
	}

	status := domain.EvaluateGoal(todayMinutes, user.DailyGoalMinutes)
	return &GoalProgress{
		GoalMinutes:      user.DailyGoalMinutes,
		LoggedMinutes:    todayMinutes,
		ProgressPercent:  status.ProgressPercent,
		RemainingMinutes: status.RemainingMinutes,
		DebtMinutes:      user.TotalDebtMinutes,
	}, nil
}

// WeeklyProgress reports the current ISO week's standing against the weekly
// goal. ErrNoData when the user has no record or no weekly goal set.
func (uc *GoalUsecase) WeeklyProgress(ctx context.Context, userID string, now time.Time) (*GoalProgress, error) {
	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.WeeklyGoalMinutes == 0 {
		return nil, domain.ErrNoData
	}

	weekStart := domain.WeekStart(now)
	weekMinutes, err := uc.repo.GetRangeMinutes(ctx, userID, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		return nil, err
	}

	status := domain.EvaluateGoal(weekMinutes, user.WeeklyGoalMinutes)
	return &GoalProgress{
		GoalMinutes:      user.WeeklyGoalMinutes,
		LoggedMinutes:    weekMinutes,
		ProgressPercent:  status.ProgressPercent,
		RemainingMinutes: status.RemainingMinutes,
		DebtMinutes:      user.TotalDebtMinutes,
	}, nil
}
