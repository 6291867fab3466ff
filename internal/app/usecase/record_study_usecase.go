package usecase

import (
	"context"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/domain"
)

// LogResult summarizes a successful study log for rendering by the caller.
type LogResult struct {
	Name             string
	MinutesLogged    int
	TodayMinutes     int
	Streak           int
	GoalMinutes      int
	ProgressPercent  float64
	RemainingMinutes int
	DebtMinutes      int
}

type RecordStudyUsecase struct {
	repo domain.UserRepository
}

func NewRecordStudyUsecase(repo domain.UserRepository) *RecordStudyUsecase {
	return &RecordStudyUsecase{repo: repo}
}

// Execute parses rawText for a duration and applies it to the user's ledger.
// Parsing happens before any read or write, so a bad input mutates nothing.
func (uc *RecordStudyUsecase) Execute(ctx context.Context, userID, name, rawText string, now time.Time) (*LogResult, error) {
	minutes, err := domain.ParseDuration(rawText)
	if err != nil {
		return nil, err
	}

	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := domain.DateOf(now)

	prevStreak := 0
	lastLog := time.Time{}
	goal := domain.DefaultDailyGoalMinutes
	if user != nil {
		prevStreak = user.Streak
		lastLog = user.LastLogDate
		goal = user.DailyGoalMinutes
		if err := assessClosedDay(ctx, uc.repo, user, today); err != nil {
			return nil, err
		}
	}

	entry := &domain.StudyEntry{
		UserID:  userID,
		Name:    name,
		Date:    today,
		Minutes: minutes,
		Streak:  domain.AdvanceStreak(prevStreak, lastLog, today),
	}
	if err := uc.repo.ApplyStudyLog(ctx, entry); err != nil {
		return nil, err
	}

	todayTotal, err := uc.repo.GetDayMinutes(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	updated, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := domain.EvaluateGoal(todayTotal, goal)
	result := &LogResult{
		Name:             name,
		MinutesLogged:    minutes,
		TodayMinutes:     todayTotal,
		Streak:           entry.Streak,
		GoalMinutes:      goal,
		ProgressPercent:  status.ProgressPercent,
		RemainingMinutes: status.RemainingMinutes,
	}
	if updated != nil {
		result.DebtMinutes = updated.TotalDebtMinutes
	}
	return result, nil
}

// assessClosedDay settles debt for the user's last logged day once that day is
// over. Days with no activity at all are never back-filled; only the last
// logged day is examined, and the per-date guard in the store keeps repeated
// calls from double-counting.
func assessClosedDay(ctx context.Context, repo domain.UserRepository, user *domain.User, today time.Time) error {
	if user.LastLogDate.IsZero() || user.DailyGoalMinutes <= 0 {
		return nil
	}
	last := domain.DateOf(user.LastLogDate)
	if !last.Before(today) || !user.DebtAssessedDate.Before(last) {
		return nil
	}

	dayMinutes, err := repo.GetDayMinutes(ctx, user.UserID, last)
	if err != nil {
		return err
	}
	shortfall := domain.DebtShortfall(dayMinutes, user.DailyGoalMinutes)
	if shortfall == 0 {
		return nil
	}
	return repo.AssessDebt(ctx, user.UserID, last, shortfall)
}
