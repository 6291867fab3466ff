package usecase

import (
	"context"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/domain"
)

type DebtUsecase struct {
	repo domain.UserRepository
}

func NewDebtUsecase(repo domain.UserRepository) *DebtUsecase {
	return &DebtUsecase{repo: repo}
}

// Update settles debt for the user's last logged day if that day is over and
// not yet assessed, then returns the current debt. Calling it twice for the
// same day adds the shortfall once.
func (uc *DebtUsecase) Update(ctx context.Context, userID string, now time.Time) (int, error) {
	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, domain.ErrNoData
	}

	if err := assessClosedDay(ctx, uc.repo, user, domain.DateOf(now)); err != nil {
		return 0, err
	}

	updated, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return updated.TotalDebtMinutes, nil
}

// Pay parses rawText as a duration and subtracts it from the user's debt,
// floored at zero. Returns the remaining debt.
func (uc *DebtUsecase) Pay(ctx context.Context, userID, rawText string) (int, error) {
	minutes, err := domain.ParseDuration(rawText)
	if err != nil {
		return 0, err
	}

	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, domain.ErrNoData
	}

	if err := uc.repo.PayDebt(ctx, userID, minutes); err != nil {
		return 0, err
	}

	updated, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return updated.TotalDebtMinutes, nil
}
