package usecase

import (
	"context"

	"github.com/dimasfirmansyah/studybot/internal/domain"
)

type ResetUserUsecase struct {
	repo domain.UserRepository
}

func NewResetUserUsecase(repo domain.UserRepository) *ResetUserUsecase {
	return &ResetUserUsecase{repo: repo}
}

// Execute wipes the user's ledger (log, totals, streak, debt) while keeping
// the record itself, its name and its goal configuration.
func (uc *ResetUserUsecase) Execute(ctx context.Context, userID string) error {
	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNoData
	}
	return uc.repo.ResetUser(ctx, userID)
}
