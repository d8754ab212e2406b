package usecases

import (
	"context"

	"bizcard/internal/domain"
	"bizcard/pkg/log"
)

// ImportCardsUseCase creates many cards for one user in a single
// transaction: either every card is stored or none is.
type ImportCardsUseCase struct {
	repo CardRepository
}

func NewImportCardsUseCase(repo CardRepository) *ImportCardsUseCase {
	return &ImportCardsUseCase{repo: repo}
}

func (uc *ImportCardsUseCase) Execute(ctx context.Context, userID string, inputs []domain.CardInput) ([]*domain.BusinessCard, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	cards := make([]*domain.BusinessCard, 0, len(inputs))
	err := uc.repo.InTx(ctx, func(ctx context.Context) error {
		for _, input := range inputs {
			card, err := createCard(ctx, uc.repo, userID, input)
			if err != nil {
				return err
			}
			cards = append(cards, card)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.GlobalInfoCtx(ctx, "cards imported", "count", len(cards))
	return cards, nil
}
