package usecases

import (
	"context"

	"bizcard/internal/domain"
	"bizcard/pkg/log"
)

// ListCardsUseCase lists a user's cards, newest first.
type ListCardsUseCase struct {
	repo CardRepository
}

func NewListCardsUseCase(repo CardRepository) *ListCardsUseCase {
	return &ListCardsUseCase{repo: repo}
}

func (uc *ListCardsUseCase) Execute(ctx context.Context, userID string) ([]domain.BusinessCard, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	cards, err := uc.repo.ListCardsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []domain.BusinessCard{}
	}

	log.GlobalDebugCtx(ctx, "cards listed", "count", len(cards))
	return cards, nil
}

// GetCardUseCase reads one of the caller's own cards.
type GetCardUseCase struct {
	repo CardRepository
}

func NewGetCardUseCase(repo CardRepository) *GetCardUseCase {
	return &GetCardUseCase{repo: repo}
}

func (uc *GetCardUseCase) Execute(ctx context.Context, userID, cardID string) (*domain.BusinessCard, error) {
	return loadOwnedCard(ctx, uc.repo, userID, cardID)
}
