package usecases

import (
	"context"

	"bizcard/internal/domain"
	"bizcard/pkg/log"
)

// SetVisibilityUseCase publishes and unpublishes cards.
type SetVisibilityUseCase struct {
	repo  CardRepository
	cache CardCache
}

func NewSetVisibilityUseCase(repo CardRepository, cache CardCache) *SetVisibilityUseCase {
	return &SetVisibilityUseCase{repo: repo, cache: cacheOrNoop(cache)}
}

// Execute sets the card's visibility to public.
func (uc *SetVisibilityUseCase) Execute(ctx context.Context, userID, cardID string, public bool) (*domain.BusinessCard, error) {
	card, err := loadOwnedCard(ctx, uc.repo, userID, cardID)
	if err != nil {
		return nil, err
	}
	return uc.set(ctx, card, public)
}

// Toggle flips the card's current visibility.
func (uc *SetVisibilityUseCase) Toggle(ctx context.Context, userID, cardID string) (*domain.BusinessCard, error) {
	card, err := loadOwnedCard(ctx, uc.repo, userID, cardID)
	if err != nil {
		return nil, err
	}
	return uc.set(ctx, card, !card.IsPublic)
}

func (uc *SetVisibilityUseCase) set(ctx context.Context, card *domain.BusinessCard, public bool) (*domain.BusinessCard, error) {
	if err := uc.repo.SetCardVisibility(ctx, card.ID, public); err != nil {
		return nil, err
	}
	card.IsPublic = public

	uc.cache.Delete(card.ID)
	log.GlobalInfoCtx(ctx, "card visibility changed", "card_id", card.ID, "public", public)
	return card, nil
}
