package usecases

import (
	"context"

	"bizcard/internal/domain"
	"bizcard/pkg/log"
)

// GetPublicCardUseCase reads published cards for anonymous visitors,
// checking the cache before the repository.
type GetPublicCardUseCase struct {
	repo  CardRepository
	cache CardCache
}

func NewGetPublicCardUseCase(repo CardRepository, cache CardCache) *GetPublicCardUseCase {
	return &GetPublicCardUseCase{repo: repo, cache: cacheOrNoop(cache)}
}

// Execute returns domain.ErrCardNotFound for private cards as well as
// missing ones.
func (uc *GetPublicCardUseCase) Execute(ctx context.Context, cardID string) (*domain.BusinessCard, error) {
	if err := domain.ValidateID(cardID); err != nil {
		return nil, err
	}

	card, token, found := uc.cache.Get(cardID)
	if found {
		log.GlobalDebugCtx(ctx, "cache hit", "card_id", cardID)
		return card, nil
	}
	log.GlobalDebugCtx(ctx, "cache miss", "card_id", cardID)

	card, err := uc.repo.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if !card.IsPublic {
		return nil, domain.ErrCardNotFound
	}

	if !uc.cache.SetIfUnchanged(cardID, token, card) {
		log.GlobalDebugCtx(ctx, "card not cached", "card_id", cardID)
	}
	return card, nil
}
