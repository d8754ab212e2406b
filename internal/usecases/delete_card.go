package usecases

import (
	"context"

	"bizcard/pkg/log"
)

// DeleteCardUseCase removes a card and its social accounts.
type DeleteCardUseCase struct {
	repo  CardRepository
	cache CardCache
}

func NewDeleteCardUseCase(repo CardRepository, cache CardCache) *DeleteCardUseCase {
	return &DeleteCardUseCase{repo: repo, cache: cacheOrNoop(cache)}
}

func (uc *DeleteCardUseCase) Execute(ctx context.Context, userID, cardID string) error {
	if _, err := loadOwnedCard(ctx, uc.repo, userID, cardID); err != nil {
		return err
	}
	if err := uc.repo.DeleteCard(ctx, cardID); err != nil {
		return err
	}

	uc.cache.Delete(cardID)
	log.GlobalInfoCtx(ctx, "card deleted", "card_id", cardID)
	return nil
}
