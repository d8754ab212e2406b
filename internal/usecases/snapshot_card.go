package usecases

import (
	"context"
	"fmt"

	"bizcard/internal/domain"
	"bizcard/pkg/log"
)

// SnapshotCardUseCase renders a published card's share page to PNG.
type SnapshotCardUseCase struct {
	cards       *GetPublicCardUseCase
	snapshotter CardSnapshotter
	baseURL     string
}

// NewSnapshotCardUseCase creates the use case. A nil snapshotter disables
// snapshots; Execute then reports domain.ErrSnapshotUnavailable.
func NewSnapshotCardUseCase(cards *GetPublicCardUseCase, snapshotter CardSnapshotter, baseURL string) *SnapshotCardUseCase {
	return &SnapshotCardUseCase{cards: cards, snapshotter: snapshotter, baseURL: baseURL}
}

func (uc *SnapshotCardUseCase) Execute(ctx context.Context, cardID string) ([]byte, error) {
	if uc.snapshotter == nil {
		return nil, domain.ErrSnapshotUnavailable
	}

	// Private cards have no page to render.
	card, err := uc.cards.Execute(ctx, cardID)
	if err != nil {
		return nil, err
	}

	url := domain.ShareURL(uc.baseURL, card.ID)
	png, err := uc.snapshotter.Capture(ctx, url)
	if err != nil {
		log.GlobalErrorCtx(ctx, "snapshot failed", "card_id", card.ID, "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotFailed, err)
	}
	return png, nil
}
