package usecases

import (
	"context"

	"bizcard/internal/domain"
)

// CardRepository persists business cards and their social accounts.
//
// GetCard and ListCardsByUser return cards with SocialAccounts populated,
// ordered by display order and then creation time. Lookups of missing rows
// report domain.ErrCardNotFound or domain.ErrSocialAccountNotFound.
type CardRepository interface {
	ListCardsByUser(ctx context.Context, userID string) ([]domain.BusinessCard, error)
	GetCard(ctx context.Context, cardID string) (*domain.BusinessCard, error)
	// CreateCard assigns ID, CreatedAt and UpdatedAt.
	CreateCard(ctx context.Context, card *domain.BusinessCard) error
	// UpdateCard writes the editable fields and refreshes UpdatedAt.
	UpdateCard(ctx context.Context, card *domain.BusinessCard) error
	SetCardVisibility(ctx context.Context, cardID string, public bool) error
	// DeleteCard removes the card together with its social accounts.
	DeleteCard(ctx context.Context, cardID string) error

	GetSocialAccount(ctx context.Context, accountID string) (*domain.SocialAccount, error)
	// CreateSocialAccount assigns ID and CreatedAt.
	CreateSocialAccount(ctx context.Context, account *domain.SocialAccount) error
	UpdateSocialAccount(ctx context.Context, account *domain.SocialAccount) error
	DeleteSocialAccount(ctx context.Context, accountID string) error

	// InTx runs fn atomically. Repository calls made with the ctx passed to fn
	// join the transaction; nested InTx calls reuse it.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CardCache holds published cards keyed by card ID.
//
// Get returns a token even on a miss. SetIfUnchanged must store nothing if
// Delete ran for the card after that token was issued, so a reader racing
// an edit cannot cache what it read before the edit.
type CardCache interface {
	Get(cardID string) (card *domain.BusinessCard, token uint64, found bool)
	SetIfUnchanged(cardID string, token uint64, card *domain.BusinessCard) bool
	Delete(cardID string)
}

// CardSnapshotter renders a web page to a PNG image.
type CardSnapshotter interface {
	Capture(ctx context.Context, url string) ([]byte, error)
}

// noCache is used when caching is disabled.
type noCache struct{}

func (noCache) Get(string) (*domain.BusinessCard, uint64, bool) { return nil, 0, false }
func (noCache) SetIfUnchanged(string, uint64, *domain.BusinessCard) bool { return false }
func (noCache) Delete(string) {}

func cacheOrNoop(c CardCache) CardCache {
	if c == nil {
		return noCache{}
	}
	return c
}

// loadOwnedCard returns the card only if userID owns it. Someone else's card
// is reported as missing so its existence is not disclosed.
func loadOwnedCard(ctx context.Context, repo CardRepository, userID, cardID string) (*domain.BusinessCard, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := domain.ValidateID(cardID); err != nil {
		return nil, err
	}
	card, err := repo.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.UserID != userID {
		return nil, domain.ErrCardNotFound
	}
	return card, nil
}
