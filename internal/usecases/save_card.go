package usecases

import (
	"context"

	"bizcard/internal/domain"
	"bizcard/pkg/log"
)

// SaveCardUseCase creates and edits cards from the editor payload.
type SaveCardUseCase struct {
	repo  CardRepository
	cache CardCache
}

// NewSaveCardUseCase creates a SaveCardUseCase. cache may be nil.
func NewSaveCardUseCase(repo CardRepository, cache CardCache) *SaveCardUseCase {
	return &SaveCardUseCase{repo: repo, cache: cacheOrNoop(cache)}
}

// Create stores a new card owned by userID with one social account per
// non-blank input row. New cards are private unless input says otherwise.
func (uc *SaveCardUseCase) Create(ctx context.Context, userID string, input domain.CardInput) (*domain.BusinessCard, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	var card *domain.BusinessCard
	err := uc.repo.InTx(ctx, func(ctx context.Context) error {
		var err error
		card, err = createCard(ctx, uc.repo, userID, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.GlobalInfoCtx(ctx, "card created", "card_id", card.ID, "social_accounts", len(card.SocialAccounts))
	return card, nil
}

// Update overwrites the card fields (last write wins) and reconciles the
// social accounts with the input rows:
//   - stored accounts with no matching non-blank row are deleted
//   - rows whose ID matches a stored account are re-resolved in place
//   - rows without an ID are added
//   - rows with an ID the card does not own are ignored
//
// Display order follows the position of the row among the non-blank rows.
func (uc *SaveCardUseCase) Update(ctx context.Context, userID, cardID string, input domain.CardInput) (*domain.BusinessCard, error) {
	err := uc.repo.InTx(ctx, func(ctx context.Context) error {
		card, err := loadOwnedCard(ctx, uc.repo, userID, cardID)
		if err != nil {
			return err
		}

		card.Apply(input)
		if err := uc.repo.UpdateCard(ctx, card); err != nil {
			return err
		}

		rows := nonBlank(input.SocialAccounts)
		keep := make(map[string]bool, len(rows))
		for _, row := range rows {
			if row.ID != "" {
				keep[row.ID] = true
			}
		}

		for _, existing := range card.SocialAccounts {
			if keep[existing.ID] {
				continue
			}
			if err := uc.repo.DeleteSocialAccount(ctx, existing.ID); err != nil {
				return err
			}
		}

		for order, row := range rows {
			if row.ID == "" {
				acct := domain.NewSocialAccount(card.ID, row.Platform, row.Username, order)
				if err := uc.repo.CreateSocialAccount(ctx, &acct); err != nil {
					return err
				}
				continue
			}

			acct, ok := card.SocialAccountByID(row.ID)
			if !ok {
				log.GlobalDebugCtx(ctx, "ignoring unknown social account", "account_id", row.ID)
				continue
			}
			acct.Resolve(row.Platform, row.Username)
			acct.DisplayOrder = order
			if err := uc.repo.UpdateSocialAccount(ctx, &acct); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Delete(cardID)
	log.GlobalInfoCtx(ctx, "card updated", "card_id", cardID)

	return uc.repo.GetCard(ctx, cardID)
}

func createCard(ctx context.Context, repo CardRepository, userID string, input domain.CardInput) (*domain.BusinessCard, error) {
	card := &domain.BusinessCard{UserID: userID}
	card.Apply(input)
	if err := repo.CreateCard(ctx, card); err != nil {
		return nil, err
	}

	for order, row := range nonBlank(input.SocialAccounts) {
		acct := domain.NewSocialAccount(card.ID, row.Platform, row.Username, order)
		if err := repo.CreateSocialAccount(ctx, &acct); err != nil {
			return nil, err
		}
		card.SocialAccounts = append(card.SocialAccounts, acct)
	}
	return card, nil
}

func nonBlank(rows []domain.SocialAccountInput) []domain.SocialAccountInput {
	out := make([]domain.SocialAccountInput, 0, len(rows))
	for _, row := range rows {
		if !row.Blank() {
			out = append(out, row)
		}
	}
	return out
}
