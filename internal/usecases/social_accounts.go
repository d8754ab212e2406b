package usecases

import (
	"context"
	"errors"

	"bizcard/internal/domain"
	"bizcard/pkg/log"
)

// SocialAccountsUseCase edits a single social account of one of the
// caller's cards. Every write re-resolves the profile URL.
type SocialAccountsUseCase struct {
	repo  CardRepository
	cache CardCache
}

func NewSocialAccountsUseCase(repo CardRepository, cache CardCache) *SocialAccountsUseCase {
	return &SocialAccountsUseCase{repo: repo, cache: cacheOrNoop(cache)}
}

// Add appends an account to the end of the card's list. The card is read
// inside the transaction so concurrent adds get distinct display orders.
func (uc *SocialAccountsUseCase) Add(ctx context.Context, userID, cardID string, input domain.SocialAccountInput) (*domain.SocialAccount, error) {
	if input.Blank() {
		return nil, domain.ErrInvalidInput
	}

	var acct domain.SocialAccount
	err := uc.repo.InTx(ctx, func(ctx context.Context) error {
		card, err := loadOwnedCard(ctx, uc.repo, userID, cardID)
		if err != nil {
			return err
		}
		acct = domain.NewSocialAccount(card.ID, input.Platform, input.Username, len(card.SocialAccounts))
		return uc.repo.CreateSocialAccount(ctx, &acct)
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Delete(cardID)
	log.GlobalDebugCtx(ctx, "social account added", "card_id", cardID, "platform", acct.Platform, "valid", acct.IsValid)
	return &acct, nil
}

// Update replaces the platform and username of an existing account.
func (uc *SocialAccountsUseCase) Update(ctx context.Context, userID, accountID string, input domain.SocialAccountInput) (*domain.SocialAccount, error) {
	if input.Blank() {
		return nil, domain.ErrInvalidInput
	}
	acct, err := uc.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	acct.Resolve(input.Platform, input.Username)
	if err := uc.repo.UpdateSocialAccount(ctx, acct); err != nil {
		return nil, err
	}

	uc.cache.Delete(acct.BusinessCardID)
	return acct, nil
}

func (uc *SocialAccountsUseCase) Delete(ctx context.Context, userID, accountID string) error {
	acct, err := uc.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if err := uc.repo.DeleteSocialAccount(ctx, acct.ID); err != nil {
		return err
	}

	uc.cache.Delete(acct.BusinessCardID)
	return nil
}

func (uc *SocialAccountsUseCase) ownedAccount(ctx context.Context, userID, accountID string) (*domain.SocialAccount, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := domain.ValidateID(accountID); err != nil {
		return nil, err
	}
	acct, err := uc.repo.GetSocialAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if _, err := loadOwnedCard(ctx, uc.repo, userID, acct.BusinessCardID); err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			return nil, domain.ErrSocialAccountNotFound
		}
		return nil, err
	}
	return acct, nil
}
