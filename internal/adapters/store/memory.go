package store

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"bizcard/internal/domain"
)

// MemoryStore is a process-local CardRepository for development and tests.
// Transactions are serialized and rolled back by restoring a snapshot, so
// writes made outside InTx while a transaction runs may be lost on rollback.
type MemoryStore struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	cards    map[string]domain.BusinessCard // SocialAccounts always nil here
	accounts map[string]memAccount
	seq      int64
	now      func() time.Time
}

// memAccount remembers insertion order to break display order ties.
type memAccount struct {
	domain.SocialAccount
	seq int64
}

type memTxKey struct{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cards:    make(map[string]domain.BusinessCard),
		accounts: make(map[string]memAccount),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	cards, accounts, seq := maps.Clone(s.cards), maps.Clone(s.accounts), s.seq
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		s.mu.Lock()
		s.cards, s.accounts, s.seq = cards, accounts, seq
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *MemoryStore) ListCardsByUser(ctx context.Context, userID string) ([]domain.BusinessCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := []domain.BusinessCard{}
	for _, c := range s.cards {
		if c.UserID == userID {
			cards = append(cards, s.withAccounts(c))
		}
	}
	slices.SortFunc(cards, func(a, b domain.BusinessCard) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return cards, nil
}

func (s *MemoryStore) GetCard(ctx context.Context, cardID string) (*domain.BusinessCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cards[cardID]
	if !ok {
		return nil, NewStoreError("GetCard", "card", cardID, "card not found", domain.ErrCardNotFound)
	}
	card := s.withAccounts(c)
	return &card, nil
}

// withAccounts must be called with mu held.
func (s *MemoryStore) withAccounts(c domain.BusinessCard) domain.BusinessCard {
	var accts []memAccount
	for _, a := range s.accounts {
		if a.BusinessCardID == c.ID {
			accts = append(accts, a)
		}
	}
	slices.SortFunc(accts, func(a, b memAccount) int {
		if c := cmp.Compare(a.DisplayOrder, b.DisplayOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	c.SocialAccounts = make([]domain.SocialAccount, len(accts))
	for i, a := range accts {
		c.SocialAccounts[i] = a.SocialAccount
	}
	return c
}

func (s *MemoryStore) CreateCard(ctx context.Context, card *domain.BusinessCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	card.ID = uuid.NewString()
	card.CreatedAt = now
	card.UpdatedAt = now

	stored := *card
	stored.SocialAccounts = nil
	s.cards[card.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateCard(ctx context.Context, card *domain.BusinessCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.cards[card.ID]
	if !ok {
		return NewStoreError("UpdateCard", "card", card.ID, "card not found", domain.ErrCardNotFound)
	}
	card.UpdatedAt = s.now()

	existing.Title = card.Title
	existing.PersonalInfo = card.PersonalInfo
	existing.Address = card.Address
	existing.IsPublic = card.IsPublic
	existing.UpdatedAt = card.UpdatedAt
	s.cards[card.ID] = existing
	return nil
}

func (s *MemoryStore) SetCardVisibility(ctx context.Context, cardID string, public bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cards[cardID]
	if !ok {
		return NewStoreError("SetCardVisibility", "card", cardID, "card not found", domain.ErrCardNotFound)
	}
	c.IsPublic = public
	c.UpdatedAt = s.now()
	s.cards[cardID] = c
	return nil
}

func (s *MemoryStore) DeleteCard(ctx context.Context, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[cardID]; !ok {
		return NewStoreError("DeleteCard", "card", cardID, "card not found", domain.ErrCardNotFound)
	}
	delete(s.cards, cardID)
	maps.DeleteFunc(s.accounts, func(_ string, a memAccount) bool {
		return a.BusinessCardID == cardID
	})
	return nil
}

func (s *MemoryStore) GetSocialAccount(ctx context.Context, accountID string) (*domain.SocialAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return nil, NewStoreError("GetSocialAccount", "social_account", accountID, "social account not found", domain.ErrSocialAccountNotFound)
	}
	acct := a.SocialAccount
	return &acct, nil
}

func (s *MemoryStore) CreateSocialAccount(ctx context.Context, account *domain.SocialAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[account.BusinessCardID]; !ok {
		return NewStoreError("CreateSocialAccount", "card", account.BusinessCardID, "card not found", domain.ErrCardNotFound)
	}
	account.ID = uuid.NewString()
	account.CreatedAt = s.now()

	s.seq++
	s.accounts[account.ID] = memAccount{SocialAccount: *account, seq: s.seq}
	return nil
}

func (s *MemoryStore) UpdateSocialAccount(ctx context.Context, account *domain.SocialAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[account.ID]
	if !ok {
		return NewStoreError("UpdateSocialAccount", "social_account", account.ID, "social account not found", domain.ErrSocialAccountNotFound)
	}
	a.Platform = account.Platform
	a.Username = account.Username
	a.ProfileURL = account.ProfileURL
	a.IsValid = account.IsValid
	a.DisplayOrder = account.DisplayOrder
	s.accounts[account.ID] = a
	return nil
}

func (s *MemoryStore) DeleteSocialAccount(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return NewStoreError("DeleteSocialAccount", "social_account", accountID, "social account not found", domain.ErrSocialAccountNotFound)
	}
	delete(s.accounts, accountID)
	return nil
}
