package usecases_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bizcard/internal/adapters/cache"
	"bizcard/internal/adapters/store"
	"bizcard/internal/domain"
	"bizcard/internal/usecases"
)

const (
	owner    = "user-owner"
	stranger = "user-stranger"
)

// MockCache is a map-backed CardCache that records deletions. Each Delete
// bumps the card's generation, which SetIfUnchanged checks.
type MockCache struct {
	mu      sync.Mutex
	cards   map[string]*domain.BusinessCard
	gens    map[string]uint64
	deleted []string
}

func NewMockCache() *MockCache {
	return &MockCache{cards: make(map[string]*domain.BusinessCard), gens: make(map[string]uint64)}
}

func (m *MockCache) Get(cardID string) (*domain.BusinessCard, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	card, found := m.cards[cardID]
	return card, m.gens[cardID], found
}

func (m *MockCache) SetIfUnchanged(cardID string, token uint64, card *domain.BusinessCard) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gens[cardID] != token {
		return false
	}
	m.cards[cardID] = card
	return true
}

// Put primes the cache regardless of generation.
func (m *MockCache) Put(cardID string, card *domain.BusinessCard) {
	m.mu.Lock()
	m.cards[cardID] = card
	m.mu.Unlock()
}

func (m *MockCache) Delete(cardID string) {
	m.mu.Lock()
	delete(m.cards, cardID)
	m.gens[cardID]++
	m.deleted = append(m.deleted, cardID)
	m.mu.Unlock()
}

func (m *MockCache) WasDeleted(cardID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.deleted {
		if id == cardID {
			return true
		}
	}
	return false
}

// MockSnapshotter returns canned bytes and records the requested URL.
type MockSnapshotter struct {
	png []byte
	err error
	url string
}

func (m *MockSnapshotter) Capture(ctx context.Context, url string) ([]byte, error) {
	m.url = url
	if m.err != nil {
		return nil, m.err
	}
	return m.png, nil
}

// failingRepo fails social account creation after the first n calls.
type failingRepo struct {
	usecases.CardRepository
	allow int
}

func (f *failingRepo) CreateSocialAccount(ctx context.Context, a *domain.SocialAccount) error {
	if f.allow == 0 {
		return errors.New("disk full")
	}
	f.allow--
	return f.CardRepository.CreateSocialAccount(ctx, a)
}

func sampleInput(accounts ...domain.SocialAccountInput) domain.CardInput {
	return domain.CardInput{
		Title:          "Staff Engineer",
		PersonalInfo:   domain.PersonalInfo{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"},
		Address:        domain.Address{City: "Arlington", Country: "US"},
		SocialAccounts: accounts,
	}
}

func row(platform, username string) domain.SocialAccountInput {
	return domain.SocialAccountInput{Platform: platform, Username: username}
}

func createCard(t *testing.T, repo usecases.CardRepository, input domain.CardInput) *domain.BusinessCard {
	t.Helper()
	card, err := usecases.NewSaveCardUseCase(repo, nil).Create(context.Background(), owner, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return card
}

// SaveCardUseCase tests

func TestSaveCardUseCase_Create_SkipsBlankRowsAndResolves(t *testing.T) {
	// Arrange
	repo := store.NewMemoryStore()
	uc := usecases.NewSaveCardUseCase(repo, nil)

	// Act
	card, err := uc.Create(context.Background(), owner, sampleInput(
		row("github", "@octocat"),
		row("", "ghost"),
		row("twitter", ""),
		row("myspace", "tom"),
	))

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.UserID != owner || card.IsPublic {
		t.Errorf("card = %+v, want private card owned by %s", card, owner)
	}
	stored, _ := repo.GetCard(context.Background(), card.ID)
	if len(stored.SocialAccounts) != 2 {
		t.Fatalf("stored accounts = %d, want 2", len(stored.SocialAccounts))
	}
	gh, my := stored.SocialAccounts[0], stored.SocialAccounts[1]
	if gh.ProfileURL != "https://github.com/octocat" || !gh.IsValid || gh.DisplayOrder != 0 {
		t.Errorf("github account = %+v", gh)
	}
	if my.ProfileURL != "tom" || my.IsValid || my.DisplayOrder != 1 {
		t.Errorf("myspace account = %+v", my)
	}
}

func TestSaveCardUseCase_Create_RequiresUser(t *testing.T) {
	uc := usecases.NewSaveCardUseCase(store.NewMemoryStore(), nil)

	_, err := uc.Create(context.Background(), "", sampleInput())

	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSaveCardUseCase_Create_RollsBackOnAccountFailure(t *testing.T) {
	mem := store.NewMemoryStore()
	uc := usecases.NewSaveCardUseCase(&failingRepo{CardRepository: mem, allow: 1}, nil)

	_, err := uc.Create(context.Background(), owner, sampleInput(row("github", "a"), row("twitter", "b")))

	if err == nil {
		t.Fatal("expected error")
	}
	cards, _ := mem.ListCardsByUser(context.Background(), owner)
	if len(cards) != 0 {
		t.Errorf("cards after failed create = %d, want 0", len(cards))
	}
}

func TestSaveCardUseCase_Update_DiffsSocialAccounts(t *testing.T) {
	// Arrange
	repo := store.NewMemoryStore()
	cache := NewMockCache()
	card := createCard(t, repo, sampleInput(row("github", "keep"), row("twitter", "drop"), row("instagram", "edit")))
	keep, drop, edit := card.SocialAccounts[0], card.SocialAccounts[1], card.SocialAccounts[2]
	uc := usecases.NewSaveCardUseCase(repo, cache)

	input := sampleInput(
		domain.SocialAccountInput{ID: edit.ID, Platform: "tiktok", Username: "@edited"},
		domain.SocialAccountInput{ID: keep.ID, Platform: "github", Username: "keep"},
		row("linkedin", "newbie"),
		domain.SocialAccountInput{ID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", Platform: "x", Username: "ghost"},
		row("", ""),
	)
	input.Title = "Rear Admiral"

	// Act
	updated, err := uc.Update(context.Background(), owner, card.ID, input)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Rear Admiral" {
		t.Errorf("Title = %q", updated.Title)
	}
	if _, ok := updated.SocialAccountByID(drop.ID); ok {
		t.Error("account missing from input was not deleted")
	}
	if len(updated.SocialAccounts) != 3 {
		t.Fatalf("accounts = %+v, want 3", updated.SocialAccounts)
	}
	first, second, third := updated.SocialAccounts[0], updated.SocialAccounts[1], updated.SocialAccounts[2]
	if first.ID != edit.ID || first.ProfileURL != "https://tiktok.com/@edited" || first.Username != "edited" {
		t.Errorf("edited account = %+v", first)
	}
	if second.ID != keep.ID || second.DisplayOrder != 1 {
		t.Errorf("kept account = %+v", second)
	}
	if third.Platform != "linkedin" || third.ProfileURL != "https://linkedin.com/in/newbie" {
		t.Errorf("new account = %+v", third)
	}
	if !cache.WasDeleted(card.ID) {
		t.Error("cache entry not invalidated")
	}
}

func TestSaveCardUseCase_Update_KeepsVisibilityWhenOmitted(t *testing.T) {
	repo := store.NewMemoryStore()
	card := createCard(t, repo, sampleInput())
	_, _ = usecases.NewSetVisibilityUseCase(repo, nil).Execute(context.Background(), owner, card.ID, true)

	updated, err := usecases.NewSaveCardUseCase(repo, nil).Update(context.Background(), owner, card.ID, sampleInput())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.IsPublic {
		t.Error("update without is_public unpublished the card")
	}
}

func TestSaveCardUseCase_Update_OtherUsersCard_NotFound(t *testing.T) {
	repo := store.NewMemoryStore()
	card := createCard(t, repo, sampleInput(row("github", "x")))

	_, err := usecases.NewSaveCardUseCase(repo, nil).Update(context.Background(), stranger, card.ID, sampleInput())

	if !errors.Is(err, domain.ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
	stored, _ := repo.GetCard(context.Background(), card.ID)
	if len(stored.SocialAccounts) != 1 {
		t.Error("stranger's update changed the card")
	}
}

func TestSaveCardUseCase_Update_InvalidID(t *testing.T) {
	_, err := usecases.NewSaveCardUseCase(store.NewMemoryStore(), nil).Update(context.Background(), owner, "nope", sampleInput())

	if !errors.Is(err, domain.ErrInvalidCardID) {
		t.Errorf("expected ErrInvalidCardID, got %v", err)
	}
}

// List / Get / Delete tests

func TestListCardsUseCase_Execute_OnlyOwnCards(t *testing.T) {
	repo := store.NewMemoryStore()
	createCard(t, repo, sampleInput())
	createCard(t, repo, sampleInput())
	_, _ = usecases.NewSaveCardUseCase(repo, nil).Create(context.Background(), stranger, sampleInput())

	cards, err := usecases.NewListCardsUseCase(repo).Execute(context.Background(), owner)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Errorf("cards = %d, want 2", len(cards))
	}
	if cards[0].CreatedAt.Before(cards[1].CreatedAt) {
		t.Error("cards not ordered newest first")
	}
}

func TestGetCardUseCase_Execute(t *testing.T) {
	repo := store.NewMemoryStore()
	card := createCard(t, repo, sampleInput())
	uc := usecases.NewGetCardUseCase(repo)

	if _, err := uc.Execute(context.Background(), owner, card.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := uc.Execute(context.Background(), stranger, card.ID); !errors.Is(err, domain.ErrCardNotFound) {
		t.Errorf("stranger read: expected ErrCardNotFound, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), "", card.ID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("anonymous read: expected ErrUnauthenticated, got %v", err)
	}
}

func TestDeleteCardUseCase_Execute_RemovesCardAndAccounts(t *testing.T) {
	repo := store.NewMemoryStore()
	cache := NewMockCache()
	card := createCard(t, repo, sampleInput(row("github", "x")))
	uc := usecases.NewDeleteCardUseCase(repo, cache)

	if err := uc.Execute(context.Background(), stranger, card.ID); !errors.Is(err, domain.ErrCardNotFound) {
		t.Fatalf("stranger delete: expected ErrCardNotFound, got %v", err)
	}
	if err := uc.Execute(context.Background(), owner, card.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.GetCard(context.Background(), card.ID); !errors.Is(err, domain.ErrCardNotFound) {
		t.Error("card still present")
	}
	if _, err := repo.GetSocialAccount(context.Background(), card.SocialAccounts[0].ID); !errors.Is(err, domain.ErrSocialAccountNotFound) {
		t.Error("social account not cascaded")
	}
	if !cache.WasDeleted(card.ID) {
		t.Error("cache entry not invalidated")
	}
}

// SocialAccountsUseCase tests

func TestSocialAccountsUseCase_AddUpdateDelete(t *testing.T) {
	repo := store.NewMemoryStore()
	cache := NewMockCache()
	card := createCard(t, repo, sampleInput(row("github", "x")))
	uc := usecases.NewSocialAccountsUseCase(repo, cache)
	ctx := context.Background()

	added, err := uc.Add(ctx, owner, card.ID, row("Spotify", "@dj"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ProfileURL != "https://open.spotify.com/user/dj" || added.DisplayOrder != 1 {
		t.Errorf("added = %+v", added)
	}

	updated, err := uc.Update(ctx, owner, added.ID, row("unknownnet", "dj"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsValid || updated.ProfileURL != "dj" {
		t.Errorf("updated = %+v", updated)
	}

	if err := uc.Delete(ctx, owner, added.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetSocialAccount(ctx, added.ID); !errors.Is(err, domain.ErrSocialAccountNotFound) {
		t.Error("account still present")
	}
	if !cache.WasDeleted(card.ID) {
		t.Error("cache entry not invalidated")
	}
}

func TestSocialAccountsUseCase_Add_ConcurrentAddsGetDistinctOrders(t *testing.T) {
	// Arrange
	repo := store.NewMemoryStore()
	card := createCard(t, repo, sampleInput(row("github", "x")))
	uc := usecases.NewSocialAccountsUseCase(repo, nil)
	ctx := context.Background()
	const adds = 8

	// Act
	var wg sync.WaitGroup
	errs := make(chan error, adds)
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Add(ctx, owner, card.ID, row("gitlab", "x"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	// Assert
	for err := range errs {
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	got, err := repo.GetCard(ctx, card.ID)
	if err != nil {
		t.Fatalf("GetCard: %v", err)
	}
	if len(got.SocialAccounts) != adds+1 {
		t.Fatalf("accounts = %d, want %d", len(got.SocialAccounts), adds+1)
	}
	seen := make(map[int]bool)
	for _, acct := range got.SocialAccounts {
		if seen[acct.DisplayOrder] {
			t.Errorf("display order %d assigned twice", acct.DisplayOrder)
		}
		seen[acct.DisplayOrder] = true
	}
}

func TestSocialAccountsUseCase_Guards(t *testing.T) {
	repo := store.NewMemoryStore()
	card := createCard(t, repo, sampleInput(row("github", "x")))
	acctID := card.SocialAccounts[0].ID
	uc := usecases.NewSocialAccountsUseCase(repo, nil)
	ctx := context.Background()

	if _, err := uc.Add(ctx, owner, card.ID, row("github", "")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank add: got %v", err)
	}
	if _, err := uc.Add(ctx, stranger, card.ID, row("github", "y")); !errors.Is(err, domain.ErrCardNotFound) {
		t.Errorf("stranger add: got %v", err)
	}
	if _, err := uc.Update(ctx, stranger, acctID, row("github", "y")); !errors.Is(err, domain.ErrSocialAccountNotFound) {
		t.Errorf("stranger update: got %v", err)
	}
	if err := uc.Delete(ctx, stranger, acctID); !errors.Is(err, domain.ErrSocialAccountNotFound) {
		t.Errorf("stranger delete: got %v", err)
	}
	if err := uc.Delete(ctx, owner, "bad-id"); !errors.Is(err, domain.ErrInvalidCardID) {
		t.Errorf("malformed id: got %v", err)
	}
}

// Visibility and public read tests

func TestSetVisibilityUseCase_ExecuteAndToggle(t *testing.T) {
	repo := store.NewMemoryStore()
	cache := NewMockCache()
	card := createCard(t, repo, sampleInput())
	uc := usecases.NewSetVisibilityUseCase(repo, cache)
	ctx := context.Background()

	got, err := uc.Toggle(ctx, owner, card.ID)
	if err != nil || !got.IsPublic {
		t.Fatalf("Toggle: %+v, %v", got, err)
	}
	got, err = uc.Execute(ctx, owner, card.ID, false)
	if err != nil || got.IsPublic {
		t.Fatalf("Execute(false): %+v, %v", got, err)
	}
	if _, err := uc.Toggle(ctx, stranger, card.ID); !errors.Is(err, domain.ErrCardNotFound) {
		t.Errorf("stranger toggle: got %v", err)
	}
	if !cache.WasDeleted(card.ID) {
		t.Error("cache entry not invalidated")
	}
}

func TestGetPublicCardUseCase_Execute_CacheMissThenHit(t *testing.T) {
	// Arrange
	repo := store.NewMemoryStore()
	cache := NewMockCache()
	card := createCard(t, repo, sampleInput())
	_, _ = usecases.NewSetVisibilityUseCase(repo, nil).Execute(context.Background(), owner, card.ID, true)
	uc := usecases.NewGetPublicCardUseCase(repo, cache)

	// Act
	got, err := uc.Execute(context.Background(), card.ID)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached, _, found := cache.Get(card.ID); !found || cached != got {
		t.Error("public card not cached")
	}

	stale := &domain.BusinessCard{ID: card.ID, Title: "from cache", IsPublic: true}
	cache.Put(card.ID, stale)
	if again, _ := uc.Execute(context.Background(), card.ID); again != stale {
		t.Error("second read did not come from the cache")
	}
}

func TestGetPublicCardUseCase_Execute_PrivateCardIsNotFound(t *testing.T) {
	repo := store.NewMemoryStore()
	cache := NewMockCache()
	card := createCard(t, repo, sampleInput())

	_, err := usecases.NewGetPublicCardUseCase(repo, cache).Execute(context.Background(), card.ID)

	if !errors.Is(err, domain.ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
	if _, _, found := cache.Get(card.ID); found {
		t.Error("private card was cached")
	}
}

// pausingRepo blocks the first GetCard after it has read the row, until
// release is closed.
type pausingRepo struct {
	usecases.CardRepository
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func newPausingRepo(repo usecases.CardRepository) *pausingRepo {
	return &pausingRepo{CardRepository: repo, read: make(chan struct{}), release: make(chan struct{})}
}

func (p *pausingRepo) GetCard(ctx context.Context, cardID string) (*domain.BusinessCard, error) {
	card, err := p.CardRepository.GetCard(ctx, cardID)
	p.once.Do(func() {
		close(p.read)
		<-p.release
	})
	return card, err
}

func TestGetPublicCardUseCase_Execute_WriteDuringReadIsNotCached(t *testing.T) {
	testCases := []struct {
		name  string
		write func(ctx context.Context, repo usecases.CardRepository, cache usecases.CardCache, cardID string) error
	}{
		{
			name: "unpublish",
			write: func(ctx context.Context, repo usecases.CardRepository, cache usecases.CardCache, cardID string) error {
				_, err := usecases.NewSetVisibilityUseCase(repo, cache).Execute(ctx, owner, cardID, false)
				return err
			},
		},
		{
			name: "delete",
			write: func(ctx context.Context, repo usecases.CardRepository, cache usecases.CardCache, cardID string) error {
				return usecases.NewDeleteCardUseCase(repo, cache).Execute(ctx, owner, cardID)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			repo := store.NewMemoryStore()
			cards := cache.NewMemoryCache(time.Minute)
			t.Cleanup(cards.Close)

			card := createCard(t, repo, sampleInput())
			if _, err := usecases.NewSetVisibilityUseCase(repo, cards).Execute(ctx, owner, card.ID, true); err != nil {
				t.Fatalf("publish: %v", err)
			}
			paused := newPausingRepo(repo)
			uc := usecases.NewGetPublicCardUseCase(paused, cards)

			// Act
			done := make(chan error, 1)
			go func() {
				_, err := uc.Execute(ctx, card.ID)
				done <- err
			}()
			<-paused.read
			writeErr := tc.write(ctx, repo, cards, card.ID)
			close(paused.release)
			readErr := <-done

			// Assert
			if writeErr != nil {
				t.Fatalf("write: %v", writeErr)
			}
			if readErr != nil {
				t.Fatalf("in-flight read: %v", readErr)
			}
			if _, _, found := cards.Get(card.ID); found {
				t.Error("copy read before the write was cached")
			}
			if got, err := uc.Execute(ctx, card.ID); !errors.Is(err, domain.ErrCardNotFound) {
				t.Errorf("read after write = %+v, %v; want ErrCardNotFound", got, err)
			}
		})
	}
}

func TestGetPublicCardUseCase_Execute_UpdateDuringReadServesNewVersion(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := store.NewMemoryStore()
	cache := NewMockCache()
	card := createCard(t, repo, sampleInput())
	_, _ = usecases.NewSetVisibilityUseCase(repo, nil).Execute(ctx, owner, card.ID, true)
	paused := newPausingRepo(repo)
	uc := usecases.NewGetPublicCardUseCase(paused, cache)

	// Act
	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(ctx, card.ID)
		done <- err
	}()
	<-paused.read
	input := sampleInput()
	input.Title = "Rear Admiral"
	if _, err := usecases.NewSaveCardUseCase(repo, cache).Update(ctx, owner, card.ID, input); err != nil {
		t.Fatalf("Update: %v", err)
	}
	close(paused.release)
	if err := <-done; err != nil {
		t.Fatalf("in-flight read: %v", err)
	}

	// Assert
	got, err := uc.Execute(ctx, card.ID)
	if err != nil {
		t.Fatalf("read after update: %v", err)
	}
	if got.Title != "Rear Admiral" {
		t.Errorf("Title = %q, want the updated title", got.Title)
	}
}

// SnapshotCardUseCase tests

func TestSnapshotCardUseCase_Execute(t *testing.T) {
	repo := store.NewMemoryStore()
	card := createCard(t, repo, sampleInput())
	_, _ = usecases.NewSetVisibilityUseCase(repo, nil).Execute(context.Background(), owner, card.ID, true)
	public := usecases.NewGetPublicCardUseCase(repo, nil)

	t.Run("renders share url", func(t *testing.T) {
		snap := &MockSnapshotter{png: []byte("\x89PNG")}
		uc := usecases.NewSnapshotCardUseCase(public, snap, "http://localhost:3000/")

		png, err := uc.Execute(context.Background(), card.ID)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(png) != "\x89PNG" {
			t.Errorf("png = %q", png)
		}
		if snap.url != "http://localhost:3000/card/"+card.ID {
			t.Errorf("url = %q", snap.url)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		uc := usecases.NewSnapshotCardUseCase(public, nil, "")
		if _, err := uc.Execute(context.Background(), card.ID); !errors.Is(err, domain.ErrSnapshotUnavailable) {
			t.Errorf("expected ErrSnapshotUnavailable, got %v", err)
		}
	})

	t.Run("browser failure", func(t *testing.T) {
		uc := usecases.NewSnapshotCardUseCase(public, &MockSnapshotter{err: errors.New("tab crashed")}, "")
		if _, err := uc.Execute(context.Background(), card.ID); !errors.Is(err, domain.ErrSnapshotFailed) {
			t.Errorf("expected ErrSnapshotFailed, got %v", err)
		}
	})
}

// ImportCardsUseCase tests

func TestImportCardsUseCase_Execute_AllOrNothing(t *testing.T) {
	mem := store.NewMemoryStore()

	cards, err := usecases.NewImportCardsUseCase(mem).Execute(context.Background(), owner, []domain.CardInput{
		sampleInput(row("github", "a")),
		sampleInput(row("twitter", "b")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("imported = %d, want 2", len(cards))
	}

	_, err = usecases.NewImportCardsUseCase(&failingRepo{CardRepository: mem, allow: 1}).Execute(
		context.Background(), owner, []domain.CardInput{
			sampleInput(row("github", "c")),
			sampleInput(row("twitter", "d")),
		})
	if err == nil {
		t.Fatal("expected error from failing import")
	}
	all, _ := mem.ListCardsByUser(context.Background(), owner)
	if len(all) != 2 {
		t.Errorf("cards after failed import = %d, want 2", len(all))
	}
}
