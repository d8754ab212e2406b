// Package cache keeps published cards in memory so share pages do not hit
// the database on every view.
package cache

import (
	"sync"
	"time"

	"bizcard/internal/domain"
)

const cleanupInterval = time.Minute

// MemoryCache is an in-memory card cache with per-entry TTL.
//
// Writers invalidate with Delete. Readers fill the cache in two steps: Get
// hands out a generation token, and SetIfUnchanged stores the card only if
// no Delete for that card happened after the token was issued. A reader that
// loaded a card before an unpublish therefore cannot put the stale copy back.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	gen     uint64 // bumped by every Delete
	floor   uint64 // tokens below this may predate a forgotten Delete
	ttl     time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// cacheEntry with a nil card is a tombstone left by Delete.
type cacheEntry struct {
	card      *domain.BusinessCard
	gen       uint64
	expiresAt time.Time
}

// NewMemoryCache starts a cache whose entries live for ttl. Call Close to
// stop the background sweeper.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return newMemoryCache(ttl, time.Now)
}

func newMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		now:     now,
		stop:    make(chan struct{}),
	}
	go c.cleanup(cleanupInterval)
	return c
}

// Get returns the card if present and not expired. The token is returned on
// misses too and must be passed to SetIfUnchanged.
func (c *MemoryCache) Get(cardID string) (*domain.BusinessCard, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.gen
	entry, ok := c.entries[cardID]
	if !ok || entry.card == nil {
		return nil, token, false
	}
	if c.now().After(entry.expiresAt) {
		c.drop(cardID, entry)
		return nil, token, false
	}
	return entry.card, token, true
}

// SetIfUnchanged stores the card unless it was deleted after token was
// issued. It reports whether the card was stored.
func (c *MemoryCache) SetIfUnchanged(cardID string, token uint64, card *domain.BusinessCard) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token < c.floor {
		return false
	}
	entry, ok := c.entries[cardID]
	if ok && entry.gen > token {
		return false
	}

	var gen uint64
	if ok {
		gen = entry.gen
	}
	c.entries[cardID] = &cacheEntry{card: card, gen: gen, expiresAt: c.now().Add(c.ttl)}
	return true
}

// Delete drops the entry, typically after the card was edited, and fences
// off fills that started before it.
func (c *MemoryCache) Delete(cardID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.entries[cardID] = &cacheEntry{gen: c.gen, expiresAt: c.now().Add(c.ttl)}
}

// Len counts cached cards, including expired ones not yet swept.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, entry := range c.entries {
		if entry.card != nil {
			n++
		}
	}
	return n
}

// Close stops the sweeper. The cache stays usable.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

// sweep removes expired cards and tombstones.
func (c *MemoryCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, entry := range c.entries {
		if now.After(entry.expiresAt) {
			c.drop(id, entry)
		}
	}
}

// drop must be called with mu held. Raising the floor keeps a forgotten
// Delete from being undone by a fill that started before it.
func (c *MemoryCache) drop(cardID string, entry *cacheEntry) {
	delete(c.entries, cardID)
	if entry.gen > c.floor {
		c.floor = entry.gen
	}
}
