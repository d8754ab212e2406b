package store

import (
	"context"

	"bizcard/internal/usecases"
)

// Store is a CardRepository that owns a database handle.
type Store interface {
	usecases.CardRepository
	Close() error
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Driver == DriverMemory {
		return NewMemoryStore(), nil
	}
	return OpenSQL(ctx, cfg)
}
