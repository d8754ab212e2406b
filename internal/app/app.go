// Package app wires configuration into the adapters and use cases shared
// by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bizcard/internal/adapters/store"
	"bizcard/internal/adapters/web"
	"bizcard/internal/config"
	"bizcard/internal/usecases"
	"bizcard/pkg/log"
	"bizcard/pkg/log/transporters"
)

// SetupLogger builds a logger writing cfg.Format entries to w and installs
// it as the process default. An unknown level falls back to INFO and is
// reported after the logger is installed.
func SetupLogger(cfg config.LogConfig, w io.Writer) *log.Logger {
	level, err := log.ParseLevel(cfg.Level)
	logger := log.New(level, transporters.ForFormat(cfg.Format, w))
	log.SetDefault(logger)
	if err != nil {
		logger.Warn("unknown log level, using INFO", "level", cfg.Level)
	}
	return logger
}

// OpenStore opens the configured card store, creating the directory of a
// SQLite database file when needed.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (store.Store, error) {
	if cfg.Driver == store.DriverSQLite {
		if err := ensureDir(cfg.DSN); err != nil {
			return nil, err
		}
	}
	return store.Open(ctx, store.Config{
		Driver:       cfg.Driver,
		DSN:          cfg.DSN,
		MaxOpenConns: cfg.MaxOpenConns,
		AutoMigrate:  cfg.AutoMigrate,
	})
}

func ensureDir(dsn string) error {
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}

// NewHandlers builds every use case on repo and returns the HTTP handlers.
// cache and snapshotter may be nil to disable caching and snapshots.
func NewHandlers(baseURL string, repo usecases.CardRepository, cache usecases.CardCache, snapshotter usecases.CardSnapshotter) *web.Handlers {
	public := usecases.NewGetPublicCardUseCase(repo, cache)
	return web.NewHandlers(web.UseCases{
		ListCards:      usecases.NewListCardsUseCase(repo),
		GetCard:        usecases.NewGetCardUseCase(repo),
		SaveCard:       usecases.NewSaveCardUseCase(repo, cache),
		DeleteCard:     usecases.NewDeleteCardUseCase(repo, cache),
		Visibility:     usecases.NewSetVisibilityUseCase(repo, cache),
		SocialAccounts: usecases.NewSocialAccountsUseCase(repo, cache),
		PublicCard:     public,
		Snapshot:       usecases.NewSnapshotCardUseCase(public, snapshotter, baseURL),
	}, baseURL)
}

// AuthConfig converts the auth settings for the web layer.
func AuthConfig(cfg config.AuthConfig) web.AuthConfig {
	return web.AuthConfig{
		Mode:          cfg.Mode,
		GatewaySecret: cfg.GatewaySecret,
		DevUserID:     cfg.DevUserID,
	}
}
