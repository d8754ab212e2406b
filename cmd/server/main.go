package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bizcard/internal/adapters/cache"
	"bizcard/internal/adapters/snapshot"
	"bizcard/internal/adapters/web"
	"bizcard/internal/app"
	"bizcard/internal/config"
	"bizcard/internal/usecases"
	"bizcard/pkg/log"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	envFile := flag.String("env", ".env", "path to a .env file")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		// No logger yet.
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := app.SetupLogger(cfg.Log, os.Stdout)
	if err := run(cfg); err != nil {
		logger.Fatal("server stopped", "error", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer repo.Close()

	var cardCache usecases.CardCache
	if cfg.Cache.Enabled {
		mc := cache.NewMemoryCache(cfg.Cache.TTL)
		defer mc.Close()
		cardCache = mc
	}

	var snapshotter usecases.CardSnapshotter
	if cfg.Snapshot.Enabled {
		pool, err := snapshot.NewBrowserPool(snapshot.Options{
			ChromePath: cfg.Snapshot.ChromePath,
			RemoteURL:  cfg.Snapshot.RemoteURL,
			MaxTabs:    cfg.Snapshot.MaxTabs,
		})
		if err != nil {
			return err
		}
		defer pool.Close()
		snapshotter = snapshot.NewSnapshotter(pool, cfg.Snapshot.Width, cfg.Snapshot.Height, cfg.Snapshot.Timeout)
	}

	handlers := app.NewHandlers(cfg.Server.BaseURL, repo, cardCache, snapshotter)
	rateLimiter := web.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer rateLimiter.Close()

	fiberApp := web.NewApp(web.AppConfig{
		Name:         "bizcard",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
	web.SetupRoutes(fiberApp, handlers, rateLimiter, app.AuthConfig(cfg.Auth))

	errCh := make(chan error, 1)
	go func() {
		log.GlobalInfo("starting bizcard",
			"addr", cfg.Server.Address(),
			"driver", cfg.Database.Driver,
			"cache", cfg.Cache.Enabled,
			"snapshots", cfg.Snapshot.Enabled,
			"auth_mode", cfg.Auth.Mode,
		)
		errCh <- fiberApp.Listen(cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.GlobalInfo("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	if err := fiberApp.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		log.GlobalError("shutdown", "error", err)
	}
	return nil
}
