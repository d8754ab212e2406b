package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// AppConfig tunes the Fiber server. Zero timeouts mean no limit.
type AppConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewApp creates the Fiber app with the shared middleware stack.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		// Request strings outlive the handler in the async logger and cache.
		Immutable: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	app.Use(RequestLoggerMiddleware())
	return app
}

// SetupRoutes configures the application routes.
func SetupRoutes(app *fiber.App, handlers *Handlers, rateLimiter *RateLimiter, auth AuthConfig) {
	app.Get("/healthz", handlers.Health)

	// Home page
	app.Get("/", handlers.Home)

	// Published cards, readable by anyone with the share URL
	public := app.Group("/card", rateLimiter.Middleware())
	public.Get("/:id", handlers.PublicCard)
	public.Get("/:id/vcard", handlers.VCard)
	public.Get("/:id/snapshot.png", handlers.Snapshot)

	// Resolver endpoints used by the editor's live preview
	api := app.Group("/api")
	api.Get("/platforms", handlers.Platforms)
	api.Get("/social/resolve", handlers.Resolve)
	api.Post("/social/preview", handlers.Preview)

	cards := api.Group("/cards", Authenticate(auth))
	cards.Get("/", handlers.ListCards)
	cards.Post("/", handlers.CreateCard)
	cards.Get("/:id", handlers.GetCard)
	cards.Put("/:id", handlers.UpdateCard)
	cards.Delete("/:id", handlers.DeleteCard)
	cards.Put("/:id/visibility", handlers.SetVisibility)
	cards.Post("/:id/visibility/toggle", handlers.ToggleVisibility)
	cards.Post("/:id/social-accounts", handlers.AddSocialAccount)

	accounts := api.Group("/social-accounts", Authenticate(auth))
	accounts.Put("/:id", handlers.UpdateSocialAccount)
	accounts.Delete("/:id", handlers.DeleteSocialAccount)
}
