package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/mkweon/wordvault-backend/internal/config"
	"github.com/mkweon/wordvault-backend/internal/handlers"
	"github.com/mkweon/wordvault-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	languageHandler *handlers.LanguageHandler,
	categoryHandler *handlers.CategoryHandler,
	wordHandler *handlers.WordHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), middleware.RequireUser(), authHandler.Logout)

	// Everything under /languages requires a verified user. The resolver
	// chain is strictly ordered: identity, then language pair, then the
	// category/word operations that consume both.
	languages := api.Group("/languages", middleware.JWTProtected(cfg), middleware.RequireUser())
	languages.Get("/", languageHandler.Codes)
	languages.Post("/", languageHandler.Activate)
	languages.Get("/mine", languageHandler.Mine)

	pair := languages.Group("/:pair", middleware.ResolveLanguagePair(db))

	pair.Get("/categories", categoryHandler.List)
	pair.Post("/categories", categoryHandler.Create)
	pair.Get("/categories/:categoryId", categoryHandler.Get)
	pair.Patch("/categories/:categoryId", categoryHandler.Rename)
	pair.Delete("/categories/:categoryId", categoryHandler.Delete)

	pair.Get("/categories/:categoryId/words", categoryHandler.Words)
	pair.Post("/categories/:categoryId/words", wordHandler.AddToCategory)

	pair.Post("/words", wordHandler.Add)
	pair.Post("/words/bulk", wordHandler.Bulk)
}
