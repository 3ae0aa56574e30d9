package internal

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/analysis"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/routes"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 1024 * 1024 // 1MB
	pruneInterval       = 10 * time.Minute
)

func SetupApp() (*fiber.App, *config.ServerConfig) {
	// Load configuration
	cfg := config.LoadServerConfig()

	var store repository.AnalysisStore
	var external *services.Services

	if cfg.Offline {
		slog.Info("Running offline, analyses are kept in memory")
		store = repository.NewMemoryStore()
	} else {
		// Initialize services
		var err error
		external, err = services.InitServices(cfg)
		if err != nil {
			slog.Error("Failed to initialize services", "error", err)
			os.Exit(1)
		}
		store = repository.NewAnalysisRepository(external)
	}

	registry := game.NewRegistry()
	go pruneGames(registry)

	app := BuildApp(cfg, store, registry)

	if external != nil {
		app.Hooks().OnShutdown(external.Close)
	}

	return app, cfg
}

// BuildApp creates the Fiber app with all middleware and routes.
func BuildApp(cfg *config.ServerConfig, store repository.AnalysisStore, registry *game.Registry) *fiber.App {
	// Create Fiber app
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	service := analysis.NewService(store, search.Options{Parallel: cfg.ParallelSearch})

	// Setup engine, games and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("analysis", service)
		c.Locals("registry", registry)
		c.Locals("config", cfg)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app)

	return app
}

// pruneGames removes abandoned games from memory.
func pruneGames(registry *game.Registry) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for range ticker.C {
		registry.Prune(config.MaxGameAgeHours * time.Hour)
	}
}
