package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	// Game routes
	apiGroup.Post("/games", CreateGame)
	apiGroup.Get("/games/:id", GetGame)
	apiGroup.Delete("/games/:id", DeleteGame)
	apiGroup.Post("/games/:id/moves", PlayMove)

	// Analysis routes
	apiGroup.Post("/analysis/moves", LegalMoves)
	apiGroup.Post("/analysis/evaluate", Evaluate)
	apiGroup.Post("/analysis/choose", Choose)
	apiGroup.Get("/analysis/stats", middleware.AuthOrToken(), GetStats)
}
