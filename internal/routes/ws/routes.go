package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/analysis"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/ws"
)

func handleWs(c *websocket.Conn) {
	registry := c.Locals("registry").(*game.Registry)    //nolint: errcheck
	service := c.Locals("analysis").(*analysis.Service) //nolint: errcheck
	cfg := c.Locals("config").(*config.ServerConfig)    //nolint: errcheck

	h := ws.NewHandler(c, registry, service, cfg.DefaultStrategy)
	err := h.Handle()
	if err != nil {
		slog.Error("ws handle error", "error", err)
	}
}

// upgradeOnly rejects requests that are not websocket upgrades.
func upgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", upgradeOnly, websocket.New(handleWs))
}
