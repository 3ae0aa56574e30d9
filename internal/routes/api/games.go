package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/analysis"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
)

// CreateGame starts a game of a human against the engine.
func CreateGame(c *fiber.Ctx) error {
	var req models.NewGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if req.Strategy == "" {
		cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck
		req.Strategy = cfg.DefaultStrategy
	}

	service := c.Locals("analysis").(*analysis.Service) //nolint: errcheck
	engine, err := service.NewStrategy(req.Strategy)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	registry := c.Locals("registry").(*game.Registry) //nolint: errcheck
	session := registry.Create(req.Human, engine, req.Hints)

	session.Lock()
	defer session.Unlock()

	// The engine opens when the human plays white.
	events := session.Controller.Advance()

	return c.Status(fiber.StatusCreated).JSON(session.View(events))
}

// lookupSession finds the session of the id path parameter.
func lookupSession(c *fiber.Ctx) (*game.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid game ID")
	}

	registry := c.Locals("registry").(*game.Registry) //nolint: errcheck
	session, err := registry.Get(id)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return session, nil
}

// sendError sends a fiber error as JSON.
func sendError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// GetGame returns the state of a game.
func GetGame(c *fiber.Ctx) error {
	session, err := lookupSession(c)
	if err != nil {
		return sendError(c, err)
	}

	session.Lock()
	defer session.Unlock()

	return c.Status(fiber.StatusOK).JSON(session.View(nil))
}

// DeleteGame removes a game.
func DeleteGame(c *fiber.Ctx) error {
	session, err := lookupSession(c)
	if err != nil {
		return sendError(c, err)
	}

	registry := c.Locals("registry").(*game.Registry) //nolint: errcheck
	if err = registry.Delete(session.ID); err != nil {
		return sendError(c, fiber.NewError(fiber.StatusNotFound, err.Error()))
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// moveErrorStatus maps controller errors to HTTP status codes.
func moveErrorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrIllegalMove):
		return fiber.StatusBadRequest
	case errors.Is(err, game.ErrNotHumanTurn), errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrMustPass):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// PlayMove plays a human move and lets the engine respond.
func PlayMove(c *fiber.Ctx) error {
	session, err := lookupSession(c)
	if err != nil {
		return sendError(c, err)
	}

	var req models.PlayRequest
	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session.Lock()
	defer session.Unlock()

	events, err := session.Controller.PlayAndAdvance(req.Square)
	if err != nil {
		return sendError(c, fiber.NewError(moveErrorStatus(err), err.Error()))
	}

	return c.Status(fiber.StatusOK).JSON(session.View(events))
}
