package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/analysis"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/search"
)

// LegalMoves lists the legal moves of a board.
func LegalMoves(c *fiber.Ctx) error {
	var req models.BoardRequest
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

	service := c.Locals("analysis").(*analysis.Service) //nolint: errcheck
	return c.Status(fiber.StatusOK).JSON(service.LegalMoves(req))
}

// Evaluate returns the heuristic score of a board.
func Evaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest
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

	service := c.Locals("analysis").(*analysis.Service) //nolint: errcheck
	return c.Status(fiber.StatusOK).JSON(service.Evaluate(req))
}

// Choose lets a strategy pick a move for the side to move.
func Choose(c *fiber.Ctx) error {
	var req models.ChooseRequest
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

	service := c.Locals("analysis").(*analysis.Service) //nolint: errcheck
	resp, err := service.Choose(c.Context(), req)
	if errors.Is(err, search.ErrUnknownStrategy) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetStats returns how many analyses are stored per strategy.
func GetStats(c *fiber.Ctx) error {
	service := c.Locals("analysis").(*analysis.Service) //nolint: errcheck
	stats, err := service.Store().Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
