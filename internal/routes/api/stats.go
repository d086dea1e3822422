package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/reversi/internal/repository"
)

// GetStats returns the results of all finished games, grouped by difficulty.
func GetStats(c *fiber.Ctx) error {
	repo := repository.NewGameRepository(c)
	stats, err := repo.Stats(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
