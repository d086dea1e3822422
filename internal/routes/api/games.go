package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/lk16/flippy/reversi/internal/repository"
)

// CreateGame starts a new session.
func CreateGame(c *fiber.Ctx) error {
	var payload models.CreateGamePayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	repo := repository.NewGameRepository(c)
	response, err := repo.CreateGame(c.Context(), payload.Difficulty)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetGame returns the state of a session.
func GetGame(c *fiber.Ctx) error {
	repo := repository.NewGameRepository(c)
	response, err := repo.GetGame(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetLegalMoves returns the legal moves of the side to move.
func GetLegalMoves(c *fiber.Ctx) error {
	repo := repository.NewGameRepository(c)
	moves, err := repo.LegalMoves(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"legal_moves": moves,
	})
}

// GetResults returns the latest finished games of a session.
func GetResults(c *fiber.Ctx) error {
	repo := repository.NewGameRepository(c)
	results, err := repo.RecentResults(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(results)
}

// SubmitMove plays a move for the human.
func SubmitMove(c *fiber.Ctx) error {
	var payload models.MovePayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	coord, err := payload.Coord()
	if err != nil {
		return badRequest(c, err.Error())
	}

	repo := repository.NewGameRepository(c)
	response, err := repo.SubmitMove(c.Context(), c.Params("id"), coord)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// OpponentMove lets the computer play.
func OpponentMove(c *fiber.Ctx) error {
	repo := repository.NewGameRepository(c)
	response, err := repo.OpponentMove(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// ResetGame starts the next game of a session.
func ResetGame(c *fiber.Ctx) error {
	var payload models.ResetPayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	repo := repository.NewGameRepository(c)
	response, err := repo.ResetGame(c.Context(), c.Params("id"), payload)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
