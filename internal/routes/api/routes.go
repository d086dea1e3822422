package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/reversi/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	// Game routes
	apiGroup.Post("/games", CreateGame)
	apiGroup.Get("/games/:id", GetGame)
	apiGroup.Get("/games/:id/legal-moves", GetLegalMoves)
	apiGroup.Get("/games/:id/results", GetResults)
	apiGroup.Post("/games/:id/moves", SubmitMove)
	apiGroup.Post("/games/:id/opponent", OpponentMove)
	apiGroup.Post("/games/:id/reset", ResetGame)

	// Statistics routes
	apiGroup.Get("/stats", middleware.Token(), GetStats)
}
