package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/reversi/internal/routes/api"
	"github.com/lk16/flippy/reversi/internal/routes/version"
	"github.com/lk16/flippy/reversi/internal/routes/ws"
)

func SetupRoutes(app *fiber.App) {
	// Serve API routes
	api.SetupRoutes(app)

	// Serve live play over websocket
	ws.SetupRoutes(app)

	// Serve version info
	version.SetupRoutes(app)
}
