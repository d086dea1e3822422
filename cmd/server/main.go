package main

import (
	"log/slog"
	"os"

	"github.com/lk16/flippy/reversi/internal"
	"github.com/lk16/flippy/reversi/internal/config"
)

func main() {
	config.SetLogLevel()

	// Setup app
	app, cfg, services := internal.SetupApp()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	slog.Info("Starting server", "address", address, "difficulty", cfg.DefaultDifficulty)

	err := app.Listen(address)
	services.Close()

	if err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
