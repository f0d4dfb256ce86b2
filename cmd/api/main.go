package main

import (
	"os"

	"github.com/yigit/creditbridge/internal/pkg/logger"
	"github.com/yigit/creditbridge/internal/server"
)

func main() {
	srv, err := server.NewServer(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
