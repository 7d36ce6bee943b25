package main

import (
	"os"

	"github.com/yigit/courseservice/internal/pkg/logger"
	"github.com/yigit/courseservice/internal/server"
)

// @title Course Service API
// @version 1.0
// @description Course catalogue and enrollments. Student records are owned by the Student service.
// @BasePath /api
// @schemes http

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
