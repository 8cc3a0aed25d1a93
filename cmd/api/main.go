package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/clubhub/internal/pkg/logger"
	"github.com/yigit/clubhub/internal/server"
)

// @title ClubHub API
// @version 1.0
// @description Student clubs: membership, join requests, events, messaging and leader rankings.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server stopped with errors")
		stop()
		os.Exit(1)
	}
}
