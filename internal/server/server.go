package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/clubhub/internal/bootstrap"
	"github.com/yigit/clubhub/internal/config"
	"github.com/yigit/clubhub/internal/db"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API process: router, database and listener.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	database *db.PostgresDB
	logger   zerolog.Logger
	http     *http.Server
}

// NewServer loads config, prepares the database and builds the router.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)
	if err := serveUploads(router, cfg.Server.StoragePath); err != nil {
		lgr.Error().Err(err).Str("path", cfg.Server.StoragePath).Msg("Uploaded files will not be served")
	}

	return &Server{
		config:   cfg,
		router:   router,
		database: database,
		logger:   lgr,
		http: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// serveUploads exposes stored logos, pictures and documents under /uploads
func serveUploads(router *gin.Engine, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	router.Static("/uploads", dir)
	return nil
}

// Run serves until ctx is cancelled or the listener fails, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		listenErr <- s.http.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested")
	}

	if err := s.Shutdown(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown drains in-flight requests, then closes the pool.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var err error
	if shutdownErr := s.http.Shutdown(ctx); shutdownErr != nil {
		s.logger.Error().Err(shutdownErr).Msg("HTTP server shutdown error")
		err = fmt.Errorf("http shutdown: %w", shutdownErr)
	}

	s.database.Close()
	s.logger.Info().Msg("Server stopped")
	return err
}
