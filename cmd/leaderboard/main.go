package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/bootstrap"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/logger"
	"github.com/yigit/clubhub/internal/scheduler"
)

// leaderboard stores a leader ranking snapshot on the configured cron schedule.
func main() {
	if err := run(); err != nil {
		logger.Error().Err(err).Msg("Leaderboard worker failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return err
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	repos := repositories.NewRepositories(database.Pool)
	leaders := services.NewLeaderService(
		repos.UserRepository,
		repos.LeaderScoreRepository,
		database,
		authz.NewPolicy(repos.UserRepository, repos.MembershipRepository),
		cfg.Leaderboard.Limit,
		logger.Component("leader_service"),
	)

	sched, err := scheduler.NewScheduler(cfg.Leaderboard.Schedule, leaders, logger.Component("leaderboard"))
	if err != nil {
		return err
	}

	if cfg.Leaderboard.RunOnStart {
		sched.SnapshotLeaders()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start()
	lgr.Info().Str("schedule", cfg.Leaderboard.Schedule).Msg("Leaderboard worker running")
	<-ctx.Done()

	sched.Stop()
	return nil
}
