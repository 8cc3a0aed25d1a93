package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/yigit/clubhub/internal/app/models"
)

// RankingSnapshotter persists the current leader ranking
type RankingSnapshotter interface {
	SnapshotRanking(ctx context.Context, now time.Time) ([]models.LeaderScore, error)
}

// Scheduler runs the periodic leaderboard snapshot
type Scheduler struct {
	cron    *cron.Cron
	ranking RankingSnapshotter
	logger  zerolog.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewScheduler registers the snapshot job on a standard five-field cron schedule, in UTC.
func NewScheduler(schedule string, ranking RankingSnapshotter, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		ranking: ranking,
		logger:  logger,
		timeout: 5 * time.Minute,
		now:     time.Now,
	}

	if _, err := s.cron.AddFunc(schedule, s.SnapshotLeaders); err != nil {
		return nil, fmt.Errorf("failed to register leaderboard job %q: %w", schedule, err)
	}
	return s, nil
}

// SnapshotLeaders computes and stores one ranking snapshot. A panic is logged and swallowed
// so the next tick still runs.
func (s *Scheduler) SnapshotLeaders() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("Leaderboard snapshot panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	started := s.now()
	scores, err := s.ranking.SnapshotRanking(ctx, started)
	if err != nil {
		s.logger.Error().Err(err).Msg("Leaderboard snapshot failed")
		return
	}

	event := s.logger.Info().Int("leaders", len(scores)).Dur("took", s.now().Sub(started))
	if len(scores) > 0 {
		event = event.Int64("topLeaderID", scores[0].UserID).Float64("topScore", scores[0].TotalScore)
	}
	event.Msg("Leaderboard snapshot stored")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Cron scheduler started")
}

// Stop waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Cron scheduler stopped")
}
