package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/ranking"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

// LeaderService ranks leaders and promotes them to admin
type LeaderService struct {
	users  repositories.IUserRepository
	scores repositories.ILeaderScoreRepository
	tx     db.Transactor
	policy *authz.Policy
	limit  int
	logger zerolog.Logger
	now    func() time.Time
}

// NewLeaderService creates a new LeaderService. limit is the candidate list
// length; non-positive means ranking.DefaultLimit.
func NewLeaderService(
	users repositories.IUserRepository,
	scores repositories.ILeaderScoreRepository,
	tx db.Transactor,
	policy *authz.Policy,
	limit int,
	logger zerolog.Logger,
) *LeaderService {
	if limit <= 0 {
		limit = ranking.DefaultLimit
	}
	return &LeaderService{
		users:  users,
		scores: scores,
		tx:     tx,
		policy: policy,
		limit:  limit,
		logger: logger,
		now:    time.Now,
	}
}

// Candidates ranks every leader for promotion review. Admin only.
func (s *LeaderService) Candidates(ctx context.Context, actor *models.User) (*dto.LeaderCandidatesResponse, error) {
	if err := s.policy.Authorize(ctx, actor, authz.ActionLeaderRank, authz.Target{}); err != nil {
		return nil, err
	}

	now := s.now()
	scores, err := s.rank(ctx, now, s.limit)
	if err != nil {
		return nil, err
	}
	return &dto.LeaderCandidatesResponse{Candidates: scores, ComputedAt: now}, nil
}

func (s *LeaderService) rank(ctx context.Context, now time.Time, limit int) ([]models.LeaderScore, error) {
	activities, err := s.scores.ListLeaderActivity(ctx, ranking.WindowStart(now))
	if err != nil {
		return nil, err
	}
	return ranking.Rank(activities, now, limit), nil
}

// PromoteToAdmin raises a leader to admin. Admin only; the target's role must be exactly leader.
func (s *LeaderService) PromoteToAdmin(ctx context.Context, actor *models.User, userID int64) (*models.User, error) {
	if err := s.policy.Authorize(ctx, actor, authz.ActionPromoteAdmin, authz.Target{}); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleLeader {
		return nil, apperrors.ErrNotLeader
	}

	if err := s.users.UpdateRole(ctx, userID, models.RoleAdmin); err != nil {
		return nil, err
	}

	user.Role = models.RoleAdmin
	s.logger.Info().Int64("userID", userID).Int64("by", actor.ID).Msg("Leader promoted to admin")
	return user, nil
}

// SnapshotRanking computes the ranking at now and stores it as one batch
func (s *LeaderService) SnapshotRanking(ctx context.Context, now time.Time) ([]models.LeaderScore, error) {
	now = now.UTC().Truncate(time.Second)
	scores, err := s.rank(ctx, now, s.limit)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.scores.SaveSnapshot(ctx, scores)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("leaders", len(scores)).Time("computedAt", now).Msg("Leader ranking snapshot stored")
	return scores, nil
}

// LatestSnapshot returns the most recently stored ranking. Admin only.
func (s *LeaderService) LatestSnapshot(ctx context.Context, actor *models.User) (*dto.LeaderCandidatesResponse, error) {
	if err := s.policy.Authorize(ctx, actor, authz.ActionLeaderRank, authz.Target{}); err != nil {
		return nil, err
	}

	scores, err := s.scores.LatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.LeaderCandidatesResponse{Candidates: scores}
	if len(scores) > 0 {
		resp.ComputedAt = scores[0].ComputedAt
	}
	return resp, nil
}
