package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/repositories"
)

const (
	dashboardClubLimit        = 5
	dashboardPendingClubLimit = 10
	dashboardJoinRequestLimit = 15
)

// AdminService builds the admin dashboard
type AdminService struct {
	users        repositories.IUserRepository
	clubs        repositories.IClubRepository
	joinRequests repositories.IJoinRequestRepository
	stats        repositories.IStatsRepository
	leaders      *LeaderService
	policy       *authz.Policy
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAdminService creates a new AdminService
func NewAdminService(
	users repositories.IUserRepository,
	clubs repositories.IClubRepository,
	joinRequests repositories.IJoinRequestRepository,
	stats repositories.IStatsRepository,
	leaders *LeaderService,
	policy *authz.Policy,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:        users,
		clubs:        clubs,
		joinRequests: joinRequests,
		stats:        stats,
		leaders:      leaders,
		policy:       policy,
		logger:       logger,
		now:          time.Now,
	}
}

// Dashboard returns platform totals, club top lists, pending work and leader candidates
func (s *AdminService) Dashboard(ctx context.Context, actor *models.User) (*dto.DashboardResponse, error) {
	if err := s.policy.Authorize(ctx, actor, authz.ActionDashboardView, authz.Target{}); err != nil {
		return nil, err
	}

	now := s.now()
	stats, err := s.stats.Overview(ctx, now)
	if err != nil {
		return nil, err
	}
	if stats.RoleCounts, err = s.users.CountByRole(ctx); err != nil {
		return nil, err
	}

	popular, err := s.stats.TopClubsByMembers(ctx, dashboardClubLimit)
	if err != nil {
		return nil, err
	}
	active, err := s.stats.TopClubsByEvents(ctx, dashboardClubLimit)
	if err != nil {
		return nil, err
	}

	approved := false
	pendingClubs, _, err := s.clubs.List(ctx, models.ClubFilter{ApprovedOnly: &approved}, 0, dashboardPendingClubLimit)
	if err != nil {
		return nil, err
	}

	pendingRequests, err := s.joinRequests.ListPending(ctx, nil, dashboardJoinRequestLimit)
	if err != nil {
		return nil, err
	}

	leaders, err := s.leaders.rank(ctx, now, s.leaders.limit)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Stats:               *stats,
		PopularClubs:        popular,
		ActiveClubs:         active,
		PendingClubs:        dto.NewClubResponses(pendingClubs),
		PendingJoinRequests: dto.NewJoinRequestResponses(pendingRequests),
		TopLeaders:          leaders,
	}, nil
}
