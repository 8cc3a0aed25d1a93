package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/ranking"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

func (f *fixture) adminService() *AdminService {
	s := NewAdminService(f.users, f.clubs, f.joinRequests, f.stats, f.leaderService(), f.policy, zerolog.Nop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestDashboard(t *testing.T) {
	f := newFixture()
	f.stats.On("Overview", mock.Anything, fixedNow).Return(&models.DashboardStats{TotalUsers: 12, TotalClubs: 3, ApprovedClubs: 2, PendingClubs: 1}, nil)
	f.users.On("CountByRole", mock.Anything).Return(map[models.Role]int64{
		models.RoleAdmin: 1, models.RoleLeader: 3, models.RoleMember: 8,
	}, nil)
	f.stats.On("TopClubsByMembers", mock.Anything, dashboardClubLimit).Return([]models.ClubStat{{ClubID: 1, Name: "Chess", Count: 9}}, nil)
	f.stats.On("TopClubsByEvents", mock.Anything, dashboardClubLimit).Return([]models.ClubStat{{ClubID: 2, Name: "Go", Count: 4}}, nil)
	f.clubs.On("List", mock.Anything, mock.MatchedBy(func(filter models.ClubFilter) bool {
		return filter.ApprovedOnly != nil && !*filter.ApprovedOnly
	}), uint64(0), dashboardPendingClubLimit).Return([]*models.Club{{ID: 3, Name: "Drama"}}, int64(1), nil)
	f.joinRequests.On("ListPending", mock.Anything, (*int64)(nil), dashboardJoinRequestLimit).
		Return([]*models.ClubJoinRequest{{ID: 30, UserID: 3, ClubID: 1}}, nil)
	f.scores.On("ListLeaderActivity", mock.Anything, ranking.WindowStart(fixedNow)).
		Return([]models.LeaderActivity{{UserID: 2, Username: "leader", AccountCreated: fixedNow, RecentMessages: 1}}, nil)

	resp, err := f.adminService().Dashboard(testCtx, adminUser)

	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.Stats.TotalUsers)
	assert.Equal(t, int64(8), resp.Stats.RoleCounts[models.RoleMember])
	assert.Len(t, resp.PopularClubs, 1)
	assert.Len(t, resp.ActiveClubs, 1)
	require.Len(t, resp.PendingClubs, 1)
	assert.Equal(t, "Drama", resp.PendingClubs[0].Name)
	assert.Len(t, resp.PendingJoinRequests, 1)
	require.Len(t, resp.TopLeaders, 1)
	assert.InDelta(t, 0.4, resp.TopLeaders[0].TotalScore, 1e-9)
}

func TestDashboard_AdminOnly(t *testing.T) {
	f := newFixture()

	_, err := f.adminService().Dashboard(testCtx, leaderUser)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	f.stats.AssertNotCalled(t, "Overview", mock.Anything, mock.Anything)
}
