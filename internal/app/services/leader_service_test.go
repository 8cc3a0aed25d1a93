package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/ranking"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

func daysAgo(days int) time.Time {
	return fixedNow.Add(-time.Duration(days) * 24 * time.Hour)
}

func TestCandidates(t *testing.T) {
	f := newFixture()
	f.scores.On("ListLeaderActivity", mock.Anything, ranking.WindowStart(fixedNow)).Return([]models.LeaderActivity{
		{UserID: 20, Username: "quiet", AccountCreated: daysAgo(10)},
		// 150 days is 5 months: 0.4*5 + 0.3*5 + 0.3*2
		{UserID: 21, Username: "busy", AccountCreated: daysAgo(150), RecentMessages: 5, EventsOrganized: 2},
	}, nil)

	resp, err := f.leaderService().Candidates(testCtx, adminUser)

	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, int64(21), resp.Candidates[0].UserID)
	assert.Equal(t, 1, resp.Candidates[0].Rank)
	assert.InDelta(t, 4.1, resp.Candidates[0].TotalScore, 1e-9)
	assert.Equal(t, 5, resp.Candidates[0].AccountAgeMonths)
	assert.Equal(t, int64(20), resp.Candidates[1].UserID)
	assert.InDelta(t, 0.0, resp.Candidates[1].TotalScore, 1e-9)
	assert.Equal(t, fixedNow, resp.ComputedAt)
}

func TestCandidates_AdminOnly(t *testing.T) {
	f := newFixture()

	_, err := f.leaderService().Candidates(testCtx, leaderUser)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	f.scores.AssertNotCalled(t, "ListLeaderActivity", mock.Anything, mock.Anything)
}

func TestPromoteToAdmin(t *testing.T) {
	f := newFixture()
	target := &models.User{ID: 2, Username: "leader", Role: models.RoleLeader}
	f.users.On("GetByID", mock.Anything, int64(2)).Return(target, nil)
	f.users.On("UpdateRole", mock.Anything, int64(2), models.RoleAdmin).Return(nil)

	user, err := f.leaderService().PromoteToAdmin(testCtx, adminUser, 2)

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	f.users.AssertExpectations(t)
}

func TestPromoteToAdmin_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		actor   *models.User
		target  *models.User
		wantErr error
	}{
		{
			name:    "member target",
			actor:   adminUser,
			target:  &models.User{ID: 3, Role: models.RoleMember},
			wantErr: apperrors.ErrNotLeader,
		},
		{
			name:    "admin target",
			actor:   adminUser,
			target:  &models.User{ID: 4, Role: models.RoleAdmin},
			wantErr: apperrors.ErrNotLeader,
		},
		{
			name:    "leader actor",
			actor:   leaderUser,
			target:  &models.User{ID: 5, Role: models.RoleLeader},
			wantErr: apperrors.ErrPermissionDenied,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.users.On("GetByID", mock.Anything, tc.target.ID).Return(tc.target, nil)

			_, err := f.leaderService().PromoteToAdmin(testCtx, tc.actor, tc.target.ID)

			assert.ErrorIs(t, err, tc.wantErr)
			f.users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPromoteToAdmin_UnknownUser(t *testing.T) {
	f := newFixture()
	f.users.On("GetByID", mock.Anything, int64(404)).Return(nil, apperrors.ErrUserNotFound)

	_, err := f.leaderService().PromoteToAdmin(testCtx, adminUser, 404)

	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestSnapshotRanking(t *testing.T) {
	f := newFixture()
	at := fixedNow.Add(1500 * time.Millisecond)
	truncated := fixedNow.Add(time.Second)
	f.scores.On("ListLeaderActivity", mock.Anything, ranking.WindowStart(truncated)).Return([]models.LeaderActivity{
		{UserID: 20, AccountCreated: daysAgo(400), RecentMessages: 3},
	}, nil)
	f.scores.On("SaveSnapshot", mock.Anything, mock.MatchedBy(func(scores []models.LeaderScore) bool {
		return len(scores) == 1 && scores[0].Rank == 1 && scores[0].ComputedAt.Equal(truncated)
	})).Return(nil)

	scores, err := f.leaderService().SnapshotRanking(testCtx, at)

	require.NoError(t, err)
	require.Len(t, scores, 1)
	// 0.4*3 + 0.3*13
	assert.InDelta(t, 5.1, scores[0].TotalScore, 1e-9)
	f.scores.AssertExpectations(t)
}

func TestLatestSnapshot(t *testing.T) {
	f := newFixture()
	computed := fixedNow.Add(-time.Hour)
	f.scores.On("LatestSnapshot", mock.Anything).Return([]models.LeaderScore{
		{Rank: 1, UserID: 21, TotalScore: 4.2, ComputedAt: computed},
	}, nil)

	resp, err := f.leaderService().LatestSnapshot(testCtx, adminUser)

	require.NoError(t, err)
	assert.Equal(t, computed, resp.ComputedAt)
	assert.Len(t, resp.Candidates, 1)
}
