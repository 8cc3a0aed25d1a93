package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/repositories/mocks"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

var (
	admin  = &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	leader = &models.User{ID: 2, Username: "lead", Role: models.RoleLeader}
	member = &models.User{ID: 3, Username: "mem", Role: models.RoleMember}
)

const clubID = int64(10)

func newPolicy() (*Policy, *mocks.MockMembershipRepo, *mocks.MockUserRepo) {
	memberships := new(mocks.MockMembershipRepo)
	users := new(mocks.MockUserRepo)
	return NewPolicy(users, memberships), memberships, users
}

func TestCan_AdminAllowedWithoutLookups(t *testing.T) {
	p, memberships, _ := newPolicy()

	for _, action := range []Action{ActionClubApprove, ActionClubUpdate, ActionEventRegister, ActionMessageDelete, ActionPromoteAdmin} {
		ok, err := p.Can(context.Background(), admin, action, Target{ClubID: clubID})
		require.NoError(t, err)
		assert.True(t, ok, string(action))
	}
	memberships.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestCan_ClubCreateByRole(t *testing.T) {
	p, _, _ := newPolicy()
	ctx := context.Background()

	ok, _ := p.Can(ctx, leader, ActionClubCreate, Target{})
	assert.True(t, ok)
	ok, _ = p.Can(ctx, member, ActionClubCreate, Target{})
	assert.False(t, ok)
}

func TestCan_AdminOnlyActionsDeniedToLeaders(t *testing.T) {
	p, _, _ := newPolicy()

	for _, action := range []Action{ActionClubApprove, ActionClubReject, ActionClubListPending, ActionPromoteAdmin, ActionLeaderRank, ActionDashboardView, ActionUserView} {
		ok, err := p.Can(context.Background(), leader, action, Target{ClubID: clubID})
		require.NoError(t, err)
		assert.False(t, ok, string(action))
	}
}

func TestCan_ClubLeaderActions(t *testing.T) {
	p, memberships, _ := newPolicy()
	ctx := context.Background()

	memberships.On("Get", ctx, clubID, leader.ID).Return(&models.ClubMembership{UserID: leader.ID, ClubID: clubID, IsLeader: true}, nil)
	memberships.On("Get", ctx, clubID, member.ID).Return(&models.ClubMembership{UserID: member.ID, ClubID: clubID}, nil)

	ok, err := p.Can(ctx, leader, ActionEventCreate, Target{ClubID: clubID})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Can(ctx, member, ActionEventCreate, Target{ClubID: clubID})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Can(ctx, member, ActionMessagePost, Target{ClubID: clubID})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCan_NonMemberDenied(t *testing.T) {
	p, memberships, _ := newPolicy()
	ctx := context.Background()
	memberships.On("Get", ctx, clubID, member.ID).Return(nil, apperrors.ErrMembershipNotFound)

	ok, err := p.Can(ctx, member, ActionEventRegister, Target{ClubID: clubID})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCan_MessageDeleteBySender(t *testing.T) {
	p, memberships, _ := newPolicy()
	ctx := context.Background()

	ok, err := p.Can(ctx, member, ActionMessageDelete, Target{ClubID: clubID, OwnerID: member.ID})
	require.NoError(t, err)
	assert.True(t, ok)
	memberships.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)

	memberships.On("Get", ctx, clubID, member.ID).Return(&models.ClubMembership{UserID: member.ID}, nil)
	ok, err = p.Can(ctx, member, ActionMessageDelete, Target{ClubID: clubID, OwnerID: 99})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthorize_ReturnsPermissionDenied(t *testing.T) {
	p, _, _ := newPolicy()

	err := p.Authorize(context.Background(), member, ActionDashboardView, Target{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = p.Authorize(context.Background(), nil, ActionEventView, Target{ClubID: clubID})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAuthorize_PropagatesLookupFailure(t *testing.T) {
	p, memberships, _ := newPolicy()
	ctx := context.Background()
	boom := errors.New("connection reset")
	memberships.On("Get", ctx, clubID, leader.ID).Return(nil, boom)

	err := p.Authorize(ctx, leader, ActionClubUpdate, Target{ClubID: clubID})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestLoadActor(t *testing.T) {
	p, _, users := newPolicy()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(2)).Return(leader, nil)
	users.On("GetByID", ctx, int64(404)).Return(nil, apperrors.ErrUserNotFound)

	actor, err := p.LoadActor(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.RoleLeader, actor.Role)

	_, err = p.LoadActor(ctx, 404)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
