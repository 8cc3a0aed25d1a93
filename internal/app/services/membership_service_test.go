package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

func TestSubmitJoinRequest_AlreadyMember(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asMember(memberUser, 1)

	_, err := f.membershipService().SubmitJoinRequest(testCtx, memberUser, 1, "hi")

	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
	f.joinRequests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitJoinRequest_PendingBlocksSecondRequest(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asOutsider(memberUser, 1)
	f.joinRequests.On("GetByUserAndClub", mock.Anything, memberUser.ID, int64(1)).
		Return(&models.ClubJoinRequest{ID: 20, UserID: memberUser.ID, ClubID: 1}, nil)

	_, err := f.membershipService().SubmitJoinRequest(testCtx, memberUser, 1, "again")

	assert.ErrorIs(t, err, apperrors.ErrJoinRequestPending)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	f.joinRequests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitJoinRequest_FirstRequest(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asOutsider(memberUser, 1)
	f.joinRequests.On("GetByUserAndClub", mock.Anything, memberUser.ID, int64(1)).Return(nil, apperrors.ErrJoinRequestNotFound)
	f.joinRequests.On("Create", mock.Anything, mock.MatchedBy(func(jr *models.ClubJoinRequest) bool {
		return jr.UserID == memberUser.ID && jr.ClubID == 1 && jr.Message == "hello"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.ClubJoinRequest).ID = 21
	}).Return(nil)

	resp, err := f.membershipService().SubmitJoinRequest(testCtx, memberUser, 1, "hello")

	require.NoError(t, err)
	assert.Equal(t, int64(21), resp.ID)
	assert.Equal(t, models.JoinRequestPending, resp.Status)
	assert.False(t, resp.Resubmitted)
	f.joinRequests.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSubmitJoinRequest_RejectedIsReplaced(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asOutsider(memberUser, 1)
	f.joinRequests.On("GetByUserAndClub", mock.Anything, memberUser.ID, int64(1)).
		Return(&models.ClubJoinRequest{ID: 20, UserID: memberUser.ID, ClubID: 1, IsRejected: true}, nil)
	f.joinRequests.On("Delete", mock.Anything, int64(20)).Return(nil)
	f.joinRequests.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.membershipService().SubmitJoinRequest(testCtx, memberUser, 1, "please")

	require.NoError(t, err)
	assert.True(t, resp.Resubmitted)
	assert.Equal(t, models.JoinRequestPending, resp.Status)
	f.joinRequests.AssertExpectations(t)
}

func TestSubmitJoinRequest_ApprovedButLeftIsReplaced(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asOutsider(memberUser, 1)
	f.joinRequests.On("GetByUserAndClub", mock.Anything, memberUser.ID, int64(1)).
		Return(&models.ClubJoinRequest{ID: 20, UserID: memberUser.ID, ClubID: 1, IsApproved: true}, nil)
	f.joinRequests.On("Delete", mock.Anything, int64(20)).Return(nil)
	f.joinRequests.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.membershipService().SubmitJoinRequest(testCtx, memberUser, 1, "")

	require.NoError(t, err)
	assert.True(t, resp.Resubmitted)
}

func TestSubmitJoinRequest_ConcurrentDuplicateIsConflict(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asOutsider(memberUser, 1)
	f.joinRequests.On("GetByUserAndClub", mock.Anything, memberUser.ID, int64(1)).Return(nil, apperrors.ErrJoinRequestNotFound)
	f.joinRequests.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrJoinRequestExists)

	_, err := f.membershipService().SubmitJoinRequest(testCtx, memberUser, 1, "")

	assert.ErrorIs(t, err, apperrors.ErrJoinRequestExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSubmitJoinRequest_ConcurrentResubmissionIsConflict(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asOutsider(memberUser, 1)
	f.joinRequests.On("GetByUserAndClub", mock.Anything, memberUser.ID, int64(1)).
		Return(&models.ClubJoinRequest{ID: 20, UserID: memberUser.ID, ClubID: 1, IsRejected: true}, nil)
	// the other submission deleted row 20 first
	f.joinRequests.On("Delete", mock.Anything, int64(20)).Return(apperrors.ErrJoinRequestNotFound)

	_, err := f.membershipService().SubmitJoinRequest(testCtx, memberUser, 1, "please")

	assert.ErrorIs(t, err, apperrors.ErrJoinRequestExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NotErrorIs(t, err, apperrors.ErrResourceNotFound)
	f.joinRequests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitJoinRequest_UnapprovedClub(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(&models.Club{ID: 1}, nil)

	_, err := f.membershipService().SubmitJoinRequest(testCtx, memberUser, 1, "")

	assert.ErrorIs(t, err, apperrors.ErrClubNotApproved)
}

func TestSubmitJoinRequest_MissingClub(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(404)).Return(nil, apperrors.ErrClubNotFound)

	_, err := f.membershipService().SubmitJoinRequest(testCtx, memberUser, 404, "")

	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestHandleJoinRequest_ApproveAddsMember(t *testing.T) {
	f := newFixture()
	f.joinRequests.On("GetByID", mock.Anything, int64(30)).
		Return(&models.ClubJoinRequest{ID: 30, UserID: memberUser.ID, ClubID: 1}, nil)
	f.asLeader(leaderUser, 1)
	f.joinRequests.On("Resolve", mock.Anything, int64(30), true).Return(nil)
	f.memberships.On("Create", mock.Anything, mock.MatchedBy(func(m *models.ClubMembership) bool {
		return m.UserID == memberUser.ID && m.ClubID == 1 && !m.IsLeader
	})).Return(nil)

	resp, err := f.membershipService().HandleJoinRequest(testCtx, leaderUser, 30, dto.JoinRequestApprove)

	require.NoError(t, err)
	assert.Equal(t, models.JoinRequestApproved, resp.Status)
	f.joinRequests.AssertExpectations(t)
	f.memberships.AssertExpectations(t)
}

func TestHandleJoinRequest_RejectAddsNoMember(t *testing.T) {
	f := newFixture()
	f.joinRequests.On("GetByID", mock.Anything, int64(30)).
		Return(&models.ClubJoinRequest{ID: 30, UserID: memberUser.ID, ClubID: 1}, nil)
	f.joinRequests.On("Resolve", mock.Anything, int64(30), false).Return(nil)

	resp, err := f.membershipService().HandleJoinRequest(testCtx, adminUser, 30, dto.JoinRequestReject)

	require.NoError(t, err)
	assert.Equal(t, models.JoinRequestRejected, resp.Status)
	f.memberships.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandleJoinRequest_AlreadyHandled(t *testing.T) {
	f := newFixture()
	f.joinRequests.On("GetByID", mock.Anything, int64(30)).
		Return(&models.ClubJoinRequest{ID: 30, UserID: memberUser.ID, ClubID: 1, IsRejected: true}, nil)

	_, err := f.membershipService().HandleJoinRequest(testCtx, adminUser, 30, dto.JoinRequestApprove)

	assert.ErrorIs(t, err, apperrors.ErrJoinRequestHandled)
	f.joinRequests.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleJoinRequest_MemberDenied(t *testing.T) {
	f := newFixture()
	f.joinRequests.On("GetByID", mock.Anything, int64(30)).
		Return(&models.ClubJoinRequest{ID: 30, UserID: 9, ClubID: 1}, nil)
	f.asMember(memberUser, 1)

	_, err := f.membershipService().HandleJoinRequest(testCtx, memberUser, 30, dto.JoinRequestApprove)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	f.joinRequests.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleJoinRequest_InvalidAction(t *testing.T) {
	f := newFixture()

	_, err := f.membershipService().HandleJoinRequest(testCtx, adminUser, 30, dto.JoinRequestAction("maybe"))

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLeaveClub_SoleLeaderBlocked(t *testing.T) {
	f := newFixture()
	f.asLeader(leaderUser, 1)
	f.memberships.On("LockLeaders", mock.Anything, int64(1)).Return([]int64{leaderUser.ID}, nil)

	err := f.membershipService().LeaveClub(testCtx, leaderUser, 1)

	assert.ErrorIs(t, err, apperrors.ErrSoleLeader)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	f.memberships.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeaveClub_LeaderWithCoLeader(t *testing.T) {
	f := newFixture()
	f.asLeader(leaderUser, 1)
	f.memberships.On("LockLeaders", mock.Anything, int64(1)).Return([]int64{leaderUser.ID, 7}, nil)
	f.memberships.On("Delete", mock.Anything, int64(1), leaderUser.ID).Return(nil)

	require.NoError(t, f.membershipService().LeaveClub(testCtx, leaderUser, 1))
	f.memberships.AssertExpectations(t)
}

func TestLeaveClub_Member(t *testing.T) {
	f := newFixture()
	f.asMember(memberUser, 1)
	f.memberships.On("Delete", mock.Anything, int64(1), memberUser.ID).Return(nil)

	require.NoError(t, f.membershipService().LeaveClub(testCtx, memberUser, 1))
	f.memberships.AssertNotCalled(t, "LockLeaders", mock.Anything, mock.Anything)
}

func TestLeaveClub_NotMember(t *testing.T) {
	f := newFixture()
	f.asOutsider(memberUser, 1)

	err := f.membershipService().LeaveClub(testCtx, memberUser, 1)

	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestPromoteMember(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asLeader(leaderUser, 1)
	f.asMember(memberUser, 1)
	f.memberships.On("SetLeader", mock.Anything, int64(1), memberUser.ID, true).Return(nil)

	require.NoError(t, f.membershipService().PromoteMember(testCtx, leaderUser, 1, memberUser.ID))
	f.memberships.AssertExpectations(t)
}

func TestPromoteMember_TargetNotMember(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asOutsider(memberUser, 1)

	err := f.membershipService().PromoteMember(testCtx, adminUser, 1, memberUser.ID)

	assert.ErrorIs(t, err, apperrors.ErrMembershipNotFound)
	f.memberships.AssertNotCalled(t, "SetLeader", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
