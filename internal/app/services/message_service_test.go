package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

func TestPostMessage(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asMember(memberUser, 1)
	f.messages.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
		return m.Content == "see you tonight" && m.SenderID == memberUser.ID && m.ClubID == 1
	})).Return(nil)

	msg, err := f.messageService().Post(testCtx, memberUser, 1, "  see you tonight\n")

	require.NoError(t, err)
	assert.Equal(t, memberUser.Username, msg.SenderUsername)
}

func TestPostMessage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"blank", " \t "},
		{"too long", strings.Repeat("é", MaxMessageLength+1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
			f.asMember(memberUser, 1)

			_, err := f.messageService().Post(testCtx, memberUser, 1, tc.content)

			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			f.messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPostMessage_MaxLengthCountsCharacters(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asMember(memberUser, 1)
	f.messages.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.messageService().Post(testCtx, memberUser, 1, strings.Repeat("é", MaxMessageLength))

	require.NoError(t, err)
}

func TestPostMessage_OutsiderDenied(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asOutsider(memberUser, 1)

	_, err := f.messageService().Post(testCtx, memberUser, 1, "hello")

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDeleteMessage(t *testing.T) {
	msg := &models.Message{ID: 60, ClubID: 1, SenderID: 9}
	tests := []struct {
		name    string
		actor   *models.User
		setup   func(f *fixture)
		wantErr error
	}{
		{name: "admin", actor: adminUser},
		{
			name:  "club leader",
			actor: leaderUser,
			setup: func(f *fixture) { f.asLeader(leaderUser, 1) },
		},
		{
			name:    "other member",
			actor:   memberUser,
			setup:   func(f *fixture) { f.asMember(memberUser, 1) },
			wantErr: apperrors.ErrPermissionDenied,
		},
		{
			name:  "sender",
			actor: &models.User{ID: 9, Username: "nine", Role: models.RoleMember},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.messages.On("GetByID", mock.Anything, int64(60)).Return(msg, nil)
			f.messages.On("Delete", mock.Anything, int64(60)).Return(nil)
			if tc.setup != nil {
				tc.setup(f)
			}

			err := f.messageService().Delete(testCtx, tc.actor, 60)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				f.messages.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			f.messages.AssertCalled(t, "Delete", mock.Anything, int64(60))
		})
	}
}

func TestListMessages(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asMember(memberUser, 1)
	f.messages.On("ListByClub", mock.Anything, int64(1), uint64(0), 20).Return([]*models.Message{
		{ID: 62, ClubID: 1, Content: "newest"},
		{ID: 61, ClubID: 1, Content: "older"},
	}, int64(2), nil)

	resp, err := f.messageService().List(testCtx, memberUser, 1, 1, 20)

	require.NoError(t, err)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, int64(62), resp.Messages[0].ID)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.Equal(t, int64(2), resp.Pagination.TotalItems)
}
