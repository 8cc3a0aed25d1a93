package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

func individualEvent(id, clubID int64) *models.Event {
	return &models.Event{
		ID:               id,
		Title:            "Blitz night",
		ClubID:           clubID,
		StartDate:        fixedNow.Add(24 * time.Hour),
		EndDate:          fixedNow.Add(26 * time.Hour),
		RegistrationType: models.RegistrationIndividual,
	}
}

func teamEvent(id, clubID int64) *models.Event {
	e := individualEvent(id, clubID)
	e.RegistrationType = models.RegistrationTeam
	return e
}

func int64Ptr(v int64) *int64 { return &v }

func TestEventCreate(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asLeader(leaderUser, 1)
	f.events.On("Create", mock.Anything, mock.MatchedBy(func(e *models.Event) bool {
		return e.ClubID == 1 && e.CreatedBy == leaderUser.ID && e.RegistrationType == models.RegistrationIndividual
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Event).ID = 40
	}).Return(nil)

	event, err := f.eventService().Create(testCtx, leaderUser, 1, &dto.CreateEventRequest{
		Title:     "Blitz night",
		StartDate: fixedNow,
		EndDate:   fixedNow.Add(time.Hour),
		Location:  "Room 4",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(40), event.ID)
	assert.Equal(t, "Chess", event.ClubName)
}

func TestEventCreate_EndBeforeStart(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)

	_, err := f.eventService().Create(testCtx, adminUser, 1, &dto.CreateEventRequest{
		Title:     "Backwards",
		StartDate: fixedNow,
		EndDate:   fixedNow.Add(-time.Minute),
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	f.events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEventCreate_MemberDenied(t *testing.T) {
	f := newFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(approvedClub(1), nil)
	f.asMember(memberUser, 1)

	_, err := f.eventService().Create(testCtx, memberUser, 1, &dto.CreateEventRequest{
		Title:     "Sneaky",
		StartDate: fixedNow,
		EndDate:   fixedNow,
	})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestEventDelete(t *testing.T) {
	image := "event_images/a.png"
	tests := []struct {
		name    string
		actor   *models.User
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name:  "leader deletes event and image",
			actor: leaderUser,
			setup: func(f *fixture) {
				f.asLeader(leaderUser, 1)
				f.events.On("Delete", mock.Anything, int64(40)).Return(nil)
				f.storage.On("Delete", image).Return(nil)
			},
		},
		{
			name:    "member denied",
			actor:   memberUser,
			setup:   func(f *fixture) { f.asMember(memberUser, 1) },
			wantErr: apperrors.ErrPermissionDenied,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			e := individualEvent(40, 1)
			e.Image = &image
			f.events.On("GetByID", mock.Anything, int64(40)).Return(e, nil)
			tc.setup(f)

			err := f.eventService().Delete(testCtx, tc.actor, 40)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				f.events.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			f.storage.AssertExpectations(t)
		})
	}
}

func TestRegister_Individual(t *testing.T) {
	f := newFixture()
	f.events.On("GetByID", mock.Anything, int64(40)).Return(individualEvent(40, 1), nil)
	f.asMember(memberUser, 1)
	f.registrations.On("Get", mock.Anything, int64(40), memberUser.ID).Return(nil, apperrors.ErrRegistrationNotFound)
	f.registrations.On("Create", mock.Anything, mock.MatchedBy(func(r *models.EventRegistration) bool {
		return r.EventID == 40 && r.UserID == memberUser.ID && r.TeamID == nil
	})).Return(nil)

	reg, err := f.eventService().Register(testCtx, memberUser, 40, nil)

	require.NoError(t, err)
	assert.Equal(t, memberUser.ID, reg.UserID)
	f.registrations.AssertExpectations(t)
}

func TestRegister_Twice(t *testing.T) {
	f := newFixture()
	f.events.On("GetByID", mock.Anything, int64(40)).Return(individualEvent(40, 1), nil)
	f.asMember(memberUser, 1)
	f.registrations.On("Get", mock.Anything, int64(40), memberUser.ID).
		Return(&models.EventRegistration{EventID: 40, UserID: memberUser.ID}, nil)

	_, err := f.eventService().Register(testCtx, memberUser, 40, nil)

	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	f.registrations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_RaceLostToUniqueConstraint(t *testing.T) {
	f := newFixture()
	f.events.On("GetByID", mock.Anything, int64(40)).Return(individualEvent(40, 1), nil)
	f.asMember(memberUser, 1)
	f.registrations.On("Get", mock.Anything, int64(40), memberUser.ID).Return(nil, apperrors.ErrRegistrationNotFound)
	f.registrations.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrAlreadyRegistered)

	_, err := f.eventService().Register(testCtx, memberUser, 40, nil)

	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
}

func TestRegister_OutsiderDenied(t *testing.T) {
	f := newFixture()
	f.events.On("GetByID", mock.Anything, int64(40)).Return(individualEvent(40, 1), nil)
	f.asOutsider(memberUser, 1)

	_, err := f.eventService().Register(testCtx, memberUser, 40, nil)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRegister_TeamRules(t *testing.T) {
	tests := []struct {
		name    string
		event   *models.Event
		teamID  *int64
		team    *models.Team
		wantErr error
	}{
		{
			name:    "team event without team",
			event:   teamEvent(40, 1),
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "team from another event",
			event:   teamEvent(40, 1),
			teamID:  int64Ptr(7),
			team:    &models.Team{ID: 7, EventID: 41, LeaderID: memberUser.ID},
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "not on the team",
			event:   teamEvent(40, 1),
			teamID:  int64Ptr(7),
			team:    &models.Team{ID: 7, EventID: 40, LeaderID: 9, MemberIDs: []int64{9, 10}},
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "team on individual event",
			event:   individualEvent(40, 1),
			teamID:  int64Ptr(7),
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:   "team member registers",
			event:  teamEvent(40, 1),
			teamID: int64Ptr(7),
			team:   &models.Team{ID: 7, EventID: 40, LeaderID: 9, MemberIDs: []int64{memberUser.ID, 9}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.events.On("GetByID", mock.Anything, int64(40)).Return(tc.event, nil)
			f.asMember(memberUser, 1)
			f.registrations.On("Get", mock.Anything, int64(40), memberUser.ID).Return(nil, apperrors.ErrRegistrationNotFound)
			if tc.team != nil {
				f.teams.On("GetByID", mock.Anything, tc.team.ID).Return(tc.team, nil)
			}
			f.registrations.On("Create", mock.Anything, mock.Anything).Return(nil)

			reg, err := f.eventService().Register(testCtx, memberUser, 40, tc.teamID)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				f.registrations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.teamID, reg.TeamID)
		})
	}
}

func TestCreateTeam(t *testing.T) {
	f := newFixture()
	f.events.On("GetByID", mock.Anything, int64(40)).Return(teamEvent(40, 1), nil)
	f.asMember(memberUser, 1)
	f.memberships.On("Get", mock.Anything, int64(1), int64(9)).
		Return(&models.ClubMembership{UserID: 9, ClubID: 1}, nil)
	f.teams.On("Create", mock.Anything, mock.MatchedBy(func(team *models.Team) bool {
		return team.Name == "Knights" && team.LeaderID == memberUser.ID && team.EventID == 40
	})).Return(nil)

	team, err := f.eventService().CreateTeam(testCtx, memberUser, 40, &dto.CreateTeamRequest{
		Name:      "  Knights ",
		MemberIDs: []int64{memberUser.ID, 9},
	})

	require.NoError(t, err)
	assert.Equal(t, "Knights", team.Name)
	f.teams.AssertExpectations(t)
}

func TestCreateTeam_Rejections(t *testing.T) {
	t.Run("individual event", func(t *testing.T) {
		f := newFixture()
		f.events.On("GetByID", mock.Anything, int64(40)).Return(individualEvent(40, 1), nil)
		f.asMember(memberUser, 1)

		_, err := f.eventService().CreateTeam(testCtx, memberUser, 40, &dto.CreateTeamRequest{Name: "Knights"})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("member outside club", func(t *testing.T) {
		f := newFixture()
		f.events.On("GetByID", mock.Anything, int64(40)).Return(teamEvent(40, 1), nil)
		f.asMember(memberUser, 1)
		f.memberships.On("Get", mock.Anything, int64(1), int64(99)).Return(nil, apperrors.ErrMembershipNotFound)

		_, err := f.eventService().CreateTeam(testCtx, memberUser, 40, &dto.CreateTeamRequest{
			Name:      "Knights",
			MemberIDs: []int64{99},
		})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		f.teams.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestEventDetail_MarksRegistration(t *testing.T) {
	f := newFixture()
	f.events.On("GetByID", mock.Anything, int64(40)).Return(teamEvent(40, 1), nil)
	f.asMember(memberUser, 1)
	f.registrations.On("ListByEvent", mock.Anything, int64(40)).Return([]*models.EventRegistration{
		{EventID: 40, UserID: 9, Username: "nine"},
		{EventID: 40, UserID: memberUser.ID, Username: memberUser.Username, TeamID: int64Ptr(7)},
	}, nil)
	f.teams.On("ListByEvent", mock.Anything, int64(40)).Return([]*models.Team{
		{ID: 7, Name: "Knights", EventID: 40, LeaderID: memberUser.ID},
	}, nil)

	detail, err := f.eventService().Detail(testCtx, memberUser, 40)

	require.NoError(t, err)
	assert.True(t, detail.IsRegistered)
	assert.Len(t, detail.Participants, 2)
	require.Len(t, detail.Teams, 1)
	assert.Equal(t, []int64{}, detail.Teams[0].MemberIDs)
	assert.False(t, detail.Event.IsClosed)
}

func TestUpcoming_ScopedByMembership(t *testing.T) {
	f := newFixture()
	f.events.On("List", mock.Anything, mock.MatchedBy(func(filter models.EventFilter) bool {
		return filter.MemberID != nil && *filter.MemberID == memberUser.ID &&
			filter.StartFrom != nil && filter.StartFrom.Equal(fixedNow)
	}), eventListLimit).Return([]*models.Event{individualEvent(40, 1)}, nil)

	events, err := f.eventService().Upcoming(testCtx, memberUser)

	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestSearch_EmptyQuery(t *testing.T) {
	f := newFixture()

	_, err := f.eventService().Search(testCtx, adminUser, "   ")

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
