package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/repositories/mocks"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	auth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

var (
	fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	adminUser  = &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	leaderUser = &models.User{ID: 2, Username: "leader", Role: models.RoleLeader}
	memberUser = &models.User{ID: 3, Username: "member", Role: models.RoleMember}
)

type fixture struct {
	users         *mocks.MockUserRepo
	tokens        *mocks.MockTokenRepo
	clubs         *mocks.MockClubRepo
	memberships   *mocks.MockMembershipRepo
	joinRequests  *mocks.MockJoinRequestRepo
	events        *mocks.MockEventRepo
	registrations *mocks.MockRegistrationRepo
	teams         *mocks.MockTeamRepo
	messages      *mocks.MockMessageRepo
	scores        *mocks.MockLeaderScoreRepo
	stats         *mocks.MockStatsRepo
	storage       *mocks.MockStorage
	policy        *authz.Policy
}

func newFixture() *fixture {
	f := &fixture{
		users:         new(mocks.MockUserRepo),
		tokens:        new(mocks.MockTokenRepo),
		clubs:         new(mocks.MockClubRepo),
		memberships:   new(mocks.MockMembershipRepo),
		joinRequests:  new(mocks.MockJoinRequestRepo),
		events:        new(mocks.MockEventRepo),
		registrations: new(mocks.MockRegistrationRepo),
		teams:         new(mocks.MockTeamRepo),
		messages:      new(mocks.MockMessageRepo),
		scores:        new(mocks.MockLeaderScoreRepo),
		stats:         new(mocks.MockStatsRepo),
		storage:       new(mocks.MockStorage),
	}
	f.policy = authz.NewPolicy(f.users, f.memberships)
	return f
}

func (f *fixture) clubService() *ClubService {
	s := NewClubService(f.clubs, f.memberships, f.joinRequests, f.events, mocks.Transactor{}, f.policy, f.storage, zerolog.Nop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func (f *fixture) membershipService() *MembershipService {
	return NewMembershipService(f.clubs, f.memberships, f.joinRequests, mocks.Transactor{}, f.policy, zerolog.Nop())
}

func (f *fixture) eventService() *EventService {
	s := NewEventService(f.clubs, f.memberships, f.events, f.registrations, f.teams, mocks.Transactor{}, f.policy, f.storage, zerolog.Nop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func (f *fixture) messageService() *MessageService {
	return NewMessageService(f.clubs, f.messages, f.policy, zerolog.Nop())
}

func (f *fixture) leaderService() *LeaderService {
	s := NewLeaderService(f.users, f.scores, mocks.Transactor{}, f.policy, 0, zerolog.Nop())
	s.now = func() time.Time { return fixedNow }
	return s
}

// asLeader makes user a leader of clubID for policy lookups
func (f *fixture) asLeader(user *models.User, clubID int64) {
	f.memberships.On("Get", mock.Anything, clubID, user.ID).
		Return(&models.ClubMembership{UserID: user.ID, ClubID: clubID, IsLeader: true}, nil)
}

// asMember makes user a regular member of clubID for policy lookups
func (f *fixture) asMember(user *models.User, clubID int64) {
	f.memberships.On("Get", mock.Anything, clubID, user.ID).
		Return(&models.ClubMembership{UserID: user.ID, ClubID: clubID}, nil)
}

// asOutsider makes user unrelated to clubID
func (f *fixture) asOutsider(user *models.User, clubID int64) {
	f.memberships.On("Get", mock.Anything, clubID, user.ID).Return(nil, apperrors.ErrMembershipNotFound)
}

func approvedClub(id int64) *models.Club {
	return &models.Club{ID: id, Name: "Chess", Description: "games", CreatedBy: leaderUser.ID, IsApproved: true, MemberCount: 2}
}

var testCtx = context.Background()
