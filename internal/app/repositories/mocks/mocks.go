// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/clubhub/internal/app/models"
)

// Transactor runs fn directly, without a database
type Transactor struct{}

// WithinTransaction implements db.Transactor
func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *models.User, profile *models.UserProfile) error {
	args := m.Called(ctx, user, profile)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, userID int64, role models.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserRepo) CountByRole(ctx context.Context) (map[models.Role]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.Role]int64), args.Error(1)
}

// MockTokenRepo
type MockTokenRepo struct {
	mock.Mock
}

func (m *MockTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockTokenRepo) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}
func (m *MockTokenRepo) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockClubRepo
type MockClubRepo struct {
	mock.Mock
}

func (m *MockClubRepo) Create(ctx context.Context, club *models.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}
func (m *MockClubRepo) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Club), args.Error(1)
}
func (m *MockClubRepo) Update(ctx context.Context, club *models.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}
func (m *MockClubRepo) Approve(ctx context.Context, id, approverID int64) error {
	args := m.Called(ctx, id, approverID)
	return args.Error(0)
}
func (m *MockClubRepo) List(ctx context.Context, filter models.ClubFilter, offset uint64, limit int) ([]*models.Club, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Club), args.Get(1).(int64), args.Error(2)
}
func (m *MockClubRepo) DeleteCascade(ctx context.Context, id int64) (*models.ClubDeletionSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClubDeletionSummary), args.Error(1)
}

// MockMembershipRepo
type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) Create(ctx context.Context, membership *models.ClubMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}
func (m *MockMembershipRepo) Get(ctx context.Context, clubID, userID int64) (*models.ClubMembership, error) {
	args := m.Called(ctx, clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClubMembership), args.Error(1)
}
func (m *MockMembershipRepo) ListByClub(ctx context.Context, clubID int64) ([]*models.ClubMembership, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ClubMembership), args.Error(1)
}
func (m *MockMembershipRepo) LockLeaders(ctx context.Context, clubID int64) ([]int64, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
func (m *MockMembershipRepo) SetLeader(ctx context.Context, clubID, userID int64, isLeader bool) error {
	args := m.Called(ctx, clubID, userID, isLeader)
	return args.Error(0)
}
func (m *MockMembershipRepo) Delete(ctx context.Context, clubID, userID int64) error {
	args := m.Called(ctx, clubID, userID)
	return args.Error(0)
}

// MockJoinRequestRepo
type MockJoinRequestRepo struct {
	mock.Mock
}

func (m *MockJoinRequestRepo) Create(ctx context.Context, request *models.ClubJoinRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) GetByID(ctx context.Context, id int64) (*models.ClubJoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClubJoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) GetByUserAndClub(ctx context.Context, userID, clubID int64) (*models.ClubJoinRequest, error) {
	args := m.Called(ctx, userID, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClubJoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) Resolve(ctx context.Context, id int64, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) ListPending(ctx context.Context, clubID *int64, limit int) ([]*models.ClubJoinRequest, error) {
	args := m.Called(ctx, clubID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ClubJoinRequest), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}
func (m *MockEventRepo) Update(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEventRepo) List(ctx context.Context, filter models.EventFilter, limit int) ([]*models.Event, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

// MockRegistrationRepo
type MockRegistrationRepo struct {
	mock.Mock
}

func (m *MockRegistrationRepo) Create(ctx context.Context, registration *models.EventRegistration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}
func (m *MockRegistrationRepo) Get(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventRegistration), args.Error(1)
}
func (m *MockRegistrationRepo) ListByEvent(ctx context.Context, eventID int64) ([]*models.EventRegistration, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EventRegistration), args.Error(1)
}
func (m *MockRegistrationRepo) Delete(ctx context.Context, eventID, userID int64) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

// MockTeamRepo
type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) Create(ctx context.Context, team *models.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}
func (m *MockTeamRepo) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}
func (m *MockTeamRepo) ListByEvent(ctx context.Context, eventID int64) ([]*models.Team, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Team), args.Error(1)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
func (m *MockMessageRepo) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}
func (m *MockMessageRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMessageRepo) ListByClub(ctx context.Context, clubID int64, offset uint64, limit int) ([]*models.Message, int64, error) {
	args := m.Called(ctx, clubID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Message), args.Get(1).(int64), args.Error(2)
}
func (m *MockMessageRepo) ListRecentBySender(ctx context.Context, senderID int64, limit int) ([]*models.Message, error) {
	args := m.Called(ctx, senderID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

// MockLeaderScoreRepo
type MockLeaderScoreRepo struct {
	mock.Mock
}

func (m *MockLeaderScoreRepo) ListLeaderActivity(ctx context.Context, since time.Time) ([]models.LeaderActivity, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderActivity), args.Error(1)
}
func (m *MockLeaderScoreRepo) SaveSnapshot(ctx context.Context, scores []models.LeaderScore) error {
	args := m.Called(ctx, scores)
	return args.Error(0)
}
func (m *MockLeaderScoreRepo) LatestSnapshot(ctx context.Context) ([]models.LeaderScore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderScore), args.Error(1)
}

// MockStatsRepo
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) Overview(ctx context.Context, now time.Time) (*models.DashboardStats, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}
func (m *MockStatsRepo) TopClubsByMembers(ctx context.Context, limit int) ([]models.ClubStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClubStat), args.Error(1)
}
func (m *MockStatsRepo) TopClubsByEvents(ctx context.Context, limit int) ([]models.ClubStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClubStat), args.Error(1)
}
