package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/db"
)

// psql is the statement builder shared by all repositories
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// IUserRepository defines user and profile storage
type IUserRepository interface {
	Create(ctx context.Context, user *models.User, profile *models.UserProfile) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *models.UserProfile) error
	UpdateRole(ctx context.Context, userID int64, role models.Role) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	CountByRole(ctx context.Context) (map[models.Role]int64, error)
}

// ITokenRepository defines refresh token storage
type ITokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

// IClubRepository defines club storage. DeleteCascade owns the removal of every child collection.
type IClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	Approve(ctx context.Context, id, approverID int64) error
	List(ctx context.Context, filter models.ClubFilter, offset uint64, limit int) ([]*models.Club, int64, error)
	DeleteCascade(ctx context.Context, id int64) (*models.ClubDeletionSummary, error)
}

// IMembershipRepository defines club roster storage
type IMembershipRepository interface {
	Create(ctx context.Context, membership *models.ClubMembership) error
	Get(ctx context.Context, clubID, userID int64) (*models.ClubMembership, error)
	ListByClub(ctx context.Context, clubID int64) ([]*models.ClubMembership, error)
	LockLeaders(ctx context.Context, clubID int64) ([]int64, error)
	SetLeader(ctx context.Context, clubID, userID int64, isLeader bool) error
	Delete(ctx context.Context, clubID, userID int64) error
}

// IJoinRequestRepository defines join request storage
type IJoinRequestRepository interface {
	Create(ctx context.Context, request *models.ClubJoinRequest) error
	GetByID(ctx context.Context, id int64) (*models.ClubJoinRequest, error)
	GetByUserAndClub(ctx context.Context, userID, clubID int64) (*models.ClubJoinRequest, error)
	Resolve(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
	ListPending(ctx context.Context, clubID *int64, limit int) ([]*models.ClubJoinRequest, error)
}

// IEventRepository defines event storage
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.EventFilter, limit int) ([]*models.Event, error)
}

// IRegistrationRepository defines event participation storage
type IRegistrationRepository interface {
	Create(ctx context.Context, registration *models.EventRegistration) error
	Get(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*models.EventRegistration, error)
	Delete(ctx context.Context, eventID, userID int64) error
}

// ITeamRepository defines team storage
type ITeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*models.Team, error)
}

// IMessageRepository defines message board storage
type IMessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	Delete(ctx context.Context, id int64) error
	ListByClub(ctx context.Context, clubID int64, offset uint64, limit int) ([]*models.Message, int64, error)
	ListRecentBySender(ctx context.Context, senderID int64, limit int) ([]*models.Message, error)
}

// ILeaderScoreRepository reads leader activity and stores ranking snapshots
type ILeaderScoreRepository interface {
	ListLeaderActivity(ctx context.Context, since time.Time) ([]models.LeaderActivity, error)
	SaveSnapshot(ctx context.Context, scores []models.LeaderScore) error
	LatestSnapshot(ctx context.Context) ([]models.LeaderScore, error)
}

// IStatsRepository aggregates platform figures for the admin dashboard
type IStatsRepository interface {
	Overview(ctx context.Context, now time.Time) (*models.DashboardStats, error)
	TopClubsByMembers(ctx context.Context, limit int) ([]models.ClubStat, error)
	TopClubsByEvents(ctx context.Context, limit int) ([]models.ClubStat, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	ClubRepository         *ClubRepository
	MembershipRepository   *MembershipRepository
	JoinRequestRepository  *JoinRequestRepository
	EventRepository        *EventRepository
	RegistrationRepository *RegistrationRepository
	TeamRepository         *TeamRepository
	MessageRepository      *MessageRepository
	LeaderScoreRepository  *LeaderScoreRepository
	StatsRepository        *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(conn),
		TokenRepository:        NewTokenRepository(conn),
		ClubRepository:         NewClubRepository(conn),
		MembershipRepository:   NewMembershipRepository(conn),
		JoinRequestRepository:  NewJoinRequestRepository(conn),
		EventRepository:        NewEventRepository(conn),
		RegistrationRepository: NewRegistrationRepository(conn),
		TeamRepository:         NewTeamRepository(conn),
		MessageRepository:      NewMessageRepository(conn),
		LeaderScoreRepository:  NewLeaderScoreRepository(conn),
		StatsRepository:        NewStatsRepository(conn),
	}
}
