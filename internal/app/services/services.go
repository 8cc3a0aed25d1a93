package services

import (
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/auth"
	"github.com/yigit/clubhub/internal/pkg/filestorage"
	"github.com/yigit/clubhub/internal/pkg/logger"
)

// Services holds all the service instances
type Services struct {
	Policy            *authz.Policy
	AuthService       *AuthService
	UserService       *UserService
	ClubService       *ClubService
	MembershipService *MembershipService
	EventService      *EventService
	MessageService    *MessageService
	SearchService     *SearchService
	LeaderService     *LeaderService
	AdminService      *AdminService
}

// NewServices wires every service onto the repositories. leaderLimit is the
// length of leader candidate lists.
func NewServices(
	repos *repositories.Repositories,
	tx db.Transactor,
	jwtService *auth.JWTService,
	storage filestorage.Storage,
	leaderLimit int,
) *Services {
	policy := authz.NewPolicy(repos.UserRepository, repos.MembershipRepository)
	clubs := NewClubService(repos.ClubRepository, repos.MembershipRepository, repos.JoinRequestRepository,
		repos.EventRepository, tx, policy, storage, logger.Component("club_service"))
	events := NewEventService(repos.ClubRepository, repos.MembershipRepository, repos.EventRepository,
		repos.RegistrationRepository, repos.TeamRepository, tx, policy, storage, logger.Component("event_service"))
	leaders := NewLeaderService(repos.UserRepository, repos.LeaderScoreRepository, tx, policy, leaderLimit, logger.Component("leader_service"))

	return &Services{
		Policy:      policy,
		AuthService: NewAuthService(repos.UserRepository, repos.TokenRepository, tx, jwtService, logger.Component("auth_service")),
		UserService: NewUserService(repos.UserRepository, repos.ClubRepository, repos.MessageRepository, policy, storage, logger.Component("user_service")),
		ClubService: clubs,
		MembershipService: NewMembershipService(repos.ClubRepository, repos.MembershipRepository, repos.JoinRequestRepository,
			tx, policy, logger.Component("membership_service")),
		EventService:   events,
		MessageService: NewMessageService(repos.ClubRepository, repos.MessageRepository, policy, logger.Component("message_service")),
		SearchService:  NewSearchService(clubs, events, logger.Component("search_service")),
		LeaderService:  leaders,
		AdminService: NewAdminService(repos.UserRepository, repos.ClubRepository, repos.JoinRequestRepository,
			repos.StatsRepository, leaders, policy, logger.Component("admin_service")),
	}
}
