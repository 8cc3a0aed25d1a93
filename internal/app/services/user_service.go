package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/filestorage"
)

const (
	// profileClubLimit caps the clubs listed on a profile page
	profileClubLimit = 100
	// recentMessageLimit is how many of a user's messages the admin view shows
	recentMessageLimit = 5
)

// UserService serves profile pages
type UserService struct {
	users    repositories.IUserRepository
	clubs    repositories.IClubRepository
	messages repositories.IMessageRepository
	policy   *authz.Policy
	storage  filestorage.Storage
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users repositories.IUserRepository,
	clubs repositories.IClubRepository,
	messages repositories.IMessageRepository,
	policy *authz.Policy,
	storage filestorage.Storage,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		clubs:    clubs,
		messages: messages,
		policy:   policy,
		storage:  storage,
		logger:   logger,
	}
}

// GetProfile returns the actor's own profile and clubs
func (s *UserService) GetProfile(ctx context.Context, actor *models.User) (*dto.ProfileResponse, error) {
	return s.profile(ctx, actor)
}

// GetUser returns any user's profile with the clubs they lead and their
// latest messages. Admin only.
func (s *UserService) GetUser(ctx context.Context, actor *models.User, userID int64) (*dto.ProfileResponse, error) {
	if err := s.policy.Authorize(ctx, actor, authz.ActionUserView, authz.Target{}); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp, err := s.profile(ctx, user)
	if err != nil {
		return nil, err
	}

	led, err := s.leaderClubs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.messages.ListRecentBySender(ctx, user.ID, recentMessageLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing user messages: %w", err)
	}

	resp.LeaderClubs = dto.NewClubResponses(led)
	resp.RecentMessages = dto.NewMessageResponses(recent)
	return resp, nil
}

// LeaderDetails returns the public page of a club leader. Users who lead no
// club and are not admins have no such page.
func (s *UserService) LeaderDetails(ctx context.Context, actor *models.User, userID int64) (*dto.LeaderDetailsResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	led, err := s.leaderClubs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(led) == 0 && !s.policy.IsAdmin(user) {
		s.logger.Debug().Int64("actorID", actor.ID).Int64("userID", userID).Msg("Leader page requested for non-leader")
		return nil, apperrors.ErrUserNotFound
	}

	profile, err := s.users.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LeaderDetailsResponse{
		User:        dto.NewUserResponse(user),
		Profile:     profile,
		LeaderClubs: dto.NewClubResponses(led),
	}, nil
}

func (s *UserService) leaderClubs(ctx context.Context, userID int64) ([]*models.Club, error) {
	clubs, _, err := s.clubs.List(ctx, models.ClubFilter{LeaderID: &userID}, 0, profileClubLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing led clubs: %w", err)
	}
	return clubs, nil
}

func (s *UserService) profile(ctx context.Context, user *models.User) (*dto.ProfileResponse, error) {
	profile, err := s.users.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	clubs, _, err := s.clubs.List(ctx, models.ClubFilter{MemberID: &user.ID}, 0, profileClubLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing user clubs: %w", err)
	}

	return &dto.ProfileResponse{
		User:    dto.NewUserResponse(user),
		Profile: profile,
		Clubs:   dto.NewClubResponses(clubs),
	}, nil
}

// UpdateProfile changes the actor's editable profile fields
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, req *dto.UpdateProfileRequest) (*models.UserProfile, error) {
	s.logger.Debug().Int64("userID", actor.ID).Msg("Updating profile")

	profile, err := s.users.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.Experience != nil {
		profile.Experience = req.Experience
	}
	if req.Achievements != nil {
		profile.Achievements = req.Achievements
	}
	if req.Certificates != nil {
		profile.Certificates = req.Certificates
	}
	if req.Education != nil {
		profile.Education = req.Education
	}

	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfilePicture stores an uploaded picture and replaces the previous one
func (s *UserService) UpdateProfilePicture(ctx context.Context, actor *models.User, file *multipart.FileHeader) (*models.UserProfile, error) {
	profile, err := s.users.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	ref, err := s.storage.Save(file, filestorage.FolderProfilePictures)
	if err != nil {
		return nil, err
	}

	previous := profile.ProfilePicture
	profile.ProfilePicture = &ref
	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		if delErr := s.storage.Delete(ref); delErr != nil {
			s.logger.Warn().Err(delErr).Str("ref", ref).Msg("Failed to clean up stored picture")
		}
		return nil, err
	}

	if previous != nil {
		if err := s.storage.Delete(*previous); err != nil {
			s.logger.Warn().Err(err).Str("ref", *previous).Msg("Failed to delete previous picture")
		}
	}
	return profile, nil
}
