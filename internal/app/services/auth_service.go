package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/auth"
)

// AuthService handles registration, login and refresh token rotation
type AuthService struct {
	users      repositories.IUserRepository
	tokens     repositories.ITokenRepository
	tx         db.Transactor
	jwtService *auth.JWTService
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users repositories.IUserRepository,
	tokens repositories.ITokenRepository,
	tx db.Transactor,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		tx:         tx,
		jwtService: jwtService,
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates an account with a self-chosen role and logs it in.
// Leader credentials are kept only for leaders.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	s.logger.Debug().Str("username", req.Username).Str("role", string(req.Role)).Msg("Registering user")

	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}
	if !req.Role.SelfAssignable() {
		return nil, apperrors.ErrInvalidRole
	}

	exists, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameTaken
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Role:     req.Role,
	}
	profile := &models.UserProfile{Role: req.Role}
	if req.Role == models.RoleLeader {
		profile.PhoneNumber = req.PhoneNumber
		profile.Experience = req.Experience
		profile.Achievements = req.Achievements
		profile.Certificates = req.Certificates
		profile.Education = req.Education
		profile.ExperienceDoc = req.Documents.Experience
		profile.AchievementsDoc = req.Documents.Achievements
		profile.CertificatesDoc = req.Documents.Certificates
		profile.EducationDoc = req.Documents.Education
	}

	var resp *dto.TokenResponse
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, user, profile); err != nil {
			return err
		}
		var err error
		resp, err = s.issueTokens(ctx, user)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrUsernameTaken) {
			s.logger.Error().Err(err).Str("username", req.Username).Msg("Registration failed")
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return resp, nil
}

// Login checks credentials and issues a new token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	s.logger.Debug().Str("username", req.Username).Msg("Login attempt")

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new pair. The old token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if stored.ExpiresAt.Before(s.now()) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	var resp *dto.TokenResponse
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
			return err
		}
		var err error
		resp, err = s.issueTokens(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Create(ctx, &models.RefreshToken{
		Token:     pair.RefreshToken,
		UserID:    user.ID,
		ExpiresAt: pair.RefreshExpiresAt,
	}); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        pair.ExpiresIn,
		RefreshExpiresIn: pair.RefreshExpiresIn,
		User:             dto.NewUserResponse(user),
	}, nil
}
