package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/clubhub/internal/app/models"
	appRepos "github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/auth"
)

// AdminAccount is the bootstrap administrator taken from configuration
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// EnsureAdmin creates the configured administrator unless the username exists.
// Admins cannot self-register, so this is the only way the first one appears.
func EnsureAdmin(ctx context.Context, users appRepos.IUserRepository, tx db.Transactor, account AdminAccount, lgr zerolog.Logger) error {
	if account.Password == "" {
		lgr.Warn().Msg("Admin password not configured, skipping admin seed")
		return nil
	}

	exists, err := users.UsernameExists(ctx, account.Username)
	if err != nil {
		return fmt.Errorf("error checking admin user: %w", err)
	}
	if exists {
		lgr.Debug().Str("username", account.Username).Msg("Admin user already present")
		return nil
	}

	hashed, err := auth.HashPassword(account.Password)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	user := &appModels.User{
		Username: account.Username,
		Email:    account.Email,
		Password: hashed,
		Role:     appModels.RoleAdmin,
	}
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return users.Create(ctx, user, &appModels.UserProfile{Role: appModels.RoleAdmin})
	})
	if err != nil {
		return fmt.Errorf("error creating admin user: %w", err)
	}

	lgr.Info().Str("username", user.Username).Int64("userID", user.ID).Msg("Admin user created")
	return nil
}
