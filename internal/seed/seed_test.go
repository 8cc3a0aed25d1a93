package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/repositories/mocks"
	"github.com/yigit/clubhub/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestEnsureAdmin(t *testing.T) {
	auth.BcryptCost = bcrypt.MinCost
	account := AdminAccount{Username: "admin", Email: "admin@example.com", Password: "s3cret-pass"}

	t.Run("creates admin", func(t *testing.T) {
		users := new(mocks.MockUserRepo)
		users.On("UsernameExists", mock.Anything, "admin").Return(false, nil)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleAdmin && auth.CheckPassword(u.Password, "s3cret-pass")
		}), mock.MatchedBy(func(p *models.UserProfile) bool {
			return p.Role == models.RoleAdmin
		})).Return(nil)

		require.NoError(t, EnsureAdmin(context.Background(), users, mocks.Transactor{}, account, zerolog.Nop()))
		users.AssertExpectations(t)
	})

	t.Run("existing admin untouched", func(t *testing.T) {
		users := new(mocks.MockUserRepo)
		users.On("UsernameExists", mock.Anything, "admin").Return(true, nil)

		require.NoError(t, EnsureAdmin(context.Background(), users, mocks.Transactor{}, account, zerolog.Nop()))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no password configured", func(t *testing.T) {
		users := new(mocks.MockUserRepo)

		err := EnsureAdmin(context.Background(), users, mocks.Transactor{}, AdminAccount{Username: "admin"}, zerolog.Nop())

		assert.NoError(t, err)
		users.AssertNotCalled(t, "UsernameExists", mock.Anything, mock.Anything)
	})
}
