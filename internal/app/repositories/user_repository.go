package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/dberrors"
)

const usernameUniqueConstraint = "users_username_key"

var userColumns = []string{"u.id", "u.username", "u.email", "u.password", "u.created_at", "u.last_login_at", "p.role"}

var profileColumns = []string{
	"user_id", "role", "bio", "profile_picture", "phone_number", "experience", "achievements",
	"certificates", "education", "experience_doc", "achievements_doc", "certificates_doc", "education_doc",
}

// UserRepository handles users and their profiles
type UserRepository struct {
	pool db.DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(conn db.DBTX) *UserRepository {
	return &UserRepository{pool: conn}
}

func (r *UserRepository) conn(ctx context.Context) db.DBTX {
	return db.Executor(ctx, r.pool)
}

// Create inserts the user and its profile. Call inside a transaction.
func (r *UserRepository) Create(ctx context.Context, user *models.User, profile *models.UserProfile) error {
	sql, args, err := psql.Insert("users").
		Columns("username", "email", "password").
		Values(user.Username, user.Email, user.Password).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, usernameUniqueConstraint) {
			return apperrors.ErrUsernameTaken
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	profile.UserID = user.ID
	sql, args, err = psql.Insert("user_profiles").
		Columns(profileColumns...).
		Values(profile.UserID, string(profile.Role), profile.Bio, profile.ProfilePicture, profile.PhoneNumber,
			profile.Experience, profile.Achievements, profile.Certificates, profile.Education,
			profile.ExperienceDoc, profile.AchievementsDoc, profile.CertificatesDoc, profile.EducationDoc).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating user profile: %w", err)
	}

	user.Role = profile.Role
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := psql.Select(userColumns...).
		From("users u").
		Join("user_profiles p ON p.user_id = u.id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var user models.User
	var role string
	err = r.conn(ctx).QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt, &user.LastLoginAt, &role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	user.Role = models.Role(role)
	return &user, nil
}

// GetByID retrieves a user with their role
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.id": id})
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.username": username})
}

// UsernameExists checks if a username is taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// GetProfile retrieves the profile row of a user
func (r *UserRepository) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	sql, args, err := psql.Select(profileColumns...).
		From("user_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var p models.UserProfile
	var role string
	err = r.conn(ctx).QueryRow(ctx, sql, args...).Scan(
		&p.UserID, &role, &p.Bio, &p.ProfilePicture, &p.PhoneNumber, &p.Experience, &p.Achievements,
		&p.Certificates, &p.Education, &p.ExperienceDoc, &p.AchievementsDoc, &p.CertificatesDoc, &p.EducationDoc,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching profile: %w", err)
	}
	p.Role = models.Role(role)
	return &p, nil
}

// UpdateProfile writes the editable profile fields. The role is changed only through UpdateRole.
func (r *UserRepository) UpdateProfile(ctx context.Context, p *models.UserProfile) error {
	sql, args, err := psql.Update("user_profiles").
		SetMap(map[string]interface{}{
			"bio":              p.Bio,
			"profile_picture":  p.ProfilePicture,
			"phone_number":     p.PhoneNumber,
			"experience":       p.Experience,
			"achievements":     p.Achievements,
			"certificates":     p.Certificates,
			"education":        p.Education,
			"experience_doc":   p.ExperienceDoc,
			"achievements_doc": p.AchievementsDoc,
			"certificates_doc": p.CertificatesDoc,
			"education_doc":    p.EducationDoc,
		}).
		Where(squirrel.Eq{"user_id": p.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateRole changes a user's role
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role models.Role) error {
	sql, args, err := psql.Update("user_profiles").
		Set("role", string(role)).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin stamps the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := psql.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// CountByRole returns the number of users per role
func (r *UserRepository) CountByRole(ctx context.Context) (map[models.Role]int64, error) {
	rows, err := r.conn(ctx).Query(ctx, "SELECT role, COUNT(*) FROM user_profiles GROUP BY role")
	if err != nil {
		return nil, fmt.Errorf("error counting roles: %w", err)
	}
	defer rows.Close()

	counts := map[models.Role]int64{
		models.RoleAdmin:  0,
		models.RoleLeader: 0,
		models.RoleMember: 0,
	}
	for rows.Next() {
		var role string
		var n int64
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("error scanning role count: %w", err)
		}
		counts[models.Role(role)] = n
	}
	return counts, rows.Err()
}
