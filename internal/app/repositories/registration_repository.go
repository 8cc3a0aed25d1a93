package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/dberrors"
)

const registrationUniqueConstraint = "event_registrations_event_user_key"

// RegistrationRepository handles event participation
type RegistrationRepository struct {
	pool db.DBTX
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(conn db.DBTX) *RegistrationRepository {
	return &RegistrationRepository{pool: conn}
}

func (r *RegistrationRepository) conn(ctx context.Context) db.DBTX {
	return db.Executor(ctx, r.pool)
}

// Create registers a user. A second registration for the same pair is ErrAlreadyRegistered.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.EventRegistration) error {
	sql, args, err := psql.Insert("event_registrations").
		Columns("event_id", "user_id", "team_id").
		Values(reg.EventID, reg.UserID, reg.TeamID).
		Suffix("RETURNING id, registration_date").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&reg.ID, &reg.RegistrationDate); err != nil {
		if dberrors.IsDuplicateConstraintError(err, registrationUniqueConstraint) {
			return apperrors.ErrAlreadyRegistered
		}
		return fmt.Errorf("error creating registration: %w", err)
	}
	return nil
}

// Get retrieves the registration of userID for eventID
func (r *RegistrationRepository) Get(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error) {
	sql, args, err := psql.Select("id", "event_id", "user_id", "registration_date", "team_id").
		From("event_registrations").
		Where(squirrel.Eq{"event_id": eventID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var reg models.EventRegistration
	err = r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.RegistrationDate, &reg.TeamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error fetching registration: %w", err)
	}
	return &reg, nil
}

// ListByEvent returns the participants of an event in registration order
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.EventRegistration, error) {
	sql, args, err := psql.Select("er.id", "er.event_id", "er.user_id", "er.registration_date", "er.team_id", "u.username").
		From("event_registrations er").
		Join("users u ON u.id = er.user_id").
		Where(squirrel.Eq{"er.event_id": eventID}).
		OrderBy("er.registration_date ASC", "er.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	regs := []*models.EventRegistration{}
	for rows.Next() {
		var reg models.EventRegistration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.RegistrationDate, &reg.TeamID, &reg.Username); err != nil {
			return nil, fmt.Errorf("error scanning registration: %w", err)
		}
		regs = append(regs, &reg)
	}
	return regs, rows.Err()
}

// Delete removes a user's registration
func (r *RegistrationRepository) Delete(ctx context.Context, eventID, userID int64) error {
	tag, err := r.conn(ctx).Exec(ctx, "DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2", eventID, userID)
	if err != nil {
		return fmt.Errorf("error deleting registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRegistrationNotFound
	}
	return nil
}
