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

const eventDateOrderConstraint = "events_date_order_check"

var eventColumns = []string{
	"e.id", "e.title", "e.description", "e.club_id", "e.created_by", "e.start_date", "e.end_date",
	"e.location", "e.image", "e.registration_type", "e.created_at", "c.name",
	"(SELECT COUNT(*) FROM event_registrations er WHERE er.event_id = e.id) AS participant_count",
}

// EventRepository handles database operations for events
type EventRepository struct {
	pool db.DBTX
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(conn db.DBTX) *EventRepository {
	return &EventRepository{pool: conn}
}

func (r *EventRepository) conn(ctx context.Context) db.DBTX {
	return db.Executor(ctx, r.pool)
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var regType string
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.ClubID, &e.CreatedBy, &e.StartDate, &e.EndDate,
		&e.Location, &e.Image, &regType, &e.CreatedAt, &e.ClubName, &e.ParticipantCount,
	)
	if err != nil {
		return nil, err
	}
	e.RegistrationType = models.RegistrationType(regType)
	return &e, nil
}

// Create inserts an event and fills its id and creation time
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	sql, args, err := psql.Insert("events").
		Columns("title", "description", "club_id", "created_by", "start_date", "end_date", "location", "image", "registration_type").
		Values(e.Title, e.Description, e.ClubID, e.CreatedBy, e.StartDate, e.EndDate, e.Location, e.Image, string(e.RegistrationType)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		if dberrors.IsCheckConstraintError(err, eventDateOrderConstraint) {
			return apperrors.ErrInvalidDateRange
		}
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// GetByID retrieves an event with its club name and participant count
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := psql.Select(eventColumns...).
		From("events e").
		Join("clubs c ON c.id = e.club_id").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	e, err := scanEvent(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error fetching event: %w", err)
	}
	return e, nil
}

// Update writes the mutable event fields. club_id and created_by are never touched.
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	sql, args, err := psql.Update("events").
		SetMap(map[string]interface{}{
			"title":             e.Title,
			"description":       e.Description,
			"start_date":        e.StartDate,
			"end_date":          e.EndDate,
			"location":          e.Location,
			"image":             e.Image,
			"registration_type": string(e.RegistrationType),
		}).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckConstraintError(err, eventDateOrderConstraint) {
			return apperrors.ErrInvalidDateRange
		}
		return fmt.Errorf("error updating event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event; teams and registrations go with it
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// List returns events matching filter ordered by start date.
// A non-positive limit means no limit.
func (r *EventRepository) List(ctx context.Context, f models.EventFilter, limit int) ([]*models.Event, error) {
	query := psql.Select(eventColumns...).
		From("events e").
		Join("clubs c ON c.id = e.club_id").
		OrderBy("e.start_date ASC", "e.id ASC")

	if f.ClubID != nil {
		query = query.Where(squirrel.Eq{"e.club_id": *f.ClubID})
	}
	if f.MemberID != nil {
		query = query.Where(squirrel.Expr("e.club_id IN (SELECT club_id FROM club_memberships WHERE user_id = ?)", *f.MemberID))
	}
	if f.StartFrom != nil {
		query = query.Where(squirrel.GtOrEq{"e.start_date": *f.StartFrom})
	}
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		query = query.Where(squirrel.Or{
			squirrel.ILike{"e.title": pattern},
			squirrel.ILike{"e.description": pattern},
			squirrel.ILike{"e.location": pattern},
		})
	}
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
