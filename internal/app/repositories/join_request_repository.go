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

const joinRequestUniqueConstraint = "club_join_requests_user_club_key"

var joinRequestColumns = []string{
	"r.id", "r.user_id", "r.club_id", "r.message", "r.created_at", "r.is_approved", "r.is_rejected", "u.username", "c.name",
}

// JoinRequestRepository handles club join requests
type JoinRequestRepository struct {
	pool db.DBTX
}

// NewJoinRequestRepository creates a new JoinRequestRepository
func NewJoinRequestRepository(conn db.DBTX) *JoinRequestRepository {
	return &JoinRequestRepository{pool: conn}
}

func (r *JoinRequestRepository) conn(ctx context.Context) db.DBTX {
	return db.Executor(ctx, r.pool)
}

func joinRequestSelect() squirrel.SelectBuilder {
	return psql.Select(joinRequestColumns...).
		From("club_join_requests r").
		Join("users u ON u.id = r.user_id").
		Join("clubs c ON c.id = r.club_id")
}

func scanJoinRequest(row pgx.Row) (*models.ClubJoinRequest, error) {
	var jr models.ClubJoinRequest
	err := row.Scan(&jr.ID, &jr.UserID, &jr.ClubID, &jr.Message, &jr.CreatedAt, &jr.IsApproved, &jr.IsRejected, &jr.Username, &jr.ClubName)
	if err != nil {
		return nil, err
	}
	return &jr, nil
}

// Create inserts a pending request. A concurrent duplicate surfaces as ErrJoinRequestExists.
func (r *JoinRequestRepository) Create(ctx context.Context, jr *models.ClubJoinRequest) error {
	sql, args, err := psql.Insert("club_join_requests").
		Columns("user_id", "club_id", "message").
		Values(jr.UserID, jr.ClubID, jr.Message).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&jr.ID, &jr.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, joinRequestUniqueConstraint) {
			return apperrors.ErrJoinRequestExists
		}
		return fmt.Errorf("error creating join request: %w", err)
	}
	return nil
}

func (r *JoinRequestRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.ClubJoinRequest, error) {
	sql, args, err := joinRequestSelect().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	jr, err := scanJoinRequest(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJoinRequestNotFound
		}
		return nil, fmt.Errorf("error fetching join request: %w", err)
	}
	return jr, nil
}

// GetByID retrieves a join request
func (r *JoinRequestRepository) GetByID(ctx context.Context, id int64) (*models.ClubJoinRequest, error) {
	return r.getOne(ctx, squirrel.Eq{"r.id": id})
}

// GetByUserAndClub retrieves the request of a (user, club) pair
func (r *JoinRequestRepository) GetByUserAndClub(ctx context.Context, userID, clubID int64) (*models.ClubJoinRequest, error) {
	return r.getOne(ctx, squirrel.Eq{"r.user_id": userID, "r.club_id": clubID})
}

// Resolve approves or rejects a pending request. A request that is no longer
// pending is ErrJoinRequestHandled.
func (r *JoinRequestRepository) Resolve(ctx context.Context, id int64, approved bool) error {
	column := "is_rejected"
	if approved {
		column = "is_approved"
	}

	sql, args, err := psql.Update("club_join_requests").
		Set(column, true).
		Where(squirrel.Eq{"id": id, "is_approved": false, "is_rejected": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error resolving join request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJoinRequestHandled
	}
	return nil
}

// Delete removes a join request
func (r *JoinRequestRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, "DELETE FROM club_join_requests WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting join request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJoinRequestNotFound
	}
	return nil
}

// ListPending returns pending requests newest first, for one club or all when clubID is nil.
// A non-positive limit means no limit.
func (r *JoinRequestRepository) ListPending(ctx context.Context, clubID *int64, limit int) ([]*models.ClubJoinRequest, error) {
	query := joinRequestSelect().
		Where(squirrel.Eq{"r.is_approved": false, "r.is_rejected": false}).
		OrderBy("r.created_at DESC", "r.id DESC")
	if clubID != nil {
		query = query.Where(squirrel.Eq{"r.club_id": *clubID})
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
		return nil, fmt.Errorf("error listing join requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.ClubJoinRequest{}
	for rows.Next() {
		jr, err := scanJoinRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning join request: %w", err)
		}
		requests = append(requests, jr)
	}
	return requests, rows.Err()
}
