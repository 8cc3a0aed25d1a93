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
)

var clubColumns = []string{
	"c.id", "c.name", "c.description", "c.created_by", "c.created_at", "c.is_approved", "c.approved_by", "c.logo",
	"(SELECT COUNT(*) FROM club_memberships m WHERE m.club_id = c.id) AS member_count",
}

// ClubRepository handles database operations for clubs
type ClubRepository struct {
	pool db.DBTX
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(conn db.DBTX) *ClubRepository {
	return &ClubRepository{pool: conn}
}

func (r *ClubRepository) conn(ctx context.Context) db.DBTX {
	return db.Executor(ctx, r.pool)
}

// Create inserts a club and fills its id and creation time
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	sql, args, err := psql.Insert("clubs").
		Columns("name", "description", "created_by", "is_approved", "approved_by", "logo").
		Values(club.Name, club.Description, club.CreatedBy, club.IsApproved, club.ApprovedBy, club.Logo).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&club.ID, &club.CreatedAt); err != nil {
		return fmt.Errorf("error creating club: %w", err)
	}
	return nil
}

// GetByID retrieves a club with its member count
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	sql, args, err := psql.Select(clubColumns...).
		From("clubs c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var c models.Club
	err = r.conn(ctx).QueryRow(ctx, sql, args...).Scan(
		&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedAt, &c.IsApproved, &c.ApprovedBy, &c.Logo, &c.MemberCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("error fetching club: %w", err)
	}
	return &c, nil
}

// Update writes name, description and logo
func (r *ClubRepository) Update(ctx context.Context, club *models.Club) error {
	sql, args, err := psql.Update("clubs").
		Set("name", club.Name).
		Set("description", club.Description).
		Set("logo", club.Logo).
		Where(squirrel.Eq{"id": club.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating club: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}
	return nil
}

// Approve marks a club approved by approverID
func (r *ClubRepository) Approve(ctx context.Context, id, approverID int64) error {
	sql, args, err := psql.Update("clubs").
		Set("is_approved", true).
		Set("approved_by", approverID).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error approving club: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}
	return nil
}

// clubFilterWhere translates a filter into a condition. The scope parts are
// OR-ed together; approval and search narrow that scope.
func clubFilterWhere(f models.ClubFilter) squirrel.And {
	scope := squirrel.Or{}
	if f.CreatedBy != nil {
		scope = append(scope, squirrel.Eq{"c.created_by": *f.CreatedBy})
	}
	if f.MemberID != nil {
		scope = append(scope, squirrel.Expr("c.id IN (SELECT club_id FROM club_memberships WHERE user_id = ?)", *f.MemberID))
	}
	if f.IncludeApproved {
		scope = append(scope, squirrel.Eq{"c.is_approved": true})
	}

	where := squirrel.And{}
	if len(scope) > 0 {
		where = append(where, scope)
	}
	if f.LeaderID != nil {
		where = append(where, squirrel.Expr("c.id IN (SELECT club_id FROM club_memberships WHERE user_id = ? AND is_leader)", *f.LeaderID))
	}
	if f.ApprovedOnly != nil {
		where = append(where, squirrel.Eq{"c.is_approved": *f.ApprovedOnly})
	}
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		where = append(where, squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.description": pattern},
		})
	}
	return where
}

// List returns one page of clubs matching filter and the total match count
func (r *ClubRepository) List(ctx context.Context, filter models.ClubFilter, offset uint64, limit int) ([]*models.Club, int64, error) {
	query := psql.Select(clubColumns...).
		Column("COUNT(*) OVER() AS total_count").
		From("clubs c").
		OrderBy("c.created_at DESC", "c.id DESC").
		Offset(offset).
		Limit(uint64(limit))
	if where := clubFilterWhere(filter); len(where) > 0 {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing clubs: %w", err)
	}
	defer rows.Close()

	clubs := []*models.Club{}
	var total int64
	for rows.Next() {
		var c models.Club
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedAt, &c.IsApproved, &c.ApprovedBy, &c.Logo, &c.MemberCount, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning club: %w", err)
		}
		clubs = append(clubs, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating clubs: %w", err)
	}
	return clubs, total, nil
}

// DeleteCascade removes a club and every collection it owns, children first.
// Call inside a transaction so a missing club leaves nothing deleted.
func (r *ClubRepository) DeleteCascade(ctx context.Context, id int64) (*models.ClubDeletionSummary, error) {
	conn := r.conn(ctx)
	summary := &models.ClubDeletionSummary{}
	clubEvents := "SELECT id FROM events WHERE club_id = $1"

	steps := []struct {
		name  string
		sql   string
		count *int64
	}{
		{"registrations", "DELETE FROM event_registrations WHERE event_id IN (" + clubEvents + ")", &summary.Registrations},
		{"teams", "DELETE FROM teams WHERE event_id IN (" + clubEvents + ")", &summary.Teams},
		{"events", "DELETE FROM events WHERE club_id = $1", &summary.Events},
		{"join requests", "DELETE FROM club_join_requests WHERE club_id = $1", &summary.JoinRequests},
		{"messages", "DELETE FROM messages WHERE club_id = $1", &summary.Messages},
		{"memberships", "DELETE FROM club_memberships WHERE club_id = $1", &summary.Memberships},
	}

	for _, step := range steps {
		tag, err := conn.Exec(ctx, step.sql, id)
		if err != nil {
			return nil, fmt.Errorf("error deleting club %s: %w", step.name, err)
		}
		*step.count = tag.RowsAffected()
	}

	tag, err := conn.Exec(ctx, "DELETE FROM clubs WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("error deleting club: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrClubNotFound
	}

	return summary, nil
}
