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

const membershipUniqueConstraint = "club_memberships_user_club_key"

// MembershipRepository handles club rosters
type MembershipRepository struct {
	pool db.DBTX
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(conn db.DBTX) *MembershipRepository {
	return &MembershipRepository{pool: conn}
}

func (r *MembershipRepository) conn(ctx context.Context) db.DBTX {
	return db.Executor(ctx, r.pool)
}

// Create adds a user to a club. A second row for the same pair is ErrAlreadyMember.
func (r *MembershipRepository) Create(ctx context.Context, m *models.ClubMembership) error {
	sql, args, err := psql.Insert("club_memberships").
		Columns("user_id", "club_id", "is_leader").
		Values(m.UserID, m.ClubID, m.IsLeader).
		Suffix("RETURNING id, date_joined").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&m.ID, &m.DateJoined); err != nil {
		if dberrors.IsDuplicateConstraintError(err, membershipUniqueConstraint) {
			return apperrors.ErrAlreadyMember
		}
		return fmt.Errorf("error creating membership: %w", err)
	}
	return nil
}

// Get retrieves the membership of userID in clubID
func (r *MembershipRepository) Get(ctx context.Context, clubID, userID int64) (*models.ClubMembership, error) {
	sql, args, err := psql.Select("id", "user_id", "club_id", "date_joined", "is_leader").
		From("club_memberships").
		Where(squirrel.Eq{"club_id": clubID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var m models.ClubMembership
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&m.ID, &m.UserID, &m.ClubID, &m.DateJoined, &m.IsLeader); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("error fetching membership: %w", err)
	}
	return &m, nil
}

// ListByClub returns the roster, leaders first then by join date
func (r *MembershipRepository) ListByClub(ctx context.Context, clubID int64) ([]*models.ClubMembership, error) {
	sql, args, err := psql.Select("m.id", "m.user_id", "m.club_id", "m.date_joined", "m.is_leader", "u.username").
		From("club_memberships m").
		Join("users u ON u.id = m.user_id").
		Where(squirrel.Eq{"m.club_id": clubID}).
		OrderBy("m.is_leader DESC", "m.date_joined ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing members: %w", err)
	}
	defer rows.Close()

	members := []*models.ClubMembership{}
	for rows.Next() {
		var m models.ClubMembership
		if err := rows.Scan(&m.ID, &m.UserID, &m.ClubID, &m.DateJoined, &m.IsLeader, &m.Username); err != nil {
			return nil, fmt.Errorf("error scanning member: %w", err)
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

// LockLeaders returns the user ids of the club's leaders and locks their rows
// until the surrounding transaction ends.
func (r *MembershipRepository) LockLeaders(ctx context.Context, clubID int64) ([]int64, error) {
	sql, args, err := psql.Select("user_id").
		From("club_memberships").
		Where(squirrel.Eq{"club_id": clubID, "is_leader": true}).
		OrderBy("user_id").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error locking leaders: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning leader: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetLeader changes the leader flag of a membership
func (r *MembershipRepository) SetLeader(ctx context.Context, clubID, userID int64, isLeader bool) error {
	sql, args, err := psql.Update("club_memberships").
		Set("is_leader", isLeader).
		Where(squirrel.Eq{"club_id": clubID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMembershipNotFound
	}
	return nil
}

// Delete removes a user from a club
func (r *MembershipRepository) Delete(ctx context.Context, clubID, userID int64) error {
	sql, args, err := psql.Delete("club_memberships").
		Where(squirrel.Eq{"club_id": clubID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMembershipNotFound
	}
	return nil
}
