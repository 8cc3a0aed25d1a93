package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

// TeamRepository handles teams of team-mode events
type TeamRepository struct {
	pool db.DBTX
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(conn db.DBTX) *TeamRepository {
	return &TeamRepository{pool: conn}
}

func (r *TeamRepository) conn(ctx context.Context) db.DBTX {
	return db.Executor(ctx, r.pool)
}

// Create inserts a team and its member rows. The leader is always stored as a member
// and repeated ids are stored once.
// Call inside a transaction.
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	sql, args, err := psql.Insert("teams").
		Columns("name", "event_id", "leader_id").
		Values(team.Name, team.EventID, team.LeaderID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&team.ID, &team.CreatedAt); err != nil {
		return fmt.Errorf("error creating team: %w", err)
	}

	members := []int64{team.LeaderID}
	seen := map[int64]bool{team.LeaderID: true}
	for _, id := range team.MemberIDs {
		if !seen[id] {
			seen[id] = true
			members = append(members, id)
		}
	}

	insert := psql.Insert("team_members").Columns("team_id", "user_id").Suffix("ON CONFLICT DO NOTHING")
	for _, id := range members {
		insert = insert.Values(team.ID, id)
	}
	sql, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error adding team members: %w", err)
	}

	team.MemberIDs = members
	return nil
}

// GetByID retrieves a team with its member ids
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	teams, err := r.list(ctx, squirrel.Eq{"t.id": id})
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, apperrors.ErrTeamNotFound
	}
	return teams[0], nil
}

// ListByEvent returns the teams of an event
func (r *TeamRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.Team, error) {
	return r.list(ctx, squirrel.Eq{"t.event_id": eventID})
}

func (r *TeamRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.Team, error) {
	sql, args, err := psql.Select("t.id", "t.name", "t.event_id", "t.leader_id", "t.created_at",
		"COALESCE(array_agg(tm.user_id ORDER BY tm.user_id) FILTER (WHERE tm.user_id IS NOT NULL), '{}') AS member_ids").
		From("teams t").
		LeftJoin("team_members tm ON tm.team_id = t.id").
		Where(where).
		GroupBy("t.id").
		OrderBy("t.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing teams: %w", err)
	}
	defer rows.Close()

	teams := []*models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.EventID, &t.LeaderID, &t.CreatedAt, &t.MemberIDs); err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}
