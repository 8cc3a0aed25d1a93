package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/db"
)

// LeaderScoreRepository reads leader activity and persists ranking snapshots
type LeaderScoreRepository struct {
	pool db.DBTX
}

// NewLeaderScoreRepository creates a new LeaderScoreRepository
func NewLeaderScoreRepository(conn db.DBTX) *LeaderScoreRepository {
	return &LeaderScoreRepository{pool: conn}
}

func (r *LeaderScoreRepository) conn(ctx context.Context) db.DBTX {
	return db.Executor(ctx, r.pool)
}

// ListLeaderActivity collects the ranking inputs of every user whose role is leader.
// Messages are counted from since (inclusive).
func (r *LeaderScoreRepository) ListLeaderActivity(ctx context.Context, since time.Time) ([]models.LeaderActivity, error) {
	sql, args, err := psql.Select("u.id", "u.username", "u.email", "u.created_at").
		Column(squirrel.Expr("(SELECT COUNT(*) FROM messages m WHERE m.sender_id = u.id AND m.created_at >= ?) AS recent_messages", since)).
		Column("(SELECT COUNT(*) FROM events e JOIN clubs c ON c.id = e.club_id WHERE c.created_by = u.id) AS events_organized").
		Column("(SELECT COUNT(*) FROM clubs c WHERE c.created_by = u.id) AS clubs_count").
		Column("(SELECT COUNT(*) FROM club_memberships cm JOIN clubs c ON c.id = cm.club_id WHERE c.created_by = u.id) AS total_members").
		From("users u").
		Join("user_profiles p ON p.user_id = u.id").
		Where(squirrel.Eq{"p.role": string(models.RoleLeader)}).
		OrderBy("u.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error reading leader activity: %w", err)
	}
	defer rows.Close()

	activities := []models.LeaderActivity{}
	for rows.Next() {
		var a models.LeaderActivity
		if err := rows.Scan(&a.UserID, &a.Username, &a.Email, &a.AccountCreated,
			&a.RecentMessages, &a.EventsOrganized, &a.ClubsCount, &a.TotalMembers); err != nil {
			return nil, fmt.Errorf("error scanning leader activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// SaveSnapshot stores one ranking batch. All scores share their ComputedAt.
func (r *LeaderScoreRepository) SaveSnapshot(ctx context.Context, scores []models.LeaderScore) error {
	if len(scores) == 0 {
		return nil
	}

	insert := psql.Insert("leader_score_snapshots").
		Columns("user_id", "rank", "communication_score", "experience_score", "events_score", "total_score", "computed_at")
	for _, s := range scores {
		insert = insert.Values(s.UserID, s.Rank, s.CommunicationScore, s.ExperienceScore, s.EventsScore, s.TotalScore, s.ComputedAt)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error saving leader snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the newest stored batch in rank order, empty when none exists
func (r *LeaderScoreRepository) LatestSnapshot(ctx context.Context) ([]models.LeaderScore, error) {
	sql, args, err := psql.Select("s.rank", "s.user_id", "u.username", "u.email",
		"s.communication_score", "s.experience_score", "s.events_score", "s.total_score", "s.computed_at").
		From("leader_score_snapshots s").
		Join("users u ON u.id = s.user_id").
		Where("s.computed_at = (SELECT MAX(computed_at) FROM leader_score_snapshots)").
		OrderBy("s.rank ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error reading leader snapshot: %w", err)
	}
	defer rows.Close()

	scores := []models.LeaderScore{}
	for rows.Next() {
		var s models.LeaderScore
		if err := rows.Scan(&s.Rank, &s.UserID, &s.Username, &s.Email,
			&s.CommunicationScore, &s.ExperienceScore, &s.EventsScore, &s.TotalScore, &s.ComputedAt); err != nil {
			return nil, fmt.Errorf("error scanning leader snapshot: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
