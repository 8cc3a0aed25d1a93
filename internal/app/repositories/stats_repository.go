package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/db"
)

// StatsRepository runs the aggregate queries behind the admin dashboard
type StatsRepository struct {
	pool db.DBTX
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(conn db.DBTX) *StatsRepository {
	return &StatsRepository{pool: conn}
}

func (r *StatsRepository) conn(ctx context.Context) db.DBTX {
	return db.Executor(ctx, r.pool)
}

// Overview returns platform-wide counters. RoleCounts is filled separately by the caller.
func (r *StatsRepository) Overview(ctx context.Context, now time.Time) (*models.DashboardStats, error) {
	sql, args, err := psql.Select().
		Column("(SELECT COUNT(*) FROM users)").
		Column("(SELECT COUNT(*) FROM clubs)").
		Column("(SELECT COUNT(*) FROM clubs WHERE is_approved)").
		Column("(SELECT COUNT(*) FROM events)").
		Column(squirrel.Expr("(SELECT COUNT(*) FROM events WHERE start_date > ?)", now)).
		Column("(SELECT COUNT(*) FROM messages)").
		Column("(SELECT COUNT(*) FROM club_join_requests WHERE NOT is_approved AND NOT is_rejected)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var s models.DashboardStats
	err = r.conn(ctx).QueryRow(ctx, sql, args...).Scan(
		&s.TotalUsers, &s.TotalClubs, &s.ApprovedClubs, &s.TotalEvents, &s.UpcomingEvents, &s.TotalMessages, &s.PendingJoinRequests,
	)
	if err != nil {
		return nil, fmt.Errorf("error reading dashboard stats: %w", err)
	}
	s.PendingClubs = s.TotalClubs - s.ApprovedClubs
	return &s, nil
}

// TopClubsByMembers returns approved clubs ordered by member count
func (r *StatsRepository) TopClubsByMembers(ctx context.Context, limit int) ([]models.ClubStat, error) {
	return r.topClubs(ctx, "club_memberships", limit)
}

// TopClubsByEvents returns approved clubs ordered by event count
func (r *StatsRepository) TopClubsByEvents(ctx context.Context, limit int) ([]models.ClubStat, error) {
	return r.topClubs(ctx, "events", limit)
}

func (r *StatsRepository) topClubs(ctx context.Context, table string, limit int) ([]models.ClubStat, error) {
	sql, args, err := psql.Select("c.id", "c.name", "COUNT(x.id) AS total").
		From("clubs c").
		LeftJoin(table+" x ON x.club_id = c.id").
		Where("c.is_approved").
		GroupBy("c.id", "c.name").
		OrderBy("total DESC", "c.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error reading club stats: %w", err)
	}
	defer rows.Close()

	stats := []models.ClubStat{}
	for rows.Next() {
		var s models.ClubStat
		if err := rows.Scan(&s.ClubID, &s.Name, &s.Count); err != nil {
			return nil, fmt.Errorf("error scanning club stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
