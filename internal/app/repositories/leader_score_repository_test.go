package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/app/models"
)

func TestLeaderScoreRepository_ListLeaderActivity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	since := time.Date(2025, 2, 8, 9, 0, 0, 0, time.UTC)
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// a message sent exactly at since is inside the window
	mock.ExpectQuery(regexp.QuoteMeta("m.created_at >= $1) AS recent_messages")).
		WithArgs(since, string(models.RoleLeader)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "username", "email", "created_at", "recent_messages", "events_organized", "clubs_count", "total_members",
		}).AddRow(int64(2), "leader", "leader@example.com", created, int64(10), int64(3), int64(1), int64(12)))

	activities, err := NewLeaderScoreRepository(mock).ListLeaderActivity(context.Background(), since)

	require.NoError(t, err)
	assert.Equal(t, []models.LeaderActivity{{
		UserID:          2,
		Username:        "leader",
		Email:           "leader@example.com",
		AccountCreated:  created,
		RecentMessages:  10,
		EventsOrganized: 3,
		ClubsCount:      1,
		TotalMembers:    12,
	}}, activities)
	assert.NoError(t, mock.ExpectationsWereMet())
}
