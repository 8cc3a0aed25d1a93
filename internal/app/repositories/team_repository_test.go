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

func TestTeamRepository_Create_DeduplicatesMembers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO teams (name,event_id,leader_id) VALUES ($1,$2,$3) RETURNING id, created_at")).
		WithArgs("Knights", int64(4), int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO team_members (team_id,user_id) VALUES ($1,$2),($3,$4),($5,$6) ON CONFLICT DO NOTHING")).
		WithArgs(int64(11), int64(3), int64(11), int64(9), int64(11), int64(12)).
		WillReturnResult(pgxmock.NewResult("INSERT", 3))

	team := &models.Team{Name: "Knights", EventID: 4, LeaderID: 3, MemberIDs: []int64{9, 3, 9, 12, 12}}
	err = NewTeamRepository(mock).Create(context.Background(), team)

	require.NoError(t, err)
	assert.Equal(t, int64(11), team.ID)
	assert.Equal(t, []int64{3, 9, 12}, team.MemberIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
