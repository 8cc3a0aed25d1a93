package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipRepository_LockLeaders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT user_id FROM club_memberships WHERE club_id = $1 AND is_leader = $2 ORDER BY user_id FOR UPDATE")).
		WithArgs(int64(5), true).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(2)).AddRow(int64(6)))

	ids, err := NewMembershipRepository(mock).LockLeaders(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 6}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_LockLeaders_NoLeaders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(5), true).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}))

	ids, err := NewMembershipRepository(mock).LockLeaders(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
