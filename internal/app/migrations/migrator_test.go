package migrations

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateFromDirectory_AppliesPendingInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_more.sql"), []byte("CREATE TABLE b (id INT);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("CREATE TABLE a (id INT);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o600))

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	existsQuery := regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)")

	// 001 already applied
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(existsQuery).WithArgs("001").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	// 002 pending
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(existsQuery).WithArgs("002").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT);")).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (version) VALUES ($1)")).WithArgs("002").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	m := NewMigrator(mock, zerolog.Nop())
	require.NoError(t, m.MigrateFromDirectory(context.Background(), dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("/x/001_init.sql"))
	assert.Equal(t, "010", versionOf("010_leader_snapshots.sql"))
}
