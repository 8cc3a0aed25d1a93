package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5432"
	cfg.Database.User = "clubhub"
	cfg.Database.Password = "secret"
	cfg.Database.DBName = "clubhub"
	cfg.Database.MaxOpenConns = 12
	cfg.Database.MaxIdleConns = 3
	cfg.Database.ConnMaxLifetime = "30m"
	return cfg
}

func TestNewPoolConfig(t *testing.T) {
	poolConfig, err := NewPoolConfig(testConfig())
	require.NoError(t, err)

	assert.Equal(t, int32(12), poolConfig.MaxConns)
	assert.Equal(t, int32(3), poolConfig.MinConns)
	assert.Equal(t, 30*time.Minute, poolConfig.MaxConnLifetime)
	assert.Equal(t, "db.internal", poolConfig.ConnConfig.Host)
	assert.Equal(t, "clubhub", poolConfig.ConnConfig.Database)
}

func TestNewPoolConfig_BadLifetime(t *testing.T) {
	cfg := testConfig()
	cfg.Database.ConnMaxLifetime = "forever"

	_, err := NewPoolConfig(cfg)
	assert.ErrorContains(t, err, "max lifetime")
}
