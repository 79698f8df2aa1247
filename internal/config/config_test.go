package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8765, cfg.Server.Port)
	assert.Equal(t, 1024, cfg.Server.MaxConnections)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "saved_rooms", cfg.Storage.Dir)
	assert.Equal(t, 20, cfg.Game.MaxPlayers)
	assert.Equal(t, 1520, cfg.Game.StartYear)
	assert.Equal(t, 1, cfg.Game.StartMonth)
	assert.Equal(t, 1, cfg.Game.StartDay)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: 9000
storage:
  backend: redis
  retention_hours: 48
redis:
  addr: redis.local:6379
  db: 2
game:
  max_players: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, 48*time.Hour, cfg.Storage.RetentionDuration())
	assert.Equal(t, "redis.local:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 8, cfg.Game.MaxPlayers)

	// Omitted fields fall back to defaults
	assert.Equal(t, 1024, cfg.Server.MaxConnections)
	assert.Equal(t, 1520, cfg.Game.StartYear)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("EYALET_REDIS_ADDR", "env.local:6380")
	t.Setenv("EYALET_REDIS_DB", "5")
	t.Setenv("EYALET_STORAGE_BACKEND", "redis")

	cfg := Default()
	assert.Equal(t, "env.local:6380", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Redis.DB)
	assert.Equal(t, "redis", cfg.Storage.Backend)
}

func TestRetentionDuration_ZeroDisablesCleanup(t *testing.T) {
	cfg := Default()
	assert.Equal(t, time.Duration(0), cfg.Storage.RetentionDuration())
}
