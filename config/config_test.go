package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Empty(t, cfg.Firebase.CredentialsPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
  allowed_origins: ["https://portal.example.org"]
database:
  host: db.internal
  name: tracking
sessions:
  idle_ttl: 10m
  workers: 2
app:
  log_level: debug
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DB_NAME", "tracking_test")
	t.Setenv("SESSION_WORKERS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.org, https://b.example.org")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "tracking_test", cfg.Database.Name)
	assert.Equal(t, 10*time.Minute, cfg.Sessions.IdleTTL)
	assert.Equal(t, 2, cfg.Sessions.Workers, "invalid env keeps the file value")
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	require.NoError(t, cfg.Validate())

	cfg.Sessions.IdleTTL = 0
	assert.Error(t, cfg.Validate())

	cfg = defaults()
	cfg.Redis.Addr = ""
	assert.Error(t, cfg.Validate())
}
