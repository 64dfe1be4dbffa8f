package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, 20, cfg.Pagination.DefaultLimit)
	assert.True(t, cfg.EnableAuditLog)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Run("missing sqlite path", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Database.Path = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("postgres requires url", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Database.Type = "postgres"
		cfg.Database.URL = ""
		assert.Error(t, cfg.Validate())

		cfg.Database.URL = "postgres://localhost:5432/oauth"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown database type", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Database.Type = "mongodb"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bcrypt cost bounds", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Security.BcryptCost = 3
		assert.Error(t, cfg.Validate())

		cfg.Security.BcryptCost = 31
		assert.NoError(t, cfg.Validate())
	})

	t.Run("pagination limits ordered", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Pagination.DefaultLimit = 500
		cfg.Pagination.MaxLimit = 200
		assert.Error(t, cfg.Validate())
	})

	t.Run("log level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LogLevel = "verbose"
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")

	cfg := DefaultConfig()
	cfg.Database.Path = "/var/lib/mcloud/oauth.db"
	cfg.Security.BcryptCost = 12
	cfg.EnableAuditLog = false
	require.NoError(t, cfg.ToYAMLFile(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.FromYAMLFile(path))

	assert.Equal(t, "/var/lib/mcloud/oauth.db", loaded.Database.Path)
	assert.Equal(t, 12, loaded.Security.BcryptCost)
	assert.False(t, loaded.EnableAuditLog)
	assert.NoError(t, loaded.Validate())
}

func TestConfig_FromJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.json")

	body := `{
		"database": {"type": "postgres", "url": "postgres://db:5432/oauth", "connect_attempts": 5},
		"security": {"bcrypt_cost": 14},
		"log_level": "debug"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.FromJSONFile(path))

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgres://db:5432/oauth", cfg.Database.URL)
	assert.Equal(t, 5, cfg.Database.ConnectAttempts)
	assert.Equal(t, 14, cfg.Security.BcryptCost)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched sections keep their defaults.
	assert.Equal(t, 20, cfg.Pagination.DefaultLimit)
}

func TestConfig_FromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.FromYAMLFile("/nonexistent/server.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("MCLOUD_DATABASE_TYPE", "postgres")
	t.Setenv("MCLOUD_DATABASE_URL", "postgres://env:5432/oauth")
	t.Setenv("MCLOUD_SECURITY_BCRYPT_COST", "11")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv("MCLOUD"))

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgres://env:5432/oauth", cfg.Database.URL)
	assert.Equal(t, 11, cfg.Security.BcryptCost)
}

func TestConfig_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ToYAMLFile(path))

	changed := make(chan *Config, 1)
	require.NoError(t, cfg.Watch(path, func(next *Config) {
		select {
		case changed <- next:
		default:
		}
	}))

	cfg2 := DefaultConfig()
	cfg2.Security.BcryptCost = 13
	require.NoError(t, cfg2.ToYAMLFile(path))

	select {
	case next := <-changed:
		assert.Equal(t, 13, next.Security.BcryptCost)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}
