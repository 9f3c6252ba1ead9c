package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-reservation/internal/availability"
	"github.com/m04kA/barbershop-reservation/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "HTTP_PORT",
		"LINE_CHANNEL_ID", "LINE_CHANNEL_SECRET", "REDIS_ADDR", "REDIS_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func withLineCredentials(c *Config) *Config {
	c.Auth.LineChannelID = "1650000000"
	c.Auth.LineChannelSecret = "channel-secret"
	return c
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[auth]
line_channel_id = "1650000000"
line_channel_secret = "from-file"

[server]
http_port = 9090

[database]
host = "db.internal"
dbname = "shop"

[availability]
overlap_mode = "stored_duration"

[reservations]
transition_policy = "strict"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "host=db.internal port=5432 user=postgres password= dbname=shop sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, availability.OverlapStoredDuration, cfg.OverlapMode())
	assert.Equal(t, "strict", cfg.TransitionPolicy().Name())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "from-file", cfg.Auth.LineChannelSecret)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("LINE_CHANNEL_ID", "1650000000")
	t.Setenv("LINE_CHANNEL_SECRET", "channel-secret")
	t.Setenv("REDIS_ADDR", "redis:6379")
	path := writeConfig(t, `
[database]
host = "file-host"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 7000, cfg.Server.HTTPPort)
	assert.Equal(t, "1650000000", cfg.Auth.LineChannelID)
	assert.Equal(t, "channel-secret", cfg.Auth.LineChannelSecret)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LINE_CHANNEL_ID", "1650000000")
	t.Setenv("LINE_CHANNEL_SECRET", "channel-secret")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, availability.OverlapRequestDuration, cfg.OverlapMode())
	assert.Equal(t, domain.PermissiveTransitions{}, cfg.TransitionPolicy())
	assert.Equal(t, "Asia/Tokyo", cfg.Location().String())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("bad port in env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HTTP_PORT", "eighty")
		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("line credentials absent", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, `
[auth]
line_channel_id = "1650000000"
line_channel_secret = ""
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"overlap mode", func(c *Config) { c.Availability.OverlapMode = "both" }},
		{"transition policy", func(c *Config) { c.Reservations.TransitionPolicy = "lenient" }},
		{"timezone", func(c *Config) { c.Availability.Timezone = "Mars/Olympus" }},
		{"port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"menu ttl", func(c *Config) { c.Redis.MenuTTL = -1 }},
		{"pool stats interval", func(c *Config) { c.Metrics.PoolStatsInterval = 0 }},
		{"empty channel id", func(c *Config) { c.Auth.LineChannelID = " " }},
		{"empty channel secret", func(c *Config) { c.Auth.LineChannelSecret = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := withLineCredentials(Default())
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, withLineCredentials(Default()).Validate())
	assert.ErrorIs(t, Default().Validate(), ErrInvalidConfig)
}
