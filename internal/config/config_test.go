package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PASSCODE_HASH", "$2a$10$abcdefghijklmnopqrstuvwxyz012345678901234567890123456")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10, cfg.Gamify.BasePoints)
	assert.Equal(t, 100, cfg.Gamify.PointsPerLevel)
	assert.Equal(t, 5, cfg.Limiter.AICeiling)
	assert.False(t, cfg.Cloud.Enabled)
	assert.Equal(t, ":8080", cfg.GetServerAddr())
}

func TestValidateRejectsBadEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsShortSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsBadTimezone(t *testing.T) {
	setRequired(t)
	t.Setenv("JOURNAL_TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	setRequired(t)
	t.Setenv("JOURNAL_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
