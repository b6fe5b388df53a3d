package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "hostel.db", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 15*time.Minute, cfg.RecalcInterval)
	assert.False(t, cfg.CountCheckedOut)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("RECALC_INTERVAL", "1m")
	t.Setenv("OCCUPANCY_COUNT_CHECKED_OUT", "yes")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.RecalcInterval)
	assert.True(t, cfg.CountCheckedOut)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(-100200), cfg.TelegramChatID)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("RECALC_INTERVAL", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "RECALC_INTERVAL")
}
