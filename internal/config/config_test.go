package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDerivesMediaURLFromBase(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("CMS_BASE_URL", "http://cms.local:1337/api")

	cfg := Load()
	require.Equal(t, "http://cms.local:1337", cfg.CMSMediaURL)
	require.Equal(t, "memory", cfg.SessionStore)
	require.Equal(t, 10*time.Second, cfg.CMSTimeout)
}

func TestLoadExplicitMediaURL(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("CMS_BASE_URL", "http://cms.local:1337/api")
	t.Setenv("CMS_MEDIA_URL", "https://media.pawnsgambit.club")
	t.Setenv("SESSION_STORE", "redis")

	cfg := Load()
	require.Equal(t, "https://media.pawnsgambit.club", cfg.CMSMediaURL)
	require.Equal(t, "redis", cfg.SessionStore)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	require.True(t, cfg.Enabled)
	require.True(t, cfg.Methods["GET"])
	require.Equal(t, time.Minute, cfg.TTL)
	require.Equal(t, "club:cache", cfg.Prefix)
}

func TestLoadRateLimitConfigClampsTTL(t *testing.T) {
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "30s")

	cfg := LoadRateLimitConfig()
	require.Equal(t, 5*time.Minute, cfg.TTL)
}
