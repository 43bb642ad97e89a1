package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"YOUTUBE_API_KEY", "VITE_YOUTUBE_API_KEY", "YOUTUBE_BASE_URL", "PORT", "DB_PATH",
		"STORAGE_NAMESPACE", "ALLOWED_ORIGINS", "LOG_LEVEL", "SEARCH_MAX_RESULTS",
		"RECENT_VIDEOS", "REQUEST_TIMEOUT", "RATE_LIMIT", "CACHE_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", "abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.YouTubeAPIKey)
	assert.Equal(t, DefaultBaseURL, cfg.YouTubeBaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultNamespace, cfg.StorageNamespace)
	assert.Equal(t, int64(9), cfg.SearchMaxResults)
	assert.Equal(t, int64(10), cfg.RecentVideos)
	assert.Zero(t, cfg.CacheTTL)
	assert.Zero(t, cfg.RateLimit)
	assert.False(t, cfg.UsesSQLiteCloud())
}

func TestLoad_LegacyKeyName(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_YOUTUBE_API_KEY", "from-vite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-vite", cfg.YouTubeAPIKey)
}

func TestLoad_PrimaryKeyWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", "primary")
	t.Setenv("VITE_YOUTUBE_API_KEY", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.YouTubeAPIKey)
}

func TestLoad_MissingKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", "abc")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "sqlitecloud://host:8860/viewer?apikey=secret")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("SEARCH_MAX_RESULTS", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.UsesSQLiteCloud())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, int64(12), cfg.SearchMaxResults)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{YouTubeAPIKey: "abc", SearchMaxResults: 9, RecentVideos: 10}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"no key", func(c *Config) { c.YouTubeAPIKey = "" }, true},
		{"zero results", func(c *Config) { c.SearchMaxResults = 0 }, true},
		{"too many results", func(c *Config) { c.SearchMaxResults = 51 }, true},
		{"zero recent", func(c *Config) { c.RecentVideos = 0 }, true},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
