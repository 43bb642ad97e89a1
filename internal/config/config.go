package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrMissingAPIKey = errors.New("YouTube API key is required")
)

const (
	DefaultBaseURL   = "https://www.googleapis.com/"
	DefaultNamespace = "youtube-viewer-storage"
)

// Config holds the application configuration
type Config struct {
	YouTubeAPIKey    string        `mapstructure:"youtube_api_key"`
	YouTubeBaseURL   string        `mapstructure:"youtube_base_url"`
	Port             string        `mapstructure:"port"`
	DBPath           string        `mapstructure:"db_path"`
	StorageNamespace string        `mapstructure:"storage_namespace"`
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	LogLevel         string        `mapstructure:"log_level"`
	SearchMaxResults int64         `mapstructure:"search_max_results"`
	RecentVideos     int64         `mapstructure:"recent_videos"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	RateLimit        float64       `mapstructure:"rate_limit"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
}

// Load loads the configuration from environment variables, falling back to an
// optional config.yaml in the working directory and then to defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("youtube_base_url", DefaultBaseURL)
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "yt_viewer.db")
	v.SetDefault("storage_namespace", DefaultNamespace)
	v.SetDefault("allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("log_level", "info")
	v.SetDefault("search_max_results", 9)
	v.SetDefault("recent_videos", 10)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("cache_ttl", time.Duration(0))

	v.AutomaticEnv()
	// The web client historically read its key from VITE_YOUTUBE_API_KEY.
	if err := v.BindEnv("youtube_api_key", "YOUTUBE_API_KEY", "VITE_YOUTUBE_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// ALLOWED_ORIGINS arrives from the environment as one comma separated string.
	cfg.AllowedOrigins = splitList(strings.Join(cfg.AllowedOrigins, ","))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: YOUTUBE_API_KEY environment variable is not set", ErrMissingAPIKey)
	}
	if c.SearchMaxResults <= 0 || c.SearchMaxResults > 50 {
		return fmt.Errorf("search_max_results must be between 1 and 50, got %d", c.SearchMaxResults)
	}
	if c.RecentVideos <= 0 || c.RecentVideos > 50 {
		return fmt.Errorf("recent_videos must be between 1 and 50, got %d", c.RecentVideos)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative")
	}
	return nil
}

// UsesSQLiteCloud reports whether DBPath points at a SQLite Cloud instance
// rather than a local database file.
func (c *Config) UsesSQLiteCloud() bool {
	return strings.HasPrefix(c.DBPath, "sqlitecloud://")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
