package main

import (
	"context"
	"io"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/yt-viewer/internal/api"
	"github.com/yt-viewer/internal/config"
	"github.com/yt-viewer/internal/models"
	"github.com/yt-viewer/internal/store"
	"github.com/yt-viewer/internal/youtube"
)

type stateDatabase interface {
	store.Persister
	io.Closer
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Warning: .env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	ctx := context.Background()

	// Initialize database
	db, err := openDatabase(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	st, err := store.Open(ctx, db, cfg.StorageNamespace)
	if err != nil {
		logrus.Fatalf("Failed to restore viewer state: %v", err)
	}

	// Initialize YouTube API
	client, err := youtube.NewClient(ctx, youtube.Options{
		APIKey:           cfg.YouTubeAPIKey,
		BaseURL:          cfg.YouTubeBaseURL,
		SearchMaxResults: cfg.SearchMaxResults,
		RecentVideos:     cfg.RecentVideos,
		Timeout:          cfg.RequestTimeout,
		RateLimit:        cfg.RateLimit,
	})
	if err != nil {
		logrus.Fatalf("Failed to initialize YouTube API: %v", err)
	}

	server := api.NewServer(cfg, client, st)

	logrus.WithFields(logrus.Fields{
		"port":      cfg.Port,
		"namespace": cfg.StorageNamespace,
		"cache_ttl": cfg.CacheTTL,
	}).Info("Server starting")
	if err := server.Start(cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

func openDatabase(cfg *config.Config) (stateDatabase, error) {
	if cfg.UsesSQLiteCloud() {
		return models.NewDatabase(cfg.DBPath)
	}
	return models.NewLocalDatabase(cfg.DBPath)
}
