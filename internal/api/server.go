package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/yt-viewer/internal/config"
	"github.com/yt-viewer/internal/models"
	"github.com/yt-viewer/internal/store"
)

// VideoService is the part of the YouTube client the handlers depend on
type VideoService interface {
	SearchVideos(ctx context.Context, query string) ([]models.Video, error)
	GetChannelAnalytics(ctx context.Context, channelID string) (*models.ChannelAnalytics, error)
}

// Server represents the API server
type Server struct {
	router *gin.Engine
	videos VideoService
	store  *store.Store

	// nil unless cfg.CacheTTL > 0
	cache *cache.Cache
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, videos VideoService, st *store.Store) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "Pragma"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	server := &Server{
		router: router,
		videos: videos,
		store:  st,
	}
	if cfg.CacheTTL > 0 {
		server.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	server.setupRoutes()

	return server
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Video endpoints
	s.router.GET("/videos/search", s.searchVideos)
	s.router.GET("/videos/:id/share", s.shareVideo)

	// Analytics endpoints
	s.router.GET("/channel/:id/analytics", s.getChannelAnalytics)
	s.router.GET("/channel/:id/charts", s.getChannelCharts)

	// Favorites
	s.router.GET("/favorites", s.listFavorites)
	s.router.POST("/favorites", s.addFavorite)
	s.router.POST("/favorites/toggle", s.toggleFavorite)
	s.router.GET("/favorites/:id", s.getFavorite)
	s.router.DELETE("/favorites/:id", s.removeFavorite)

	// Theme
	s.router.GET("/settings/theme", s.getTheme)
	s.router.POST("/settings/theme/toggle", s.toggleTheme)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server on the specified port
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
			"client":   c.ClientIP(),
		}).Info("request")
	}
}
