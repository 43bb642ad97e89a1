package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yt-viewer/internal/format"
	"github.com/yt-viewer/internal/models"
	"github.com/yt-viewer/internal/youtube"
)

// searchVideos handles requests to search videos
func (s *Server) searchVideos(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "q query parameter is required",
		})
		return
	}

	key := "search:" + query
	if cached, ok := s.fromCache(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	videos, err := s.videos.SearchVideos(c.Request.Context(), query)
	if err != nil {
		s.fetchFailed(c, youtube.ErrFetchVideos, err, logrus.Fields{"query": query})
		return
	}

	s.toCache(key, videos)
	c.JSON(http.StatusOK, videos)
}

// shareVideo handles requests for a video's share link
func (s *Server) shareVideo(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"id":  id,
		"url": format.ShareURL(id),
	})
}

// getChannelAnalytics handles requests to get channel analytics
func (s *Server) getChannelAnalytics(c *gin.Context) {
	analytics, ok := s.channelAnalytics(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// getChannelCharts handles requests for the analytics modal's chart data
func (s *Server) getChannelCharts(c *gin.Context) {
	analytics, ok := s.channelAnalytics(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, format.Charts(analytics))
}

// channelAnalytics fetches (or reuses) analytics for the :id channel. It
// writes the error response itself and reports false on failure.
func (s *Server) channelAnalytics(c *gin.Context) (*models.ChannelAnalytics, bool) {
	channelID := c.Param("id")

	key := "analytics:" + channelID
	if cached, ok := s.fromCache(key); ok {
		return cached.(*models.ChannelAnalytics), true
	}

	analytics, err := s.videos.GetChannelAnalytics(c.Request.Context(), channelID)
	if err != nil {
		s.fetchFailed(c, youtube.ErrFetchChannelAnalytics, err, logrus.Fields{"channel_id": channelID})
		return nil, false
	}

	s.toCache(key, analytics)
	return analytics, true
}

// listFavorites handles requests to list favorites
func (s *Server) listFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Favorites())
}

// getFavorite reports whether a video is a favorite
func (s *Server) getFavorite(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"favorite": s.store.IsFavorite(id),
	})
}

// addFavorite handles requests to add a favorite
func (s *Server) addFavorite(c *gin.Context) {
	video, ok := bindVideo(c)
	if !ok {
		return
	}

	favorites, err := s.store.AddToFavorites(c.Request.Context(), video)
	if err != nil {
		saveFailed(c, err)
		return
	}
	c.JSON(http.StatusCreated, favorites)
}

// toggleFavorite adds the video if it is not a favorite and removes it otherwise
func (s *Server) toggleFavorite(c *gin.Context) {
	video, ok := bindVideo(c)
	if !ok {
		return
	}

	added, favorites, err := s.store.ToggleFavorite(c.Request.Context(), video)
	if err != nil {
		saveFailed(c, err)
		return
	}

	message := "Removed from favorites"
	if added {
		message = "Added to favorites"
	}
	c.JSON(http.StatusOK, gin.H{
		"favorite":  added,
		"message":   message,
		"favorites": favorites,
	})
}

// removeFavorite handles requests to remove a favorite
func (s *Server) removeFavorite(c *gin.Context) {
	favorites, err := s.store.RemoveFromFavorites(c.Request.Context(), c.Param("id"))
	if err != nil {
		saveFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// getTheme handles requests to read the theme
func (s *Server) getTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"darkMode": s.store.DarkMode()})
}

// toggleTheme handles requests to flip the theme
func (s *Server) toggleTheme(c *gin.Context) {
	dark, err := s.store.ToggleDarkMode(c.Request.Context())
	if err != nil {
		saveFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"darkMode": dark})
}

func bindVideo(c *gin.Context) (models.Video, bool) {
	var video models.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video payload"})
		return video, false
	}
	if video.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video id is required"})
		return video, false
	}
	if video.LikeCount == "" {
		video.LikeCount = "0"
	}
	return video, true
}

// fetchFailed logs the underlying cause and answers with the generic message
// for op. Quota exhaustion maps to 429, everything else to 502.
func (s *Server) fetchFailed(c *gin.Context, op error, err error, fields logrus.Fields) {
	kind := youtube.KindOf(err)
	logrus.WithError(err).WithFields(fields).WithField("kind", kind.String()).Error(op.Error())

	status := http.StatusBadGateway
	if kind == youtube.KindQuotaExceeded {
		status = http.StatusTooManyRequests
	}

	body := gin.H{"error": op.Error()}
	if kind != 0 {
		body["kind"] = kind.String()
	}
	c.JSON(status, body)
}

func saveFailed(c *gin.Context, err error) {
	logrus.WithError(err).Error("failed to save viewer state")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save viewer state"})
}

func (s *Server) fromCache(key string) (interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *Server) toCache(key string, value interface{}) {
	if s.cache != nil {
		s.cache.SetDefault(key, value)
	}
}
