package youtube

import (
	"strconv"

	"github.com/yt-viewer/internal/models"
	yt "google.golang.org/api/youtube/v3"
)

// IndexStatistics keys statistics records by video id. Records without an id
// or without statistics are dropped.
func IndexStatistics(items []*yt.Video) map[string]*yt.VideoStatistics {
	stats := make(map[string]*yt.VideoStatistics, len(items))
	for _, item := range items {
		if item == nil || item.Id == "" || item.Statistics == nil {
			continue
		}
		stats[item.Id] = item.Statistics
	}
	return stats
}

// MapVideos joins search results with their statistics by video id. Output
// order follows results; a result with no statistics gets zero counts.
func MapVideos(results []*yt.SearchResult, stats map[string]*yt.VideoStatistics) []models.Video {
	videos := make([]models.Video, 0, len(results))
	for _, item := range results {
		id := videoID(item)
		if id == "" {
			continue
		}

		video := models.Video{
			ID:        id,
			ViewCount: "0",
			LikeCount: "0",
		}
		if s := item.Snippet; s != nil {
			video.Title = s.Title
			video.Description = s.Description
			video.ChannelTitle = s.ChannelTitle
			video.ChannelID = s.ChannelId
			video.PublishedAt = s.PublishedAt
			video.Thumbnail = highThumbnail(s.Thumbnails)
		}
		if st, ok := stats[id]; ok {
			video.ViewCount = strconv.FormatUint(st.ViewCount, 10)
			video.LikeCount = strconv.FormatUint(st.LikeCount, 10)
		}
		videos = append(videos, video)
	}
	return videos
}

// MapChannelAnalytics builds the analytics record for channelID from its
// channel resource, its most recent uploads and their statistics.
func MapChannelAnalytics(channelID string, channel *yt.Channel, recent []*yt.SearchResult, stats map[string]*yt.VideoStatistics) *models.ChannelAnalytics {
	analytics := &models.ChannelAnalytics{
		ID:           channelID,
		RecentVideos: make([]models.RecentVideo, 0, len(recent)),
	}

	if channel != nil {
		if s := channel.Snippet; s != nil {
			analytics.Title = s.Title
			analytics.Thumbnail = defaultThumbnail(s.Thumbnails)
		}
		if st := channel.Statistics; st != nil {
			analytics.SubscriberCount = toInt64(st.SubscriberCount)
			analytics.VideoCount = toInt64(st.VideoCount)
			analytics.ViewCount = toInt64(st.ViewCount)
		}
	}

	for _, item := range recent {
		id := videoID(item)
		if id == "" {
			continue
		}
		var rv models.RecentVideo
		if s := item.Snippet; s != nil {
			rv.Title = s.Title
			rv.PublishedAt = s.PublishedAt
		}
		if st, ok := stats[id]; ok {
			rv.ViewCount = toInt64(st.ViewCount)
			rv.LikeCount = toInt64(st.LikeCount)
		}
		analytics.RecentVideos = append(analytics.RecentVideos, rv)
	}

	return analytics
}

// VideoIDs returns the ids of results in order, skipping results that are not videos.
func VideoIDs(results []*yt.SearchResult) []string {
	ids := make([]string, 0, len(results))
	for _, item := range results {
		if id := videoID(item); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func videoID(item *yt.SearchResult) string {
	if item == nil || item.Id == nil {
		return ""
	}
	return item.Id.VideoId
}

func highThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil || t.High == nil {
		return ""
	}
	return t.High.Url
}

func defaultThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil || t.Default == nil {
		return ""
	}
	return t.Default.Url
}

// toInt64 clamps counts that do not fit in an int64 to zero.
func toInt64(n uint64) int64 {
	if n > 1<<63-1 {
		return 0
	}
	return int64(n)
}
