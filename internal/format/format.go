// Package format turns view models into the display values the web client
// shows: abbreviated counts, share links and chart series.
package format

import (
	"strconv"
	"time"

	"github.com/yt-viewer/internal/models"
)

const (
	watchURL       = "https://youtube.com/watch?v="
	barLabelLength = 20
)

// Count abbreviates n as "1.2M", "3.4K" or the plain number below a thousand.
func Count(n int64) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "K"
	}
	return strconv.FormatInt(n, 10)
}

// CountString abbreviates a textual count. Text that is not a number is
// returned unchanged.
func CountString(s string) string {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return Count(n)
}

// ShareURL is the canonical watch link copied to the clipboard on share.
func ShareURL(videoID string) string {
	return watchURL + videoID
}

// PublishDate renders an RFC 3339 timestamp as a calendar date. Unparseable
// input is returned unchanged.
func PublishDate(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format("2006-01-02")
}

// BarLabel shortens a title for the likes chart.
func BarLabel(title string) string {
	r := []rune(title)
	if len(r) > barLabelLength {
		r = r[:barLabelLength]
	}
	return string(r) + "..."
}

// Charts builds the analytics modal payload. The recent videos arrive newest
// first; both series are emitted oldest first.
func Charts(a *models.ChannelAnalytics) *models.ChannelCharts {
	n := len(a.RecentVideos)
	charts := &models.ChannelCharts{
		Header: models.ChannelHeader{
			ID:              a.ID,
			Title:           a.Title,
			Thumbnail:       a.Thumbnail,
			SubscriberCount: Count(a.SubscriberCount),
			VideoCount:      Count(a.VideoCount),
			ViewCount:       Count(a.ViewCount),
		},
		ViewsTrend: models.Series{
			Label:  "Views per Video",
			Labels: make([]string, 0, n),
			Data:   make([]int64, 0, n),
		},
		LikesByVideo: models.Series{
			Label:  "Likes per Video",
			Labels: make([]string, 0, n),
			Data:   make([]int64, 0, n),
		},
	}

	for i := n - 1; i >= 0; i-- {
		v := a.RecentVideos[i]
		charts.ViewsTrend.Labels = append(charts.ViewsTrend.Labels, PublishDate(v.PublishedAt))
		charts.ViewsTrend.Data = append(charts.ViewsTrend.Data, v.ViewCount)
		charts.LikesByVideo.Labels = append(charts.LikesByVideo.Labels, BarLabel(v.Title))
		charts.LikesByVideo.Data = append(charts.LikesByVideo.Data, v.LikeCount)
	}
	return charts
}
