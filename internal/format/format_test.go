package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yt-viewer/internal/models"
)

func TestCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{3420, "3.4K"},
		{999_999, "1000.0K"},
		{1_000_000, "1.0M"},
		{1_234_567, "1.2M"},
		{2_500_000_000, "2500.0M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count(tt.in), "Count(%d)", tt.in)
	}
}

func TestCountString(t *testing.T) {
	assert.Equal(t, "1.2M", CountString("1234567"))
	assert.Equal(t, "42", CountString("42"))
	assert.Equal(t, "n/a", CountString("n/a"))
}

func TestShareURL(t *testing.T) {
	assert.Equal(t, "https://youtube.com/watch?v=dQw4w9WgXcQ", ShareURL("dQw4w9WgXcQ"))
}

func TestPublishDate(t *testing.T) {
	assert.Equal(t, "2024-05-06", PublishDate("2024-05-06T23:10:00Z"))
	assert.Equal(t, "yesterday", PublishDate("yesterday"))
}

func TestBarLabel(t *testing.T) {
	assert.Equal(t, "short...", BarLabel("short"))
	assert.Equal(t, "exactly twenty chars...", BarLabel("exactly twenty chars"))
	assert.Equal(t, "A very long video ti...", BarLabel("A very long video title indeed"))
	assert.Equal(t, "日本語のタイトル...", BarLabel("日本語のタイトル"))
}

func TestCharts_OldestFirst(t *testing.T) {
	a := &models.ChannelAnalytics{
		ID:              "UC1",
		Title:           "Cats",
		SubscriberCount: 1_500_000,
		VideoCount:      42,
		ViewCount:       98_765,
		RecentVideos: []models.RecentVideo{
			{Title: "newest", ViewCount: 300, LikeCount: 3, PublishedAt: "2024-03-03T00:00:00Z"},
			{Title: "middle", ViewCount: 200, LikeCount: 2, PublishedAt: "2024-03-02T00:00:00Z"},
			{Title: "oldest", ViewCount: 100, LikeCount: 1, PublishedAt: "2024-03-01T00:00:00Z"},
		},
	}

	c := Charts(a)

	assert.Equal(t, "1.5M", c.Header.SubscriberCount)
	assert.Equal(t, "42", c.Header.VideoCount)
	assert.Equal(t, "98.8K", c.Header.ViewCount)

	require.Len(t, c.ViewsTrend.Data, 3)
	assert.Equal(t, []int64{100, 200, 300}, c.ViewsTrend.Data)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03"}, c.ViewsTrend.Labels)
	assert.Equal(t, []int64{1, 2, 3}, c.LikesByVideo.Data)
	assert.Equal(t, "oldest...", c.LikesByVideo.Labels[0])

	// the source slice is left untouched
	assert.Equal(t, "newest", a.RecentVideos[0].Title)
}

func TestCharts_NoVideos(t *testing.T) {
	c := Charts(&models.ChannelAnalytics{ID: "UC1"})
	assert.NotNil(t, c.ViewsTrend.Data)
	assert.Empty(t, c.ViewsTrend.Data)
	assert.Empty(t, c.LikesByVideo.Labels)
}
