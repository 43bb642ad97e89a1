package models

// Video represents one search result item joined with its statistics.
// Counts stay textual, matching what the YouTube API returns.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	ChannelID    string `json:"channelId"`
	PublishedAt  string `json:"publishedAt"`
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
}

// RecentVideo is one entry of a channel's most recent uploads
type RecentVideo struct {
	Title       string `json:"title"`
	ViewCount   int64  `json:"viewCount"`
	LikeCount   int64  `json:"likeCount"`
	PublishedAt string `json:"publishedAt"`
}
