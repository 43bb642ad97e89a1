package models

// ChannelAnalytics represents a channel together with the statistics of its
// most recent videos, newest first.
type ChannelAnalytics struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Thumbnail       string        `json:"thumbnail"`
	SubscriberCount int64         `json:"subscriberCount"`
	VideoCount      int64         `json:"videoCount"`
	ViewCount       int64         `json:"viewCount"`
	RecentVideos    []RecentVideo `json:"recentVideos"`
}

// PersistedState is the blob written under the storage namespace.
type PersistedState struct {
	Favorites []Video `json:"favorites"`
	DarkMode  bool    `json:"darkMode"`
}
