package models

// ChannelHeader carries the abbreviated counts shown above the charts
type ChannelHeader struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Thumbnail       string `json:"thumbnail"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
	ViewCount       string `json:"viewCount"`
}

// Series is a single labelled data set for a chart.
// Labels and Data always have the same length.
type Series struct {
	Label  string   `json:"label"`
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// ChannelCharts is the analytics modal payload: a line series of views over
// publish dates and a bar series of likes per video, both oldest first.
type ChannelCharts struct {
	Header       ChannelHeader `json:"header"`
	ViewsTrend   Series        `json:"viewsTrend"`
	LikesByVideo Series        `json:"likesByVideo"`
}
