package youtube

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yt-viewer/internal/models"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	DefaultSearchMaxResults = 9
	DefaultRecentVideos     = 10
)

// Options configures a Client
type Options struct {
	APIKey           string
	BaseURL          string
	SearchMaxResults int64
	RecentVideos     int64
	Timeout          time.Duration
	RateLimit        float64

	// Transport replaces http.DefaultTransport underneath the key and rate
	// limiting layers.
	Transport http.RoundTripper
}

// Client issues the video search and channel analytics requests against the
// YouTube Data API and maps the responses into view models.
type Client struct {
	service          *yt.Service
	searchMaxResults int64
	recentVideos     int64
}

// NewClient creates a new YouTube client
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("youtube: API key is required")
	}
	if opts.SearchMaxResults <= 0 {
		opts.SearchMaxResults = DefaultSearchMaxResults
	}
	if opts.RecentVideos <= 0 {
		opts.RecentVideos = DefaultRecentVideos
	}

	clientOpts := []option.ClientOption{
		option.WithHTTPClient(newHTTPClient(opts.APIKey, opts.Transport, opts.Timeout, opts.RateLimit)),
	}
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		clientOpts = append(clientOpts, option.WithEndpoint(base))
	}

	service, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create YouTube service")
	}

	return &Client{
		service:          service,
		searchMaxResults: opts.SearchMaxResults,
		recentVideos:     opts.RecentVideos,
	}, nil
}

// SearchVideos searches for videos matching query and joins each result with
// its view and like counts. At most SearchMaxResults videos are returned, in
// search order.
func (c *Client) SearchVideos(ctx context.Context, query string) ([]models.Video, error) {
	videos, err := c.searchVideos(ctx, query)
	if err != nil {
		return nil, newError(ErrFetchVideos, err)
	}
	return videos, nil
}

func (c *Client) searchVideos(ctx context.Context, query string) ([]models.Video, error) {
	logrus.WithField("query", query).Debug("searching videos")

	search, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(c.searchMaxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}

	results := capResults(search.Items, c.searchMaxResults)
	ids := VideoIDs(results)
	if len(ids) == 0 {
		return []models.Video{}, nil
	}

	stats, err := c.statistics(ctx, ids)
	if err != nil {
		return nil, err
	}

	return MapVideos(results, stats), nil
}

// GetChannelAnalytics fetches the channel's metadata and its most recent
// uploads concurrently, then the statistics of those uploads.
func (c *Client) GetChannelAnalytics(ctx context.Context, channelID string) (*models.ChannelAnalytics, error) {
	analytics, err := c.getChannelAnalytics(ctx, channelID)
	if err != nil {
		return nil, newError(ErrFetchChannelAnalytics, err)
	}
	return analytics, nil
}

func (c *Client) getChannelAnalytics(ctx context.Context, channelID string) (*models.ChannelAnalytics, error) {
	logrus.WithField("channel_id", channelID).Debug("fetching channel analytics")

	var (
		channels *yt.ChannelListResponse
		uploads  *yt.SearchListResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		channels, err = c.service.Channels.List([]string{"statistics", "snippet"}).
			Id(channelID).
			Context(gctx).
			Do()
		return errors.Wrap(err, "channel request failed")
	})
	g.Go(func() error {
		var err error
		uploads, err = c.service.Search.List([]string{"snippet"}).
			ChannelId(channelID).
			MaxResults(c.recentVideos).
			Order("date").
			Type("video").
			Context(gctx).
			Do()
		return errors.Wrap(err, "recent videos request failed")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(channels.Items) == 0 {
		return nil, errors.Wrapf(errChannelNotFound, "channel %s", channelID)
	}

	recent := capResults(uploads.Items, c.recentVideos)
	stats := map[string]*yt.VideoStatistics{}
	if ids := VideoIDs(recent); len(ids) > 0 {
		var err error
		if stats, err = c.statistics(ctx, ids); err != nil {
			return nil, err
		}
	}

	return MapChannelAnalytics(channelID, channels.Items[0], recent, stats), nil
}

func (c *Client) statistics(ctx context.Context, ids []string) (map[string]*yt.VideoStatistics, error) {
	resp, err := c.service.Videos.List([]string{"statistics"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "statistics request failed")
	}
	return IndexStatistics(resp.Items), nil
}

func capResults(items []*yt.SearchResult, max int64) []*yt.SearchResult {
	if int64(len(items)) > max {
		return items[:max]
	}
	return items
}
