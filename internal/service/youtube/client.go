// Package youtube fetches the live trending chart from the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/config"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/metrics"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/parser"
	"github.com/ad-tracker/youtube-trend-analyzer-go/pkg/logger"
)

// MaxResultsLimit is the largest page videos.list serves.
const MaxResultsLimit = 50

// defaultDuration stands in for videos the API returns without a duration.
const defaultDuration = "PT0M0S"

const unknownCategory = "Unknown"

// ErrNoAPIKey is returned by NewClient when no credential is configured.
var ErrNoAPIKey = errors.New("YouTube API key is required")

var trendingParts = []string{"snippet", "statistics", "contentDetails"}

const redacted = "REDACTED"

// FetchError wraps any failure of the trending request. Its message never
// carries the request query, which holds the API key.
type FetchError struct {
	Cause error
	msg   string
}

func newFetchError(cause error, apiKey string) *FetchError {
	return &FetchError{Cause: cause, msg: redactKey(cause, apiKey)}
}

func (e *FetchError) Error() string {
	msg := e.msg
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	return "failed to fetch trending videos from YouTube API: " + msg
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// redactKey renders err with the query of any request URL dropped and every
// occurrence of apiKey masked.
func redactKey(err error, apiKey string) string {
	msg := err.Error()

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.URL != "" {
		if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
			u.RawQuery = ""
			msg = strings.ReplaceAll(msg, urlErr.URL, u.String())
		}
	}
	if apiKey != "" {
		msg = strings.ReplaceAll(msg, apiKey, redacted)
	}
	return msg
}

// Client wraps the YouTube Data API v3 client
type Client struct {
	service    *youtube.Service
	apiKey     string
	chart      string
	regionCode string
	maxResults int64
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewClient creates a client for the trending chart described by cfg. Extra
// client options are appended after the API key and endpoint.
func NewClient(cfg config.YouTubeConfig, m *metrics.Metrics, extra ...option.ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	opts = append(opts, extra...)

	service, err := youtube.NewService(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 || maxResults > MaxResultsLimit {
		maxResults = MaxResultsLimit
	}

	chart := cfg.Chart
	if chart == "" {
		chart = "mostPopular"
	}

	return &Client{
		service:    service,
		apiKey:     cfg.APIKey,
		chart:      chart,
		regionCode: cfg.RegionCode,
		maxResults: maxResults,
		metrics:    m,
		now:        time.Now,
	}, nil
}

// FetchTrending issues one videos.list call and maps every returned item.
// Any failure is returned as a *FetchError; there is no retry.
func (c *Client) FetchTrending(ctx context.Context) ([]models.VideoRecord, error) {
	call := c.service.Videos.List(trendingParts).
		Chart(c.chart).
		MaxResults(c.maxResults).
		Context(ctx)
	if c.regionCode != "" {
		call = call.RegionCode(c.regionCode)
	}

	response, err := call.Do()
	c.metrics.ObserveLiveFetch(err)
	if err != nil {
		fetchErr := newFetchError(err, c.apiKey)
		logger.Log.Error("Trending fetch failed",
			zap.Error(fetchErr),
			zap.String("regionCode", c.regionCode),
			zap.String("chart", c.chart),
		)
		return nil, fetchErr
	}

	fetchedAt := c.now().UTC()
	records := make([]models.VideoRecord, 0, len(response.Items))
	for _, item := range response.Items {
		records = append(records, mapVideo(item, fetchedAt))
	}

	logger.Log.Info("Trending videos fetched",
		zap.String("regionCode", c.regionCode),
		zap.Int("items", len(records)),
	)

	return records, nil
}

// mapVideo converts one API item into the flat record shape. Every record of
// a batch shares fetchedAt as its date_ref.
func mapVideo(video *youtube.Video, fetchedAt time.Time) models.VideoRecord {
	dateRef := fetchedAt
	record := models.VideoRecord{
		Category: unknownCategory,
		DateRef:  &dateRef,
	}

	if video.Snippet != nil {
		record.Title = video.Snippet.Title
		if video.Snippet.CategoryId != "" {
			record.Category = video.Snippet.CategoryId
		}
		if len(video.Snippet.Tags) > 0 {
			tags := strings.Join(video.Snippet.Tags, " ")
			record.Hashtag = &tags
		}
		if published, ok := parser.ParseNaiveTimestamp(video.Snippet.PublishedAt); ok {
			pubDate := published
			record.PublishedTime = &published
			record.PubDate = &pubDate
		}
	}

	if video.Statistics != nil {
		record.ViewCount = int64(video.Statistics.ViewCount)
	}

	duration := defaultDuration
	if video.ContentDetails != nil && video.ContentDetails.Duration != "" {
		duration = video.ContentDetails.Duration
	}
	if minutes, ok := parser.ParseISODuration(duration); ok {
		record.DurationMinutes = &minutes
	}

	return record
}
