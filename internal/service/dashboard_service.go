// Package service runs one dashboard render cycle: select a source, obtain
// its records, filter them and compute every aggregate.
package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/analytics"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/ingest"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/metrics"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/parser"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/service/youtube"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/validation"
	"github.com/ad-tracker/youtube-trend-analyzer-go/pkg/logger"
)

// StaticSource loads the memoized CSV snapshot.
type StaticSource interface {
	Load(ctx context.Context, path string) (*ingest.Table, error)
}

// LiveSource fetches the current trending chart.
type LiveSource interface {
	FetchTrending(ctx context.Context) ([]models.VideoRecord, error)
}

// DashboardConfig holds the render settings that do not change per request.
type DashboardConfig struct {
	CSVPath       string
	DefaultSource models.Source
	// LivePolicy is applied to fetched rows; static rows use the loader's own.
	LivePolicy ingest.NullPolicy
}

// DashboardService handles dashboard rendering business logic.
type DashboardService struct {
	cfg       DashboardConfig
	static    StaticSource
	live      LiveSource
	cache     ingest.Cache
	validator *validation.Validator
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService instance. live may be
// nil when no API key is configured; live requests then fail.
func NewDashboardService(
	cfg DashboardConfig,
	static StaticSource,
	live LiveSource,
	cache ingest.Cache,
	validator *validation.Validator,
	m *metrics.Metrics,
) *DashboardService {
	if cfg.DefaultSource == "" {
		cfg.DefaultSource = models.SourceStatic
	}
	if validator == nil {
		validator = validation.New(0)
	}
	return &DashboardService{
		cfg:       cfg,
		static:    static,
		live:      live,
		cache:     cache,
		validator: validator,
		metrics:   m,
		now:       time.Now,
	}
}

// Render produces the full dashboard payload for q.
func (s *DashboardService) Render(ctx context.Context, q *models.DashboardQuery) (*models.DashboardResponse, error) {
	if err := s.validator.ValidateQuery(q); err != nil {
		logger.Log.Warn("Dashboard query validation failed",
			zap.Error(err),
			zap.String("source", q.Source),
		)
		return nil, &ValidationError{Message: err.Error()}
	}

	source, _ := models.ParseSource(q.Source, s.cfg.DefaultSource)

	table, err := s.records(ctx, source)
	if err != nil {
		return nil, err
	}

	options := analytics.BuildOptions(source, table.Records)
	criteria := resolveCriteria(q, table.Records, options)
	filtered := analytics.Filter(table.Records, criteria)

	response := &models.DashboardResponse{
		RenderID:        uuid.New(),
		Source:          source,
		GeneratedAt:     s.now().UTC(),
		Filters:         appliedFilters(criteria),
		Stats:           table.Stats,
		KPIs:            analytics.Summarize(filtered).KPIs(),
		ViewsOverTime:   analytics.ViewsByDateRef(filtered),
		TopVideos:       analytics.TopByViews(filtered, analytics.TopVideosLimit),
		ViewsByCategory: analytics.ViewsByCategory(filtered),
		Scatter:         analytics.BuildScatter(filtered),
		Hashtags:        analytics.BuildHashtagCloud(filtered, analytics.WordCloudLimit),
		Rows:            filtered,
	}

	logger.Log.Info("Dashboard rendered",
		zap.String("renderId", response.RenderID.String()),
		zap.String("source", string(source)),
		zap.Int("rowsAvailable", len(table.Records)),
		zap.Int("rowsSelected", len(filtered)),
		zap.Bool("cacheHit", table.Stats.CacheHit),
	)

	return response, nil
}

// Options returns the sidebar choices for source.
func (s *DashboardService) Options(ctx context.Context, source string) (*models.DashboardOptions, error) {
	src, ok := models.ParseSource(source, s.cfg.DefaultSource)
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid source: %s", source)}
	}

	table, err := s.records(ctx, src)
	if err != nil {
		return nil, err
	}

	options := analytics.BuildOptions(src, table.Records)
	return &options, nil
}

// InvalidateCache drops every memoized static table.
func (s *DashboardService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Purge(ctx); err != nil {
		logger.Log.Error("Failed to purge static cache", zap.Error(err))
		return &ProcessingError{Message: "failed to purge static cache", Cause: err}
	}

	logger.Log.Info("Static cache purged")
	return nil
}

// Ready reports whether a static render could be served: the snapshot must be
// readable and a remote cache reachable.
func (s *DashboardService) Ready(ctx context.Context) error {
	f, err := os.Open(s.cfg.CSVPath)
	if err != nil {
		return fmt.Errorf("snapshot not readable: %w", err)
	}
	_ = f.Close()

	if p, ok := s.cache.(ingest.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("cache unreachable: %w", err)
		}
	}
	return nil
}

// LiveAvailable reports whether a live source is configured.
func (s *DashboardService) LiveAvailable() bool {
	return s.live != nil
}

func (s *DashboardService) records(ctx context.Context, source models.Source) (*ingest.Table, error) {
	var (
		table *ingest.Table
		err   error
	)

	switch source {
	case models.SourceLive:
		table, err = s.fetchLive(ctx)
	default:
		table, err = s.static.Load(ctx, s.cfg.CSVPath)
	}
	if err != nil {
		logger.Log.Error("Failed to obtain records",
			zap.Error(err),
			zap.String("source", string(source)),
		)
		return nil, &SourceError{Source: source, Cause: err}
	}

	s.metrics.SetIngested(string(source), len(table.Records))
	return table, nil
}

func (s *DashboardService) fetchLive(ctx context.Context) (*ingest.Table, error) {
	if s.live == nil {
		return nil, youtube.ErrNoAPIKey
	}

	fetched, err := s.live.FetchTrending(ctx)
	if err != nil {
		return nil, err
	}

	kept, dropped := s.cfg.LivePolicy.Apply(fetched)
	s.metrics.AddDropped(string(models.SourceLive), metrics.ReasonIncomplete, dropped)

	return &ingest.Table{
		Records: kept,
		Stats: models.LoadStats{
			Source:            models.SourceLive,
			RowsRead:          len(fetched),
			RowsKept:          len(kept),
			DroppedIncomplete: dropped,
			LoadedAt:          s.now().UTC(),
		},
	}, nil
}

// resolveCriteria fills unset filter values from the sidebar defaults: every
// category and the full pub_date range.
func resolveCriteria(q *models.DashboardQuery, records []models.VideoRecord, options models.DashboardOptions) analytics.Criteria {
	criteria := analytics.Criteria{Categories: options.Categories}
	if q.CategoriesSet || len(q.Categories) > 0 {
		criteria.Categories = q.Categories
	}
	if criteria.Categories == nil {
		criteria.Categories = []string{}
	}

	minDate, maxDate, ok := analytics.DateBounds(records)
	if ok {
		criteria.Start, criteria.End = minDate, maxDate
	}
	if t, ok := parser.ParseDate(q.StartDate); ok {
		criteria.Start = t
	}
	if t, ok := parser.ParseDate(q.EndDate); ok {
		criteria.End = t
	}

	return criteria
}

func appliedFilters(c analytics.Criteria) models.AppliedFilters {
	f := models.AppliedFilters{Categories: c.Categories}
	if !c.Start.IsZero() {
		f.StartDate = c.Start.Format(parser.DateLayout)
	}
	if !c.End.IsZero() {
		f.EndDate = c.End.Format(parser.DateLayout)
	}
	return f
}
