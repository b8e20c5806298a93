// Package ingest loads the static trending snapshot and memoizes the parsed table.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/metrics"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/parser"
	"github.com/ad-tracker/youtube-trend-analyzer-go/pkg/logger"
)

// UnknownCategory replaces an absent category on either ingestion path.
const UnknownCategory = "Unknown"

// Snapshot column names.
const (
	ColumnViewCount     = "viewCount"
	ColumnDuration      = "duration"
	ColumnPubDate       = "pub_date"
	ColumnDateRef       = "date_ref"
	ColumnPublishedTime = "publishedTime"
	ColumnCategory      = "category"
	ColumnHashtag       = "hashtag"
	ColumnTitle         = "title"
)

var requiredColumns = []string{
	ColumnViewCount,
	ColumnDuration,
	ColumnPubDate,
	ColumnDateRef,
	ColumnPublishedTime,
	ColumnCategory,
	ColumnHashtag,
	ColumnTitle,
}

// ErrMissingColumn is returned when the snapshot header lacks a required column.
var ErrMissingColumn = errors.New("ingest: missing column")

// Table is one ingested set of records and how it was produced.
type Table struct {
	Records []models.VideoRecord `json:"records"`
	Stats   models.LoadStats     `json:"stats"`
}

// StaticLoader reads CSV snapshots. Parsed tables are memoized in its Cache
// keyed by path and content, so an edited file is parsed again.
type StaticLoader struct {
	cache   Cache
	policy  NullPolicy
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a StaticLoader.
type Option func(*StaticLoader)

// WithNullPolicy overrides the default DropIncomplete policy.
func WithNullPolicy(p NullPolicy) Option {
	return func(l *StaticLoader) { l.policy = p }
}

// WithMetrics records cache lookups and dropped rows.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *StaticLoader) { l.metrics = m }
}

// WithClock replaces time.Now for LoadStats.LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(l *StaticLoader) { l.now = now }
}

// NewStaticLoader creates a loader memoizing into cache. A nil cache gets a
// fresh MemoryCache.
func NewStaticLoader(cache Cache, opts ...Option) *StaticLoader {
	if cache == nil {
		cache = NewMemoryCache()
	}

	l := &StaticLoader{
		cache:  cache,
		policy: DropIncomplete,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cache returns the memo the loader writes to.
func (l *StaticLoader) Cache() Cache {
	return l.cache
}

// Load returns the table for the snapshot at path, parsing it only when this
// path and content have not been seen before. Cache failures are logged and
// fall through to a fresh parse.
func (l *StaticLoader) Load(ctx context.Context, path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	key := SourceKey(path, content)

	cached, err := l.cache.Get(ctx, key)
	switch {
	case err == nil:
		l.metrics.ObserveCacheLookup(true)
		logger.Log.Debug("Static snapshot served from cache",
			zap.String("path", path),
			zap.String("key", key),
		)
		hit := *cached
		hit.Stats.CacheHit = true
		return &hit, nil
	case !errors.Is(err, ErrCacheMiss):
		logger.Log.Warn("Static cache read failed, parsing snapshot",
			zap.Error(err),
			zap.String("key", key),
		)
	}
	l.metrics.ObserveCacheLookup(false)

	table, err := l.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	table.Stats.Key = key

	if err := l.cache.Set(ctx, key, table); err != nil {
		logger.Log.Warn("Failed to memoize static snapshot",
			zap.Error(err),
			zap.String("key", key),
		)
	}

	logger.Log.Info("Static snapshot parsed",
		zap.String("path", path),
		zap.Int("rowsRead", table.Stats.RowsRead),
		zap.Int("rowsKept", table.Stats.RowsKept),
		zap.Int("droppedInvalidViews", table.Stats.DroppedInvalidViews),
		zap.Int("droppedIncomplete", table.Stats.DroppedIncomplete),
	)

	return table, nil
}

// Parse reads a snapshot without touching the cache. Rows whose viewCount is
// not a plain integer are dropped, bad durations and timestamps become nulls,
// and the loader's null policy runs last.
func (l *StaticLoader) Parse(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", df.Err)
	}

	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}

	cols := make(map[string][]string, len(requiredColumns))
	for _, name := range requiredColumns {
		if !present[name] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[name] = df.Col(name).Records()
	}

	rows := df.Nrow()
	records := make([]models.VideoRecord, 0, rows)
	invalidViews := 0

	for i := 0; i < rows; i++ {
		views, ok := parser.ParseViewCount(cols[ColumnViewCount][i])
		if !ok {
			invalidViews++
			continue
		}

		rec := models.VideoRecord{
			Title:     textOrEmpty(cols[ColumnTitle][i]),
			ViewCount: views,
			Category:  categoryOrUnknown(cols[ColumnCategory][i]),
			Hashtag:   optionalText(cols[ColumnHashtag][i]),
		}
		if d, ok := parser.ParseClockDuration(cols[ColumnDuration][i]); ok {
			rec.DurationMinutes = &d
		}
		if t, ok := parser.ParseNaiveTimestamp(cols[ColumnPubDate][i]); ok {
			rec.PubDate = &t
		}
		if t, ok := parser.ParseNaiveTimestamp(cols[ColumnPublishedTime][i]); ok {
			rec.PublishedTime = &t
		}
		if t, ok := parser.ParseTimestamp(cols[ColumnDateRef][i]); ok {
			rec.DateRef = &t
		}

		records = append(records, rec)
	}

	kept, incomplete := l.policy.Apply(records)

	l.metrics.AddDropped(string(models.SourceStatic), metrics.ReasonInvalidViews, invalidViews)
	l.metrics.AddDropped(string(models.SourceStatic), metrics.ReasonIncomplete, incomplete)

	return &Table{
		Records: kept,
		Stats: models.LoadStats{
			Source:              models.SourceStatic,
			RowsRead:            rows,
			RowsKept:            len(kept),
			DroppedInvalidViews: invalidViews,
			DroppedIncomplete:   incomplete,
			LoadedAt:            l.now(),
		},
	}, nil
}

func textOrEmpty(s string) string {
	if parser.IsMissing(s) {
		return ""
	}
	return s
}

func optionalText(s string) *string {
	if parser.IsMissing(s) {
		return nil
	}
	return &s
}

func categoryOrUnknown(s string) string {
	if parser.IsMissing(s) {
		return UnknownCategory
	}
	return strings.TrimSpace(s)
}
