// Package models contains the data models and DTOs for the trend analyzer service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Source names where a table of video records came from.
type Source string

// Source constants define the two ingestion paths.
const (
	SourceStatic Source = "static"
	SourceLive   Source = "live"
)

// ParseSource maps a query value to a Source. Empty maps to fallback.
func ParseSource(s string, fallback Source) (Source, bool) {
	switch Source(s) {
	case "":
		return fallback, true
	case SourceStatic, SourceLive:
		return Source(s), true
	default:
		return "", false
	}
}

// VideoRecord is the normalized row produced by either ingestion path.
// Nil pointers are the nulls of unparseable or absent source values.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type VideoRecord struct {
	Title           string     `json:"title"`
	PublishedTime   *time.Time `json:"publishedTime"`
	PubDate         *time.Time `json:"pub_date"`
	DurationMinutes *float64   `json:"duration_minutes"`
	ViewCount       int64      `json:"viewCount"`
	Hashtag         *string    `json:"hashtag"`
	Category        string     `json:"category"`
	DateRef         *time.Time `json:"date_ref"`
}

// Complete reports whether the record carries both a publication date and a duration.
func (r VideoRecord) Complete() bool {
	return r.PubDate != nil && r.DurationMinutes != nil
}

// LoadStats describes one ingestion pass.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type LoadStats struct {
	Source              Source    `json:"source"`
	Key                 string    `json:"key,omitempty"`
	RowsRead            int       `json:"rowsRead"`
	RowsKept            int       `json:"rowsKept"`
	DroppedInvalidViews int       `json:"droppedInvalidViews"`
	DroppedIncomplete   int       `json:"droppedIncomplete"`
	CacheHit            bool      `json:"cacheHit"`
	LoadedAt            time.Time `json:"loadedAt"`
}

// KPIs are the three headline scalars. Numeric fields are nil when undefined
// (empty selection); the display strings then read "nan".
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type KPIs struct {
	TotalVideos            int      `json:"totalVideos"`
	AverageViews           *float64 `json:"averageViews"`
	AverageViewsDisplay    string   `json:"averageViewsDisplay"`
	AverageDurationMinutes *float64 `json:"averageDurationMinutes"`
	AverageDurationDisplay string   `json:"averageDurationDisplay"`
}

// DateViews is one point of the views-over-time series.
type DateViews struct {
	DateRef   time.Time `json:"date_ref"`
	ViewCount int64     `json:"viewCount"`
}

// CategoryViews is one bar of the views-by-category chart.
type CategoryViews struct {
	Category  string `json:"category"`
	ViewCount int64  `json:"viewCount"`
}

// TopVideo is one row of the top-videos table.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type TopVideo struct {
	Title           string     `json:"title"`
	Category        string     `json:"category"`
	ViewCount       int64      `json:"viewCount"`
	DurationMinutes *float64   `json:"duration_minutes"`
	PubDate         *time.Time `json:"pub_date"`
}

// ScatterPoint is one dot of the duration-vs-views plot.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ScatterPoint struct {
	DurationMinutes float64 `json:"duration_minutes"`
	ViewCount       int64   `json:"viewCount"`
	Category        string  `json:"category"`
	Title           string  `json:"title"`
}

// TrendLine is an ordinary least squares fit of views on duration.
type TrendLine struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	RSquared  float64 `json:"rSquared"`
}

// Scatter holds the plot points and, when it can be fitted, the trend line.
type Scatter struct {
	Points []ScatterPoint `json:"points"`
	Trend  *TrendLine     `json:"trend"`
}

// WordCount is one word of the hashtag cloud.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// HashtagCloud carries the hashtag corpus and its word frequencies.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type HashtagCloud struct {
	Corpus       string      `json:"corpus"`
	HasWordCloud bool        `json:"hasWordCloud"`
	Message      string      `json:"message,omitempty"`
	Words        []WordCount `json:"words"`
}

// DashboardOptions are the sidebar choices derived from the unfiltered table.
type DashboardOptions struct {
	Source     Source   `json:"source"`
	Categories []string `json:"categories"`
	MinDate    string   `json:"minDate,omitempty"`
	MaxDate    string   `json:"maxDate,omitempty"`
}

// DashboardQuery is a raw dashboard request as received from a caller.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DashboardQuery struct {
	Source     string   `json:"source"`
	Categories []string `json:"categories"`
	// CategoriesSet separates an explicit empty selection from no selection.
	CategoriesSet bool   `json:"categoriesSet"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

// AppliedFilters echoes the filter values a dashboard was rendered with.
type AppliedFilters struct {
	Categories []string `json:"categories"`
	StartDate  string   `json:"startDate,omitempty"`
	EndDate    string   `json:"endDate,omitempty"`
}

// DashboardResponse is everything the presentation layer needs for one render.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DashboardResponse struct {
	RenderID        uuid.UUID       `json:"renderId"`
	Source          Source          `json:"source"`
	GeneratedAt     time.Time       `json:"generatedAt"`
	Filters         AppliedFilters  `json:"filters"`
	Stats           LoadStats       `json:"stats"`
	KPIs            KPIs            `json:"kpis"`
	ViewsOverTime   []DateViews     `json:"viewsOverTime"`
	TopVideos       []TopVideo      `json:"topVideos"`
	ViewsByCategory []CategoryViews `json:"viewsByCategory"`
	Scatter         Scatter         `json:"scatter"`
	Hashtags        HashtagCloud    `json:"hashtags"`
	Rows            []VideoRecord   `json:"rows"`
}

// ErrorResponse represents an error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}
