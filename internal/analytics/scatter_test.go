package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
)

func TestBuildScatter(t *testing.T) {
	records := []models.VideoRecord{
		{Title: "a", Category: "Music", DurationMinutes: minutes(1), ViewCount: 12},
		{Title: "b", Category: "Music", DurationMinutes: minutes(2), ViewCount: 14},
		{Title: "c", Category: "News", DurationMinutes: minutes(3), ViewCount: 16},
		{Title: "d", Category: "News", DurationMinutes: nil, ViewCount: 1000},
	}

	scatter := BuildScatter(records)

	require.Len(t, scatter.Points, 3)
	assert.Equal(t, models.ScatterPoint{DurationMinutes: 3, ViewCount: 16, Category: "News", Title: "c"}, scatter.Points[2])

	require.NotNil(t, scatter.Trend)
	assert.InDelta(t, 10.0, scatter.Trend.Intercept, 1e-9)
	assert.InDelta(t, 2.0, scatter.Trend.Slope, 1e-9)
	assert.InDelta(t, 1.0, scatter.Trend.RSquared, 1e-9)
}

func TestBuildScatter_NoTrendWithoutSpread(t *testing.T) {
	records := []models.VideoRecord{
		{DurationMinutes: minutes(5), ViewCount: 1},
		{DurationMinutes: minutes(5), ViewCount: 9},
	}

	scatter := BuildScatter(records)

	assert.Len(t, scatter.Points, 2)
	assert.Nil(t, scatter.Trend)
	assert.Nil(t, BuildScatter(nil).Trend)
	assert.NotNil(t, BuildScatter(nil).Points)
}

func TestBuildScatter_ConstantViews(t *testing.T) {
	records := []models.VideoRecord{
		{DurationMinutes: minutes(1), ViewCount: 7},
		{DurationMinutes: minutes(4), ViewCount: 7},
	}

	scatter := BuildScatter(records)

	require.NotNil(t, scatter.Trend)
	assert.InDelta(t, 7.0, scatter.Trend.Intercept, 1e-9)
	assert.InDelta(t, 0.0, scatter.Trend.Slope, 1e-9)
	assert.Equal(t, 1.0, scatter.Trend.RSquared)
}

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions(models.SourceStatic, sampleRecords())

	assert.Equal(t, models.SourceStatic, opts.Source)
	assert.Equal(t, []string{"Music", "Gaming", "News"}, opts.Categories)
	assert.Equal(t, "2024-01-01", opts.MinDate)
	assert.Equal(t, "2024-01-05", opts.MaxDate)
}

func TestBuildOptions_Empty(t *testing.T) {
	opts := BuildOptions(models.SourceLive, nil)

	assert.Empty(t, opts.Categories)
	assert.NotNil(t, opts.Categories)
	assert.Empty(t, opts.MinDate)
	assert.Empty(t, opts.MaxDate)
}

func TestDateBounds(t *testing.T) {
	minDate, maxDate, ok := DateBounds(sampleRecords())

	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), minDate)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), maxDate)

	_, _, ok = DateBounds([]models.VideoRecord{{Title: "undated"}})
	assert.False(t, ok)
}
