package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
)

// BuildScatter plots viewCount against duration for every record with a
// duration and fits an OLS trend line when at least two distinct durations
// are present.
func BuildScatter(records []models.VideoRecord) models.Scatter {
	points := make([]models.ScatterPoint, 0, len(records))
	xs := make([]float64, 0, len(records))
	ys := make([]float64, 0, len(records))
	distinct := make(map[float64]struct{})

	for _, r := range records {
		if r.DurationMinutes == nil {
			continue
		}
		points = append(points, models.ScatterPoint{
			DurationMinutes: *r.DurationMinutes,
			ViewCount:       r.ViewCount,
			Category:        r.Category,
			Title:           r.Title,
		})
		xs = append(xs, *r.DurationMinutes)
		ys = append(ys, float64(r.ViewCount))
		distinct[*r.DurationMinutes] = struct{}{}
	}

	scatter := models.Scatter{Points: points}
	if len(distinct) < 2 {
		return scatter
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		// constant y: the line fits exactly
		r2 = 1
	}
	scatter.Trend = &models.TrendLine{
		Intercept: intercept,
		Slope:     slope,
		RSquared:  r2,
	}
	return scatter
}
