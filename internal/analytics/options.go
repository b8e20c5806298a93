package analytics

import (
	"time"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/parser"
)

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(records []models.VideoRecord) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		if r.Category == "" {
			continue
		}
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}

// DateBounds returns the calendar dates of the earliest and latest pub_date.
// ok is false when no record has one.
func DateBounds(records []models.VideoRecord) (minDate, maxDate time.Time, ok bool) {
	for _, r := range records {
		if r.PubDate == nil {
			continue
		}
		d := startOfDay(*r.PubDate)
		if !ok || d.Before(minDate) {
			minDate = d
		}
		if !ok || d.After(maxDate) {
			maxDate = d
		}
		ok = true
	}
	return minDate, maxDate, ok
}

// BuildOptions derives the sidebar choices from an unfiltered table.
func BuildOptions(source models.Source, records []models.VideoRecord) models.DashboardOptions {
	opts := models.DashboardOptions{
		Source:     source,
		Categories: Categories(records),
	}
	if minDate, maxDate, ok := DateBounds(records); ok {
		opts.MinDate = minDate.Format(parser.DateLayout)
		opts.MaxDate = maxDate.Format(parser.DateLayout)
	}
	return opts
}
