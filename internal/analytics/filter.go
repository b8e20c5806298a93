// Package analytics filters a table of video records and computes the
// dashboard aggregates over the selection.
package analytics

import (
	"time"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
)

// Criteria selects records by category and publication date. Start and End
// are calendar dates; End covers its whole day. A zero bound is open.
type Criteria struct {
	Categories []string
	Start      time.Time
	End        time.Time
}

// Filter returns the records whose category is one of c.Categories and whose
// pub_date falls within [Start, End]. Records without a pub_date never match.
func Filter(records []models.VideoRecord, c Criteria) []models.VideoRecord {
	allowed := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		allowed[cat] = struct{}{}
	}

	var endExclusive time.Time
	if !c.End.IsZero() {
		endExclusive = startOfDay(c.End).AddDate(0, 0, 1)
	}
	start := c.Start
	if !start.IsZero() {
		start = startOfDay(start)
	}

	out := make([]models.VideoRecord, 0, len(records))
	for _, r := range records {
		if _, ok := allowed[r.Category]; !ok {
			continue
		}
		if r.PubDate == nil {
			continue
		}
		if !start.IsZero() && r.PubDate.Before(start) {
			continue
		}
		if !endExclusive.IsZero() && !r.PubDate.Before(endExclusive) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
