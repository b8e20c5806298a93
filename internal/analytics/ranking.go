package analytics

import (
	"sort"
	"time"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
)

// TopVideosLimit is the length of the top-videos table.
const TopVideosLimit = 10

// TopByViews returns the n records with the highest viewCount. Ties keep
// their input order.
func TopByViews(records []models.VideoRecord, n int) []models.TopVideo {
	sorted := make([]models.VideoRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ViewCount > sorted[j].ViewCount
	})

	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}

	top := make([]models.TopVideo, 0, len(sorted))
	for _, r := range sorted {
		top = append(top, models.TopVideo{
			Title:           r.Title,
			Category:        r.Category,
			ViewCount:       r.ViewCount,
			DurationMinutes: r.DurationMinutes,
			PubDate:         r.PubDate,
		})
	}
	return top
}

// ViewsByDateRef sums viewCount per trending snapshot, oldest first. Records
// without a date_ref are left out.
func ViewsByDateRef(records []models.VideoRecord) []models.DateViews {
	sums := make(map[time.Time]int64)
	for _, r := range records {
		if r.DateRef == nil {
			continue
		}
		sums[r.DateRef.UTC()] += r.ViewCount
	}

	out := make([]models.DateViews, 0, len(sums))
	for ref, views := range sums {
		out = append(out, models.DateViews{DateRef: ref, ViewCount: views})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateRef.Before(out[j].DateRef)
	})
	return out
}

// ViewsByCategory sums viewCount per category, largest first. Equal sums are
// ordered by category name.
func ViewsByCategory(records []models.VideoRecord) []models.CategoryViews {
	sums := make(map[string]int64)
	for _, r := range records {
		sums[r.Category] += r.ViewCount
	}

	out := make([]models.CategoryViews, 0, len(sums))
	for cat, views := range sums {
		out = append(out, models.CategoryViews{Category: cat, ViewCount: views})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ViewCount != out[j].ViewCount {
			return out[i].ViewCount > out[j].ViewCount
		}
		return out[i].Category < out[j].Category
	})
	return out
}
