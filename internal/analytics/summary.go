package analytics

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/stat"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
)

// NaNDisplay is shown for a KPI that is undefined on an empty selection.
const NaNDisplay = "nan"

// Summary holds the headline scalars. The means are NaN when undefined.
type Summary struct {
	Count               int
	MeanViews           float64
	MeanDurationMinutes float64
}

// Summarize computes the record count, the mean viewCount and the mean
// duration over records that have one.
func Summarize(records []models.VideoRecord) Summary {
	views := make([]float64, 0, len(records))
	durations := make([]float64, 0, len(records))
	for _, r := range records {
		views = append(views, float64(r.ViewCount))
		if r.DurationMinutes != nil {
			durations = append(durations, *r.DurationMinutes)
		}
	}

	return Summary{
		Count:               len(records),
		MeanViews:           mean(views),
		MeanDurationMinutes: mean(durations),
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// KPIs renders s for display: mean views with thousands separators and no
// decimals, mean duration with two decimals.
func (s Summary) KPIs() models.KPIs {
	kpis := models.KPIs{
		TotalVideos:            s.Count,
		AverageViewsDisplay:    NaNDisplay,
		AverageDurationDisplay: NaNDisplay,
	}

	if !math.IsNaN(s.MeanViews) {
		v := s.MeanViews
		kpis.AverageViews = &v
		kpis.AverageViewsDisplay = humanize.Comma(int64(math.RoundToEven(v)))
	}
	if !math.IsNaN(s.MeanDurationMinutes) {
		d := s.MeanDurationMinutes
		kpis.AverageDurationMinutes = &d
		kpis.AverageDurationDisplay = fmt.Sprintf("%.2f", d)
	}

	return kpis
}
