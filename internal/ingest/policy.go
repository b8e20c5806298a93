package ingest

import "github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"

// NullPolicy decides what happens to records missing a pub_date or a duration.
type NullPolicy int

const (
	// KeepIncomplete hands incomplete records downstream with nulls in place.
	KeepIncomplete NullPolicy = iota
	// DropIncomplete removes incomplete records.
	DropIncomplete
)

func (p NullPolicy) String() string {
	if p == DropIncomplete {
		return "drop_incomplete"
	}
	return "keep_incomplete"
}

// Apply returns the records the policy keeps, in input order, and how many it dropped.
func (p NullPolicy) Apply(records []models.VideoRecord) ([]models.VideoRecord, int) {
	if p != DropIncomplete {
		return records, 0
	}

	kept := make([]models.VideoRecord, 0, len(records))
	for _, r := range records {
		if r.Complete() {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}
