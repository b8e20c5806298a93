package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/parser"
)

// Limits applied to dashboard queries.
const (
	DefaultMaxCategories = 100
	maxCategoryLength    = 200
)

type Validator struct {
	maxCategories int
}

func New(maxCategories int) *Validator {
	if maxCategories <= 0 {
		maxCategories = DefaultMaxCategories
	}
	return &Validator{maxCategories: maxCategories}
}

func (v *Validator) ValidateQuery(q *models.DashboardQuery) error {
	if !v.IsValidSource(q.Source) {
		return fmt.Errorf("invalid source: %s", q.Source)
	}

	if len(q.Categories) > v.maxCategories {
		return fmt.Errorf("too many categories (max %d, got %d)", v.maxCategories, len(q.Categories))
	}
	for _, cat := range q.Categories {
		if utf8.RuneCountInString(cat) > maxCategoryLength {
			return fmt.Errorf("category exceeds maximum length of %d characters", maxCategoryLength)
		}
	}

	// Validate date bounds
	if q.StartDate != "" && !v.IsValidDate(q.StartDate) {
		return fmt.Errorf("invalid start date %q, want YYYY-MM-DD", q.StartDate)
	}
	if q.EndDate != "" && !v.IsValidDate(q.EndDate) {
		return fmt.Errorf("invalid end date %q, want YYYY-MM-DD", q.EndDate)
	}
	if q.StartDate != "" && q.EndDate != "" {
		start, _ := parser.ParseDate(q.StartDate)
		end, _ := parser.ParseDate(q.EndDate)
		if start.After(end) {
			return fmt.Errorf("start date %s is after end date %s", q.StartDate, q.EndDate)
		}
	}

	return nil
}

// IsValidSource accepts the two source names and the empty default.
func (v *Validator) IsValidSource(source string) bool {
	_, ok := models.ParseSource(source, models.SourceStatic)
	return ok
}

func (v *Validator) IsValidDate(date string) bool {
	_, ok := parser.ParseDate(date)
	return ok
}
