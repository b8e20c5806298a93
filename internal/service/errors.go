package service

import (
	"fmt"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
)

// ValidationError represents a validation error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SourceError reports that records could not be obtained from a source.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type SourceError struct {
	Source models.Source
	Cause  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source unavailable: %v", e.Source, e.Cause)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// ProcessingError represents an error that occurred while serving a request.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ProcessingError struct {
	Message string
	Cause   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}
