package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/service"
	"github.com/ad-tracker/youtube-trend-analyzer-go/pkg/logger"
)

// DashboardRenderer is the part of service.DashboardService the handler uses.
type DashboardRenderer interface {
	Render(ctx context.Context, q *models.DashboardQuery) (*models.DashboardResponse, error)
	Options(ctx context.Context, source string) (*models.DashboardOptions, error)
	InvalidateCache(ctx context.Context) error
}

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	dashboardService DashboardRenderer
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(dashboardService DashboardRenderer) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard renders the dashboard for the query string
// ?source=&category=..&start=YYYY-MM-DD&end=YYYY-MM-DD.
// A category parameter present with no value selects no category.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	query := parseDashboardQuery(c)

	response, err := h.dashboardService.Render(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetOptions returns the sidebar choices for ?source=.
func (h *DashboardHandler) GetOptions(c *gin.Context) {
	options, err := h.dashboardService.Options(c.Request.Context(), c.Query("source"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, options)
}

// InvalidateCache drops every memoized static table.
func (h *DashboardHandler) InvalidateCache(c *gin.Context) {
	if err := h.dashboardService.InvalidateCache(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "purged",
		"time":   time.Now(),
	})
}

func parseDashboardQuery(c *gin.Context) *models.DashboardQuery {
	q := &models.DashboardQuery{
		Source:    c.Query("source"),
		StartDate: c.Query("start"),
		EndDate:   c.Query("end"),
	}

	if values, ok := c.GetQueryArray("category"); ok {
		q.CategoriesSet = true
		q.Categories = make([]string, 0, len(values))
		for _, v := range values {
			if v != "" {
				q.Categories = append(q.Categories, v)
			}
		}
	}

	return q
}

func (h *DashboardHandler) handleError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		sourceErr     *service.SourceError
	)

	switch {
	case errors.As(err, &validationErr):
		logger.Log.Warn("Validation error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		writeError(c, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.As(err, &sourceErr) && sourceErr.Source == models.SourceLive:
		logger.Log.Error("Live source error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		writeError(c, http.StatusBadGateway, "Bad Gateway", liveFailureMessage(err))
	case errors.As(err, &sourceErr):
		logger.Log.Error("Static source error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		writeError(c, http.StatusInternalServerError, "Internal Server Error", "Failed to load trending snapshot")
	default:
		logger.Log.Error("Unexpected error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		writeError(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
	}
}

// liveFailureMessage surfaces only the message the API itself returned.
// Transport errors carry the request URL and are replaced by a fixed string.
func liveFailureMessage(err error) string {
	const msg = "Failed to fetch trending videos"

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return msg + ": " + apiErr.Message
	}
	return msg
}

func writeError(c *gin.Context, status int, title, message string) {
	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     title,
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}
