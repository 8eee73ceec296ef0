package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gulbargadeals/deals-go/internal/application/services"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/performance"
)

// AnalyticsHandlers serves the admin analytics endpoints
type AnalyticsHandlers struct {
	analyticsService *services.AnalyticsService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewAnalyticsHandlers creates analytics handlers with injected dependencies
func NewAnalyticsHandlers(analyticsService *services.AnalyticsService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		analyticsService: analyticsService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// GetAnalytics handles GET /api/v1/admin/analytics - page views and
// per-listing click counters. An unreadable counters document reports zeros
// rather than failing the dashboard.
func (h *AnalyticsHandlers) GetAnalytics(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_get_analytics_request")
	defer marker.Complete()

	analytics := h.analyticsService.Get()

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"views":  analytics.Views,
		"clicks": analytics.Clicks,
	})
}
