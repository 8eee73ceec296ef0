package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gulbargadeals/deals-go/internal/application/services"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/performance"
)

// SettingsHandlers serves the tagline endpoints
type SettingsHandlers struct {
	settingsService *services.SettingsService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewSettingsHandlers creates settings handlers with injected dependencies
func NewSettingsHandlers(settingsService *services.SettingsService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SettingsHandlers {
	return &SettingsHandlers{
		settingsService: settingsService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// TaglineRequest is the admin tagline update payload
type TaglineRequest struct {
	Tagline string `json:"tagline" binding:"required"`
}

// GetTagline handles GET /api/v1/tagline - the public header tagline. A
// missing or unreadable settings document yields the built-in default, never
// an error.
func (h *SettingsHandlers) GetTagline(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_tagline_request")
	defer marker.Complete()

	tagline := h.settingsService.GetTagline()

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"tagline": tagline})
}

// PutTagline handles PUT /api/v1/admin/tagline - merges the new tagline into
// the settings document without touching sibling fields.
func (h *SettingsHandlers) PutTagline(c *gin.Context) {
	marker := h.perfTracker.StartOperation("put_tagline_request")
	defer marker.Complete()

	var req TaglineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tagline is required"})
		return
	}

	if err := h.settingsService.SaveTagline(req.Tagline); err != nil {
		marker.SetError(err)
		h.logger.Content().Error("Tagline update failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save tagline"})
		return
	}

	marker.SetSuccess(true)
	h.logger.Content().Info("Tagline updated", "tagline", req.Tagline)
	c.JSON(http.StatusOK, gin.H{"success": true, "tagline": req.Tagline})
}
