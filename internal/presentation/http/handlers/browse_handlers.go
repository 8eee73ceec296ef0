package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gulbargadeals/deals-go/internal/application/services"
	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
	"github.com/gulbargadeals/deals-go/internal/domain/repositories"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/performance"
)

// BrowseHandlers serves the public deal-browsing endpoints
type BrowseHandlers struct {
	browseService *services.BrowseService
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewBrowseHandlers creates browse handlers with injected dependencies
func NewBrowseHandlers(browseService *services.BrowseService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *BrowseHandlers {
	return &BrowseHandlers{
		browseService: browseService,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// GetDeals handles GET /api/v1/deals - lists visible deals filtered by
// category and search query, sorted by display rank.
func (h *BrowseHandlers) GetDeals(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_deals_request")
	defer marker.Complete()

	category := directory.Category(c.Query("category"))
	query := c.Query("q")
	h.logger.Content().Debug("Received deals request", "category", category, "query", query)

	if category != "" && !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	result, err := h.browseService.Browse(category, query)
	if err != nil {
		marker.SetError(err)
		h.handleBrowseError(c, err, "Failed to load deals")
		return
	}

	marker.SetSuccess(true)
	marker.AddMetadata("listingCount", len(result.Listings))
	h.logger.Content().Info("Deals request completed", "count", len(result.Listings), "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"deals":      result.Listings,
		"count":      len(result.Listings),
		"emptyState": result.EmptyState,
	})
}

// GetDealByID handles GET /api/v1/deals/:id - returns a single deal and
// records the detail view as an engagement click.
func (h *BrowseHandlers) GetDealByID(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_deal_by_id_request")
	defer marker.Complete()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deal ID is required"})
		return
	}

	listing, err := h.browseService.Detail(id)
	if err != nil {
		marker.SetError(err)
		h.handleBrowseError(c, err, "Failed to load deal")
		return
	}
	if listing == nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	marker.SetSuccess(true)
	h.logger.Content().Info("Deal detail request completed", "dealId", id, "duration", time.Since(start))
	c.JSON(http.StatusOK, listing)
}

// PostPageView handles POST /api/v1/events/pageview - records a directory
// page view for the analytics counters.
func (h *BrowseHandlers) PostPageView(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_pageview_request")
	defer marker.Complete()

	h.browseService.TrackPageView()

	marker.SetSuccess(true)
	c.Status(http.StatusNoContent)
}

// handleBrowseError maps data-access failures onto public responses. An
// unauthorized database is surfaced distinctly so clients can show the
// locked-directory state instead of a generic failure.
func (h *BrowseHandlers) handleBrowseError(c *gin.Context, err error, message string) {
	var decodeErr *repositories.DocumentDecodeError
	switch {
	case errors.Is(err, repositories.ErrUnauthorized):
		h.logger.Content().Error("Database not authorized", "error", err.Error())
		c.JSON(http.StatusForbidden, gin.H{"error": message, "dbLocked": true})
	case errors.As(err, &decodeErr):
		h.logger.Content().Error("Malformed listing document", "documentId", decodeErr.DocumentID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	default:
		h.logger.Content().Error("Browse request failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
