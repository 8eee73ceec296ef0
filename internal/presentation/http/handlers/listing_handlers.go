package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gulbargadeals/deals-go/internal/application/services"
	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
	"github.com/gulbargadeals/deals-go/internal/domain/repositories"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/media"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/performance"
)

// ListingHandlers serves the admin listing management endpoints
type ListingHandlers struct {
	listingService *services.ListingService
	imageProcessor *media.ImageProcessor
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewListingHandlers creates listing handlers with injected dependencies
func NewListingHandlers(listingService *services.ListingService, imageProcessor *media.ImageProcessor, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ListingHandlers {
	return &ListingHandlers{
		listingService: listingService,
		imageProcessor: imageProcessor,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// ListingRequest is the write payload for create and update. PhotoUpload
// carries a freshly selected image as a data URI; it is normalized into the
// stored Photo field. An already-stored photo round-trips untouched so edits
// never recompress it.
type ListingRequest struct {
	directory.Listing
	PhotoUpload string `json:"photoUpload,omitempty"`
}

// MoveRequest identifies a one-step move within the ranked collection.
type MoveRequest struct {
	Index     int `json:"index"`
	Direction int `json:"direction" binding:"required"`
}

// GetListings handles GET /api/v1/admin/listings - the full ranked
// collection for the admin console, unfiltered.
func (h *ListingHandlers) GetListings(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("admin_get_listings_request")
	defer marker.Complete()

	listings, err := h.listingService.GetAll()
	if err != nil {
		marker.SetError(err)
		h.handleListingError(c, err, "Failed to load listings")
		return
	}

	marker.SetSuccess(true)
	h.logger.Content().Info("Admin listings request completed", "count", len(listings), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
		"count":    len(listings),
	})
}

// PostListing handles POST /api/v1/admin/listings - creates a listing,
// normalizing any uploaded photo before storage.
func (h *ListingHandlers) PostListing(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("admin_create_listing_request")
	defer marker.Complete()

	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	listing := req.Listing
	if !h.applyPhotoUpload(c, &listing, req.PhotoUpload, marker) {
		return
	}

	created, err := h.listingService.Create(&listing)
	if err != nil {
		marker.SetError(err)
		h.handleListingError(c, err, "Failed to create listing")
		return
	}

	marker.SetSuccess(true)
	h.logger.Content().Info("Listing create request completed", "id", created.ID, "duration", time.Since(start))
	c.JSON(http.StatusCreated, created)
}

// PutListing handles PUT /api/v1/admin/listings/:id - full-document
// overwrite of one listing.
func (h *ListingHandlers) PutListing(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("admin_update_listing_request")
	defer marker.Complete()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Listing ID is required"})
		return
	}

	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	listing := req.Listing
	listing.ID = id
	if !h.applyPhotoUpload(c, &listing, req.PhotoUpload, marker) {
		return
	}

	if err := h.listingService.Save(&listing); err != nil {
		marker.SetError(err)
		h.handleListingError(c, err, "Failed to save listing")
		return
	}

	marker.SetSuccess(true)
	h.logger.Content().Info("Listing update request completed", "id", id, "duration", time.Since(start))
	c.JSON(http.StatusOK, &listing)
}

// DeleteListing handles DELETE /api/v1/admin/listings/:id. Deleting an
// absent listing succeeds.
func (h *ListingHandlers) DeleteListing(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_delete_listing_request")
	defer marker.Complete()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Listing ID is required"})
		return
	}

	if err := h.listingService.Delete(id); err != nil {
		marker.SetError(err)
		h.handleListingError(c, err, "Failed to delete listing")
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// PostMove handles POST /api/v1/admin/listings/:id/move - moves the listing
// one step up or down and reports whether the new order persisted. The path
// id must still sit at the body index; a stale console gets 409 instead of
// moving whichever listing drifted there. A failed write still returns the
// reordered collection; the admin sees the optimistic order until the next
// reload.
func (h *ListingHandlers) PostMove(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("admin_move_listing_request")
	defer marker.Complete()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Listing ID is required"})
		return
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Direction != -1 && req.Direction != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Direction must be -1 or 1"})
		return
	}

	result, err := h.listingService.Reorder(id, req.Index, req.Direction)
	if err != nil {
		if errors.Is(err, services.ErrStaleOrder) {
			marker.SetError(err)
			c.JSON(http.StatusConflict, gin.H{"error": "Listing order changed, reload and retry"})
			return
		}
		marker.SetError(err)
		h.handleListingError(c, err, "Failed to reorder listings")
		return
	}

	marker.SetSuccess(true)
	marker.AddMetadata("moved", result.Moved)
	marker.AddMetadata("persisted", result.Persisted)
	h.logger.Content().Info("Listing move request completed", "index", req.Index, "direction", req.Direction, "moved", result.Moved, "persisted", result.Persisted, "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"listings":  result.Listings,
		"moved":     result.Moved,
		"persisted": result.Persisted,
	})
}

// applyPhotoUpload normalizes a freshly uploaded photo into the listing.
// Returns false after writing the error response when the upload is not a
// decodable image; the client may retry with a different file.
func (h *ListingHandlers) applyPhotoUpload(c *gin.Context, listing *directory.Listing, upload string, marker *performance.Marker) bool {
	if upload == "" {
		return true
	}

	normalized, err := h.imageProcessor.NormalizePhoto(upload)
	if err != nil {
		var decodeErr *media.DecodeError
		if errors.As(err, &decodeErr) {
			h.logger.Media().Warn("Photo upload rejected", "format", decodeErr.Format, "error", err.Error())
			marker.SetError(err)
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":     "Photo could not be decoded",
				"retryable": true,
			})
			return false
		}
		h.logger.Media().Error("Photo normalization failed", "error", err.Error())
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo upload"})
		return false
	}

	listing.Photo = normalized
	return true
}

// handleListingError maps repository failures for the admin console. An
// unauthorized database answers 403 with the dbLocked flag so the console
// shows its locked banner.
func (h *ListingHandlers) handleListingError(c *gin.Context, err error, message string) {
	var decodeErr *repositories.DocumentDecodeError
	switch {
	case errors.Is(err, repositories.ErrUnauthorized):
		h.logger.Content().Error("Database not authorized", "error", err.Error())
		c.JSON(http.StatusForbidden, gin.H{"error": message, "dbLocked": true})
	case errors.As(err, &decodeErr):
		h.logger.Content().Error("Malformed listing document", "documentId", decodeErr.DocumentID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	default:
		h.logger.Content().Error("Listing request failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
