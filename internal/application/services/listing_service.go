package services

import (
	"errors"
	"fmt"

	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
	"github.com/gulbargadeals/deals-go/internal/domain/repositories"
	domain "github.com/gulbargadeals/deals-go/internal/domain/services"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/security"
)

// ListingService orchestrates admin-side listing operations: CRUD, rank
// assignment, and the whole-collection reorder.
type ListingService struct {
	listingRepo repositories.ListingRepository
	logger      *logging.ChanneledLogger
}

// NewListingService creates a new listing application service
func NewListingService(listingRepo repositories.ListingRepository, logger *logging.ChanneledLogger) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		logger:      logger,
	}
}

// ErrStaleOrder reports that the listing an admin asked to move is no longer
// at the index their console showed for it.
var ErrStaleOrder = errors.New("listing order changed since last load")

// ReorderResult reports a reorder outcome. Listings always carries the new
// in-memory order; Persisted is false when the remote write failed, which by
// design is NOT rolled back — the admin sees the database-locked banner on
// the next full reload instead.
type ReorderResult struct {
	Listings  []*directory.Listing
	Moved     bool
	Persisted bool
}

// GetAll returns every listing in display order: ascending rank, legacy
// unranked records last.
func (s *ListingService) GetAll() ([]*directory.Listing, error) {
	listings, err := s.listingRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return domain.SortByRank(listings), nil
}

// GetByID returns one listing, or nil when absent.
func (s *ListingService) GetByID(id string) (*directory.Listing, error) {
	if id == "" {
		return nil, fmt.Errorf("listing ID cannot be empty")
	}
	return s.listingRepo.FindByID(id)
}

// Create stores a new listing, minting a ULID id when none was supplied and
// appending it at the bottom of the ranked collection. Field content is not
// validated; empty names and malformed contacts are accepted as-is.
func (s *ListingService) Create(listing *directory.Listing) (*directory.Listing, error) {
	if listing == nil {
		return nil, fmt.Errorf("listing cannot be nil")
	}
	if listing.ID == "" {
		listing.ID = security.GenerateULID()
	}

	count, err := s.listingRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	listing = domain.AssignOrderOnCreate(listing, count)
	if err := s.listingRepo.SaveAll([]*directory.Listing{listing}); err != nil {
		return nil, fmt.Errorf("failed to create listing %s: %w", listing.ID, err)
	}

	s.logger.Content().Info("Listing created", "id", listing.ID, "type", listing.Type)
	return listing, nil
}

// Save overwrites one listing document with the supplied payload. Rank is
// preserved only if the payload carries it; edits never re-rank implicitly.
func (s *ListingService) Save(listing *directory.Listing) error {
	if listing == nil {
		return fmt.Errorf("listing cannot be nil")
	}
	if listing.ID == "" {
		return fmt.Errorf("listing ID cannot be empty")
	}

	if err := s.listingRepo.SaveAll([]*directory.Listing{listing}); err != nil {
		return fmt.Errorf("failed to save listing %s: %w", listing.ID, err)
	}

	s.logger.Content().Info("Listing saved", "id", listing.ID)
	return nil
}

// Delete removes one listing. Deleting an absent id succeeds.
func (s *ListingService) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("listing ID cannot be empty")
	}

	if err := s.listingRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}

	s.logger.Content().Info("Listing deleted", "id", id)
	return nil
}

// Reorder moves the listing at index one step in direction (-1 up, +1 down)
// and persists the renumbered collection. Boundary moves are no-ops. The
// whole list is rewritten on every move: renumbering all siblings is the
// only operation guaranteed to restore the dense rank invariant against
// legacy gaps and duplicates.
//
// The id names the listing the admin believes sits at index; if the
// collection changed since their last load the two disagree and the move is
// rejected with ErrStaleOrder rather than moving the wrong listing.
func (s *ListingService) Reorder(id string, index, direction int) (*ReorderResult, error) {
	log := s.logger.WithOperation(logging.ChannelContent, "reorder")

	listings, err := s.GetAll()
	if err != nil {
		return nil, err
	}

	if index >= 0 && index < len(listings) && listings[index].ID != id {
		log.Warn("Move rejected, listing no longer at requested index", "id", id, "index", index, "found", listings[index].ID)
		return nil, ErrStaleOrder
	}

	reordered, moved := domain.Move(listings, index, direction)
	if !moved {
		return &ReorderResult{Listings: listings, Moved: false, Persisted: false}, nil
	}

	result := &ReorderResult{Listings: reordered, Moved: true, Persisted: true}
	if err := s.listingRepo.SaveAll(reordered); err != nil {
		// Optimistic reorder: the in-memory order stands, the admin learns
		// about the failed write from the banner on the next full reload.
		log.Error("Reorder persistence failed, local order kept", "error", err.Error(), "index", index, "direction", direction)
		result.Persisted = false
	}
	return result, nil
}
