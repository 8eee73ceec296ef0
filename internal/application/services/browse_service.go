package services

import (
	"fmt"

	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
	"github.com/gulbargadeals/deals-go/internal/domain/repositories"
	domain "github.com/gulbargadeals/deals-go/internal/domain/services"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
)

// BrowseService serves the public read-only views: the filtered index and
// the per-listing detail page.
type BrowseService struct {
	listingRepo   repositories.ListingRepository
	analyticsRepo repositories.AnalyticsRepository
	logger        *logging.ChanneledLogger
}

// NewBrowseService creates a new public browsing service
func NewBrowseService(listingRepo repositories.ListingRepository, analyticsRepo repositories.AnalyticsRepository, logger *logging.ChanneledLogger) *BrowseService {
	return &BrowseService{
		listingRepo:   listingRepo,
		analyticsRepo: analyticsRepo,
		logger:        logger,
	}
}

// BrowseResult carries a filtered index page.
type BrowseResult struct {
	Listings   []*directory.Listing
	EmptyState domain.EmptyState
}

// Browse returns the rank-ordered listings matching the active category and
// query. An empty result is a valid display state, discriminated so the
// front end can show "no matches" versus "category empty" guidance.
func (s *BrowseService) Browse(activeCategory directory.Category, query string) (*BrowseResult, error) {
	if activeCategory == "" {
		activeCategory = directory.CategoryAll
	}
	if activeCategory != directory.CategoryAll && !activeCategory.IsValid() {
		return nil, fmt.Errorf("unknown category %q", activeCategory)
	}

	listings, err := s.listingRepo.FindAll()
	if err != nil {
		return nil, err
	}

	visible := domain.Filter(domain.SortByRank(listings), activeCategory, query)
	return &BrowseResult{
		Listings:   visible,
		EmptyState: domain.EmptyStateFor(visible, query),
	}, nil
}

// Detail returns one listing for the public detail view, counting the
// click-through. Returns nil when the listing is absent.
func (s *BrowseService) Detail(id string) (*directory.Listing, error) {
	if id == "" {
		return nil, fmt.Errorf("listing ID cannot be empty")
	}

	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, nil
	}

	s.analyticsRepo.IncrementClick(id)
	return listing, nil
}

// TrackPageView counts one public index load. Best-effort, never fails.
func (s *BrowseService) TrackPageView() {
	s.analyticsRepo.IncrementViews()
}
