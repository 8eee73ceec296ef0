package services

import (
	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
	"github.com/gulbargadeals/deals-go/internal/domain/repositories"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
)

// AnalyticsService exposes the admin analytics readout.
type AnalyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	logger        *logging.ChanneledLogger
}

// NewAnalyticsService creates a new analytics application service
func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository, logger *logging.ChanneledLogger) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		logger:        logger,
	}
}

// Get returns the view and click counters, zero-valued when the analytics
// document does not exist yet.
func (s *AnalyticsService) Get() *directory.Analytics {
	return s.analyticsRepo.Get()
}
