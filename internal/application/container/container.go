// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/gulbargadeals/deals-go/internal/application/services"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/media"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/performance"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/persistence/database"
	persistence "github.com/gulbargadeals/deals-go/internal/infrastructure/persistence/directory"
	"github.com/gulbargadeals/deals-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	ListingService   *services.ListingService
	BrowseService    *services.BrowseService
	SettingsService  *services.SettingsService
	AnalyticsService *services.AnalyticsService
	AuthService      *services.AuthService

	// Stateful gates
	TapCounter *services.TapCounter

	// Infrastructure
	DB             *database.DB
	ImageProcessor *media.ImageProcessor
	Logger         *logging.ChanneledLogger
	PerfTracker    *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, logger *logging.ChanneledLogger) *Container {
	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())

	listingRepo := persistence.NewListingRepository(db.DB, logger)
	settingsRepo := persistence.NewSettingsRepository(db.DB, logger)
	analyticsRepo := persistence.NewAnalyticsRepository(db.DB, logger)

	return &Container{
		ListingService:   services.NewListingService(listingRepo, logger),
		BrowseService:    services.NewBrowseService(listingRepo, analyticsRepo, logger),
		SettingsService:  services.NewSettingsService(settingsRepo, logger),
		AnalyticsService: services.NewAnalyticsService(analyticsRepo, logger),
		AuthService:      services.NewAuthService(logger, perfTracker),

		TapCounter: services.NewTapCounter(config.SecretTapThreshold, config.SecretTapWindow),

		DB:             db,
		ImageProcessor: media.NewImageProcessor(config.ImageTargetWidth, config.ImageJPEGQuality),
		Logger:         logger,
		PerfTracker:    perfTracker,
	}
}
