// Package routes wires the HTTP surface onto the gin router.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gulbargadeals/deals-go/internal/application/container"
	"github.com/gulbargadeals/deals-go/internal/presentation/http/handlers"
	"github.com/gulbargadeals/deals-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes with middleware
func SetupRoutes(appContainer *container.Container) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	authHandlers := handlers.NewAuthHandlers(appContainer.AuthService, appContainer.TapCounter, appContainer.Logger, appContainer.PerfTracker)
	browseHandlers := handlers.NewBrowseHandlers(appContainer.BrowseService, appContainer.Logger, appContainer.PerfTracker)
	listingHandlers := handlers.NewListingHandlers(appContainer.ListingService, appContainer.ImageProcessor, appContainer.Logger, appContainer.PerfTracker)
	settingsHandlers := handlers.NewSettingsHandlers(appContainer.SettingsService, appContainer.Logger, appContainer.PerfTracker)
	analyticsHandlers := handlers.NewAnalyticsHandlers(appContainer.AnalyticsService, appContainer.Logger, appContainer.PerfTracker)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":              "ok",
			"uptime":              appContainer.PerfTracker.Uptime().String(),
			"completedOperations": appContainer.PerfTracker.CompletedOperations(),
		})
	})

	api := router.Group("/api/v1")
	{
		// Public directory surface
		api.GET("/deals", browseHandlers.GetDeals)
		api.GET("/deals/:id", browseHandlers.GetDealByID)
		api.GET("/tagline", settingsHandlers.GetTagline)
		api.POST("/events/pageview", browseHandlers.PostPageView)

		// Authentication
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/logout", authHandlers.PostLogout)
			auth.GET("/status", authHandlers.GetAuthStatus)
			auth.POST("/tap", authHandlers.PostTap)
		}

		// Admin console, token required
		admin := api.Group("/admin")
		admin.Use(authHandlers.AuthMiddleware())
		{
			admin.GET("/listings", listingHandlers.GetListings)
			admin.POST("/listings", listingHandlers.PostListing)
			admin.PUT("/listings/:id", listingHandlers.PutListing)
			admin.DELETE("/listings/:id", listingHandlers.DeleteListing)
			admin.POST("/listings/:id/move", listingHandlers.PostMove)
			admin.PUT("/tagline", settingsHandlers.PutTagline)
			admin.GET("/analytics", analyticsHandlers.GetAnalytics)
		}
	}

	return router
}
