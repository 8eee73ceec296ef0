// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gulbargadeals/deals-go/internal/application/services"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/performance"
)

// AuthHandlers contains all authentication-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	tapCounter  *services.TapCounter
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, tapCounter *services.TapCounter, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		tapCounter:  tapCounter,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// LoginRequest represents the structure for login requests
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// PostLogin handles POST /api/v1/auth/login - admin authentication
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_login_request")
	defer marker.Complete()
	h.logger.Auth().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path)

	var loginReq LoginRequest
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		h.logger.Auth().Error("Login request JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.authService.AuthenticateAdmin(loginReq.Password)
	if !result.Success {
		h.logger.Auth().Warn("Login attempt failed", "error", result.Error, "duration", time.Since(start))
		marker.SetSuccess(false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": result.Error})
		return
	}

	c.SetCookie(
		"admin_auth",  // name
		result.Token,  // value
		86400,         // maxAge (24 hours in seconds)
		"/",           // path
		"",            // domain (empty for current domain)
		false,         // secure (set to true in production)
		true,          // httpOnly
	)

	h.logger.Auth().Info("Login successful", "role", result.Role, "duration", time.Since(start))
	marker.SetSuccess(true)
	h.logger.Perf().Info("Performance for PostLogin request", "duration", time.Since(start), "success", true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"role":    result.Role,
		"message": "Login successful",
	})
}

// PostLogout handles POST /api/v1/auth/logout - clears the admin cookie
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_logout_request")
	defer marker.Complete()

	c.SetCookie("admin_auth", "", -1, "/", "", false, true)

	h.logger.Auth().Info("Logout completed")
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

// GetAuthStatus handles GET /api/v1/auth/status - checks current authentication status
func (h *AuthHandlers) GetAuthStatus(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_auth_status_request")
	defer marker.Complete()

	var tokenInfo *services.TokenInfo
	var authenticated bool
	var authMethod string

	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenInfo = h.authService.GetTokenInfo(authHeader[7:])
		if tokenInfo.Valid {
			authenticated = true
			authMethod = "bearer"
		}
	}

	if !authenticated {
		if adminCookie, err := c.Cookie("admin_auth"); err == nil && adminCookie != "" {
			tokenInfo = h.authService.GetTokenInfo(adminCookie)
			if tokenInfo.Valid {
				authenticated = true
				authMethod = "cookie"
			}
		}
	}

	response := gin.H{
		"authenticated": authenticated,
		"method":        authMethod,
	}
	if authenticated && tokenInfo != nil {
		response["role"] = tokenInfo.Role
		response["expiresAt"] = tokenInfo.ExpiresAt
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, response)
}

// PostTap handles POST /api/v1/auth/tap - advances the secret tagline tap
// gate and reports whether the admin console unlocked.
func (h *AuthHandlers) PostTap(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_tap_request")
	defer marker.Complete()

	unlocked := h.tapCounter.Tap()
	if unlocked {
		h.logger.Auth().Info("Secret tap gate unlocked")
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"unlocked": unlocked,
	})
}

// AuthMiddleware gates admin endpoints behind a valid admin token, from
// either the Authorization header or the admin cookie.
func (h *AuthHandlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticated := false

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if h.authService.ValidateAdminRole(authHeader) {
				authenticated = true
			}
		} else if adminCookie, err := c.Cookie("admin_auth"); err == nil {
			if h.authService.ValidateAdminRole("Bearer " + adminCookie) {
				authenticated = true
			}
		}

		if !authenticated {
			h.logger.Auth().Warn("Unauthorized access attempt", "path", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
