// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/performance"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/security"
	"github.com/gulbargadeals/deals-go/pkg/config"
)

// AuthService handles the shared-password admin gate and JWT operations.
// The password check runs server-side; the legacy client-side compare is
// documented as non-secure and not reproduced.
type AuthService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthService creates a new authentication service
func NewAuthService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthService {
	return &AuthService{
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TokenInfo holds decoded token data for status checks
type TokenInfo struct {
	Valid     bool
	Role      string
	ExpiresAt time.Time
}

// AuthenticateAdmin validates the shared admin password and generates a JWT.
// The configured password may be a bcrypt hash; plaintext comparison remains
// as a fallback for transition/testing setups.
func (a *AuthService) AuthenticateAdmin(password string) *AuthResult {
	var role string

	if config.AdminPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(config.AdminPassword), []byte(password)); err == nil {
			role = "admin"
		}
	}

	if role == "" && config.AdminPassword != "" && password == config.AdminPassword {
		role = "admin"
	}

	if role == "" {
		return &AuthResult{
			Success: false,
			Error:   "Invalid credentials",
		}
	}

	claims := jwt.MapClaims{
		"role": role,
		"type": "admin_auth",
		"exp":  time.Now().Add(config.AuthTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}

	token, err := security.GenerateJWT(claims, config.JWTSecret)
	if err != nil {
		a.logger.Auth().Error("Failed to sign admin token", "error", err.Error())
		return &AuthResult{Success: false, Error: "Token generation failed"}
	}

	return &AuthResult{Success: true, Role: role, Token: token}
}

// GetTokenInfo validates a token and reports its role and expiry.
func (a *AuthService) GetTokenInfo(token string) *TokenInfo {
	claims, err := security.ValidateJWT(token, config.JWTSecret)
	if err != nil {
		return &TokenInfo{Valid: false}
	}

	info := &TokenInfo{Valid: true}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	if exp, ok := claims["exp"].(float64); ok {
		info.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return info
}

// ValidateAdminRole checks a bearer authorization header for a valid admin token.
func (a *AuthService) ValidateAdminRole(authHeader string) bool {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	info := a.GetTokenInfo(strings.TrimPrefix(authHeader, "Bearer "))
	return info.Valid && info.Role == "admin"
}
