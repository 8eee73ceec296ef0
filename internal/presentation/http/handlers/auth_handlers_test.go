package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gulbargadeals/deals-go/internal/application/services"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/performance"
	"github.com/gulbargadeals/deals-go/pkg/config"
)

func testAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.NewChanneledLogger(logging.TestLoggerConfig())
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	perfTracker := performance.NewTracker(nil)
	authService := services.NewAuthService(logger, perfTracker)
	tapCounter := services.NewTapCounter(config.SecretTapThreshold, config.SecretTapWindow)
	h := NewAuthHandlers(authService, tapCounter, logger, perfTracker)

	router := gin.New()
	router.POST("/auth/login", h.PostLogin)
	router.POST("/auth/tap", h.PostTap)

	admin := router.Group("/admin")
	admin.Use(h.AuthMiddleware())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return router
}

func withAuthConfig(t *testing.T, password, secret string) {
	t.Helper()
	prevPassword, prevSecret := config.AdminPassword, config.JWTSecret
	config.AdminPassword = password
	config.JWTSecret = secret
	t.Cleanup(func() {
		config.AdminPassword = prevPassword
		config.JWTSecret = prevSecret
	})
}

func TestLoginIssuesAdminCookie(t *testing.T) {
	withAuthConfig(t, "letmein", "test-secret")
	router := testAuthRouter(t)

	body, _ := json.Marshal(map[string]string{"password": "letmein"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_auth" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected admin_auth cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Error("expected admin_auth cookie to be httpOnly")
	}

	// The issued cookie opens the admin group.
	adminReq := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	adminReq.AddCookie(cookie)
	adminW := httptest.NewRecorder()
	router.ServeHTTP(adminW, adminReq)
	if adminW.Code != http.StatusOK {
		t.Errorf("expected cookie to authenticate admin route, got %d", adminW.Code)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	withAuthConfig(t, "letmein", "test-secret")
	router := testAuthRouter(t)

	body, _ := json.Marshal(map[string]string{"password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_auth" && c.Value != "" {
			t.Error("no auth cookie should be issued on failed login")
		}
	}
}

func TestAdminRoutesRequireAuthentication(t *testing.T) {
	withAuthConfig(t, "letmein", "test-secret")
	router := testAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %d", w.Code)
	}
}

func TestTapGateUnlocksAtThreshold(t *testing.T) {
	withAuthConfig(t, "letmein", "test-secret")
	router := testAuthRouter(t)

	tap := func() bool {
		req := httptest.NewRequest(http.MethodPost, "/auth/tap", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("tap request failed: %d", w.Code)
		}
		var resp struct {
			Unlocked bool `json:"unlocked"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode tap response: %v", err)
		}
		return resp.Unlocked
	}

	for i := 0; i < config.SecretTapThreshold-1; i++ {
		if tap() {
			t.Fatalf("gate unlocked after %d taps, threshold is %d", i+1, config.SecretTapThreshold)
		}
		time.Sleep(time.Millisecond)
	}
	if !tap() {
		t.Errorf("gate should unlock on tap %d", config.SecretTapThreshold)
	}
}
