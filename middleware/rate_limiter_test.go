package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"matero/config"

	"github.com/gin-gonic/gin"
)

func TestRateLimitUsesConfiguredBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	old := config.AppConfig.MaxRequestsPerMin
	config.AppConfig.MaxRequestsPerMin = 3
	defer func() { config.AppConfig.MaxRequestsPerMin = old }()

	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Real-IP", "203.0.113.9")
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		if code := do(); code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, code)
		}
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("request over budget: status %d, want 429", code)
	}
}

func TestRequestsPerMinuteFallback(t *testing.T) {
	old := config.AppConfig.MaxRequestsPerMin
	defer func() { config.AppConfig.MaxRequestsPerMin = old }()

	config.AppConfig.MaxRequestsPerMin = 0
	if got := requestsPerMinute(); got != 100 {
		t.Fatalf("fallback = %d, want 100", got)
	}
	config.AppConfig.MaxRequestsPerMin = 250
	if got := requestsPerMinute(); got != 250 {
		t.Fatalf("got %d, want 250", got)
	}
}
