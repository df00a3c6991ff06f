package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func limitedRouter(perMinute int) *gin.Engine {
	router := gin.New()
	router.Use(RateLimitMiddleware(perMinute))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRateLimitMiddleware_EnforcesConfiguredLimit(t *testing.T) {
	router := limitedRouter(2)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(recorder, req)
		statuses = append(statuses, recorder.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("first two requests should pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", statuses[2])
	}
}

func TestRateLimitMiddleware_LimitsPerIP(t *testing.T) {
	router := limitedRouter(1)

	for _, addr := range []string{"10.0.0.1:1234", "10.0.0.2:1234"} {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(recorder, req)
		if recorder.Code != http.StatusOK {
			t.Fatalf("%s: first request status = %d, want 200", addr, recorder.Code)
		}
	}
}
