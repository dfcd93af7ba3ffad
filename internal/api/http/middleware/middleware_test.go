package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/project-board/internal/board/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var ginID, ctxID string
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		ginID = c.GetString("request_id")
		ctxID = service.RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("echoes incoming id", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-Id", "abc-123")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get("X-Request-Id"))
		assert.Equal(t, "abc-123", ginID)
		assert.Equal(t, "abc-123", ctxID)
	})

	t.Run("generates id", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		rid := rr.Header().Get("X-Request-Id")
		assert.Len(t, rid, 32)
		assert.Equal(t, rid, ginID)
		assert.Equal(t, rid, ctxID)
	})
}

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/write", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func post(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/write", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	router := newLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, post(router, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, post(router, "10.0.0.1:1001").Code)

	rr := post(router, "10.0.0.1:1002")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "rate limit exceeded")

	// other clients have their own bucket
	assert.Equal(t, http.StatusOK, post(router, "10.0.0.2:1000").Code)
	assert.Equal(t, 2, rl.Clients())
}

func TestRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, 10)
	rl.now = func() time.Time { return now }
	router := newLimitedRouter(rl)

	post(router, "10.0.0.1:1000")
	now = now.Add(2 * time.Minute)
	post(router, "10.0.0.2:1000")
	now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, rl.Sweep(3*time.Minute))
	assert.Equal(t, 1, rl.Clients())
	assert.Equal(t, 0, rl.Sweep(3*time.Minute))
}
