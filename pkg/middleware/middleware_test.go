package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"media-feed/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRateLimitMiddleware_RedisUnavailable(t *testing.T) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer redisClient.Close()

	router := setupTestRouter()
	router.Use(RateLimitMiddleware(redisClient, 10, time.Minute))
	router.GET("/feed", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"posts": []string{}})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit check failed")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	router := setupTestRouter()
	router.Use(RequestLogger(log))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/broken", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "boom"})
	})

	for _, path := range []string{"/health", "/broken"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)
	}

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, "GET /health 200")
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "GET /broken 500")
}
