package middleware

import (
	"time"

	"media-feed/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs method, path, status code and duration for every request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Error("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		case status >= 400:
			log.Warn("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		default:
			log.Info("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		}
	}
}
