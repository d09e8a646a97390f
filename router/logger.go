package router

import (
	"time"

	"plantkeeper/logger"

	"github.com/gin-gonic/gin"
)

// Logger logs method, path, status and latency for one route.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.WithFields(map[string]any{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
