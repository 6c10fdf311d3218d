package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"tripplanbuddy/internal/observability"
	"tripplanbuddy/internal/utils"
)

// Logger writes one structured line per request and records request metrics.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		observability.ObserveHTTP(c.Request.Method, c.FullPath(), status, latency)

		log := utils.L().With(
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", float64(latency.Microseconds())/1000.0,
			"ip", c.ClientIP(),
		)
		if status >= 500 {
			log.Warnw("[HTTP] request failed")
			return
		}
		log.Infow("[HTTP] request")
	}
}
