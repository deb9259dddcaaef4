package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rymdix/api/metrics"
)

// Instrument records request counts and latency per route. The route
// template (e.g. /api/admin/posts/:id) is used as the path label to keep
// cardinality bounded.
func Instrument(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
