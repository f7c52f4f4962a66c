package middleware

import (
	"strconv"
	"time"

	"transcript_api/internal/observability"

	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware tracks request counts, durations and in-flight
// requests per route.
func PrometheusMiddleware(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()

		method := c.Request.Method
		endpoint := c.FullPath() // e.g., /transcribe
		if endpoint == "" {
			endpoint = c.Request.URL.Path // unmatched routes have no pattern
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
	}
}
