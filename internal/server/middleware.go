package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roboard/spares-kiosk/internal/metrics"
)

// RequestIDHeader carries a per-request correlation id, generated when the
// client does not supply one.
const RequestIDHeader = "X-Request-Id"

// RequestLogger logs one structured event per finished request and records
// it into the usage aggregator. The route template (not the raw path) is
// used for aggregation so path parameters do not explode cardinality.
func RequestLogger(aggregator *metrics.Aggregator) gin.HandlerFunc {
	log := zap.S().Named("http")

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		log.Infow("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"client", c.ClientIP(),
		)

		if aggregator != nil {
			aggregator.Record(c.Request.Method, c.FullPath(), status, duration)
		}
	}
}
