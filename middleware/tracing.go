package middleware

import (
	"time"

	"socially/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware opens a server span per request. Health checks are not traced.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName,
		otelgin.WithGinFilter(func(c *gin.Context) bool {
			return c.Request.URL.Path != "/health"
		}),
	)
}

// EnrichTrace adds the request id and, for dashboard calls, the analytics
// category to the server span.
func EnrichTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		span.SetAttributes(
			attribute.String("request.id", GetRequestID(c)),
			attribute.String("http.client_ip", c.ClientIP()),
		)
		if category := c.Param("category"); category != "" {
			span.SetAttributes(attribute.String("analytics.category", category))
		}

		c.Next()

		span.SetAttributes(attribute.Int("http.response.size", c.Writer.Size()))
		if len(c.Errors) > 0 {
			span.SetAttributes(attribute.String("gin.errors", c.Errors.String()))
		}
	}
}

// MetricsMiddleware records request counts and latency per route. Relay
// failures answer 500 so they land in "server_error"; bad input lands in
// "client_error".
func MetricsMiddleware(metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordRequest(c.Request.Context(), c.Request.Method, path, statusClass(c.Writer.Status()), time.Since(start))
	}
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "server_error"
	case code >= 400:
		return "client_error"
	default:
		return "success"
	}
}
