package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/validator-gateway/logger"
	"github.com/kbukum/validator-gateway/observability"
)

// unmatchedRoute labels requests that matched no route, keeping metric
// cardinality bounded.
const unmatchedRoute = "unmatched"

// RequestLogger returns a gin middleware that traces, measures and logs every
// request. Routes are labelled by their pattern, not the concrete path.
// Health-check paths are measured but not logged.
func RequestLogger(log *logger.Logger, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		ctx, span := observability.StartSpan(c.Request.Context(), observability.SpanHTTPRequest,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String(observability.AttrHTTPMethod, c.Request.Method),
				attribute.String(observability.AttrHTTPRoute, route),
				attribute.String(observability.AttrRequestID, logger.RequestIDFromContext(c.Request.Context())),
			),
		)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start)
		span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, status))
		if last := c.Errors.Last(); last != nil {
			span.RecordError(last.Err)
		}
		if status >= 500 {
			span.SetStatus(codes.Error, "")
		}
		metrics.RecordRequest(ctx, c.Request.Method, route, status, duration)

		if isHealthEndpoint(c.Request.URL.Path) {
			return
		}

		fields := map[string]interface{}{
			"method":             c.Request.Method,
			"path":               c.Request.URL.Path,
			"route":              route,
			"client":             c.ClientIP(),
			logger.FieldStatus:   status,
			logger.FieldDuration: duration.Milliseconds(),
		}
		if last := c.Errors.Last(); last != nil {
			fields[logger.FieldError] = last.Error()
		}
		logByStatus(log.WithContext(ctx), fields, status)
	}
}

func isHealthEndpoint(path string) bool {
	switch path {
	case "/health", "/ready", "/info":
		return true
	}
	return false
}

// logByStatus logs request fields at a level chosen by the HTTP status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
