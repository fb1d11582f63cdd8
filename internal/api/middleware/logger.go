package middleware

import (
	"net/http"
	"time"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const loggerKey = "logger"

// RequestLogger returns a Gin middleware that injects a request-scoped logger.
// A valid UUID in the incoming X-Request-ID header is reused; otherwise a new
// one is generated.
// Parameters:
//   - log: base logger to enrich with request fields; nil uses the default logger.
//
// Returns:
//   - gin.HandlerFunc: middleware handler.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetDefault()
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		ctx := log.WithContext(c.Request.Context())
		ctx = logger.WithFields(ctx, logger.Fields{
			logger.FieldRequestID: requestID,
			logger.FieldComponent: "api",
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set(loggerKey, logger.FromContext(ctx))
		c.Header(RequestIDHeader, requestID)

		logger.CtxDebug(ctx, "Request started: method=%s, path=%s, client_ip=%s",
			c.Request.Method, path, c.ClientIP())

		c.Next()

		status := c.Writer.Status()
		entry := logger.With(logger.Fields{
			logger.FieldSize: c.Writer.Size(),
		}).WithStatus(status).WithDuration(time.Since(start).Milliseconds())

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error(ctx, "Request failed: method=%s, path=%s", c.Request.Method, path)
		case status >= http.StatusBadRequest:
			entry.Warn(ctx, "Request rejected: method=%s, path=%s", c.Request.Method, path)
		default:
			entry.Info(ctx, "Request completed: method=%s, path=%s", c.Request.Method, path)
		}
	}
}

// GetLogger extracts logger from Gin context or request context.
func GetLogger(c *gin.Context) *logger.Logger {
	if l, exists := c.Get(loggerKey); exists {
		if log, ok := l.(*logger.Logger); ok {
			return log
		}
	}
	return logger.FromContext(c.Request.Context())
}
