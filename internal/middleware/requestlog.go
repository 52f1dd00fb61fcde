package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/mockmentor-backend/internal/platform/ctxutil"
	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
)

type RequestLogMiddleware struct {
	log *logger.Logger
}

func NewRequestLogMiddleware(log *logger.Logger) *RequestLogMiddleware {
	middlewareLogger := log.With("middleware", "RequestLogMiddleware")
	return &RequestLogMiddleware{log: middlewareLogger}
}

// Tag assigns each request an id, threads it through the request context, and
// echoes it back in the X-Request-ID response header.
func (rm *RequestLogMiddleware) Tag() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := ctxutil.WithTraceData(c.Request.Context(), &ctxutil.TraceData{RequestID: requestID})
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		rm.log.Info("request completed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
