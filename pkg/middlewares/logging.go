package middlewares

import (
	"time"

	. "accountapp/pkg/config"
	ct "accountapp/pkg/context"
	"accountapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func LoggingMiddleware(logger *LokiLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		if raw != "" {
			path = path + "?" + raw
		}

		ctx := c.Request.Context()
		current := ct.GetCurrent(ctx).All()
		requestID, _ := current["request_id"].(string)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", requestID),
			zap.String("trace_id", tracing.GetTraceID(ctx)),
			zap.String("span_id", tracing.GetSpanID(ctx)),
		}

		if userUUID, ok := current["user_uuid"].(string); ok {
			fields = append(fields, zap.String("user_uuid", userUUID))
		}

		if c.Writer.Status() >= 500 {
			logger.ErrorWithTrace(ctx, "HTTP Request", fields...)
			return
		}

		if c.Writer.Status() >= 400 {
			logger.WarnWithTrace(ctx, "HTTP Request", fields...)
			return
		}

		logger.InfoWithTrace(ctx, "HTTP Request", fields...)
	}
}
