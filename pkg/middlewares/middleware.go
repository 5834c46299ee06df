package middlewares

import (
	"strconv"
	"time"

	. "accountapp/pkg/config"
	. "accountapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func MetricsMiddleware(metrics *AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		path := c.FullPath()

		if path == "" {
			path = "unmatched"
		}

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

// SetupGinMiddlewareWithConfig installs the shared middleware chain. A nil
// store falls back to the in-process rate limit counters.
func SetupGinMiddlewareWithConfig(router *gin.Engine, metrics *AppMetrics, logger *LokiLogger, config *AppConfig, store RateLimitStore) {
	if httpsEnforcer := NewHTTPSEnforcer(logger.Logger.Logger, config); httpsEnforcer.IsEnabled() {
		router.Use(httpsEnforcer.HTTPSMiddleware())
	}

	router.Use(otelgin.Middleware(config.Telemetry.ServiceName))

	router.Use(LoggingMiddleware(logger))

	if config.RateLimitEnabled {
		rateLimiter := NewRateLimiter(logger.Logger.Logger, metrics, store, config.RateLimitConfigs)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	router.Use(MetricsMiddleware(metrics))
}
