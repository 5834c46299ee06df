package routes

import (
	"net/http"

	"accountapp/internal/adapter/http/handler"
	"accountapp/internal/adapter/http/helper"
	"accountapp/internal/adapter/http/middleware"
	"accountapp/internal/core/port"
	. "accountapp/pkg/config"
	"accountapp/pkg/middlewares"
	. "accountapp/pkg/tracing"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	AccountHandler *handler.AccountHandler
	Tokens         port.TokenIssuer
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *AppMetrics, logger *LokiLogger, config *AppConfig, store RateLimitStore) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CurrentMiddleware())

	middlewares.SetupGinMiddlewareWithConfig(router, metrics, logger, config, store)

	router.Use(corsMiddleware())

	setupRoutes(router, handlers)

	return router
}

// SetupRouterForTests skips the observability and rate limiting chain.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CurrentMiddleware())
	router.Use(corsMiddleware())

	setupRoutes(router, handlers)

	return router
}

func setupRoutes(router *gin.Engine, handlers HandlersConfig) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/rpc", middleware.OptionalJwtMiddleware(handlers.Tokens), handlers.AccountHandler.Dispatch)
	router.GET("/me", middleware.JwtMiddleware(handlers.Tokens), handlers.AccountHandler.Me)

	router.NoRoute(func(c *gin.Context) {
		helper.SendNotFoundError(c, "Route not found")
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
