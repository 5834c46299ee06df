package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"accountapp/internal/adapter/http/routes"
	"accountapp/internal/core/telemetry"
	"accountapp/pkg/config"
	"accountapp/pkg/tracing"
)

// StartServerWithConfig serves the API until ctx is cancelled, then drains
// in-flight requests.
func StartServerWithConfig(ctx context.Context, cfg *config.AppConfig, logger *config.LokiLogger, metrics *tracing.AppMetrics) error {
	probe := telemetry.NewOTELProbe(slog.Default(), metrics)

	users, closeStore, err := OpenUserStore(ctx, cfg, probe)

	if err != nil {
		return err
	}

	defer closeStore()

	container, err := NewContainer(cfg, users, probe)

	if err != nil {
		return err
	}

	var store config.RateLimitStore

	if cfg.RedisURL != "" {
		redisStore, err := config.NewRedisRateLimitStore(ctx, cfg.RedisURL)

		if err != nil {
			return err
		}

		defer redisStore.Close()
		store = redisStore
	}

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AccountHandler: container.AccountHandler,
		Tokens:         container.Tokens,
	}, metrics, logger, cfg, store)

	slog.Info("Server starting",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"database_driver", cfg.Database.Driver,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"https_enforced", cfg.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	serveErr := make(chan error, 1)

	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err

	case <-ctx.Done():
		slog.Info("Shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}
