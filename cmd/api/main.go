package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	api "accountapp/internal/adapter/http"
	. "accountapp/pkg/config"
	. "accountapp/pkg/tracing"
)

const serviceVersion = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := LoadConfig()

	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := NewLokiLogger(config.Telemetry.ServiceName, config.Telemetry.LokiURL)

	if err != nil {
		log.Fatal("Failed to initialize Loki logger:", err)
	}

	defer logger.Sync()

	telemetry, err := InitTelemetry(ctx, TelemetryConfig{
		ServiceName:    config.Telemetry.ServiceName,
		ServiceVersion: serviceVersion,
		Environment:    config.Environment,
		MetricsPort:    config.Telemetry.MetricsPort,
		OTLPEndpoint:   config.Telemetry.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		telemetry.Shutdown(shutdownCtx)
	}()

	telemetry.Metrics.StartSystemMetrics(ctx)

	if err := api.StartServerWithConfig(ctx, config, logger, telemetry.Metrics); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
