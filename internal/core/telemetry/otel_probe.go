package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"accountapp/internal/core/port"
)

const tracerName = "accountapp"

// OutcomeRecorder receives one sample per finished service operation.
type OutcomeRecorder interface {
	RecordCredentialOperation(ctx context.Context, operation string, outcome string, duration time.Duration)
}

// OTELProbe implements port.Telemetry on top of the global OpenTelemetry tracer.
type OTELProbe struct {
	logger   *slog.Logger
	recorder OutcomeRecorder
}

func NewOTELProbe(logger *slog.Logger, recorder OutcomeRecorder) port.Telemetry {
	if logger == nil {
		logger = slog.Default()
	}

	return &OTELProbe{
		logger:   logger,
		recorder: recorder,
	}
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("service.%s.%s", service, operation)

	standardAttrs := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}

	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(append(standardAttrs, attrs...)...))
}

func (p *OTELProbe) RecordServiceOperation(ctx context.Context, service string, operation string, outcome string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		p.logger.ErrorContext(ctx, "Service operation failed",
			"service", service,
			"operation", operation,
			"duration_ns", duration.Nanoseconds(),
			"error", err)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if p.recorder != nil {
		p.recorder.RecordCredentialOperation(ctx, operation, outcome, duration)
	}
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]any) {
	attrs := []attribute.KeyValue{
		attribute.String("event", event),
		attribute.String("entity", entity),
		attribute.String("entity_id", entityID),
	}

	for key, value := range metadata {
		attrs = append(attrs, attribute.String(key, fmt.Sprintf("%v", value)))
	}

	trace.SpanFromContext(ctx).AddEvent(event, trace.WithAttributes(attrs...))

	p.logger.InfoContext(ctx, "Business event recorded",
		"event", event,
		"entity", entity,
		"entity_id", entityID,
		"metadata", metadata)
}
