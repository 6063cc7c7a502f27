// Package telemetry records pipeline stages as OpenTelemetry spans.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/wasmbuild/internal/core/domain"
	"go.trai.ch/wasmbuild/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to report finished spans to a Logger.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{
		logger: logger,
	}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, outcome and duration.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	status := "ok"
	if s.Status().Code == codes.Error {
		status = "failed"
	}

	b.logger.Log(domain.LogRecord{
		Level:   domain.LevelDebug,
		Message: "stage finished",
		Fields: []domain.Field{
			domain.F("stage", s.Name()),
			domain.F("status", status),
			domain.F("duration", s.EndTime().Sub(s.StartTime()).Round(time.Millisecond).String()),
		},
	})
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}
