package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kiln/internal/core/ports"
)

// DebugArea is the debug area spans are logged under.
const DebugArea = "trace"

// Bridge implements sdktrace.SpanProcessor to forward span lifecycles to debug logging.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.logger == nil || !b.logger.DebugEnabled(DebugArea) {
		return
	}
	if !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(DebugArea, fmt.Sprintf("%s started", s.Name()))
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !b.logger.DebugEnabled(DebugArea) {
		return
	}
	if !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime())
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		b.logger.Debug(DebugArea, fmt.Sprintf("%s failed after %v: %s", s.Name(), elapsed, desc))
		return
	}
	b.logger.Debug(DebugArea, fmt.Sprintf("%s finished in %v", s.Name(), elapsed))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// NewTracerProvider creates an SDK provider that reports every span to the bridge.
func NewTracerProvider(bridge *Bridge, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	opts = append([]sdktrace.TracerProviderOption{sdktrace.WithSpanProcessor(bridge)}, opts...)
	return sdktrace.NewTracerProvider(opts...)
}
