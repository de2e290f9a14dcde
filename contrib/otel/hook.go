// Package otel provides a telemetry hook that records each API exchange as an
// OpenTelemetry span. Spans cover the whole exchange, retries included, and
// carry the HTTP method, path, and final status as attributes.
package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/groq/core"
)

const tracerName = "github.com/petal-labs/groq/contrib/otel"

// Hook implements core.TelemetryHook on top of an OpenTelemetry tracer.
// In-flight spans are correlated between the start and end events through the
// event's RequestID. Hook is safe for concurrent use.
type Hook struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span
}

// Option configures a Hook.
type Option func(*Hook)

// WithTracerProvider uses tp instead of the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Hook) {
		h.tracer = tp.Tracer(tracerName)
	}
}

// NewHook creates a Hook backed by the global tracer provider unless
// overridden with WithTracerProvider.
func NewHook(opts ...Option) *Hook {
	h := &Hook{spans: make(map[string]trace.Span)}
	for _, opt := range opts {
		opt(h)
	}
	if h.tracer == nil {
		h.tracer = otel.Tracer(tracerName)
	}
	return h
}

// OnRequestStart opens a span for the exchange.
func (h *Hook) OnRequestStart(e core.RequestStartEvent) {
	_, span := h.tracer.Start(context.Background(), e.Method+" "+e.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(e.Start),
		trace.WithAttributes(
			attribute.String("http.request.method", e.Method),
			attribute.String("url.path", e.Path),
			attribute.String("groq.request_id", e.RequestID),
		),
	)

	h.mu.Lock()
	h.spans[e.RequestID] = span
	h.mu.Unlock()
}

// OnRequestEnd closes the exchange's span, recording the final status or the
// transport error.
func (h *Hook) OnRequestEnd(e core.RequestEndEvent) {
	h.mu.Lock()
	span, ok := h.spans[e.RequestID]
	delete(h.spans, e.RequestID)
	h.mu.Unlock()
	if !ok {
		return
	}

	if e.Status > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", e.Status))
	}
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
	} else if e.Status >= 400 {
		span.SetStatus(codes.Error, "")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End(trace.WithTimestamp(e.End))
}

var _ core.TelemetryHook = (*Hook)(nil)
