package core

import (
	"log/slog"
	"time"
)

// TelemetryHook receives notifications about request lifecycle events.
// Implementations can use this for logging, metrics, or tracing. Hooks are
// purely observational: they never alter the request or response and never
// suppress an error.
//
// Event types are designed to never include sensitive data: the API key is
// stored separately as a Secret and request/response bodies are not exposed.
// Only operational metadata (method, path, timing, status) is included.
type TelemetryHook interface {
	// OnRequestStart is called when an exchange begins.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called when an exchange completes, including all
	// retry attempts and backoff sleeps.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting exchange.
type RequestStartEvent struct {
	RequestID string    // client-generated ID correlating start and end events
	Method    string    // HTTP method
	Path      string    // request path, without query parameters
	Start     time.Time // when the exchange started
}

// RequestEndEvent contains metadata about a completed exchange.
type RequestEndEvent struct {
	RequestID string    // same ID as the matching start event
	Method    string    // HTTP method
	Path      string    // request path, without query parameters
	Start     time.Time // when the exchange started
	End       time.Time // when the exchange completed
	Status    int       // final HTTP status, 0 if no response was obtained
	Err       error     // transport error, nil when a response was obtained
}

// Duration returns the elapsed time for the exchange, retries included.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
// It is the default when no telemetry is configured.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

// SlogTelemetryHook emits request lifecycle events through a slog.Logger.
type SlogTelemetryHook struct {
	Logger *slog.Logger
}

// OnRequestStart logs the start of an exchange at debug level.
func (h SlogTelemetryHook) OnRequestStart(e RequestStartEvent) {
	h.logger().Debug("request start",
		"request_id", e.RequestID,
		"method", e.Method,
		"path", e.Path,
	)
}

// OnRequestEnd logs the outcome of an exchange: info on success, warn on
// transport failure.
func (h SlogTelemetryHook) OnRequestEnd(e RequestEndEvent) {
	attrs := []any{
		"request_id", e.RequestID,
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"duration", e.Duration(),
	}
	if e.Err != nil {
		h.logger().Warn("request failed", append(attrs, "error", e.Err)...)
		return
	}
	h.logger().Info("request complete", attrs...)
}

func (h SlogTelemetryHook) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Compile-time checks that both hooks implement TelemetryHook.
var (
	_ TelemetryHook = NoopTelemetryHook{}
	_ TelemetryHook = SlogTelemetryHook{}
)
