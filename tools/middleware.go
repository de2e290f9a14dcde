package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// ToolCallFunc is the function signature middleware wraps.
type ToolCallFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Middleware wraps a ToolCallFunc to add behavior around execution.
type Middleware func(next ToolCallFunc) ToolCallFunc

// Chain combines middleware into one. The first middleware is outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next ToolCallFunc) ToolCallFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// Wrap returns a Tool that executes middleware around the original.
func Wrap(tool Tool, middlewares ...Middleware) Tool {
	if len(middlewares) == 0 {
		return tool
	}
	return &wrappedTool{
		tool:    tool,
		wrapped: Chain(middlewares...)(tool.Call),
	}
}

type wrappedTool struct {
	tool    Tool
	wrapped ToolCallFunc
}

func (w *wrappedTool) Name() string               { return w.tool.Name() }
func (w *wrappedTool) Description() string        { return w.tool.Description() }
func (w *wrappedTool) Parameters() map[string]any { return w.tool.Parameters() }

func (w *wrappedTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	return w.wrapped(ctx, args)
}

// WithLogging logs each call's outcome and duration. A nil logger uses
// slog.Default.
func WithLogging(logger *slog.Logger) Middleware {
	return func(next ToolCallFunc) ToolCallFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			l := logger
			if l == nil {
				l = slog.Default()
			}

			start := time.Now()
			result, err := next(ctx, args)
			elapsed := time.Since(start)

			if err != nil {
				l.Warn("tool call failed", "error", err, "duration", elapsed)
				return nil, err
			}
			l.Info("tool call complete", "duration", elapsed)
			return result, nil
		}
	}
}

// WithTimeout bounds each call's execution time.
func WithTimeout(d time.Duration) Middleware {
	return func(next ToolCallFunc) ToolCallFunc {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, args)
		}
	}
}
