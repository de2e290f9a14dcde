package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Client executes composed requests through the interceptor chain:
// authentication, telemetry, then retry around the raw transport.
// Client is safe for concurrent use.
type Client struct {
	cfg  *Config
	send roundTripFunc
}

// NewClient creates a pipeline client from a validated Config.
func NewClient(cfg *Config) *Client {
	return newClient(cfg, nil)
}

// newClient builds the interceptor chain. Tests inject a sleepFunc to avoid
// real backoff waits.
func newClient(cfg *Config, sleep sleepFunc) *Client {
	transport := func(req *http.Request) (*http.Response, error) {
		resp, err := cfg.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		return resp, nil
	}

	return &Client{
		cfg: cfg,
		send: chain(transport,
			authInterceptor(cfg.apiKey),
			telemetryInterceptor(cfg.telemetry),
			retryInterceptor(cfg.maxRetries, sleep),
		),
	}
}

// Do executes call and decodes a 2xx response body into T. Use string as the
// type argument to receive the raw body text. Transport failures that
// exhaust the retry budget are returned as *APIError with Status 0 wrapping
// ErrNetwork; context cancellation propagates unwrapped.
func Do[T any](ctx context.Context, c *Client, call Call) (*Response[T], error) {
	req, err := c.compose(ctx, call)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &APIError{Message: err.Error(), Err: err}
	}

	return process[T](resp)
}

// Get executes a GET call against path.
func Get[T any](ctx context.Context, c *Client, path string, call Call) (*Response[T], error) {
	call.Method = http.MethodGet
	call.Path = path
	return Do[T](ctx, c, call)
}

// Post executes a POST call against path with a JSON-encoded body.
// A nil body sends a zero-length payload.
func Post[T any](ctx context.Context, c *Client, path string, body any, call Call) (*Response[T], error) {
	call.Method = http.MethodPost
	call.Path = path
	call.Body = body
	return Do[T](ctx, c, call)
}

// Delete executes a DELETE call against path.
func Delete[T any](ctx context.Context, c *Client, path string, call Call) (*Response[T], error) {
	call.Method = http.MethodDelete
	call.Path = path
	return Do[T](ctx, c, call)
}

// Upload executes a POST call against path with a multipart payload.
func Upload[T any](ctx context.Context, c *Client, path string, form *Form, call Call) (*Response[T], error) {
	call.Method = http.MethodPost
	call.Path = path
	call.Form = form
	return Do[T](ctx, c, call)
}
