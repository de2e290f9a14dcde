package core

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// retryBaseDelay is the unit of the exponential backoff schedule.
const retryBaseDelay = 500 * time.Millisecond

// backoffDelay returns the sleep before the given attempt (1-indexed):
// 2^attempt * 500ms, i.e. 1s, 2s, 4s for attempts 1, 2, 3.
func backoffDelay(attempt int) time.Duration {
	return retryBaseDelay * (1 << attempt)
}

// acceptable reports whether a response status ends the retry loop
// immediately. Everything below 500 is accepted except 429.
func acceptable(status int) bool {
	return status < 500 && status != http.StatusTooManyRequests
}

// sleepFunc waits for d or until ctx is done. Injected in tests.
type sleepFunc func(ctx context.Context, d time.Duration) error

// sleepContext is the production sleepFunc. Cancellation during the wait
// aborts the whole call with an error wrapping the context error.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("retry interrupted: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}

// retryInterceptor repeats the exchange on transport failures and retryable
// statuses (429 and 5xx) up to maxRetries times, sleeping backoffDelay(i)
// before retry attempt i. Each attempt produces its own result; the loop
// folds them into a final outcome:
//
//   - an acceptable response returns immediately
//   - the final attempt's response is returned as-is, even if its status is
//     retryable, so the server's error detail survives retry exhaustion
//   - if no response was ever obtained, the last transport error is returned
//
// Retryable response bodies are drained and closed before the next attempt so
// the pooled connection can be reused.
func retryInterceptor(maxRetries int, sleep sleepFunc) interceptor {
	if sleep == nil {
		sleep = sleepContext
	}
	return func(next roundTripFunc) roundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			var lastResp *http.Response
			var lastErr error

			for attempt := 0; attempt <= maxRetries; attempt++ {
				if attempt > 0 {
					if err := sleep(req.Context(), backoffDelay(attempt)); err != nil {
						return nil, err
					}
				}

				attemptReq, err := cloneRequest(req)
				if err != nil {
					return nil, err
				}

				resp, err := next(attemptReq)
				if err != nil {
					lastErr = err
					continue
				}
				if acceptable(resp.StatusCode) || attempt == maxRetries {
					return resp, nil
				}

				discardBody(resp)
				lastResp = resp
			}

			// Only reachable when the final attempt failed at the transport
			// level. Prefer the last real response over the transport error.
			if lastResp != nil {
				return lastResp, nil
			}
			return nil, lastErr
		}
	}
}

// cloneRequest produces a fresh copy of req with a replayable body, so each
// retry attempt sends the full payload.
func cloneRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("%w: rewinding request body: %v", ErrNetwork, err)
		}
		clone.Body = body
	}
	return clone, nil
}

// discardBody drains and closes a response body so the underlying connection
// returns to the pool, then swaps in an empty body in case the response is
// still surfaced after retry exhaustion.
func discardBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	resp.Body = http.NoBody
}
