package core

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// roundTripFunc executes a composed request and returns the raw response.
// It is the base unit threaded through the interceptor chain.
type roundTripFunc func(req *http.Request) (*http.Response, error)

// interceptor wraps a roundTripFunc with additional behavior. Interceptors
// are applied outermost-first: the first interceptor passed to chain is the
// first to see the request.
type interceptor func(next roundTripFunc) roundTripFunc

// chain builds the linear interceptor pipeline around base. Interceptors are
// applied in reverse so that the first entry becomes the outermost wrapper.
func chain(base roundTripFunc, interceptors ...interceptor) roundTripFunc {
	for i := len(interceptors) - 1; i >= 0; i-- {
		base = interceptors[i](base)
	}
	return base
}

// authInterceptor sets the bearer-credential header on every request,
// including multipart requests, overriding any caller-supplied value.
func authInterceptor(apiKey Secret) interceptor {
	return func(next roundTripFunc) roundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			req.Header.Set("Authorization", "Bearer "+apiKey.Expose())
			return next(req)
		}
	}
}

// telemetryInterceptor emits start and end events around the exchange. It is
// side-effect only: the request and response pass through unmodified and
// errors are never suppressed. The end event covers the full exchange,
// retries and backoff sleeps included.
func telemetryInterceptor(hook TelemetryHook) interceptor {
	return func(next roundTripFunc) roundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			requestID := uuid.NewString()
			start := time.Now()
			hook.OnRequestStart(RequestStartEvent{
				RequestID: requestID,
				Method:    req.Method,
				Path:      req.URL.Path,
				Start:     start,
			})

			resp, err := next(req)

			end := RequestEndEvent{
				RequestID: requestID,
				Method:    req.Method,
				Path:      req.URL.Path,
				Start:     start,
				End:       time.Now(),
				Err:       err,
			}
			if resp != nil {
				end.Status = resp.StatusCode
			}
			hook.OnRequestEnd(end)

			return resp, err
		}
	}
}
