package core

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorMessageLen caps the length of an error message extracted from a
// non-JSON response body.
const maxErrorMessageLen = 200

// Response carries a decoded 2xx result. A Response is only ever constructed
// for a 2xx status; any other outcome yields an error instead.
type Response[T any] struct {
	// Data is the decoded response payload, nil when the response had no
	// body.
	Data *T

	// Header holds the response headers as received.
	Header http.Header

	// Status is the HTTP status code, always in [200,299].
	Status int
}

// process decodes a 2xx response into T or classifies anything else as an
// error. The response body is always closed. A string target type receives
// the body text verbatim; a JSON decode failure wraps ErrDecode.
func process[T any](resp *http.Response) (*Response[T], error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: "reading response body: " + err.Error(),
			Err:     ErrNetwork,
		}
	}

	out := &Response[T]{Header: resp.Header, Status: resp.StatusCode}
	if len(body) == 0 {
		return out, nil
	}

	data := new(T)
	if s, ok := any(data).(*string); ok {
		*s = string(body)
	} else if err := json.Unmarshal(body, data); err != nil {
		return nil, fmt.Errorf("%w: parsing response body: %v", ErrDecode, err)
	}
	out.Data = data

	return out, nil
}

// newStatusError builds an APIError from a non-2xx response. The message is
// taken from the body's error.message field when present, otherwise from the
// body itself (truncated), otherwise a generic "HTTP <status> Error".
func newStatusError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)

	message := fmt.Sprintf("HTTP %d Error", resp.StatusCode)
	if len(strings.TrimSpace(string(body))) > 0 {
		message = truncate(string(body), maxErrorMessageLen)

		var payload struct {
			Error *struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil && payload.Error.Message != "" {
			message = payload.Error.Message
		}
	}

	return &APIError{
		Status:  resp.StatusCode,
		Message: message,
		Body:    string(body),
		Err:     statusSentinel(resp.StatusCode),
	}
}

// truncate shortens s to at most n bytes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
