package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Call describes one logical API request before composition. A Call is
// constructed fresh per invocation and never reused.
type Call struct {
	// Method is the HTTP method: GET, POST, PUT, PATCH, or DELETE.
	Method string

	// Path is the endpoint path relative to the configured base URL.
	Path string

	// Query holds per-call query parameters, appended after the defaults.
	Query url.Values

	// Headers holds per-call headers, overriding defaults on name collision.
	Headers http.Header

	// Body is a typed payload serialized to JSON. Only valid for POST, PUT,
	// and PATCH; mutually exclusive with Form.
	Body any

	// Form is a pre-built multipart payload attached as-is.
	Form *Form
}

// methodHasBody reports whether the method carries a request body.
func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// compose turns a Call into a fully-formed *http.Request: URL with merged
// query parameters, encoded body, and headers in precedence order (defaults,
// then per-call headers, then the encoding's Content-Type). Authentication is
// applied later by the interceptor chain so it can never be overridden here.
func (c *Client) compose(ctx context.Context, call Call) (*http.Request, error) {
	urlStr, err := c.cfg.buildURL(call.Path, call.Query)
	if err != nil {
		return nil, err
	}

	var body *bytes.Reader
	var contentType string
	switch {
	case call.Form != nil:
		raw, ct, err := call.Form.encode()
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
		contentType = ct
	case call.Body != nil:
		if !methodHasBody(call.Method) {
			return nil, fmt.Errorf("%w: method %s does not accept a request body", ErrConfig, call.Method)
		}
		raw, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: serializing request body: %v", ErrEncode, err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	case methodHasBody(call.Method):
		// POST/PUT/PATCH without a payload still carry a zero-length body.
		body = bytes.NewReader(nil)
	}

	var req *http.Request
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, call.Method, urlStr, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, call.Method, urlStr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrConfig, err)
	}

	for _, h := range c.cfg.defaultHeaders {
		req.Header.Set(h.Name, h.Value)
	}
	for name, values := range call.Headers {
		req.Header.Del(name)
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}
