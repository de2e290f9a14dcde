package core

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Defaults applied by NewConfig when no option overrides them.
const (
	DefaultBaseURL    = "https://api.groq.com"
	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 2

	// UserAgent identifies this client on every request.
	UserAgent = "groq-go/1.0.0"
)

// Environment fallbacks consulted when the corresponding value is not set
// explicitly.
const (
	APIKeyEnvVar  = "GROQ_API_KEY"
	BaseURLEnvVar = "GROQ_BASE_URL"
)

// Header is one default header entry. Default headers keep their insertion
// order so they are applied deterministically.
type Header struct {
	Name  string
	Value string
}

// Config holds the immutable settings for a pipeline Client: base URL,
// credential, timeout, retry budget, and the default headers and query
// parameters attached to every call. A Config is only obtainable through
// NewConfig, which validates it once; there are no setters.
type Config struct {
	apiKey         Secret
	baseURL        string
	timeout        time.Duration
	maxRetries     int
	defaultHeaders []Header
	defaultQuery   url.Values
	telemetry      TelemetryHook
	httpClient     *http.Client
}

// Option configures a Config before it is validated and frozen.
type Option func(*Config)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout applied to the whole exchange, covering
// connection establishment, writing the request, and reading the response.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the retry budget for transient failures. A value of 2
// allows up to 3 total attempts.
func WithMaxRetries(maxRetries int) Option {
	return func(c *Config) {
		c.maxRetries = maxRetries
	}
}

// WithHeader adds a default header sent on every request. Per-call headers
// with the same name take precedence.
func WithHeader(name, value string) Option {
	return func(c *Config) {
		c.defaultHeaders = append(c.defaultHeaders, Header{Name: name, Value: value})
	}
}

// WithQueryParam adds a default query parameter appended to every request URL.
// Repeated values expand into one query-string entry per element.
func WithQueryParam(key string, values ...string) Option {
	return func(c *Config) {
		c.defaultQuery[key] = append(c.defaultQuery[key], values...)
	}
}

// WithTelemetry sets the telemetry hook notified around every exchange.
func WithTelemetry(h TelemetryHook) Option {
	return func(c *Config) {
		if h != nil {
			c.telemetry = h
		}
	}
}

// WithHTTPClient sets a custom HTTP client. Its Timeout is left untouched, so
// combine with WithTimeout(0) if the client manages deadlines itself.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.httpClient = client
	}
}

// NewConfig resolves and validates a client configuration. The credential is
// taken from apiKey, falling back to the GROQ_API_KEY environment variable;
// the base URL falls back to GROQ_BASE_URL and then to DefaultBaseURL.
// Returns an error wrapping ErrConfig if the credential is missing or the
// base URL does not parse as an absolute URL.
func NewConfig(apiKey string, opts ...Option) (*Config, error) {
	cfg := &Config{
		timeout:      DefaultTimeout,
		maxRetries:   DefaultMaxRetries,
		defaultQuery: url.Values{},
		telemetry:    NoopTelemetryHook{},
		defaultHeaders: []Header{
			{Name: "Content-Type", Value: "application/json"},
			{Name: "User-Agent", Value: UserAgent},
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnvVar)
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key must be provided explicitly or via %s", ErrConfig, APIKeyEnvVar)
	}
	cfg.apiKey = NewSecret(apiKey)

	if cfg.baseURL == "" {
		cfg.baseURL = os.Getenv(BaseURLEnvVar)
	}
	if cfg.baseURL == "" {
		cfg.baseURL = DefaultBaseURL
	}
	if u, err := url.Parse(cfg.baseURL); err != nil || !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrConfig, cfg.baseURL)
	}
	cfg.baseURL = strings.TrimSuffix(cfg.baseURL, "/")

	if cfg.maxRetries < 0 {
		return nil, fmt.Errorf("%w: max retries must be non-negative, got %d", ErrConfig, cfg.maxRetries)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: cfg.timeout}
	}

	return cfg, nil
}

// buildURL joins the base URL and path, then appends every default query
// parameter followed by every call-supplied parameter. Duplicate keys are
// legal and all values appear in the final URL.
func (c *Config) buildURL(path string, query url.Values) (string, error) {
	full := c.baseURL + path
	u, err := url.Parse(full)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: invalid URL %q", ErrConfig, full)
	}

	var parts []string
	if u.RawQuery != "" {
		parts = append(parts, u.RawQuery)
	}
	if encoded := c.defaultQuery.Encode(); encoded != "" {
		parts = append(parts, encoded)
	}
	if encoded := query.Encode(); encoded != "" {
		parts = append(parts, encoded)
	}
	u.RawQuery = strings.Join(parts, "&")

	return u.String(), nil
}
