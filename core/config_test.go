package core

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestNewConfigMissingKey(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "")

	_, err := NewConfig("")
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("NewConfig(\"\") error = %v, want ErrConfig", err)
	}
}

func TestNewConfigWhitespaceKey(t *testing.T) {
	_, err := NewConfig("   ")
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("NewConfig(whitespace) error = %v, want ErrConfig", err)
	}
}

func TestNewConfigEnvFallback(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "env-key")

	cfg, err := NewConfig("")
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.apiKey.Expose() != "env-key" {
		t.Errorf("apiKey = %q, want %q", cfg.apiKey.Expose(), "env-key")
	}
}

func TestNewConfigBaseURLEnvFallback(t *testing.T) {
	t.Setenv(BaseURLEnvVar, "http://env.example.com")

	cfg, err := NewConfig("k")
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.baseURL != "http://env.example.com" {
		t.Errorf("baseURL = %q, want env value", cfg.baseURL)
	}

	// An explicit option takes precedence over the environment.
	cfg, err = NewConfig("k", WithBaseURL("http://explicit.example.com"))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.baseURL != "http://explicit.example.com" {
		t.Errorf("baseURL = %q, want explicit value", cfg.baseURL)
	}
}

func TestNewConfigInvalidBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{"no scheme", "api.groq.com"},
		{"scheme only", "https://"},
		{"garbage", "://bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig("k", WithBaseURL(tt.baseURL))
			if !errors.Is(err, ErrConfig) {
				t.Errorf("NewConfig(baseURL=%q) error = %v, want ErrConfig", tt.baseURL, err)
			}
		})
	}
}

func TestNewConfigNegativeRetries(t *testing.T) {
	_, err := NewConfig("k", WithMaxRetries(-1))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("NewConfig(maxRetries=-1) error = %v, want ErrConfig", err)
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig("k")
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	if cfg.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", cfg.timeout, DefaultTimeout)
	}
	if cfg.maxRetries != DefaultMaxRetries {
		t.Errorf("maxRetries = %d, want %d", cfg.maxRetries, DefaultMaxRetries)
	}
	if cfg.httpClient.Timeout != DefaultTimeout {
		t.Errorf("httpClient.Timeout = %v, want %v", cfg.httpClient.Timeout, DefaultTimeout)
	}

	want := []Header{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "User-Agent", Value: UserAgent},
	}
	if len(cfg.defaultHeaders) != len(want) {
		t.Fatalf("defaultHeaders = %v, want %v", cfg.defaultHeaders, want)
	}
	for i, h := range want {
		if cfg.defaultHeaders[i] != h {
			t.Errorf("defaultHeaders[%d] = %v, want %v", i, cfg.defaultHeaders[i], h)
		}
	}
}

func TestNewConfigTrimsTrailingSlash(t *testing.T) {
	cfg, err := NewConfig("k", WithBaseURL("http://localhost:8080/"))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.baseURL != "http://localhost:8080" {
		t.Errorf("baseURL = %q, want trailing slash removed", cfg.baseURL)
	}
}

func TestNewConfigTimeoutOption(t *testing.T) {
	cfg, err := NewConfig("k", WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.httpClient.Timeout != 5*time.Second {
		t.Errorf("httpClient.Timeout = %v, want 5s", cfg.httpClient.Timeout)
	}
}

func TestBuildURLMergesQueryParams(t *testing.T) {
	cfg, err := NewConfig("k",
		WithBaseURL("http://localhost:9999"),
		WithQueryParam("tenant", "acme"),
	)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	got, err := cfg.buildURL("/v1/things", url.Values{"limit": {"10"}})
	if err != nil {
		t.Fatalf("buildURL() error = %v", err)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("result does not parse: %v", err)
	}
	if u.Path != "/v1/things" {
		t.Errorf("Path = %q, want /v1/things", u.Path)
	}
	q := u.Query()
	if q.Get("tenant") != "acme" {
		t.Errorf("tenant = %q, want acme", q.Get("tenant"))
	}
	if q.Get("limit") != "10" {
		t.Errorf("limit = %q, want 10", q.Get("limit"))
	}

	// Default params come before call params in the query string.
	if !strings.Contains(got, "tenant=acme&limit=10") {
		t.Errorf("URL = %q, want defaults before call params", got)
	}
}

func TestBuildURLDuplicateKeys(t *testing.T) {
	cfg, err := NewConfig("k",
		WithBaseURL("http://localhost:9999"),
		WithQueryParam("purpose", "batch"),
	)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	// Both the default and the call-supplied value appear: keys are not
	// merged.
	got, err := cfg.buildURL("/v1/files", url.Values{"purpose": {"assistants"}})
	if err != nil {
		t.Fatalf("buildURL() error = %v", err)
	}

	u, _ := url.Parse(got)
	values := u.Query()["purpose"]
	if len(values) != 2 || values[0] != "batch" || values[1] != "assistants" {
		t.Errorf("purpose values = %v, want [batch assistants]", values)
	}
}

func TestBuildURLSequenceExpansion(t *testing.T) {
	cfg, err := NewConfig("k", WithBaseURL("http://localhost:9999"))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	got, err := cfg.buildURL("/v1/models", url.Values{"id": {"a", "b", "c"}})
	if err != nil {
		t.Fatalf("buildURL() error = %v", err)
	}

	u, _ := url.Parse(got)
	values := u.Query()["id"]
	if len(values) != 3 || values[0] != "a" || values[1] != "b" || values[2] != "c" {
		t.Errorf("id values = %v, want [a b c] in order", values)
	}
}

func TestBuildURLInvalidPath(t *testing.T) {
	cfg, err := NewConfig("k", WithBaseURL("http://localhost:9999"))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	_, err = cfg.buildURL("/bad/%zz", nil)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("buildURL(invalid path) error = %v, want ErrConfig", err)
	}
}
