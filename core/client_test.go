package core

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// recordingHook captures telemetry events for assertions.
type recordingHook struct {
	mu     sync.Mutex
	starts []RequestStartEvent
	ends   []RequestEndEvent
}

func (h *recordingHook) OnRequestStart(e RequestStartEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts = append(h.starts, e)
}

func (h *recordingHook) OnRequestEnd(e RequestEndEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ends = append(h.ends, e)
}

func TestClientRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	var auths []string
	var mu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		auths = append(auths, r.Header.Get("Authorization"))
		mu.Unlock()
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"object":"list","data":[]}`)
	}))
	defer server.Close()

	cfg, err := NewConfig("k", WithBaseURL(server.URL), WithMaxRetries(2))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	fs := &fakeSleep{}
	c := newClient(cfg, fs.sleep)

	type list struct {
		Object string `json:"object"`
		Data   []any  `json:"data"`
	}
	resp, err := Get[list](context.Background(), c, "/openai/v1/models", Call{})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.Data.Object != "list" {
		t.Errorf("Object = %q, want list", resp.Data.Object)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server calls = %d, want 3", got)
	}
	for i, a := range auths {
		if a != "Bearer k" {
			t.Errorf("attempt %d Authorization = %q, want Bearer k", i, a)
		}
	}
}

func TestClientTelemetryEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	hook := &recordingHook{}
	cfg, err := NewConfig("k", WithBaseURL(server.URL), WithTelemetry(hook))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	c := NewClient(cfg)

	if _, err := Get[struct{}](context.Background(), c, "/openai/v1/models", Call{}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if len(hook.starts) != 1 || len(hook.ends) != 1 {
		t.Fatalf("events = %d starts, %d ends, want 1 each", len(hook.starts), len(hook.ends))
	}
	start, end := hook.starts[0], hook.ends[0]
	if start.RequestID == "" {
		t.Error("start RequestID is empty")
	}
	if start.RequestID != end.RequestID {
		t.Errorf("RequestID mismatch: start %q, end %q", start.RequestID, end.RequestID)
	}
	if start.Method != http.MethodGet || start.Path != "/openai/v1/models" {
		t.Errorf("start event = %+v", start)
	}
	if end.Status != http.StatusOK {
		t.Errorf("end Status = %d, want 200", end.Status)
	}
	if end.Err != nil {
		t.Errorf("end Err = %v, want nil", end.Err)
	}
	if end.Duration() < 0 {
		t.Errorf("Duration() = %v, want non-negative", end.Duration())
	}
}

func TestClientTelemetryOnTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	hook := &recordingHook{}
	cfg, err := NewConfig("k", WithBaseURL(server.URL), WithMaxRetries(0), WithTelemetry(hook))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	c := NewClient(cfg)

	if _, err := Get[struct{}](context.Background(), c, "/openai/v1/models", Call{}); err == nil {
		t.Fatal("Get() error = nil, want transport failure")
	}

	if len(hook.ends) != 1 {
		t.Fatalf("ends = %d, want 1", len(hook.ends))
	}
	if hook.ends[0].Err == nil {
		t.Error("end Err = nil, want transport error")
	}
	if hook.ends[0].Status != 0 {
		t.Errorf("end Status = %d, want 0", hook.ends[0].Status)
	}
}

func TestClientAuthHeaderNotOverridable(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	cfg, err := NewConfig("real-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	c := NewClient(cfg)

	call := Call{Headers: http.Header{"Authorization": {"Bearer forged"}}}
	if _, err := Get[struct{}](context.Background(), c, "/openai/v1/models", call); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "Bearer real-key" {
		t.Errorf("Authorization = %q, want the configured key to win", got)
	}
}

func TestClientSendsDefaultQuery(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	cfg, err := NewConfig("k", WithBaseURL(server.URL), WithQueryParam("tenant", "acme"))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	c := NewClient(cfg)

	if _, err := Get[struct{}](context.Background(), c, "/openai/v1/models", Call{}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rawQuery != "tenant=acme" {
		t.Errorf("RawQuery = %q, want tenant=acme", rawQuery)
	}
}
