package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// flakyServer answers 503 to the first failures requests and 200 afterwards.
func flakyServer(t *testing.T, failures int32) (*httptest.Server, *int32) {
	t.Helper()

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= failures {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, 200, `{"ok":true}`)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func newTestTransport() *HTTPTransport {
	return NewHTTPTransport(TransportConfig{
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

func TestHTTPTransport_RetriesIdempotent(t *testing.T) {
	server, hits := flakyServer(t, 1)
	transport := newTestTransport()
	defer func() { _ = transport.Close() }()

	resp, err := transport.Send(context.Background(), &Request{
		Method:     http.MethodGet,
		URL:        server.URL + "/v1/me",
		Idempotent: true,
		Retries:    2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 after retry, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(hits); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestHTTPTransport_NoRetryForPost(t *testing.T) {
	server, hits := flakyServer(t, 10)
	transport := newTestTransport()
	defer func() { _ = transport.Close() }()

	resp, err := transport.Send(context.Background(), &Request{
		Method:  http.MethodPost,
		URL:     server.URL + "/v1/users/u/playlists",
		Body:    []byte(`{"name":"x"}`),
		Retries: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected the 503 to be returned, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(hits); got != 1 {
		t.Errorf("expected a single attempt, got %d", got)
	}
}

func TestHTTPTransport_RetriesExhausted(t *testing.T) {
	server, hits := flakyServer(t, 10)
	transport := newTestTransport()
	defer func() { _ = transport.Close() }()

	resp, err := transport.Send(context.Background(), &Request{
		Method:     http.MethodDelete,
		URL:        server.URL + "/v1/me/tracks",
		Idempotent: true,
		Retries:    1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected the last 503, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(hits); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestHTTPTransport_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	transport := newTestTransport()
	_, err := transport.Send(context.Background(), &Request{Method: http.MethodGet, URL: addr})
	if err == nil {
		t.Fatal("expected an error from a closed server")
	}
}

func TestHTTPTransport_Headers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("expected X-Test header, got %q", got)
		}
		w.Header().Set("X-Reply", "ok")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	transport := NewHTTPTransport(TransportConfig{Persistent: true})
	resp, err := transport.Send(context.Background(), &Request{
		Method: http.MethodPut,
		URL:    server.URL,
		Header: http.Header{"X-Test": {"yes"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated || resp.Status != "201 Created" {
		t.Errorf("unexpected status %d %q", resp.StatusCode, resp.Status)
	}
	if resp.Header.Get("X-Reply") != "ok" {
		t.Error("expected response headers to be kept")
	}
	if err := transport.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}

func TestRetryableStatus(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{200, false},
		{201, false},
		{400, false},
		{404, false},
		{429, true},
		{500, true},
		{503, true},
	}

	for _, tt := range tests {
		if got := retryableStatus(tt.status); got != tt.want {
			t.Errorf("retryableStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
