package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeTransport records requests and replays canned responses.
type fakeTransport struct {
	requests  []*Request
	responses []*Response
	err       error
	closed    int
}

func (f *fakeTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return &Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeTransport) Close() error {
	f.closed++
	return nil
}

func jsonResponse(status int, body string) *Response {
	return &Response{StatusCode: status, Body: []byte(body)}
}

// newTestServer starts a server and a raising client pointed at it.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		AccessToken: "test-token",
		RaiseErrors: true,
		BaseURL:     server.URL,
	})
	t.Cleanup(func() { _ = client.Close() })

	return server, client
}

// assertKind fails the test unless err is an *Error of the given kind.
func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Kind != want {
		t.Errorf("expected kind %s, got %s (%v)", want, apiErr.Kind, err)
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatalf("failed to write response body: %v", err)
	}
}
