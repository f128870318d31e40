package spotify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Request is a single wire request handed to a Transport.
type Request struct {
	Method     string
	URL        string
	Header     http.Header
	Body       []byte
	Idempotent bool // Transport may retry the request automatically
	Retries    int  // Maximum automatic retries for idempotent requests
}

// Response is the raw result of a Transport round trip.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Transport performs one HTTP exchange. Implementations return a Response
// for every status code the server answers with and an error only when no
// response could be obtained.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
	Close() error
}

// TransportConfig configures the default HTTP transport.
type TransportConfig struct {
	ReadTimeout  time.Duration // Per read deadline on the connection
	WriteTimeout time.Duration // Per write deadline on the connection
	Persistent   bool          // Keep connections alive between requests
	HTTPClient   *http.Client  // Optional: used as-is, timeouts above are not applied
	Logger       Logger        // Optional: debug logging of attempts
}

// HTTPTransport is the default Transport backed by net/http.
type HTTPTransport struct {
	client *http.Client
	logger Logger
}

// NewHTTPTransport creates a Transport from cfg.
func NewHTTPTransport(cfg TransportConfig) *HTTPTransport {
	client := cfg.HTTPClient
	if client == nil {
		dialer := &net.Dialer{Timeout: cfg.WriteTimeout}
		client = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					conn, err := dialer.DialContext(ctx, network, addr)
					if err != nil {
						return nil, err
					}
					return &deadlineConn{Conn: conn, read: cfg.ReadTimeout, write: cfg.WriteTimeout}, nil
				},
				DisableKeepAlives:   !cfg.Persistent,
				MaxIdleConnsPerHost: 1,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &HTTPTransport{client: client, logger: cfg.Logger}
}

// Send performs req. Idempotent requests are retried up to req.Retries
// times on connection failures and 5xx/429 answers.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	attempts := 0
	var resp *Response

	operation := func() error {
		attempts++
		resp = nil
		if t.logger != nil {
			t.logger.Debugf("spotify: %s %s (attempt %d)", req.Method, req.URL, attempts)
		}

		r, err := t.roundTrip(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		resp = r
		if retryableStatus(r.StatusCode) {
			return fmt.Errorf("server answered %s", r.Status)
		}
		return nil
	}

	retries := 0
	if req.Idempotent && req.Retries > 0 {
		retries = req.Retries
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(newBackOff(), uint64(retries)),
		ctx,
	)

	err := backoff.Retry(operation, policy)
	if resp != nil {
		// A 5xx answer left after the last retry is still an answer; the
		// executor classifies its status.
		return resp, nil
	}
	return nil, err
}

func (t *HTTPTransport) roundTrip(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range req.Header {
		httpReq.Header[k] = v
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	data, err := io.ReadAll(httpResp.Body)
	_ = httpResp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       data,
	}, nil
}

// Close releases idle keep-alive connections. It is safe to call at any
// time, including before the first request.
func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

func retryableStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// newBackOff returns the retry schedule: 500ms doubling, capped at 30s.
func newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// deadlineConn refreshes the read or write deadline before every I/O call so
// the configured timeouts bound each socket operation rather than the whole
// exchange.
type deadlineConn struct {
	net.Conn
	read  time.Duration
	write time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if c.read > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.read)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(p)
}

func (c *deadlineConn) Write(p []byte) (int, error) {
	if c.write > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.write)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Write(p)
}

// isTimeout reports whether err came from an expired deadline.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
