package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// errSuppressed is returned by run when a failure was swallowed because the
// client does not raise errors. It never escapes the package.
var errSuppressed = errors.New("spotify: error suppressed")

// request describes one call before it is put on the wire. A request carries
// either a query or a body, never both; the call site picks the shape with
// withQuery or withJSON/withForm.
type request struct {
	method      string
	path        string
	expect      []int
	query       url.Values
	body        []byte
	contentType string
	header      http.Header
	idempotent  bool
	err         error
}

// withQuery attaches query parameters.
func (r *request) withQuery(q url.Values) *request {
	r.query = q
	return r
}

// withJSON encodes v as the request body.
func (r *request) withJSON(v interface{}) *request {
	data, err := json.Marshal(v)
	if err != nil {
		r.err = invalidArgument("failed to encode request body: %v", err)
		return r
	}
	r.body = data
	return r
}

// withForm encodes form as a URL-encoded request body.
func (r *request) withForm(form url.Values) *request {
	r.body = []byte(form.Encode())
	r.contentType = contentTypeForm
	return r
}

// executor turns requests into transport calls and classifies the outcome.
// It holds no per-call state and is shared by Client and RefreshToken.
type executor struct {
	transport Transport
	baseURL   string
	userAgent string
	retries   int
	logger    Logger
}

// execute sends req and returns the raw body of a response whose status is
// in req.expect. Every other outcome is returned as an *Error.
func (e *executor) execute(ctx context.Context, req *request) ([]byte, error) {
	if req.err != nil {
		return nil, req.err
	}

	wire := &Request{
		Method:     req.method,
		URL:        e.url(req),
		Header:     e.header(req),
		Body:       req.body,
		Idempotent: req.idempotent,
		Retries:    e.retries,
	}

	e.debugf("spotify: %s %s", wire.Method, wire.URL)

	resp, err := e.transport.Send(ctx, wire)
	if err != nil {
		if isTimeout(err) {
			return nil, newError(KindHTTP, 0, err, "request timed out: %v", err)
		}
		return nil, transportError(err)
	}

	if resp.Status == "" {
		resp.Status = statusLine(resp.StatusCode)
	}
	if !expected(req.expect, resp.StatusCode) {
		e.debugf("spotify: %s %s failed: %s", wire.Method, wire.URL, resp.Status)
		return nil, statusError(req.expect, resp)
	}

	e.debugf("spotify: %s %s succeeded: %s", wire.Method, wire.URL, resp.Status)
	return resp.Body, nil
}

// executeInto is execute followed by decoding the body into out. A nil out
// discards the body.
func (e *executor) executeInto(ctx context.Context, req *request, out interface{}) error {
	body, err := e.execute(ctx, req)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (e *executor) url(req *request) string {
	u := req.path
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = e.baseURL + u
	}
	if len(req.query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + req.query.Encode()
	}
	return u
}

func (e *executor) header(req *request) http.Header {
	h := http.Header{}
	for k, v := range req.header {
		h[k] = v
	}
	contentType := req.contentType
	if contentType == "" {
		contentType = contentTypeJSON
	}
	h.Set("Content-Type", contentType)
	h.Set("User-Agent", e.userAgent)
	return h
}

func (e *executor) debugf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Debugf(format, args...)
	}
}

// run executes req with the client's credentials and error policy. Failures
// are returned when the client raises errors and replaced by errSuppressed
// otherwise. Invalid arguments are always returned.
func (c *Client) run(ctx context.Context, req *request, out interface{}) error {
	if token := c.AccessToken(); token != "" {
		if req.header == nil {
			req.header = http.Header{}
		}
		req.header.Set("Authorization", "Bearer "+token)
	}

	err := c.exec.executeInto(ctx, req, out)
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind != KindImplementation && !c.raiseErrors {
		c.logDebugf("spotify: suppressed %s: %v", apiErr.Kind, apiErr)
		return errSuppressed
	}
	return err
}

// fetch runs req and decodes the result into a new T. A suppressed failure
// yields a nil result and a nil error.
func fetch[T any](ctx context.Context, c *Client, req *request) (*T, error) {
	var out T
	if err := c.run(ctx, req, &out); err != nil {
		if errors.Is(err, errSuppressed) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// perform runs req for its side effect. It reports false with a nil error
// for a suppressed failure.
func perform(ctx context.Context, c *Client, req *request) (bool, error) {
	if err := c.run(ctx, req, nil); err != nil {
		if errors.Is(err, errSuppressed) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func decode(body []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newError(KindHTTP, 0, err, "failed to parse JSON response: %v", err)
	}
	return nil
}

func expected(expect []int, status int) bool {
	for _, s := range expect {
		if s == status {
			return true
		}
	}
	return false
}

func statusLine(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code) + " " + text
}

// apiErrorMessage extracts the service's own description of a failure from
// either the Web API shape {"error":{"status":..,"message":..}} or the
// accounts service shape {"error":..,"error_description":..}.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Error json.RawMessage `json:"error"`
		Desc  string          `json:"error_description"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Error) == 0 {
		return ""
	}

	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Error, &nested); err == nil && nested.Message != "" {
		return nested.Message
	}

	var code string
	if err := json.Unmarshal(payload.Error, &code); err == nil {
		if payload.Desc != "" {
			return code + ": " + payload.Desc
		}
		return code
	}
	return ""
}
