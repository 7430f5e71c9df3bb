package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Request is one outgoing call.
type Request struct {
	Method string
	URL    string
	Header map[string]string
	Body   []byte
}

// Response is the raw answer: the status and the complete body.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs a single HTTP round trip. Implementations must carry
// the session cookies the server sets between calls.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

func (f TransportFunc) Send(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPTransport is a Transport over net/http with a cookie jar.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport returns a transport whose requests time out after
// timeout (zero means no timeout).
func NewHTTPTransport(timeout time.Duration) (*HTTPTransport, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &HTTPTransport{client: &http.Client{Jar: jar, Timeout: timeout}}, nil
}

func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader = http.NoBody
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: b}, nil
}
