package nethttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/transport"
)

type Config struct {
	Timeout time.Duration
}

type handler struct {
	client *http.Client
}

// New returns a transport.Handler backed by a net/http client.
func New(c Config) transport.Handler {
	return NewWithClient(&http.Client{
		Timeout: c.Timeout,
	})
}

// NewWithClient uses an existing client, e.g. one with a custom RoundTripper.
func NewWithClient(client *http.Client) transport.Handler {
	return &handler{
		client: client,
	}
}

func (h *handler) Handle(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, req.Method.String(), req.Url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// assigned directly so the names go out lowercase instead of canonicalized
	for key, value := range req.Headers {
		httpRequest.Header[strings.ToLower(key)] = []string{value}
	}

	response, err := h.client.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	// drain so the connection can be reused
	_, err = io.Copy(io.Discard, response.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	responseHeaders := make(headers.Headers, len(response.Header))
	for key, values := range response.Header {
		responseHeaders[key] = strings.Join(values, ",")
	}

	return &transport.Response{
		StatusCode: response.StatusCode,
		Headers:    responseHeaders,
	}, nil
}
