package tus

import (
	"context"

	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/transport"
	"github.com/the127/tusk/internal/utils/tusError"
)

// DefaultChunkSize is used by Upload and whenever a non-positive chunk size is given.
const DefaultChunkSize = 5 * 1024 * 1024

// Client talks to a tus endpoint through a transport.Handler. It keeps no
// state between calls besides its construction-time options.
type Client struct {
	handler           transport.Handler
	useMethodOverride bool
	onProgress        ProgressFunc
}

type Option func(*Client)

// WithMethodOverride sends PATCH and DELETE as POST and puts the real method
// into the x-http-method-override header, for environments that only allow
// GET and POST.
func WithMethodOverride() Option {
	return func(c *Client) {
		c.useMethodOverride = true
	}
}

// WithProgress registers a callback for upload state transitions and offset
// updates. It is called synchronously from Upload.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.onProgress = fn
	}
}

func New(handler transport.Handler, opts ...Option) *Client {
	client := &Client{
		handler: handler,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

func (c *Client) newRequest(method transport.Method, url string, body []byte, h headers.Headers) *transport.Request {
	if h == nil {
		h = headers.Headers{}
	}

	if c.useMethodOverride && (method == transport.MethodPatch || method == transport.MethodDelete) {
		h.Set(headers.XHttpMethodOverride, method.String())
		method = transport.MethodPost
	}

	return &transport.Request{
		Method:  method,
		Url:     url,
		Headers: h,
		Body:    body,
	}
}

func (c *Client) execute(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	response, err := c.handler.Handle(ctx, req)
	if err != nil {
		return nil, tusError.NewTusError(tusError.TransportError).
			WithMessage(err.Error()).
			Wrap(err)
	}

	if response.Headers == nil {
		response.Headers = headers.Headers{}
	}

	return response, nil
}

func unexpectedStatus(statusCode int) error {
	return tusError.NewTusError(tusError.UnexpectedStatus).
		WithStatusCode(statusCode)
}

func missingHeader(name string) error {
	return tusError.NewTusError(tusError.MissingHeader).
		WithHeader(name)
}
