package transport

import (
	"context"
	"net/http"

	"github.com/the127/tusk/internal/headers"
)

// Method is one of the HTTP methods the protocol uses.
type Method string

const (
	MethodHead    Method = http.MethodHead
	MethodPatch   Method = http.MethodPatch
	MethodOptions Method = http.MethodOptions
	MethodPost    Method = http.MethodPost
	MethodDelete  Method = http.MethodDelete
)

func (m Method) String() string {
	return string(m)
}

// Request is a single exchange to be executed by a Handler.
type Request struct {
	Method  Method
	Url     string
	Headers headers.Headers
	Body    []byte
}

// Response is what the server answered. Header lookups must go through
// headers.Headers.Get since the case of the keys is up to the transport.
type Response struct {
	StatusCode int
	Headers    headers.Headers
}

// Handler executes one request. Implementations decide about connections,
// timeouts and TLS; errors are reported to callers as opaque transport
// failures.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
