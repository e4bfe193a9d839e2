package tus

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/sources"
	"github.com/the127/tusk/internal/transport"
	"github.com/the127/tusk/internal/utils/pointer"
)

// fakeServer answers exchanges the way a tus server would and records every
// request it receives.
type fakeServer struct {
	offset    int64
	totalSize *int64
	metadata  string

	headStatus    int
	optionsStatus int
	postStatus    int
	patchStatus   int
	deleteStatus  int

	versions   string
	extensions string
	maxSize    string
	location   string

	omitOffset      bool
	omitPatchOffset bool
	patchOffset     string
	failWith        error

	requests []*transport.Request
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		headStatus:    http.StatusOK,
		optionsStatus: http.StatusNoContent,
		postStatus:    http.StatusCreated,
		patchStatus:   http.StatusNoContent,
		deleteStatus:  http.StatusNoContent,
		versions:      "1.0.0",
		location:      "/files/1",
	}
}

func (f *fakeServer) withTotalSize(size int64) *fakeServer {
	f.totalSize = pointer.To(size)
	return f
}

func (f *fakeServer) Handle(_ context.Context, req *transport.Request) (*transport.Response, error) {
	recorded := &transport.Request{
		Method:  req.Method,
		Url:     req.Url,
		Headers: req.Headers.Clone(),
		Body:    bytes.Clone(req.Body),
	}
	f.requests = append(f.requests, recorded)

	if f.failWith != nil {
		return nil, f.failWith
	}

	method := req.Method
	if override, ok := req.Headers.Get(headers.XHttpMethodOverride); ok {
		method = transport.Method(override)
	}

	h := headers.Headers{}
	switch method {
	case transport.MethodHead:
		if !f.omitOffset {
			h["Upload-Offset"] = strconv.FormatInt(f.offset, 10)
		}
		if f.totalSize != nil {
			h["Upload-Length"] = strconv.FormatInt(*f.totalSize, 10)
		}
		if f.metadata != "" {
			h["Upload-Metadata"] = f.metadata
		}
		return &transport.Response{StatusCode: f.headStatus, Headers: h}, nil

	case transport.MethodOptions:
		if f.versions != "" {
			h["Tus-Version"] = f.versions
		}
		if f.extensions != "" {
			h["Tus-Extension"] = f.extensions
		}
		if f.maxSize != "" {
			h["Tus-Max-Size"] = f.maxSize
		}
		return &transport.Response{StatusCode: f.optionsStatus, Headers: h}, nil

	case transport.MethodPost:
		if f.location != "" {
			h["Location"] = f.location
		}
		return &transport.Response{StatusCode: f.postStatus, Headers: h}, nil

	case transport.MethodPatch:
		if f.patchStatus == http.StatusNoContent {
			offset, err := strconv.ParseInt(req.Headers["upload-offset"], 10, 64)
			if err != nil {
				return nil, err
			}
			f.offset = offset + int64(len(req.Body))
			switch {
			case f.omitPatchOffset:
			case f.patchOffset != "":
				h["Upload-Offset"] = f.patchOffset
			default:
				h["Upload-Offset"] = strconv.FormatInt(f.offset, 10)
			}
		}
		return &transport.Response{StatusCode: f.patchStatus, Headers: h}, nil

	case transport.MethodDelete:
		return &transport.Response{StatusCode: f.deleteStatus, Headers: h}, nil
	}

	return nil, errors.New("unexpected method")
}

func (f *fakeServer) requestsWithMethod(method transport.Method) []*transport.Request {
	var result []*transport.Request
	for _, req := range f.requests {
		if req.Method == method {
			result = append(result, req)
		}
	}
	return result
}

func (f *fakeServer) patchSizes() []int {
	var sizes []int
	for _, req := range f.requestsWithMethod(transport.MethodPatch) {
		sizes = append(sizes, len(req.Body))
	}
	return sizes
}

// truncatedSource claims to be longer than the data it can deliver.
type truncatedSource struct {
	data      []byte
	claimSize int64
}

type truncatedStream struct {
	*bytes.Reader
	size int64
}

func (s *truncatedStream) Size() int64 {
	return s.size
}

func (s *truncatedStream) Close() error {
	return nil
}

func (t *truncatedSource) Open(_ context.Context) (sources.Stream, error) {
	return &truncatedStream{Reader: bytes.NewReader(t.data), size: t.claimSize}, nil
}

// trickleSource returns at most 7 bytes per Read call.
type trickleSource struct {
	data []byte
}

type trickleStream struct {
	*bytes.Reader
}

func (s *trickleStream) Read(p []byte) (int, error) {
	if len(p) > 7 {
		p = p[:7]
	}
	return s.Reader.Read(p)
}

func (s *trickleStream) Close() error {
	return nil
}

func (t *trickleSource) Open(_ context.Context) (sources.Stream, error) {
	return &trickleStream{Reader: bytes.NewReader(t.data)}, nil
}

func makeData(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}
