// Package testserver is an in-memory tus 1.0.0 server for exercising the
// client end to end over real http.
package testserver

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	gh "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/utils/pointer"
)

const basePath = "/files/"

type Server struct {
	uploads *uploadRepository
	handler http.Handler

	maxSize      *int64
	maxPerPatch  int64
	extensions   []headers.Extension
	mu           sync.Mutex
	failures     []int
	dropRequests int
}

type Option func(*Server)

// WithMaxSize makes the server reject uploads larger than maxSize.
func WithMaxSize(maxSize int64) Option {
	return func(s *Server) {
		s.maxSize = pointer.To(maxSize)
	}
}

// WithMaxBytesPerPatch makes the server accept at most n bytes of every
// PATCH body.
func WithMaxBytesPerPatch(n int64) Option {
	return func(s *Server) {
		s.maxPerPatch = n
	}
}

func New(opts ...Option) *Server {
	uploads, err := newUploadRepository()
	if err != nil {
		panic(err)
	}

	s := &Server{
		uploads:    uploads,
		extensions: []headers.Extension{headers.ExtensionCreation, headers.ExtensionTermination},
	}

	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.Use(gh.CORS(
		gh.AllowedOrigins([]string{"*"}),
		gh.AllowedMethods([]string{http.MethodHead, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		gh.AllowedHeaders([]string{
			headers.TusResumable, headers.UploadLength, headers.UploadOffset,
			headers.UploadMetadata, headers.XHttpMethodOverride, headers.ContentType,
		}),
		gh.ExposedHeaders([]string{
			headers.TusResumable, headers.TusVersion, headers.TusExtension, headers.TusMaxSize,
			headers.UploadLength, headers.UploadOffset, headers.UploadMetadata, headers.Location,
		}),
		gh.IgnoreOptions(),
	))

	r.HandleFunc(basePath, s.serverInfo).Methods(http.MethodOptions)
	r.HandleFunc(basePath, s.create).Methods(http.MethodPost)

	uploadRouter := r.PathPrefix(basePath + "{id}").Subrouter()
	uploadRouter.Use(s.requireProtocolVersion)
	uploadRouter.Use(s.injectFailures)
	uploadRouter.HandleFunc("", s.inspect).Methods(http.MethodHead)
	uploadRouter.HandleFunc("", s.patch).Methods(http.MethodPatch)
	uploadRouter.HandleFunc("", s.terminate).Methods(http.MethodDelete)

	s.handler = methodOverride(r)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Endpoint returns the creation url of the server reachable at baseUrl.
func Endpoint(baseUrl string) string {
	return strings.TrimSuffix(baseUrl, "/") + basePath
}

// FailNextPatch answers the next PATCH requests with the given status codes,
// one per request, without touching the upload.
func (s *Server) FailNextPatch(statusCodes ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = append(s.failures, statusCodes...)
}

// DropNextPatch closes the connection of the next n PATCH requests without
// answering them.
func (s *Server) DropNextPatch(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropRequests += n
}

// Lookup returns a copy of the upload behind location.
func (s *Server) Lookup(location string) (*Upload, bool) {
	id, err := uuid.Parse(location[strings.LastIndex(location, "/")+1:])
	if err != nil {
		return nil, false
	}

	upload, err := s.uploads.Single(id)
	if err != nil {
		return nil, false
	}

	return upload, true
}

// Forget removes the upload behind location, as an expiring server would.
func (s *Server) Forget(location string) {
	upload, ok := s.Lookup(location)
	if ok {
		_ = s.uploads.Delete(upload.Id)
	}
}

func (s *Server) nextFailure() (statusCode int, drop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dropRequests > 0 {
		s.dropRequests--
		return 0, true
	}

	if len(s.failures) > 0 {
		statusCode = s.failures[0]
		s.failures = s.failures[1:]
		return statusCode, false
	}

	return 0, false
}

func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		override := r.Header.Get(headers.XHttpMethodOverride)
		if r.Method == http.MethodPost && override != "" {
			r.Method = strings.ToUpper(override)
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireProtocolVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(headers.TusResumable) != headers.ProtocolVersion {
			w.Header().Set(headers.TusVersion, headers.ProtocolVersion)
			w.WriteHeader(http.StatusPreconditionFailed)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			next.ServeHTTP(w, r)
			return
		}

		statusCode, drop := s.nextFailure()
		switch {
		case drop:
			hijacker, ok := w.(http.Hijacker)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			conn, _, err := hijacker.Hijack()
			if err == nil {
				_ = conn.Close()
			}

		case statusCode != 0:
			w.WriteHeader(statusCode)

		default:
			next.ServeHTTP(w, r)
		}
	})
}

func formatInt(value int64) string {
	return strconv.FormatInt(value, 10)
}
