// Package mocksite provides a mock static content host for testing.
//
// It serves file bodies by path the way a real asset host would, and
// tracks request counts so cache behavior can be asserted.
//
// Usage:
//
//	s := mocksite.New(
//		mocksite.WithFile("~/artist/bio.md", "I make things."),
//	)
//	defer s.Close()
//	store := content.NewHTTPStore(s.URL)
package mocksite

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
)

// Server wraps an httptest.Server preloaded with content files.
type Server struct {
	*httptest.Server

	// fetchCount tracks the total number of file requests. Use this in
	// tests that verify caching behavior.
	fetchCount int32

	// mu guards files: SetFile runs on the test goroutine while handle
	// reads from server goroutines.
	mu sync.RWMutex

	// files is keyed by the canonical tree path ("~/dir/file").
	files map[string]string

	// errorMode, if set, returns this status code for every request.
	errorMode int

	// requestHook, if set, is called on every request before routing.
	requestHook func(r *http.Request)
}

// Option configures a mock content host.
type Option func(*Server)

// WithFile registers a file body under its canonical tree path.
func WithFile(path, body string) Option {
	return func(s *Server) {
		s.files[path] = body
	}
}

// WithFiles registers a whole path-to-body map.
func WithFiles(files map[string]string) Option {
	return func(s *Server) {
		for path, body := range files {
			s.files[path] = body
		}
	}
}

// WithErrorMode makes every request fail with the given status code.
func WithErrorMode(status int) Option {
	return func(s *Server) {
		s.errorMode = status
	}
}

// WithRequestHook installs a hook called on every request before routing.
func WithRequestHook(hook func(r *http.Request)) Option {
	return func(s *Server) {
		s.requestHook = hook
	}
}

// New starts a mock content host with the given options.
func New(opts ...Option) *Server {
	s := &Server{files: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// FetchCount returns the number of file requests served so far.
func (s *Server) FetchCount() int {
	return int(atomic.LoadInt32(&s.fetchCount))
}

// SetFile replaces a file body on a running server. Used to test refresh
// and cache-expiry behavior.
func (s *Server) SetFile(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = body
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if s.requestHook != nil {
		s.requestHook(r)
	}
	if s.errorMode != 0 {
		http.Error(w, http.StatusText(s.errorMode), s.errorMode)
		return
	}

	atomic.AddInt32(&s.fetchCount, 1)

	// The HTTP store maps "~/dir/file" to "/dir/file".
	path := "~" + strings.TrimSuffix(r.URL.Path, "/")
	s.mu.RLock()
	body, ok := s.files[path]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(body))
}
