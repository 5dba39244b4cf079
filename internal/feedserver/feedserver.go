// Package feedserver serves any feedsrc.Source as the paged JSON endpoint
// that feedsrc.HTTP reads, so the http source can be tried locally.
package feedserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"infiniscroll/internal/feedsrc"
)

const (
	DefaultLimit = 25
	MaxLimit     = 500
)

type Server struct {
	srv  *http.Server
	src  feedsrc.Source
	logf func(format string, args ...any)
}

// New builds a server for src on port. logf may be nil.
func New(port int, src feedsrc.Source, logf func(string, ...any)) *Server {
	s := &Server{src: src, logf: logf}
	s.srv = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: s.Handler(),
	}
	return s
}

func (s *Server) log(format string, args ...any) {
	if s.logf != nil {
		s.logf(format, args...)
	}
}

// Handler exposes /feed and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", s.handleFeed)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil || offset < 0 {
		http.Error(w, "bad offset", http.StatusBadRequest)
		return
	}
	limit, err := intParam(r, "limit", DefaultLimit)
	if err != nil || limit <= 0 {
		http.Error(w, "bad limit", http.StatusBadRequest)
		return
	}
	limit = min(limit, MaxLimit)

	page, err := s.src.Fetch(r.Context(), offset, limit)
	if err != nil {
		s.log("fetch offset=%d limit=%d: %v", offset, limit, err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if page.Items == nil {
		page.Items = []feedsrc.Item{}
	}
	s.log("GET /feed offset=%d limit=%d -> %d items done=%t", offset, limit, len(page.Items), page.Done)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(page)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func (s *Server) Addr() string { return s.srv.Addr }

// Serve blocks until Close. A closed server is not an error.
func (s *Server) Serve() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", s.srv.Addr, err)
	}
	return nil
}

func (s *Server) Close(ctx context.Context) error { return s.srv.Shutdown(ctx) }
