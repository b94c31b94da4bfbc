// Package fakebackend serves canned visit data over the same HTTP API as
// the real backend, for offline use and tests.
package fakebackend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Options configures a Server.
type Options struct {
	// HSP, when set, must match both the hsp query parameter and the
	// X-HSP-Header header on quiz requests.
	HSP string
}

// Server is the fixture backend.
type Server struct {
	opts Options

	mu       sync.Mutex
	failures map[string]int
	hits     map[string]int
}

// New creates a Server.
func New(opts Options) *Server {
	return &Server{
		opts:     opts,
		failures: make(map[string]int),
		hits:     make(map[string]int),
	}
}

// FailWith makes every later request to path answer with status.
// A zero status clears the failure.
func (s *Server) FailWith(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// Handler returns the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.track)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.HandleFunc("/transcript", s.transcript).Methods("GET")
	r.HandleFunc("/quiz", s.quiz).Methods("POST")
	r.HandleFunc("/hint-query", s.hintQuery).Methods("POST")
	r.HandleFunc("/text-query", s.textQuery).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-HSP-Header"},
	})
	return c.Handler(r)
}

// track counts requests and applies injected failures.
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		status := s.failures[r.URL.Path]
		s.mu.Unlock()

		slog.Debug("fakebackend request", "method", r.Method, "path", r.URL.Path)
		if status != 0 {
			writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) transcript(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("video") == "" || q.Get("index") == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing video-id or index-id"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"transcript": Transcript})
}

func (s *Server) quiz(w http.ResponseWriter, r *http.Request) {
	if s.opts.HSP != "" {
		hsp := r.URL.Query().Get("hsp")
		if hsp == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing 'hsp' parameter"})
			return
		}
		if r.Header.Get("X-HSP-Header") != hsp || hsp != s.opts.HSP {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "HSP security check failed"})
			return
		}
	}

	var req struct {
		Transcription string `json:"transcription"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Transcription) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing JSON body with 'transcription'"})
		return
	}

	// The quiz is delivered as a JSON string holding a list of quiz objects.
	inner, err := json.Marshal([]map[string]any{{"quiz": Questions}})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, string(inner))
}

func (s *Server) hintQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing 'query'"})
		return
	}
	c := MatchClip(req.Query)
	writeJSON(w, http.StatusOK, map[string]any{
		"start": c.Start,
		"end":   c.End,
		"id":    VideoID,
	})
}

func (s *Server) textQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query   string `json:"query"`
		VideoID string `json:"video_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing 'query'"})
		return
	}
	writeJSON(w, http.StatusOK, MatchClip(req.Query).Answer)
}

// MatchClip returns the first clip with a keyword contained in query, or
// the first clip when none match.
func MatchClip(query string) Clip {
	q := strings.ToLower(query)
	for _, c := range Clips {
		for _, k := range c.Keywords {
			if strings.Contains(q, k) {
				return c
			}
		}
	}
	return Clips[0]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("fakebackend: encode response", "err", err)
	}
}

// ListenAndServe serves the fixture backend on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
