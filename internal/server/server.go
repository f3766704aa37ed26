// Package server exposes budget analysis over HTTP for an external
// presentation layer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/theirongolddev/bburn/internal/logging"
	"github.com/theirongolddev/bburn/internal/pipeline"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	Analysis       pipeline.Options
	// Sheets is optional; sheet requests fail with 503 without it.
	Sheets pipeline.SheetFetcher
}

// Status is served at /v1/status.
type Status struct {
	StartedAt    time.Time `json:"started_at"`
	Requests     int64     `json:"requests"`
	Analyses     int64     `json:"analyses"`
	Failures     int64     `json:"failures"`
	LastError    string    `json:"last_error,omitempty"`
	SheetsReady  bool      `json:"sheets_ready"`
	MaxUploadMiB int64     `json:"max_upload_mib"`
}

// Server runs one analysis per request; nothing is kept between requests
// except counters.
type Server struct {
	cfg Config
	log *log.Logger

	mu        sync.Mutex
	startedAt time.Time
	requests  int64
	analyses  int64
	failures  int64
	lastError string
}

// New returns a server with defaults filled in.
func New(cfg Config, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8731"
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{cfg: cfg, log: logger, startedAt: time.Now()}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/v1/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/sample", s.handleSample).Methods(http.MethodGet)
	r.HandleFunc("/v1/sample/forecast.csv", s.handleSampleForecastCSV).Methods(http.MethodGet)
	r.HandleFunc("/v1/analyze", s.handleAnalyzeUpload).Methods(http.MethodPost)
	r.HandleFunc("/v1/analyze/sheet", s.handleAnalyzeSheet).Methods(http.MethodPost)
	r.HandleFunc("/v1/forecast.csv", s.handleForecastCSV).Methods(http.MethodPost)

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("listening", "addr", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) snapshotStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		StartedAt:    s.startedAt,
		Requests:     s.requests,
		Analyses:     s.analyses,
		Failures:     s.failures,
		LastError:    s.lastError,
		SheetsReady:  s.cfg.Sheets != nil,
		MaxUploadMiB: s.cfg.MaxUploadBytes >> 20,
	}
}

func (s *Server) recordAnalysis(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.failures++
		s.lastError = err.Error()
		return
	}
	s.analyses++
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		s.mu.Lock()
		s.requests++
		s.mu.Unlock()

		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
