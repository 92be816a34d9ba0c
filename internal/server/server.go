// Package server exposes the HTTP trigger endpoint for the deal pipeline.
// It is deliberately thin: authenticate, parse the run mode, hand off to the
// sync service, render the summary.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"deal_syncer/internal/domain"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context, opts domain.SyncOptions) (*domain.SyncRun, error)
}

// SessionAuth validates a manually-triggered dashboard request. The session
// layer itself lives outside this service.
type SessionAuth func(r *http.Request) bool

type Server struct {
	syncer      Syncer
	cronSecret  string
	sessionAuth SessionAuth
	logger      *slog.Logger
	inFlight    atomic.Bool
}

func New(syncer Syncer, cronSecret string, logger *slog.Logger) *Server {
	return &Server{
		syncer:     syncer,
		cronSecret: cronSecret,
		logger:     logger,
	}
}

// WithSessionAuth installs the dashboard session validator.
func (s *Server) WithSessionAuth(auth SessionAuth) *Server {
	s.sessionAuth = auth
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sync", s.handleSync)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// syncResponse is the JSON summary returned for every trigger call,
// successful or not. The endpoint never answers with an opaque 500.
type syncResponse struct {
	Status          string  `json:"status"`
	DealsProcessed  int     `json:"dealsProcessed"`
	DealsAdded      int     `json:"dealsAdded"`
	DealsUpdated    int     `json:"dealsUpdated"`
	DealsDeleted    int     `json:"dealsDeleted"`
	ErrorCount      int     `json:"errorCount"`
	DurationSeconds float64 `json:"durationSeconds"`
	Error           string  `json:"error,omitempty"`
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	opts, err := parseOptions(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// One run at a time: the SyncRun row is mutated only by its owning run.
	if !s.inFlight.CompareAndSwap(false, true) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "sync already running"})
		return
	}
	defer s.inFlight.Store(false)

	run, syncErr := s.syncer.Sync(r.Context(), opts)
	if run == nil {
		s.logger.Error("sync trigger failed before run creation", "error", syncErr)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": syncErr.Error()})
		return
	}

	resp := syncResponse{
		Status:          string(run.Status),
		DealsProcessed:  run.DealsProcessed,
		DealsAdded:      run.DealsAdded,
		DealsUpdated:    run.DealsUpdated,
		DealsDeleted:    run.DealsDeleted,
		ErrorCount:      run.ErrorCount,
		DurationSeconds: run.Duration().Seconds(),
	}

	status := http.StatusOK
	if syncErr != nil {
		resp.Error = syncErr.Error()
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) authorized(r *http.Request) bool {
	if s.cronSecret != "" {
		auth := r.Header.Get("Authorization")
		if subtle.ConstantTimeCompare([]byte(auth), []byte("Bearer "+s.cronSecret)) == 1 {
			return true
		}
	}
	return s.sessionAuth != nil && s.sessionAuth(r)
}

func parseOptions(r *http.Request) (domain.SyncOptions, error) {
	var opts domain.SyncOptions
	var err error

	if opts.AllDeals, err = boolParam(r, "allDeals"); err != nil {
		return opts, err
	}
	if opts.ClearFirst, err = boolParam(r, "clearFirst"); err != nil {
		return opts, err
	}
	if opts.DryRun, err = boolParam(r, "dryRun"); err != nil {
		return opts, err
	}
	return opts, nil
}

func boolParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &paramError{name: name}
	}
	return v, nil
}

type paramError struct {
	name string
}

func (e *paramError) Error() string {
	return "invalid boolean parameter: " + e.name
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
