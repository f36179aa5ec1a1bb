// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/fitscore/internal/adapters/repository"
	service "github.com/okian/fitscore/internal/app"
	"github.com/okian/fitscore/pkg/logger"
)

const (
	defaultMaxUploadBytes = 20 << 20
	defaultRunsLimit      = 20
	maxRunsLimit          = 100
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ScoreWorkbook scores an uploaded workbook and writes its reports.
	ScoreWorkbook(ctx context.Context, r io.Reader) (service.Result, error)

	// Runs lists recent runs, newest first.
	Runs(ctx context.Context, n int) ([]repository.Run, error)

	// ReportPath resolves a report file of a run to a path on disk.
	ReportPath(ctx context.Context, runID, name string) (string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	scoreHandler   *ScoreHandler
	reportsHandler *ReportsHandler
	runsHandler    *RunsHandler
}

// Option configures the Server.
type Option func(*options)

type options struct {
	maxUploadBytes int64
	logger         logger.Logger
}

// WithMaxUploadBytes caps the size of an uploaded workbook.
func WithMaxUploadBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxUploadBytes = n
		}
	}
}

// WithLogger sets the handlers' logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	o := options{maxUploadBytes: defaultMaxUploadBytes, logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		scoreHandler:   NewScoreHandler(deps, o.maxUploadBytes, o.logger),
		reportsHandler: NewReportsHandler(deps),
		runsHandler:    NewRunsHandler(deps, maxRunsLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandlePostScore, "score"))
	mux.HandleFunc("/reports/", MetricsMiddleware(s.reportsHandler.HandleGetReport, "reports"))
	mux.HandleFunc("/runs", MetricsMiddleware(s.runsHandler.HandleGetRuns, "runs"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
