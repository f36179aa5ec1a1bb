package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/fitscore/internal/adapters/repository"
)

// RunsDependencies defines the interface for listing runs.
type RunsDependencies interface {
	Runs(ctx context.Context, n int) ([]repository.Run, error)
}

// RunsHandler handles run listing requests.
type RunsHandler struct {
	deps     RunsDependencies
	maxLimit int
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(deps RunsDependencies, maxLimit int) *RunsHandler {
	return &RunsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRuns handles GET /runs?limit=N requests.
func (h *RunsHandler) HandleGetRuns(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_runs"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := defaultRunsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	runs, err := h.deps.Runs(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if runs == nil {
		runs = []repository.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}
