package api

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"

	service "github.com/okian/fitscore/internal/app"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsDependencies defines the interface for report downloads.
type ReportsDependencies interface {
	ReportPath(ctx context.Context, runID, name string) (string, error)
}

// ReportsHandler serves report workbooks of stored runs.
type ReportsHandler struct {
	deps ReportsDependencies
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps ReportsDependencies) *ReportsHandler {
	return &ReportsHandler{deps: deps}
}

// HandleGetReport handles GET /reports/{run_id}/{file} requests.
func (h *ReportsHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameters after /reports/
	runID, name, ok := strings.Cut(strings.TrimPrefix(r.URL.Path, "/reports/"), "/")
	if !ok || runID == "" || name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	path, err := h.deps.ReportPath(r.Context(), runID, name)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	http.ServeFile(w, r, path)
}
