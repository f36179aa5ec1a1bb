package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/okian/fitscore/internal/adapters/xlsx"
	service "github.com/okian/fitscore/internal/app"
	"github.com/okian/fitscore/internal/domain/report"
	"github.com/okian/fitscore/pkg/logger"
)

// ScoreDependencies defines the interface for scoring uploads.
type ScoreDependencies interface {
	ScoreWorkbook(ctx context.Context, r io.Reader) (service.Result, error)
}

// ScoreHandler handles workbook uploads.
type ScoreHandler struct {
	deps     ScoreDependencies
	maxBytes int64
	logger   logger.Logger
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies, maxBytes int64, l logger.Logger) *ScoreHandler {
	return &ScoreHandler{deps: deps, maxBytes: maxBytes, logger: l}
}

type scoreResponse struct {
	RunID            string   `json:"run_id"`
	TotalFile        string   `json:"total_file"`
	ClassFiles       []string `json:"class_files"`
	Downloads        []string `json:"downloads"`
	SegmentsAccepted int      `json:"segments_accepted"`
	SegmentsRejected int      `json:"segments_rejected"`
	Students         int      `json:"students"`
	Columns          []string `json:"columns"`
	Preview          [][]any  `json:"preview"`
}

// HandlePostScore handles POST /score with a multipart "file" field.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", NewKind(op, ErrTooLarge))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(hdr.Filename), ".xlsx") {
		writeError(w, http.StatusBadRequest, "unsupported_file", NewKind(op, ErrUnsupportedFile))
		return
	}

	h.logger.Debug(r.Context(), "workbook uploaded",
		logger.String("file", hdr.Filename),
		logger.String("size", humanize.Bytes(uint64(hdr.Size))),
	)

	res, err := h.deps.ScoreWorkbook(r.Context(), file)
	switch {
	case errors.Is(err, service.ErrNoValidSegments):
		writeError(w, http.StatusUnprocessableEntity, "no_valid_segments", err)
		return
	case errors.Is(err, xlsx.ErrOpenWorkbook), errors.Is(err, xlsx.ErrEmptyWorkbook):
		writeError(w, http.StatusBadRequest, "bad_workbook", WrapKind(op, ErrBadRequest, err))
		return
	case err != nil:
		h.logger.Error(r.Context(), "upload scoring failed",
			logger.String("file", hdr.Filename),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	resp := scoreResponse{
		RunID:            res.Run.ID,
		TotalFile:        res.Run.TotalFile,
		ClassFiles:       res.Run.ClassFiles,
		SegmentsAccepted: res.Stats.SegmentsAccepted,
		SegmentsRejected: res.Stats.SegmentsRejected,
		Students:         res.Stats.Students,
		Columns:          report.Columns(),
		Preview:          res.Preview,
	}
	for _, name := range append([]string{res.Run.TotalFile}, res.Run.ClassFiles...) {
		resp.Downloads = append(resp.Downloads, reportURL(res.Run.ID, name))
	}
	writeJSON(w, http.StatusOK, resp)
}

func reportURL(runID, name string) string {
	return "/reports/" + url.PathEscape(runID) + "/" + url.PathEscape(name)
}
