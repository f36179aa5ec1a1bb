// Package service runs scoring batches: it turns a raw sheet into a scored
// report, writes the report workbooks and remembers recent runs.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/fitscore/internal/adapters/repository"
	"github.com/okian/fitscore/internal/adapters/xlsx"
	"github.com/okian/fitscore/internal/domain/model"
	"github.com/okian/fitscore/internal/domain/report"
	"github.com/okian/fitscore/internal/domain/resolve"
	"github.com/okian/fitscore/internal/domain/rules"
	"github.com/okian/fitscore/internal/domain/scoring"
	"github.com/okian/fitscore/internal/domain/segment"
	"github.com/okian/fitscore/pkg/logger"
	"github.com/okian/fitscore/pkg/metrics"
)

// Stats summarizes one scoring pass.
type Stats struct {
	SegmentsAccepted int
	SegmentsRejected int
	Students         int
	Unscored         int
}

// Result is a finished run: the stored run entry, the report it produced and
// the first rows of the combined table.
type Result struct {
	Run     repository.Run
	Report  report.Report
	Stats   Stats
	Preview [][]any
}

// Service implements batch scoring for the CLI and the HTTP API.
type Service struct {
	// mu serializes runs so cleanup and writes never interleave.
	mu sync.Mutex

	table    *rules.Table
	policies resolve.Policies
	scorer   scoring.Scorer
	writer   *xlsx.Writer
	store    repository.Store

	outputDir   string
	cleanup     bool
	previewRows int
	now         func() time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTable sets the band table used for scoring.
func WithTable(t *rules.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.table = t
		}
	}
}

// WithPolicies overrides the per-gender slot preferences.
func WithPolicies(p resolve.Policies) Option {
	return func(s *Service) {
		s.policies = p
	}
}

// WithOutputDir sets where report workbooks are written.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.outputDir = dir
		}
	}
}

// WithCleanup controls whether earlier report workbooks are removed before
// a new report is written.
func WithCleanup(enabled bool) Option {
	return func(s *Service) {
		s.cleanup = enabled
	}
}

// WithPreviewRows sets how many combined rows a Result previews.
func WithPreviewRows(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.previewRows = n
		}
	}
}

// WithStore sets the run index.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClock overrides the clock used for run timestamps and file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		outputDir:   "reports",
		cleanup:     true,
		previewRows: 30,
		now:         time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.table == nil {
		s.table = rules.Default()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	s.scorer = scoring.NewEvaluator(scoring.WithTable(s.table), scoring.WithPolicies(s.policies))
	s.writer = xlsx.NewWriter(s.outputDir, xlsx.WithClock(s.now), xlsx.WithLogger(s.logger.Named("xlsx")))

	return s
}

// Start prepares the output directory and reports overlapping bands in the
// rule table. Overlaps are warnings: the earlier band keeps winning.
func (s *Service) Start(ctx context.Context) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	overlaps := s.table.Validate()
	for _, o := range overlaps {
		s.logger.Warn(ctx, "overlapping score bands",
			logger.String("gender", string(o.Gender)),
			logger.String("event", string(o.Event)),
			logger.Int("first", o.First),
			logger.Int("second", o.Second),
			logger.String("detail", o.String()),
		)
	}

	s.logger.Info(ctx, "scoring service ready",
		logger.String("outputDir", s.outputDir),
		logger.Bool("cleanup", s.cleanup),
		logger.Int("overlaps", len(overlaps)),
	)
	return nil
}

// Run scores a raw grid. Rejected segments are logged and skipped; the run
// fails with ErrNoValidSegments only when none is accepted.
func (s *Service) Run(ctx context.Context, grid [][]string) (report.Report, Stats, error) {
	res := segment.Extract(grid)
	stats := Stats{SegmentsAccepted: len(res.Segments), SegmentsRejected: len(res.Rejections)}

	for _, rej := range res.Rejections {
		s.logger.Warn(ctx, "segment rejected",
			logger.Int("segment", rej.Index),
			logger.Int("headerRow", rej.HeaderRow+1),
			logger.Error(rej.Err),
		)
	}
	metrics.RecordSegments(stats.SegmentsAccepted, stats.SegmentsRejected)

	if len(res.Segments) == 0 {
		return report.Report{}, stats, fmt.Errorf("%w: %d segment(s) rejected", ErrNoValidSegments, stats.SegmentsRejected)
	}

	var records []model.ScoredRecord
	for _, seg := range res.Segments {
		if err := ctx.Err(); err != nil {
			return report.Report{}, stats, err
		}
		s.logger.Debug(ctx, "segment accepted",
			logger.Int("segment", seg.Index),
			logger.Int("headerRow", seg.HeaderRow+1),
			logger.Int("students", len(seg.Records)),
		)
		for _, rec := range seg.Records {
			result := s.scorer.Score(rec)
			for _, slot := range result.Slots {
				if slot.Outcome.IsUnscored() {
					stats.Unscored++
					metrics.RecordUnscored(string(slot.Outcome.Reason()))
				}
			}
			records = append(records, model.ScoredRecord{Student: rec, Result: result})
		}
	}

	stats.Students = len(records)
	metrics.RecordStudents(stats.Students)

	return report.Build(records), stats, nil
}

// ScoreWorkbook reads the first sheet of an uploaded workbook and processes it.
func (s *Service) ScoreWorkbook(ctx context.Context, r io.Reader) (Result, error) {
	grid, err := xlsx.ReadGrid(r)
	if err != nil {
		metrics.RecordRun(metrics.OutcomeError, 0)
		return Result{}, err
	}
	return s.Process(ctx, grid)
}

// Process scores grid, writes the report workbooks and records the run.
// Earlier reports are only cleaned up once the new run has succeeded.
func (s *Service) Process(ctx context.Context, grid [][]string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	rep, stats, err := s.Run(ctx, grid)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, ErrNoValidSegments) {
			outcome = metrics.OutcomeNoData
		}
		metrics.RecordRun(outcome, time.Since(start))
		s.logger.Error(ctx, "scoring run failed", logger.Error(err))
		return Result{}, err
	}

	if s.cleanup {
		removed, err := xlsx.Cleanup(s.outputDir)
		if err != nil {
			s.logger.Warn(ctx, "failed to remove previous reports", logger.Error(err))
		}
		s.store.Clear(ctx)
		if removed > 0 {
			s.logger.Info(ctx, "removed previous reports", logger.Int("files", removed))
		}
	}

	out, err := s.writer.WriteReport(ctx, rep)
	if err != nil {
		metrics.RecordRun(metrics.OutcomeError, time.Since(start))
		s.logger.Error(ctx, "failed to write report", logger.Error(err))
		return Result{}, err
	}

	run := repository.Run{
		ID:               uuid.NewString(),
		CreatedAt:        s.now(),
		Dir:              out.Dir,
		TotalFile:        out.Total.Name,
		SegmentsAccepted: stats.SegmentsAccepted,
		SegmentsRejected: stats.SegmentsRejected,
		Students:         stats.Students,
	}
	for _, f := range out.Classes {
		run.ClassFiles = append(run.ClassFiles, f.Name)
	}
	if err := s.store.Put(ctx, run); err != nil {
		return Result{}, err
	}

	elapsed := time.Since(start)
	metrics.RecordRun(metrics.OutcomeSuccess, elapsed)
	s.logger.Info(ctx, "scoring run finished",
		logger.String("run", run.ID),
		logger.Int("students", stats.Students),
		logger.Int("segments", stats.SegmentsAccepted),
		logger.Int("rejected", stats.SegmentsRejected),
		logger.Int("unscored", stats.Unscored),
		logger.Strings("classes", rep.ClassNames()),
		logger.Duration("took", elapsed),
	)

	return Result{Run: run, Report: rep, Stats: stats, Preview: s.preview(rep.Total)}, nil
}

func (s *Service) preview(t report.Table) [][]any {
	values := t.Values()
	return values[:min(s.previewRows, len(values))]
}

// Runs returns up to n recent runs, newest first.
func (s *Service) Runs(ctx context.Context, n int) ([]repository.Run, error) {
	return s.store.Recent(ctx, n)
}

// StoredRuns returns how many runs can still be downloaded.
func (s *Service) StoredRuns(ctx context.Context) int {
	return s.store.Count(ctx)
}

// ReportPath resolves a report file of a stored run to its path on disk.
func (s *Service) ReportPath(ctx context.Context, runID, name string) (string, error) {
	run, err := s.store.Get(ctx, runID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if !run.HasFile(name) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return filepath.Join(run.Dir, name), nil
}
