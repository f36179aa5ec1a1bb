package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/okian/fitscore/internal/domain/report"
	"github.com/okian/fitscore/pkg/logger"
	"github.com/okian/fitscore/pkg/metrics"
	"github.com/xuri/excelize/v2"
)

const sheetName = "评分结果"

// File is one written workbook. Class is empty for the combined report.
type File struct {
	Class string
	Name  string
}

// Output lists the workbooks written for one report.
type Output struct {
	Dir     string
	Total   File
	Classes []File
}

// Names returns the file names of the output, combined report first.
func (o Output) Names() []string {
	names := make([]string, 0, len(o.Classes)+1)
	names = append(names, o.Total.Name)
	for _, c := range o.Classes {
		names = append(names, c.Name)
	}
	return names
}

// Writer stores report tables as styled workbooks under one directory.
type Writer struct {
	dir string
	now func() time.Time
	log logger.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock overrides the time used for file name stamps.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithLogger sets the writer's logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWriter returns a Writer for dir.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, now: time.Now, log: logger.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// WriteReport writes the combined table and one workbook per class.
func (w *Writer) WriteReport(ctx context.Context, rep report.Report) (Output, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Output{}, fmt.Errorf("%w: %w", ErrWriteWorkbook, err)
	}

	ts := w.now()
	taken := make(map[string]bool)
	out := Output{Dir: w.dir}

	name := unique(w.dir, TotalName(ts), taken)
	if err := w.WriteTable(filepath.Join(w.dir, name), rep.Total); err != nil {
		return Output{}, err
	}
	out.Total = File{Name: name}

	for _, t := range rep.Classes {
		if err := ctx.Err(); err != nil {
			return Output{}, err
		}
		name := unique(w.dir, ClassName(t.Class, ts), taken)
		if err := w.WriteTable(filepath.Join(w.dir, name), t); err != nil {
			return Output{}, err
		}
		out.Classes = append(out.Classes, File{Class: t.Class, Name: name})
	}

	w.log.Info(ctx, "report written",
		logger.String("dir", w.dir),
		logger.String("total", out.Total.Name),
		logger.Int("classes", len(out.Classes)),
	)
	return out, nil
}

// WriteTable saves one table to path with a bold header row, centered cells,
// thin borders and columns sized to their longest value.
func (w *Writer) WriteTable(path string, t report.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := fill(f, t); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteWorkbook, filepath.Base(path), err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteWorkbook, filepath.Base(path), err)
	}
	metrics.RecordReportWritten()
	return nil
}

func fill(f *excelize.File, t report.Table) error {
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: center, Border: border})
	if err != nil {
		return err
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Alignment: center, Border: border})
	if err != nil {
		return err
	}

	widths := make([]int, len(t.Columns))
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
		widths[i] = utf8.RuneCountInString(c)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	values := t.Values()
	for i, row := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
		for j, v := range row {
			if n := utf8.RuneCountInString(fmt.Sprint(v)); j < len(widths) && n > widths[j] {
				widths[j] = n
			}
		}
	}

	if len(t.Columns) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return err
	}
	if len(values) > 0 {
		end, err := excelize.CoordinatesToCellName(len(t.Columns), len(values)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "A2", end, bodyStyle); err != nil {
			return err
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, float64(width+2)); err != nil {
			return err
		}
	}
	return nil
}
