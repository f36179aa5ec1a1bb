// Package xlsx reads raw result sheets and writes scored report workbooks.
package xlsx

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// ReadGrid returns the cells of the first sheet of the workbook in r.
// Rows keep their sheet position; trailing empty cells are dropped.
func ReadGrid(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	return firstSheet(f)
}

// ReadFile is ReadGrid for a workbook on disk.
func ReadFile(path string) ([][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenWorkbook, err)
	}
	defer func() { _ = fh.Close() }()

	return ReadGrid(fh)
}

func firstSheet(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %w", ErrOpenWorkbook, sheets[0], err)
	}
	return rows, nil
}
