// Package segment splits a raw sheet into independently headed blocks of
// student rows.
//
// A block starts at every row holding the gender header marker and runs to
// the next such row. Each block carries its own header, so blocks may offer
// different test items.
package segment

import (
	"fmt"
	"strings"

	"github.com/okian/fitscore/internal/domain/model"
)

// Marker identifies a header row.
const Marker = model.ColumnGender

// Segment is an accepted block.
type Segment struct {
	Index     int // 0-based among all marker rows
	HeaderRow int // 0-based grid row of the header
	Header    []string
	Columns   map[string]int
	Records   []model.StudentRecord
}

// Has reports whether the segment header names column.
func (s Segment) Has(column string) bool {
	_, ok := s.Columns[column]
	return ok
}

// Rejection records a block that was skipped.
type Rejection struct {
	Index     int
	HeaderRow int
	Err       error
}

// Result is the outcome of splitting one grid.
type Result struct {
	Segments   []Segment
	Rejections []Rejection
}

// HeaderRows returns the grid rows that contain the marker in any cell.
func HeaderRows(grid [][]string) []int {
	var rows []int
	for i, row := range grid {
		for _, cell := range row {
			if strings.Contains(cell, Marker) {
				rows = append(rows, i)
				break
			}
		}
	}
	return rows
}

// Extract splits grid into segments. Rejected blocks are reported in the
// result, never as an error.
func Extract(grid [][]string) Result {
	var res Result
	starts := HeaderRows(grid)
	for i, start := range starts {
		end := len(grid)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		seg, err := build(i, start, grid[start:end])
		if err != nil {
			res.Rejections = append(res.Rejections, Rejection{Index: i, HeaderRow: start, Err: err})
			continue
		}
		res.Segments = append(res.Segments, seg)
	}
	return res
}

func build(index, start int, rows [][]string) (Segment, error) {
	header := make([]string, len(rows[0]))
	columns := make(map[string]int, len(rows[0]))
	for i, cell := range rows[0] {
		name := strings.TrimSpace(cell)
		header[i] = name
		if _, dup := columns[name]; !dup && name != "" {
			columns[name] = i
		}
	}

	var missing []string
	for _, col := range model.RequiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Segment{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	seg := Segment{Index: index, HeaderRow: start, Header: header, Columns: columns}
	for offset, row := range rows[1:] {
		get := func(col string) string {
			if idx, ok := columns[col]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		gender, ok := model.ParseGender(get(model.ColumnGender))
		if !ok {
			continue
		}

		rec := model.StudentRecord{
			Row:       start + offset + 2,
			Segment:   index,
			Class:     get(model.ColumnClass),
			StudentID: get(model.ColumnStudentID),
			Gender:    gender,
			Name:      get(model.ColumnName),
			Events:    make(map[model.Event]string),
		}
		for _, e := range model.Events {
			if seg.Has(string(e)) {
				rec.Events[e] = get(string(e))
			}
		}
		seg.Records = append(seg.Records, rec)
	}

	if len(seg.Records) == 0 {
		return Segment{}, ErrNoGenderRows
	}
	return seg, nil
}
