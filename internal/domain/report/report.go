// Package report lays scored students out in the standard column order and
// splits them into per-class tables.
package report

import (
	"sort"

	"github.com/okian/fitscore/internal/domain/model"
)

// Columns returns the standard report header.
func Columns() []string {
	cols := []string{model.ColumnSeq, model.ColumnClass, model.ColumnStudentID, model.ColumnGender, model.ColumnName}
	for _, e := range model.Events {
		cols = append(cols, string(e))
	}
	for _, s := range model.MergedSlots {
		cols = append(cols, string(s))
	}
	for _, s := range model.Slots {
		cols = append(cols, s.ScoreColumn())
	}
	return append(cols, model.ColumnTotal, model.ColumnAverage, model.ColumnRemark)
}

// Row is one numbered report line.
type Row struct {
	Seq int
	model.ScoredRecord
}

// Table is an ordered set of rows sharing the standard header.
type Table struct {
	Class   string // "" for the combined table
	Columns []string
	Rows    []Row
}

// NewTable numbers records from 1 in the given order.
func NewTable(class string, records []model.ScoredRecord) Table {
	t := Table{Class: class, Columns: Columns(), Rows: make([]Row, len(records))}
	for i, rec := range records {
		t.Rows[i] = Row{Seq: i + 1, ScoredRecord: rec}
	}
	return t
}

// Values renders the table body, one slice per row in column order.
func (t Table) Values() [][]any {
	out := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		line := make([]any, len(t.Columns))
		for j, col := range t.Columns {
			line[j] = r.Cell(col)
		}
		out[i] = line
	}
	return out
}

// Cell returns the value of column for the row. Unknown columns are "".
func (r Row) Cell(column string) any {
	switch column {
	case model.ColumnSeq:
		return r.Seq
	case model.ColumnClass:
		return r.Student.Class
	case model.ColumnStudentID:
		return r.Student.StudentID
	case model.ColumnGender:
		return r.Student.Gender.Token()
	case model.ColumnName:
		return r.Student.Name
	case model.ColumnTotal:
		return r.Result.Total.Value()
	case model.ColumnAverage:
		return r.Result.Average.Value()
	case model.ColumnRemark:
		return r.Result.Remark
	}
	for _, s := range model.Slots {
		if column == s.ScoreColumn() {
			sc, _ := r.Result.Slot(s)
			return sc.Outcome.Value()
		}
	}
	slot := model.Slot(column)
	if slot.Merged() {
		sc, _ := r.Result.Slot(slot)
		return sc.Raw
	}
	v, _ := r.Student.Value(model.Event(column))
	return v
}

// Report is the combined table plus one table per class.
type Report struct {
	Total   Table
	Classes []Table
}

// Build numbers records in input order and groups them by class. Class
// tables are sorted by class name and renumber from 1. Rows without a class
// appear only in the combined table.
func Build(records []model.ScoredRecord) Report {
	groups := make(map[string][]model.ScoredRecord)
	for _, rec := range records {
		if rec.Student.Class == "" {
			continue
		}
		groups[rec.Student.Class] = append(groups[rec.Student.Class], rec)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	rep := Report{Total: NewTable("", records), Classes: make([]Table, 0, len(names))}
	for _, name := range names {
		rep.Classes = append(rep.Classes, NewTable(name, groups[name]))
	}
	return rep
}

// ClassNames lists the classes that received a table.
func (r Report) ClassNames() []string {
	out := make([]string, len(r.Classes))
	for i, t := range r.Classes {
		out[i] = t.Class
	}
	return out
}
