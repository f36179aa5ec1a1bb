package model

// StudentRecord is one retained row of a segment.
type StudentRecord struct {
	Row       int // 1-based row number in the source sheet
	Segment   int // 0-based index of the segment the row belongs to
	Class     string
	StudentID string
	Gender    Gender
	Name      string
	// Events holds the trimmed cell for every event column the segment
	// has. A missing key means the column is absent, "" means blank.
	Events map[Event]string
}

// Value returns the raw cell for e and whether the segment has that column.
func (r StudentRecord) Value(e Event) (string, bool) {
	v, ok := r.Events[e]
	return v, ok
}

// SlotScore is the evaluation of one reporting slot for one student.
type SlotScore struct {
	Slot Slot
	// Event is the item whose value was used. For a merged slot with no
	// value at all it is the gender's primary item.
	Event   Event
	Raw     string
	Outcome Outcome
}

// ScoreResult aggregates a student's slot outcomes.
type ScoreResult struct {
	Slots   []SlotScore
	Missing []string
	Total   Outcome
	Average Outcome
	Remark  string
}

// Slot returns the score recorded for s.
func (r ScoreResult) Slot(s Slot) (SlotScore, bool) {
	for _, sc := range r.Slots {
		if sc.Slot == s {
			return sc, true
		}
	}
	return SlotScore{}, false
}

// ScoredRecord pairs a student with their result.
type ScoredRecord struct {
	Student StudentRecord
	Result  ScoreResult
}
