package model

// NoneMarker is written in place of points that could not be awarded.
const NoneMarker = "无"

// Reason explains why no points were awarded.
type Reason string

// Unscored reasons.
const (
	ReasonMissing    Reason = "missing"
	ReasonNonNumeric Reason = "non-numeric"
	ReasonBadTime    Reason = "invalid time"
	ReasonOutOfRange Reason = "out of range"
	ReasonNoRule     Reason = "no rule"
	ReasonNoScores   Reason = "no scores"
)

// Qualifier returns the suffix appended to an item label in the remark.
// Missing values carry no qualifier.
func (r Reason) Qualifier() string {
	switch r {
	case ReasonNonNumeric:
		return "(非数值)"
	case ReasonBadTime:
		return "(时间格式错误)"
	case ReasonOutOfRange:
		return "(超范围)"
	case ReasonNoRule:
		return "(无评分标准)"
	default:
		return ""
	}
}

type outcomeKind uint8

const (
	kindNotApplicable outcomeKind = iota
	kindScored
	kindUnscored
)

// Outcome is either Scored with points, Unscored with a reason, or
// NotApplicable when the segment never offered the item.
type Outcome struct {
	kind   outcomeKind
	points float64
	reason Reason
}

// Scored returns an outcome awarding points.
func Scored(points float64) Outcome {
	return Outcome{kind: kindScored, points: points}
}

// Unscored returns an outcome recording why nothing was awarded.
func Unscored(reason Reason) Outcome {
	return Outcome{kind: kindUnscored, reason: reason}
}

// NotApplicable is the outcome of an item the segment has no column for.
func NotApplicable() Outcome {
	return Outcome{}
}

// Points returns the awarded points and whether the outcome is Scored.
func (o Outcome) Points() (float64, bool) {
	return o.points, o.kind == kindScored
}

// Reason returns the unscored reason, or "" for other outcomes.
func (o Outcome) Reason() Reason {
	return o.reason
}

// IsScored reports whether points were awarded.
func (o Outcome) IsScored() bool { return o.kind == kindScored }

// IsUnscored reports whether the item was evaluated without result.
func (o Outcome) IsUnscored() bool { return o.kind == kindUnscored }

// IsApplicable reports whether the item was evaluated at all.
func (o Outcome) IsApplicable() bool { return o.kind != kindNotApplicable }

// Value renders the outcome as a report cell: points as float64, the
// none marker for Unscored, "" for NotApplicable.
func (o Outcome) Value() any {
	switch o.kind {
	case kindScored:
		return o.points
	case kindUnscored:
		return NoneMarker
	default:
		return ""
	}
}
