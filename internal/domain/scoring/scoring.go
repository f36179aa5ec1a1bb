// Package scoring turns raw test values into points and aggregates them per
// student.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/fitscore/internal/domain/model"
	"github.com/okian/fitscore/internal/domain/racetime"
	"github.com/okian/fitscore/internal/domain/resolve"
	"github.com/okian/fitscore/internal/domain/rules"
)

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithTable sets the band table. A nil table is ignored.
func WithTable(t *rules.Table) Option {
	return func(e *Evaluator) {
		if t != nil {
			e.table = t
		}
	}
}

// WithPolicies sets the per-gender slot preferences.
func WithPolicies(p resolve.Policies) Option {
	return func(e *Evaluator) {
		if p != nil {
			e.resolver = resolve.New(p)
		}
	}
}

// Input is a single item measurement to score.
type Input struct {
	Gender model.Gender
	Event  model.Event
	Raw    string
}

// Scorer scores single measurements and whole students.
type Scorer interface {
	Evaluate(in Input) model.Outcome
	Score(rec model.StudentRecord) model.ScoreResult
}

// Evaluator implements Scorer against a rules.Table. It holds no mutable
// state, so results depend only on the input.
type Evaluator struct {
	table    *rules.Table
	resolver *resolve.Resolver
}

// NewEvaluator creates an evaluator using the built-in table and policies
// unless overridden by options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		table:    rules.Default(),
		resolver: resolve.New(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate scores one measurement. Blank input is missing; timed items go
// through racetime, everything else must be a plain number.
func (e *Evaluator) Evaluate(in Input) model.Outcome {
	raw := strings.TrimSpace(in.Raw)
	if raw == "" {
		return model.Unscored(model.ReasonMissing)
	}

	v, reason, ok := convert(in.Event, raw)
	if !ok {
		return model.Unscored(reason)
	}

	if _, known := e.table.Bands(in.Gender, in.Event); !known {
		return model.Unscored(model.ReasonNoRule)
	}
	band, ok := e.table.Match(in.Gender, in.Event, v)
	if !ok {
		return model.Unscored(model.ReasonOutOfRange)
	}
	return model.Scored(band.Points)
}

func convert(event model.Event, raw string) (float64, model.Reason, bool) {
	if event.Timed() {
		secs, err := racetime.Seconds(raw)
		if err != nil {
			return 0, model.ReasonBadTime, false
		}
		return float64(secs), "", true
	}
	if !racetime.Decimal(raw) {
		return 0, model.ReasonNonNumeric, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, model.ReasonNonNumeric, false
	}
	return v, "", true
}

// Score resolves and evaluates every slot of rec, then aggregates.
func (e *Evaluator) Score(rec model.StudentRecord) model.ScoreResult {
	resolved := e.resolver.Resolve(rec)
	slots := make([]model.SlotScore, 0, len(resolved))
	for _, r := range resolved {
		sc := model.SlotScore{Slot: r.Slot, Event: r.Event, Raw: r.Raw, Outcome: model.NotApplicable()}
		if r.Applicable {
			sc.Outcome = e.Evaluate(Input{Gender: rec.Gender, Event: r.Event, Raw: r.Raw})
		}
		slots = append(slots, sc)
	}
	return Aggregate(slots)
}
