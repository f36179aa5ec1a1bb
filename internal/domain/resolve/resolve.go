// Package resolve decides which raw item backs each reporting slot for a
// student, applying the per-gender preference between alternative items.
package resolve

import "github.com/okian/fitscore/internal/domain/model"

// Choice names the preferred item of a slot and its fallback. Plain slots
// have no fallback.
type Choice struct {
	Primary   model.Event
	Alternate model.Event
}

// Events returns the items that can back the slot, primary first.
func (c Choice) Events() []model.Event {
	if c.Alternate == "" {
		return []model.Event{c.Primary}
	}
	return []model.Event{c.Primary, c.Alternate}
}

// Policy maps every slot to its choice for one gender.
type Policy map[model.Slot]Choice

// Policies holds one policy per gender.
type Policies map[model.Gender]Policy

func plain() Policy {
	return Policy{
		model.SlotRopeSkipping: {Primary: model.RopeSkipping},
		model.SlotLongJump:     {Primary: model.LongJump},
		model.SlotBallThrow:    {Primary: model.BallThrow},
		model.SlotSprint100:    {Primary: model.Sprint100},
	}
}

// DefaultPolicies prefers pull-ups and 1500 m for male students, sit-ups
// and 800 m for female students.
func DefaultPolicies() Policies {
	male := plain()
	male[model.SlotStrength] = Choice{Primary: model.PullUps, Alternate: model.SitUps}
	male[model.SlotDistance] = Choice{Primary: model.Run1500, Alternate: model.Run800}

	female := plain()
	female[model.SlotStrength] = Choice{Primary: model.SitUps, Alternate: model.PullUps}
	female[model.SlotDistance] = Choice{Primary: model.Run800, Alternate: model.Run1500}

	return Policies{model.Male: male, model.Female: female}
}

// Resolved is the effective input of one slot for one student.
type Resolved struct {
	Slot       model.Slot
	Event      model.Event
	Raw        string
	Applicable bool // the segment has a column for at least one backing item
	Present    bool // Raw is non-blank
}

// Resolver applies Policies to student records.
type Resolver struct {
	policies Policies
}

// New creates a Resolver. A nil policies value selects DefaultPolicies.
func New(policies Policies) *Resolver {
	if policies == nil {
		policies = DefaultPolicies()
	}
	return &Resolver{policies: policies}
}

// Resolve returns one entry per slot in model.Slots order.
func (r *Resolver) Resolve(rec model.StudentRecord) []Resolved {
	policy := r.policies[rec.Gender]
	out := make([]Resolved, 0, len(model.Slots))
	for _, slot := range model.Slots {
		out = append(out, resolveSlot(slot, policy[slot], rec))
	}
	return out
}

func resolveSlot(slot model.Slot, choice Choice, rec model.StudentRecord) Resolved {
	res := Resolved{Slot: slot, Event: choice.Primary}
	if choice.Primary == "" {
		return res
	}
	for _, e := range choice.Events() {
		raw, ok := rec.Value(e)
		if !ok {
			continue
		}
		res.Applicable = true
		if raw != "" {
			res.Event = e
			res.Raw = raw
			res.Present = true
			return res
		}
	}
	return res
}
