// Package rules holds the graduated scoring tables: for every gender and test
// item an ordered list of bands mapping a measured value to points.
package rules

import (
	"fmt"
	"sort"

	"github.com/okian/fitscore/internal/domain/model"
)

// Band awards Points to any value in the closed interval [Lower, Upper].
type Band struct {
	Lower  float64 `koanf:"lower"`
	Upper  float64 `koanf:"upper"`
	Points float64 `koanf:"points"`
}

// Contains reports whether v lies within the band, both ends inclusive.
func (b Band) Contains(v float64) bool {
	return b.Lower <= v && v <= b.Upper
}

// Table maps gender and item to bands in declaration order. A Table is
// read-only once built.
type Table struct {
	bands map[model.Gender]map[model.Event][]Band
}

// New builds a table from a nested map, copying every band list.
func New(src map[model.Gender]map[model.Event][]Band) (*Table, error) {
	t := &Table{bands: make(map[model.Gender]map[model.Event][]Band, len(src))}
	for g, events := range src {
		byEvent := make(map[model.Event][]Band, len(events))
		for e, bands := range events {
			for i, b := range bands {
				if b.Lower > b.Upper {
					return nil, fmt.Errorf("%w: %s %s band %d lower %v > upper %v", ErrInvalidBand, g, e, i, b.Lower, b.Upper)
				}
			}
			byEvent[e] = append([]Band(nil), bands...)
		}
		t.bands[g] = byEvent
	}
	return t, nil
}

// Bands returns the bands configured for gender g and item e.
func (t *Table) Bands(g model.Gender, e model.Event) ([]Band, bool) {
	bands, ok := t.bands[g][e]
	return bands, ok
}

// Match returns the first band, in declaration order, containing v. The
// second result is false when no band contains v.
func (t *Table) Match(g model.Gender, e model.Event, v float64) (Band, bool) {
	for _, b := range t.bands[g][e] {
		if b.Contains(v) {
			return b, true
		}
	}
	return Band{}, false
}

// Events returns the items configured for g, sorted by name.
func (t *Table) Events(g model.Gender) []model.Event {
	out := make([]model.Event, 0, len(t.bands[g]))
	for e := range t.bands[g] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Overlap describes two bands of one item that share more than a boundary
// point. The earlier band always wins inside the shared range.
type Overlap struct {
	Gender model.Gender
	Event  model.Event
	First  int
	Second int
	Lower  float64
	Upper  float64
}

func (o Overlap) String() string {
	return fmt.Sprintf("%s %s: band %d shadows band %d on [%v, %v]", o.Gender, o.Event, o.First, o.Second, o.Lower, o.Upper)
}

// Validate reports overlapping bands. Adjacent bands sharing only a single
// endpoint are how continuous ranges are tiled and are not reported.
func (t *Table) Validate() []Overlap {
	var out []Overlap
	for _, g := range model.Genders {
		for _, e := range t.Events(g) {
			bands := t.bands[g][e]
			for i := 0; i < len(bands); i++ {
				for j := i + 1; j < len(bands); j++ {
					lo := max(bands[i].Lower, bands[j].Lower)
					hi := min(bands[i].Upper, bands[j].Upper)
					if lo < hi || (lo == hi && bands[j].Lower == bands[j].Upper) {
						out = append(out, Overlap{Gender: g, Event: e, First: i, Second: j, Lower: lo, Upper: hi})
					}
				}
			}
		}
	}
	return out
}
