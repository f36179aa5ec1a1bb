package rules

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/fitscore/internal/domain/model"
)

// LoadFile reads a YAML band file and overlays it on the built-in table.
// Every item listed replaces the built-in bands for that gender; items not
// listed keep their defaults. The expected layout is:
//
//	male:
//	  引体向上:
//	    - {lower: 16, upper: 1000, points: 100}
//	female:
//	  800米:
//	    - {lower: 0, upper: 200, points: 100}
func LoadFile(_ context.Context, path string) (*Table, error) {
	k := koanf.New("/")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRules, err)
	}

	var raw map[string]map[string][]Band
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRules, err)
	}

	merged := map[model.Gender]map[model.Event][]Band{
		model.Male:   copyBands(maleBands),
		model.Female: copyBands(femaleBands),
	}
	for key, events := range raw {
		g := model.Gender(key)
		if g != model.Male && g != model.Female {
			return nil, fmt.Errorf("%w: unknown gender %q", ErrLoadRules, key)
		}
		for name, bands := range events {
			merged[g][model.Event(name)] = bands
		}
	}

	t, err := New(merged)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRules, err)
	}
	return t, nil
}

func copyBands(src map[model.Event][]Band) map[model.Event][]Band {
	out := make(map[model.Event][]Band, len(src))
	for e, b := range src {
		out[e] = b
	}
	return out
}
