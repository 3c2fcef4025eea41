// Package resources loads the read-only tables the tagger borrows: the
// exact lexicon, the ordered pattern table, the idiom dictionary and the
// transition scores. A Seed is the serialisable form; a Bundle is the
// compiled, ready-to-inject form.
package resources

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kittclouds/morfo/data"
	"github.com/kittclouds/morfo/pkg/lexicon"
	"github.com/kittclouds/morfo/pkg/model"
)

// Seed is the YAML/JSON representation of all tagging resources.
type Seed struct {
	// FoldCase makes lexicon lookups case-insensitive.
	FoldCase    bool                  `yaml:"fold_case,omitempty" json:"foldCase,omitempty"`
	Lexicon     []lexicon.Entry       `yaml:"lexicon" json:"lexicon"`
	Patterns    []lexicon.PatternSpec `yaml:"patterns" json:"patterns"`
	Idioms      []lexicon.Idiom       `yaml:"idioms" json:"idioms"`
	BigramFloor *float64              `yaml:"bigram_floor,omitempty" json:"bigramFloor,omitempty"`
	Bigrams     []model.Row           `yaml:"bigrams" json:"bigrams"`
}

// Bundle holds compiled resources.
type Bundle struct {
	Lexicon  *lexicon.Table
	Patterns *lexicon.Patterns
	Idioms   *lexicon.Dictionary
	Scorer   *model.Bigram
}

// Parse decodes a YAML seed.
func Parse(raw []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("resources: parse seed: %w", err)
	}
	return &s, nil
}

// Floor returns the configured unseen-pair score.
func (s *Seed) Floor() float64 {
	if s.BigramFloor == nil {
		return model.DefaultFloor
	}
	return *s.BigramFloor
}

// Compile builds a Bundle from the seed.
func (s *Seed) Compile() (*Bundle, error) {
	patterns, err := lexicon.CompilePatterns(s.Patterns)
	if err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}
	idioms, err := lexicon.CompileIdioms(s.Idioms)
	if err != nil {
		return nil, fmt.Errorf("resources: compile idioms: %w", err)
	}
	var opts []lexicon.TableOption
	if s.FoldCase {
		opts = append(opts, lexicon.FoldCase())
	}
	return &Bundle{
		Lexicon:  lexicon.NewTable(s.Lexicon, opts...),
		Patterns: patterns,
		Idioms:   idioms,
		Scorer:   model.FromRows(s.Bigrams, s.Floor()),
	}, nil
}

// DefaultSeed parses the embedded default resources.
func DefaultSeed() (*Seed, error) {
	return Parse(data.DefaultSeed)
}

// Default compiles the embedded default resources.
func Default() (*Bundle, error) {
	s, err := DefaultSeed()
	if err != nil {
		return nil, err
	}
	return s.Compile()
}

// MustDefault is Default that panics on error. The embedded seed is covered
// by tests, so this only fails on a broken build.
func MustDefault() *Bundle {
	b, err := Default()
	if err != nil {
		panic(err)
	}
	return b
}
