package lexicon

import (
	"fmt"
	"regexp"

	"github.com/kittclouds/morfo/pkg/tagset"
)

// PatternSpec is an uncompiled pattern row.
type PatternSpec struct {
	Expr string     `yaml:"expr" json:"expr"`
	Tag  tagset.Tag `yaml:"tag" json:"tag"`
}

// Pattern is a compiled full-match rule.
type Pattern struct {
	Expr string
	Tag  tagset.Tag
	re   *regexp.Regexp
}

// Patterns is an ordered pattern table. Order is significant: the first
// pattern whose expression matches the whole token wins.
type Patterns struct {
	rules []Pattern
}

// CompilePatterns compiles specs in order. Each expression is anchored as
// ^(?:expr)$ so only whole-token matches count.
func CompilePatterns(specs []PatternSpec) (*Patterns, error) {
	p := &Patterns{rules: make([]Pattern, 0, len(specs))}
	for i, s := range specs {
		re, err := regexp.Compile(`^(?:` + s.Expr + `)$`)
		if err != nil {
			return nil, fmt.Errorf("lexicon: pattern %d %q: %w", i, s.Expr, err)
		}
		p.rules = append(p.rules, Pattern{Expr: s.Expr, Tag: s.Tag, re: re})
	}
	return p, nil
}

// MustCompilePatterns is CompilePatterns that panics on a bad expression.
func MustCompilePatterns(specs []PatternSpec) *Patterns {
	p, err := CompilePatterns(specs)
	if err != nil {
		panic(err)
	}
	return p
}

// Match returns the tag of the first pattern matching the whole token.
func (p *Patterns) Match(token string) (tagset.Tag, bool) {
	if p == nil {
		return tagset.None, false
	}
	for _, r := range p.rules {
		if r.re.MatchString(token) {
			return r.Tag, true
		}
	}
	return tagset.None, false
}

// MatchAll returns the tags of every matching pattern, in table order.
func (p *Patterns) MatchAll(token string) []tagset.Tag {
	if p == nil {
		return nil
	}
	var out []tagset.Tag
	for _, r := range p.rules {
		if r.re.MatchString(token) {
			out = append(out, r.Tag)
		}
	}
	return out
}

// Len returns the number of rules.
func (p *Patterns) Len() int {
	if p == nil {
		return 0
	}
	return len(p.rules)
}

// Specs returns the uncompiled rows in order.
func (p *Patterns) Specs() []PatternSpec {
	if p == nil {
		return nil
	}
	out := make([]PatternSpec, len(p.rules))
	for i, r := range p.rules {
		out[i] = PatternSpec{Expr: r.Expr, Tag: r.Tag}
	}
	return out
}
