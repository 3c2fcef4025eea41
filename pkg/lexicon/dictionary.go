package lexicon

import (
	"strings"
	"unicode"

	"github.com/coregx/ahocorasick"

	"github.com/kittclouds/morfo/pkg/tagset"
)

// Idiom is a multi-token expression that merges into one tagged unit.
type Idiom struct {
	Phrase string     `yaml:"phrase" json:"phrase"`
	Tag    tagset.Tag `yaml:"tag" json:"tag"`
}

// Dictionary is an Aho-Corasick automaton over canonicalized idiom phrases.
// Phrases are matched against a window of tokens joined by single spaces;
// only matches that start at the window start and end on a token boundary
// count.
type Dictionary struct {
	ac *ahocorasick.Automaton

	// Pattern index -> tag
	tags []tagset.Tag

	// Canonical phrase -> pattern index
	patternIndex map[string]int

	// All patterns in order (for AC builder)
	patterns []string

	// Longest phrase, in tokens
	maxWords int
}

// CanonicalizeIdiom folds case and collapses whitespace runs to one space.
// It is used for both pattern compilation and token windows.
func CanonicalizeIdiom(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	lastWasSpace := true // Start true to trim leading spaces
	for _, ch := range s {
		if unicode.IsSpace(ch) {
			if !lastWasSpace {
				out.WriteByte(' ')
				lastWasSpace = true
			}
			continue
		}
		out.WriteRune(unicode.ToLower(ch))
		lastWasSpace = false
	}

	result := out.String()
	if len(result) > 0 && result[len(result)-1] == ' ' {
		result = result[:len(result)-1]
	}
	return result
}

// CompileIdioms builds a Dictionary. Single-word phrases are ignored since
// the exact lexicon already covers them; duplicates keep the first tag.
func CompileIdioms(idioms []Idiom) (*Dictionary, error) {
	d := &Dictionary{patternIndex: make(map[string]int)}

	for _, idiom := range idioms {
		key := CanonicalizeIdiom(idiom.Phrase)
		words := strings.Count(key, " ") + 1
		if key == "" || words < 2 || !idiom.Tag.IsSet() {
			continue
		}
		if _, exists := d.patternIndex[key]; exists {
			continue
		}
		d.patternIndex[key] = len(d.patterns)
		d.patterns = append(d.patterns, key)
		d.tags = append(d.tags, idiom.Tag)
		if words > d.maxWords {
			d.maxWords = words
		}
	}

	if len(d.patterns) == 0 {
		return d, nil
	}

	// LeftmostLongest prefers "terima kasih banyak" over "terima kasih"
	automaton, err := ahocorasick.NewBuilder().
		AddStrings(d.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	d.ac = automaton

	return d, nil
}

// Len returns the number of distinct idioms.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.patterns)
}

// Lookup finds the tag for an exact phrase.
func (d *Dictionary) Lookup(phrase string) (tagset.Tag, bool) {
	if d == nil {
		return tagset.None, false
	}
	idx, ok := d.patternIndex[CanonicalizeIdiom(phrase)]
	if !ok {
		return tagset.None, false
	}
	return d.tags[idx], true
}

// MatchAt returns the number of tokens covered by the longest idiom that
// starts at tokens[i], and its tag. n is 0 when nothing matches.
func (d *Dictionary) MatchAt(tokens []string, i int) (n int, tag tagset.Tag) {
	if d == nil || d.ac == nil || i < 0 || i >= len(tokens) {
		return 0, tagset.None
	}

	end := i + d.maxWords
	if end > len(tokens) {
		end = len(tokens)
	}
	if end-i < 2 {
		return 0, tagset.None
	}

	// Byte offset in the haystack where each token ends -> tokens consumed
	var hay strings.Builder
	boundaries := make(map[int]int, end-i)
	for k := i; k < end; k++ {
		if k > i {
			hay.WriteByte(' ')
		}
		hay.WriteString(CanonicalizeIdiom(tokens[k]))
		boundaries[hay.Len()] = k - i + 1
	}

	for _, m := range d.ac.FindAllOverlapping([]byte(hay.String())) {
		if m.Start != 0 {
			continue
		}
		words, ok := boundaries[m.End]
		if !ok || words < 2 || words <= n {
			continue
		}
		n, tag = words, d.tags[m.PatternID]
	}
	return n, tag
}

// Idioms returns the compiled idioms in insertion order.
func (d *Dictionary) Idioms() []Idiom {
	if d == nil {
		return nil
	}
	out := make([]Idiom, len(d.patterns))
	for i, p := range d.patterns {
		out[i] = Idiom{Phrase: p, Tag: d.tags[i]}
	}
	return out
}
