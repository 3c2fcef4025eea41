package tagger

import (
	"github.com/kittclouds/morfo/pkg/lexicon"
	"github.com/kittclouds/morfo/pkg/model"
	"github.com/kittclouds/morfo/pkg/pool"
	"github.com/kittclouds/morfo/pkg/tagset"
)

// cell is one lattice state: a candidate tag, its best cumulative score and
// the index of its best predecessor in the previous non-empty column.
type cell struct {
	tag   tagset.Tag
	score float64
	back  int
}

var (
	columnPool    = pool.NewSlices[cell](8)
	candidatePool = pool.NewSlices[tagset.Tag](8)
)

// Decoder runs first-order Viterbi search over per-token candidate tags.
// Candidates come from the lexicon, every matching pattern and, when those
// are silent, the affix heuristics, so the lattice stays narrow.
type Decoder struct {
	lex      lexicon.Lexicon
	patterns *lexicon.Patterns
	scorer   model.Scorer
}

// NewDecoder creates a decoder. A nil scorer scores every transition as 0.
func NewDecoder(lex lexicon.Lexicon, patterns *lexicon.Patterns, scorer model.Scorer) *Decoder {
	if lex == nil {
		lex = lexicon.Empty
	}
	if scorer == nil {
		scorer = model.Uniform
	}
	return &Decoder{lex: lex, patterns: patterns, scorer: scorer}
}

// Candidates returns the candidate tags for token in first-seen order
// without duplicates.
func (d *Decoder) Candidates(token string) []tagset.Tag {
	return d.appendCandidates(nil, token)
}

func (d *Decoder) appendCandidates(dst []tagset.Tag, token string) []tagset.Tag {
	add := func(t tagset.Tag) {
		for _, have := range dst {
			if have == t {
				return
			}
		}
		dst = append(dst, t)
	}

	if tag, ok := d.lex.Lookup(token); ok {
		add(tag)
	}
	for _, tag := range d.patterns.MatchAll(token) {
		add(tag)
	}
	if len(dst) == 0 {
		for _, tag := range affixCandidates(token) {
			add(tag)
		}
	}
	return dst
}

// Decode returns the best tag path for tokens, one tag per token. Positions
// with no candidates get tagset.Unknown and are skipped over: the next
// position is scored against the most recent non-empty column. If no
// position has candidates every tag is tagset.Unknown.
func (d *Decoder) Decode(tokens []string) []tagset.Tag {
	out := make([]tagset.Tag, len(tokens))
	for i := range out {
		out[i] = tagset.Unknown
	}
	if len(tokens) == 0 {
		return out
	}

	columns := make([][]cell, len(tokens))
	defer func() {
		for _, col := range columns {
			if col != nil {
				columnPool.Put(col)
			}
		}
	}()

	prev := -1 // index of the most recent non-empty column
	cands := candidatePool.Get()
	defer func() { candidatePool.Put(cands) }()

	for t, tok := range tokens {
		cands = d.appendCandidates(cands[:0], tok)
		if len(cands) == 0 {
			continue
		}

		col := columnPool.Get()
		for _, curr := range cands {
			if prev < 0 {
				col = append(col, cell{tag: curr, score: d.scorer.Score(tagset.Start, curr), back: -1})
				continue
			}
			best, bestIdx := 0.0, -1
			for j, p := range columns[prev] {
				s := p.score + d.scorer.Score(p.tag, curr)
				// Strict comparison keeps the first-seen predecessor on ties.
				if bestIdx < 0 || s > best {
					best, bestIdx = s, j
				}
			}
			col = append(col, cell{tag: curr, score: best, back: bestIdx})
		}
		columns[t] = col
		prev = t
	}

	if prev < 0 {
		return out
	}

	bestIdx := 0
	for j, c := range columns[prev] {
		if c.score > columns[prev][bestIdx].score {
			bestIdx = j
		}
	}

	// Backtrack through the non-empty columns only.
	for t, j := prev, bestIdx; t >= 0 && j >= 0; {
		c := columns[t][j]
		out[t] = c.tag
		j = c.back
		t--
		for t >= 0 && columns[t] == nil {
			t--
		}
	}

	return out
}
