// Package model provides the pairwise tag scoring consumed by the Viterbi
// decoder. Training is out of scope; scores are loaded pre-computed.
package model

import (
	"math"

	"github.com/kittclouds/morfo/pkg/tagset"
)

// Scorer returns an additive score (typically a log-probability) for moving
// from prev to curr. Implementations must be total over every tag the
// decoder can produce, including tagset.Start.
type Scorer interface {
	Score(prev, curr tagset.Tag) float64
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(prev, curr tagset.Tag) float64

// Score calls f(prev, curr).
func (f ScorerFunc) Score(prev, curr tagset.Tag) float64 { return f(prev, curr) }

// Row is one stored transition score.
type Row struct {
	Prev  tagset.Tag `yaml:"prev" json:"prev"`
	Curr  tagset.Tag `yaml:"curr" json:"curr"`
	Score float64    `yaml:"score" json:"score"`
}

// DefaultFloor is the score for pairs that were never observed.
const DefaultFloor = -10.0

type pair struct {
	prev, curr tagset.Tag
}

// Bigram is a first-order transition table with a floor for unseen pairs.
// It is read-only after construction.
type Bigram struct {
	scores map[pair]float64
	floor  float64
}

// NewBigram creates an empty table that scores every pair at floor.
func NewBigram(floor float64) *Bigram {
	if math.IsNaN(floor) || math.IsInf(floor, 0) {
		floor = DefaultFloor
	}
	return &Bigram{scores: make(map[pair]float64), floor: floor}
}

// FromRows builds a Bigram from stored rows. NaN scores are dropped so the
// table never poisons a path sum.
func FromRows(rows []Row, floor float64) *Bigram {
	b := NewBigram(floor)
	for _, r := range rows {
		if math.IsNaN(r.Score) {
			continue
		}
		b.scores[pair{r.Prev, r.Curr}] = r.Score
	}
	return b
}

// Score implements Scorer.
func (b *Bigram) Score(prev, curr tagset.Tag) float64 {
	if b == nil {
		return DefaultFloor
	}
	if s, ok := b.scores[pair{prev, curr}]; ok {
		return s
	}
	return b.floor
}

// Floor returns the unseen-pair score.
func (b *Bigram) Floor() float64 { return b.floor }

// Len returns the number of stored pairs.
func (b *Bigram) Len() int { return len(b.scores) }

// Uniform scores every transition as zero; decoding then keeps the first
// candidate at every position.
var Uniform Scorer = ScorerFunc(func(_, _ tagset.Tag) float64 { return 0 })
