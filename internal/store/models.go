// Package store provides SQLite-backed persistence for morfo's tagging
// resources: the exact lexicon, the ordered pattern table, multi-token
// idioms and transition scores.
package store

import (
	"errors"

	"github.com/kittclouds/morfo/pkg/lexicon"
	"github.com/kittclouds/morfo/pkg/model"
	"github.com/kittclouds/morfo/pkg/resources"
	"github.com/kittclouds/morfo/pkg/tagset"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// Stats counts the rows of each resource table.
type Stats struct {
	Entries  int `json:"entries"`
	Patterns int `json:"patterns"`
	Idioms   int `json:"idioms"`
	Bigrams  int `json:"bigrams"`
}

// Storer defines the interface for resource storage.
// Implemented by SQLiteStore for both in-memory and file databases.
type Storer interface {
	// Lexicon
	UpsertEntry(entry lexicon.Entry) error
	GetEntry(form string) (*lexicon.Entry, error)
	DeleteEntry(form string) error
	ListEntries(tag tagset.Tag) ([]lexicon.Entry, error)

	// Patterns (ordered)
	AppendPattern(spec lexicon.PatternSpec) (int, error)
	DeletePattern(position int) error
	ListPatterns() ([]lexicon.PatternSpec, error)

	// Idioms
	UpsertIdiom(idiom lexicon.Idiom) error
	DeleteIdiom(phrase string) error
	ListIdioms() ([]lexicon.Idiom, error)

	// Transition scores
	UpsertBigram(row model.Row) error
	ListBigrams() ([]model.Row, error)
	SetBigramFloor(floor float64) error
	BigramFloor() (float64, error)

	// Bulk
	Seed(seed *resources.Seed) error
	Snapshot() (*resources.Seed, error)
	Resources() (*resources.Bundle, error)
	Stats() (Stats, error)
	Export() ([]byte, error)
	Import(data []byte) error

	Close() error
}
