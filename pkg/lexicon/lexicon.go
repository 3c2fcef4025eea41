// Package lexicon holds the read-only evidence tables consulted by the tagger:
// an exact-form lexicon, an ordered regular-expression pattern table, and an
// Aho-Corasick idiom dictionary for multi-token expressions.
//
// All tables are immutable once built and safe for concurrent use.
package lexicon

import (
	"strings"

	"github.com/kittclouds/morfo/pkg/tagset"
)

// Lexicon is an exact-match form→tag lookup.
type Lexicon interface {
	Lookup(token string) (tagset.Tag, bool)
}

// Entry is one lexicon row.
type Entry struct {
	Form string     `yaml:"form" json:"form"`
	Tag  tagset.Tag `yaml:"tag" json:"tag"`
}

// Table is a map-backed Lexicon. Lookup is exact unless the table was built
// with FoldCase. A later entry for the same form replaces an earlier one.
type Table struct {
	forms map[string]tagset.Tag
	fold  bool
}

// TableOption configures a Table.
type TableOption func(*Table)

// FoldCase makes the table case-insensitive: forms are lowercased on build
// and tokens on lookup, so "Saya" finds "saya".
func FoldCase() TableOption {
	return func(t *Table) { t.fold = true }
}

// NewTable builds a Table from entries. Entries with an empty form or tag are
// skipped.
func NewTable(entries []Entry, opts ...TableOption) *Table {
	t := &Table{forms: make(map[string]tagset.Tag, len(entries))}
	for _, opt := range opts {
		opt(t)
	}
	for _, e := range entries {
		if e.Form == "" || !e.Tag.IsSet() {
			continue
		}
		t.forms[t.key(e.Form)] = e.Tag
	}
	return t
}

// Lookup returns the tag recorded for token, if any.
func (t *Table) Lookup(token string) (tagset.Tag, bool) {
	if t == nil || token == "" {
		return tagset.None, false
	}
	tag, ok := t.forms[t.key(token)]
	return tag, ok
}

// FoldsCase reports whether lookups ignore case.
func (t *Table) FoldsCase() bool {
	return t != nil && t.fold
}

func (t *Table) key(s string) string {
	if t.fold {
		return fastLower(s)
	}
	return s
}

// Len returns the number of distinct forms.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.forms)
}

// Empty is a Lexicon with no entries.
var Empty Lexicon = (*Table)(nil)

// fastLower returns the string if it contains no uppercase ASCII characters,
// otherwise returns strings.ToLower(s). Avoids allocation for common case.
func fastLower(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' || c >= 0x80 {
			return strings.ToLower(s)
		}
	}
	return s
}
