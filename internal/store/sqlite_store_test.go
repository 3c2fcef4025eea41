package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/morfo/pkg/lexicon"
	"github.com/kittclouds/morfo/pkg/model"
	"github.com/kittclouds/morfo/pkg/resources"
	"github.com/kittclouds/morfo/pkg/tagset"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLexiconCRUD(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.UpsertEntry(lexicon.Entry{Form: "Makan", Tag: tagset.VerbActive}))
	require.NoError(t, s.UpsertEntry(lexicon.Entry{Form: "nasi", Tag: tagset.NounCommon}))

	e, err := s.GetEntry("Makan")
	require.NoError(t, err)
	assert.Equal(t, lexicon.Entry{Form: "Makan", Tag: tagset.VerbActive}, *e)

	_, err = s.GetEntry("MAKAN")
	assert.ErrorIs(t, err, ErrNotFound, "forms are exact")

	require.NoError(t, s.UpsertEntry(lexicon.Entry{Form: "Makan", Tag: tagset.NounCommon}))
	require.NoError(t, s.UpsertEntry(lexicon.Entry{Form: "makan", Tag: tagset.VerbActive}))
	nouns, err := s.ListEntries(tagset.NounCommon)
	require.NoError(t, err)
	assert.Len(t, nouns, 2)

	require.NoError(t, s.DeleteEntry("makan"))
	require.NoError(t, s.DeleteEntry("Makan"))
	_, err = s.GetEntry("makan")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteEntry("makan"), ErrNotFound)

	assert.Error(t, s.UpsertEntry(lexicon.Entry{Form: "x"}))
}

func TestPatternsKeepOrder(t *testing.T) {
	s := newStore(t)

	p1, err := s.AppendPattern(lexicon.PatternSpec{Expr: `\d+`, Tag: tagset.DetNumeral})
	require.NoError(t, err)
	p2, err := s.AppendPattern(lexicon.PatternSpec{Expr: `\p{Lu}\p{Ll}+`, Tag: tagset.NounProper})
	require.NoError(t, err)
	_, err = s.AppendPattern(lexicon.PatternSpec{Expr: `[.?!]`, Tag: "SYM-END"})
	require.NoError(t, err)
	assert.Less(t, p1, p2)

	require.NoError(t, s.DeletePattern(p2))
	specs, err := s.ListPatterns()
	require.NoError(t, err)
	assert.Equal(t, []lexicon.PatternSpec{
		{Expr: `\d+`, Tag: tagset.DetNumeral},
		{Expr: `[.?!]`, Tag: "SYM-END"},
	}, specs)

	_, err = s.AppendPattern(lexicon.PatternSpec{Expr: `(`, Tag: tagset.NounCommon})
	assert.Error(t, err)
}

func TestIdiomsAndBigrams(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.UpsertIdiom(lexicon.Idiom{Phrase: "  Terima   Kasih ", Tag: tagset.InterjectionReply}))
	idioms, err := s.ListIdioms()
	require.NoError(t, err)
	assert.Equal(t, []lexicon.Idiom{{Phrase: "terima kasih", Tag: tagset.InterjectionReply}}, idioms)
	require.NoError(t, s.DeleteIdiom("terima kasih"))

	floor, err := s.BigramFloor()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultFloor, floor)

	require.NoError(t, s.SetBigramFloor(-7.5))
	floor, err = s.BigramFloor()
	require.NoError(t, err)
	assert.Equal(t, -7.5, floor)

	require.NoError(t, s.UpsertBigram(model.Row{Prev: tagset.Start, Curr: tagset.NounCommon, Score: -1}))
	require.NoError(t, s.UpsertBigram(model.Row{Prev: tagset.Start, Curr: tagset.NounCommon, Score: -2}))
	rows, err := s.ListBigrams()
	require.NoError(t, err)
	assert.Equal(t, []model.Row{{Prev: tagset.Start, Curr: tagset.NounCommon, Score: -2}}, rows)
}

func TestSeedAndResources(t *testing.T) {
	s := newStore(t)
	seed, err := resources.DefaultSeed()
	require.NoError(t, err)

	require.NoError(t, s.Seed(seed))

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, len(seed.Patterns), st.Patterns)
	assert.Equal(t, len(seed.Bigrams), st.Bigrams)
	assert.Equal(t, len(seed.Idioms), st.Idioms)
	assert.Positive(t, st.Entries)

	b, err := s.Resources()
	require.NoError(t, err)
	tag, ok := b.Lexicon.Lookup("bermain")
	assert.True(t, ok)
	assert.Equal(t, tagset.VerbActive, tag)
	assert.Equal(t, len(seed.Patterns), b.Patterns.Len())
	assert.Equal(t, seed.Floor(), b.Scorer.Floor())

	// case folding survives the round trip
	assert.True(t, b.Lexicon.FoldsCase())
	tag, ok = b.Lexicon.Lookup("Bermain")
	assert.True(t, ok)
	assert.Equal(t, tagset.VerbActive, tag)

	tag, ok = b.Patterns.Match(".")
	assert.True(t, ok)
	assert.Equal(t, tagset.Tag("SYM-END"), tag)
}

func TestSeedExactLexicon(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Seed(&resources.Seed{
		Lexicon: []lexicon.Entry{{Form: "Jakarta", Tag: tagset.NounProper}},
	}))

	b, err := s.Resources()
	require.NoError(t, err)
	assert.False(t, b.Lexicon.FoldsCase())
	_, ok := b.Lexicon.Lookup("Jakarta")
	assert.True(t, ok)
	_, ok = b.Lexicon.Lookup("jakarta")
	assert.False(t, ok)
}

func TestSeedRejectsBadPatterns(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.UpsertEntry(lexicon.Entry{Form: "tetap", Tag: tagset.AdverbAttrib}))

	err := s.Seed(&resources.Seed{Patterns: []lexicon.PatternSpec{{Expr: "[", Tag: "SYM"}}})
	require.Error(t, err)

	// The failed seed left the store untouched.
	_, err = s.GetEntry("tetap")
	assert.NoError(t, err)
}

func TestExportImport(t *testing.T) {
	s := newStore(t)
	seed, err := resources.DefaultSeed()
	require.NoError(t, err)
	require.NoError(t, s.Seed(seed))

	// Export
	data, err := s.Export()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// Create a NEW store to simulate a fresh start/reload
	s2 := newStore(t)
	require.NoError(t, s2.UpsertEntry(lexicon.Entry{Form: "stale", Tag: tagset.NounCommon}))
	require.NoError(t, s2.Import(data))

	want, err := s.Snapshot()
	require.NoError(t, err)
	got, err := s2.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = s2.GetEntry("stale")
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.NoError(t, s2.Import(nil))
	assert.Error(t, s2.Import([]byte("{")))
}
