package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/morfo/pkg/tagset"
)

func TestTableLookup(t *testing.T) {
	entries := []Entry{
		{Form: "Makan", Tag: tagset.VerbActive},
		{Form: "rumah", Tag: tagset.NounCommon},
		{Form: "rumah", Tag: tagset.NounAbstract}, // later entry wins
		{Form: "", Tag: tagset.NounCommon},
		{Form: "kosong"},
	}

	t.Run("exact by default", func(t *testing.T) {
		table := NewTable(entries)
		assert.False(t, table.FoldsCase())
		assert.Equal(t, 2, table.Len())

		tag, ok := table.Lookup("Makan")
		assert.True(t, ok)
		assert.Equal(t, tagset.VerbActive, tag)

		_, ok = table.Lookup("makan")
		assert.False(t, ok)
		_, ok = table.Lookup("Rumah")
		assert.False(t, ok)

		tag, _ = table.Lookup("rumah")
		assert.Equal(t, tagset.NounAbstract, tag)
	})

	t.Run("fold case", func(t *testing.T) {
		table := NewTable(entries, FoldCase())
		assert.True(t, table.FoldsCase())

		tag, ok := table.Lookup("makan")
		assert.True(t, ok)
		assert.Equal(t, tagset.VerbActive, tag)

		tag, ok = table.Lookup("MAKAN")
		assert.True(t, ok)
		assert.Equal(t, tagset.VerbActive, tag)
	})

	table := NewTable(entries)
	_, ok := table.Lookup("kosong")
	assert.False(t, ok)
	_, ok = table.Lookup("")
	assert.False(t, ok)

	_, ok = Empty.Lookup("makan")
	assert.False(t, ok)
}

func TestPatternsOrderAndAnchoring(t *testing.T) {
	p, err := CompilePatterns([]PatternSpec{
		{Expr: `\d+`, Tag: tagset.DetNumeral},
		{Expr: `\d+|ke-?\d+`, Tag: tagset.DetOrdinal},
		{Expr: `\p{Lu}\p{Ll}+`, Tag: tagset.NounProper},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())

	tag, ok := p.Match("42")
	assert.True(t, ok)
	assert.Equal(t, tagset.DetNumeral, tag, "first rule wins")
	assert.Equal(t, []tagset.Tag{tagset.DetNumeral, tagset.DetOrdinal}, p.MatchAll("42"))

	tag, _ = p.Match("ke-2")
	assert.Equal(t, tagset.DetOrdinal, tag)

	_, ok = p.Match("a42")
	assert.False(t, ok, "whole-token match only")
	_, ok = p.Match("Jakarta1")
	assert.False(t, ok)

	assert.Equal(t, `\d+`, p.Specs()[0].Expr)
}

func TestCompilePatternsError(t *testing.T) {
	_, err := CompilePatterns([]PatternSpec{{Expr: `(`, Tag: tagset.Symbol}})
	assert.ErrorContains(t, err, "pattern 0")

	assert.Panics(t, func() {
		MustCompilePatterns([]PatternSpec{{Expr: `[`, Tag: tagset.Symbol}})
	})
}

func TestNilPatterns(t *testing.T) {
	var p *Patterns
	_, ok := p.Match("x")
	assert.False(t, ok)
	assert.Nil(t, p.MatchAll("x"))
	assert.Zero(t, p.Len())
}

func TestCanonicalizeIdiom(t *testing.T) {
	assert.Equal(t, "terima kasih", CanonicalizeIdiom("  Terima \t KASIH  "))
	assert.Equal(t, "", CanonicalizeIdiom("   "))
}

func TestCompileAndLookupIdioms(t *testing.T) {
	d, err := CompileIdioms([]Idiom{
		{Phrase: "Terima kasih", Tag: tagset.InterjectionReply},
		{Phrase: "terima  kasih", Tag: tagset.NounCommon}, // duplicate keeps first
		{Phrase: "rumah sakit", Tag: tagset.NounCommon},
		{Phrase: "sendiri", Tag: tagset.NounCommon}, // single word ignored
		{Phrase: "tanpa tag"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	tag, ok := d.Lookup("TERIMA KASIH")
	assert.True(t, ok)
	assert.Equal(t, tagset.InterjectionReply, tag)

	_, ok = d.Lookup("sendiri")
	assert.False(t, ok)

	assert.Equal(t, []Idiom{
		{Phrase: "terima kasih", Tag: tagset.InterjectionReply},
		{Phrase: "rumah sakit", Tag: tagset.NounCommon},
	}, d.Idioms())
}

func TestMatchAt(t *testing.T) {
	d, err := CompileIdioms([]Idiom{
		{Phrase: "terima kasih", Tag: tagset.InterjectionReply},
		{Phrase: "terima kasih banyak", Tag: "INT-THANKS"},
		{Phrase: "rumah sakit", Tag: tagset.NounCommon},
	})
	require.NoError(t, err)

	tokens := []string{"Terima", "kasih", "banyak", "di", "rumah", "sakitnya"}

	n, tag := d.MatchAt(tokens, 0)
	assert.Equal(t, 3, n, "longest idiom wins")
	assert.Equal(t, tagset.Tag("INT-THANKS"), tag)

	n, _ = d.MatchAt(tokens, 1)
	assert.Zero(t, n, "match must start at the position")

	n, _ = d.MatchAt(tokens, 4)
	assert.Zero(t, n, "match must end on a token boundary")

	n, tag = d.MatchAt([]string{"terima", "kasih"}, 0)
	assert.Equal(t, 2, n)
	assert.Equal(t, tagset.InterjectionReply, tag)

	n, _ = d.MatchAt(tokens, 5)
	assert.Zero(t, n)
	n, _ = d.MatchAt(tokens, -1)
	assert.Zero(t, n)
}

func TestEmptyDictionary(t *testing.T) {
	d, err := CompileIdioms(nil)
	require.NoError(t, err)
	n, _ := d.MatchAt([]string{"a", "b"}, 0)
	assert.Zero(t, n)

	var nilDict *Dictionary
	assert.Zero(t, nilDict.Len())
	assert.Nil(t, nilDict.Idioms())
}
