package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kittclouds/morfo/pkg/lexicon"
	"github.com/kittclouds/morfo/pkg/tagset"
)

func TestLexiconResolver(t *testing.T) {
	lex := lexicon.NewTable([]lexicon.Entry{{Form: "bermain", Tag: tagset.VerbActive}})
	in := []tagset.TaggedToken{
		tagset.Pair("bermain", tagset.VerbStative),
		tagset.Pair("tertawa", tagset.VerbStative),
	}

	got := LexiconResolver{Lexicon: lex}.Resolve(in)
	assert.Equal(t, tagset.VerbActive, got[0].Tag)
	assert.Equal(t, tagset.VerbStative, got[1].Tag)
	assert.Equal(t, tagset.VerbStative, in[0].Tag, "input must not be mutated")

	assert.Equal(t, in, LexiconResolver{}.Resolve(in))
}

func TestContextResolver(t *testing.T) {
	tests := []struct {
		name string
		in   []tagset.TaggedToken
		want tagset.Tag
	}{
		{"determiner before verb", []tagset.TaggedToken{tagset.Pair("sang", tagset.DetDefinite), tagset.Pair("pimpin", tagset.VerbActive)}, tagset.NounCommon},
		{"modal before noun", []tagset.TaggedToken{tagset.Pair("akan", tagset.ModalTemporal), tagset.Pair("makan", tagset.NounCommon)}, tagset.VerbActive},
		{"emphasis is not a modal head", []tagset.TaggedToken{tagset.Pair("itulah", tagset.ModalEmphasis), tagset.Pair("buku", tagset.NounCommon)}, tagset.NounCommon},
		{"untuk before noun", []tagset.TaggedToken{tagset.Pair("untuk", tagset.Tag("IN-PURP")), tagset.Pair("buku", tagset.NounCommon)}, tagset.VerbActive},
		{"dari before verb", []tagset.TaggedToken{tagset.Pair("dari", tagset.Tag("IN-SRC")), tagset.Pair("makan", tagset.VerbActive)}, tagset.NounCommon},
		{"stray punctuation", []tagset.TaggedToken{tagset.Pair("saya", tagset.PronounPersonal), tagset.Pair(",", tagset.NounCommon)}, tagset.Symbol},
		{"symbol keeps subtype", []tagset.TaggedToken{tagset.Pair("saya", tagset.PronounPersonal), tagset.Pair("-", tagset.SymbolDash)}, tagset.SymbolDash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContextResolver{}.Resolve(tt.in)
			assert.Len(t, got, len(tt.in))
			assert.Equal(t, tt.want, got[1].Tag)
		})
	}
}

func TestChainIgnoresLengthChanges(t *testing.T) {
	in := []tagset.TaggedToken{tagset.Pair("a", tagset.NounCommon), tagset.Pair("b", tagset.NounCommon)}
	drop := ResolverFunc(func(tokens []tagset.TaggedToken) []tagset.TaggedToken { return tokens[:1] })
	verb := ResolverFunc(func(tokens []tagset.TaggedToken) []tagset.TaggedToken {
		out := make([]tagset.TaggedToken, len(tokens))
		for i, tt := range tokens {
			out[i] = tagset.Pair(tt.Text, tagset.VerbActive)
		}
		return out
	})

	got := Chain(drop, nil, verb, NopResolver).Resolve(in)
	assert.Equal(t, []tagset.TaggedToken{
		tagset.Pair("a", tagset.VerbActive),
		tagset.Pair("b", tagset.VerbActive),
	}, got)
}
