package tagger

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kittclouds/morfo/pkg/lexicon"
	"github.com/kittclouds/morfo/pkg/tagset"
)

// Resolver reconciles tags that are still ambiguous after fusion. It must
// return a sequence of the same length; it may rewrite any tag.
type Resolver interface {
	Resolve(tokens []tagset.TaggedToken) []tagset.TaggedToken
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func([]tagset.TaggedToken) []tagset.TaggedToken

// Resolve calls f.
func (f ResolverFunc) Resolve(tokens []tagset.TaggedToken) []tagset.TaggedToken { return f(tokens) }

// NopResolver returns its input unchanged.
var NopResolver Resolver = ResolverFunc(func(tokens []tagset.TaggedToken) []tagset.TaggedToken {
	return tokens
})

// Chain runs resolvers in order. A resolver that changes the sequence
// length is ignored.
func Chain(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(tokens []tagset.TaggedToken) []tagset.TaggedToken {
		for _, r := range resolvers {
			if r == nil {
				continue
			}
			if out := r.Resolve(tokens); len(out) == len(tokens) {
				tokens = out
			}
		}
		return tokens
	})
}

// LexiconResolver re-applies exact lexicon entries after fusion, so a fused
// form the lexicon knows ("bermain") keeps its lexicon tag over the
// affix-derived one.
type LexiconResolver struct {
	Lexicon lexicon.Lexicon
}

// Resolve implements Resolver.
func (r LexiconResolver) Resolve(tokens []tagset.TaggedToken) []tagset.TaggedToken {
	if r.Lexicon == nil {
		return tokens
	}
	out := make([]tagset.TaggedToken, len(tokens))
	for i, tt := range tokens {
		if tag, ok := r.Lexicon.Lookup(tt.Text); ok {
			tt.Tag = tag
		}
		out[i] = tt
	}
	return out
}

// ContextResolver corrects tags from their left neighbour:
//  1. a determiner before a verb makes it a noun ("sang [pemimpin]")
//  2. a modal before a noun makes it a verb ("akan [makan]")
//  3. "untuk" before a noun makes it a verb (purpose clause)
//  4. "dari" before a verb makes it a noun
//  5. a lone punctuation character is always a symbol
type ContextResolver struct{}

// Resolve implements Resolver.
func (ContextResolver) Resolve(tokens []tagset.TaggedToken) []tagset.TaggedToken {
	out := make([]tagset.TaggedToken, len(tokens))
	copy(out, tokens)

	for i := range out {
		cur := out[i]
		var prev tagset.TaggedToken
		if i > 0 {
			prev = tokens[i-1]
		}

		switch {
		case isLonePunct(cur.Text):
			if cur.Tag.Root() != "SYM" {
				out[i].Tag = tagset.Symbol
			}
		case i == 0:
		case prev.Tag.Root() == "DT" && cur.Tag.Root() == "VB":
			out[i].Tag = tagset.NounCommon
		case prev.Tag.Root() == "MOD" && prev.Tag != tagset.ModalEmphasis && cur.Tag.Root() == "NN":
			out[i].Tag = tagset.VerbActive
		case strings.EqualFold(prev.Text, "untuk") && cur.Tag.Root() == "NN":
			out[i].Tag = tagset.VerbActive
		case strings.EqualFold(prev.Text, "dari") && cur.Tag.Root() == "VB":
			out[i].Tag = tagset.NounCommon
		}
	}

	return out
}

func isLonePunct(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && size == len(s) && unicode.IsPunct(r)
}
