// Package tagger assigns hierarchical part-of-speech tags to pre-segmented
// tokens of an affixing language and reassembles split affix fragments.
//
// Tagging runs eight stages with fixed precedence:
//
//  1. exact lexicon lookup
//  2. ordered full-match patterns (fill gaps only)
//  3. token merging (sama-sama, reduplication, dashes, idioms)
//  4. affix-literal rules for untagged tokens
//  5. affix inference for still-untagged tokens
//  6. confix fusion
//  7. Viterbi decoding for whatever is left, defaulting to NN-COM
//  8. confix fusion again, then the ambiguity resolver
//
// Every stage is a recovery point: a stage that panics is logged and treated
// as having produced nothing, and later stages compensate. Tag never fails
// and never returns an unset tag.
//
// A Tagger only reads its tables and is safe for concurrent use.
package tagger

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kittclouds/morfo/pkg/lexicon"
	"github.com/kittclouds/morfo/pkg/model"
	"github.com/kittclouds/morfo/pkg/resources"
	"github.com/kittclouds/morfo/pkg/tagset"
)

// Tagger is the tagging orchestrator.
type Tagger struct {
	lex      lexicon.Lexicon
	patterns *lexicon.Patterns
	idioms   *lexicon.Dictionary
	scorer   model.Scorer
	resolver Resolver
	logger   *slog.Logger
	decoder  *Decoder
}

// Option configures a Tagger.
type Option func(*Tagger)

// WithLexicon sets the exact-form lexicon.
func WithLexicon(lex lexicon.Lexicon) Option {
	return func(t *Tagger) { t.lex = lex }
}

// WithPatterns sets the ordered pattern table.
func WithPatterns(p *lexicon.Patterns) Option {
	return func(t *Tagger) { t.patterns = p }
}

// WithIdioms sets the multi-token idiom dictionary used by the merger.
func WithIdioms(d *lexicon.Dictionary) Option {
	return func(t *Tagger) { t.idioms = d }
}

// WithScorer sets the transition scorer used by the decoder.
func WithScorer(s model.Scorer) Option {
	return func(t *Tagger) { t.scorer = s }
}

// WithResolver sets the final ambiguity resolver.
func WithResolver(r Resolver) Option {
	return func(t *Tagger) { t.resolver = r }
}

// WithLogger sets the logger used for recovered stage failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tagger) { t.logger = l }
}

// New creates a Tagger. Without options it has empty tables, a uniform
// scorer and a resolver that re-applies the lexicon.
func New(opts ...Option) *Tagger {
	t := &Tagger{}
	for _, opt := range opts {
		opt(t)
	}
	if t.lex == nil {
		t.lex = lexicon.Empty
	}
	if t.scorer == nil {
		t.scorer = model.Uniform
	}
	if t.resolver == nil {
		t.resolver = LexiconResolver{Lexicon: t.lex}
	}
	if t.logger == nil {
		t.logger = slog.New(slog.DiscardHandler)
	}
	t.decoder = NewDecoder(t.lex, t.patterns, t.scorer)
	return t
}

// NewFromBundle creates a Tagger over compiled resources. Later options
// override the bundle.
func NewFromBundle(b *resources.Bundle, opts ...Option) *Tagger {
	base := []Option{
		WithLexicon(b.Lexicon),
		WithPatterns(b.Patterns),
		WithIdioms(b.Idioms),
		WithScorer(b.Scorer),
	}
	return New(append(base, opts...)...)
}

// Decoder returns the tagger's Viterbi decoder.
func (t *Tagger) Decoder() *Decoder { return t.decoder }

// Tag tags tokens. The result has one entry per token after merging and
// fusion, so it can be shorter than the input; every tag is set.
func (t *Tagger) Tag(tokens []string) []tagset.TaggedToken {
	n := len(tokens)
	if n == 0 {
		return []tagset.TaggedToken{}
	}

	lexTags := stage(t, "lexicon", nil, func() []tagset.Tag {
		tags := make([]tagset.Tag, n)
		for i, tok := range tokens {
			if tag, ok := t.lex.Lookup(tok); ok {
				tags[i] = tag
			}
		}
		return tags
	})

	patternTags := stage(t, "patterns", nil, func() []tagset.Tag {
		tags := make([]tagset.Tag, n)
		for i, tok := range tokens {
			if tag, ok := t.patterns.Match(tok); ok {
				tags[i] = tag
			}
		}
		return tags
	})

	pairs := make([]tagset.TaggedToken, n)
	for i, tok := range tokens {
		pairs[i].Text = tok
		switch {
		case lexTags != nil && lexTags[i].IsSet():
			pairs[i].Tag = lexTags[i]
		case patternTags != nil && patternTags[i].IsSet():
			pairs[i].Tag = patternTags[i]
		}
	}

	pairs = stage(t, "merge", pairs, func() []tagset.TaggedToken {
		return Merge(pairs, t.idioms)
	})

	pairs = stage(t, "rules", pairs, func() []tagset.TaggedToken {
		return fillUntagged(pairs, RuleTag)
	})

	pairs = stage(t, "infer", pairs, func() []tagset.TaggedToken {
		return fillUntagged(pairs, func(tok string) (tagset.Tag, bool) {
			tag := InferTag(tok)
			return tag, tag.IsDecided()
		})
	})

	pairs = stage(t, "fuse", pairs, func() []tagset.TaggedToken {
		return Fuse(pairs)
	})

	if hasUntagged(pairs) {
		path := stage(t, "viterbi", nil, func() []tagset.Tag {
			return t.decoder.Decode(tagset.Texts(pairs))
		})
		resolved := make([]tagset.TaggedToken, len(pairs))
		for i, tt := range pairs {
			if !tt.Tag.IsDecided() {
				tt.Tag = tagset.NounCommon
				if i < len(path) && path[i].IsDecided() {
					tt.Tag = path[i]
				}
			}
			resolved[i] = tt
		}
		pairs = resolved
	}

	pairs = stage(t, "fuse", pairs, func() []tagset.TaggedToken {
		return Fuse(pairs)
	})

	pairs = stage(t, "resolve", pairs, func() []tagset.TaggedToken {
		out := t.resolver.Resolve(pairs)
		if len(out) != len(pairs) {
			panic(fmt.Sprintf("resolver returned %d tokens for %d", len(out), len(pairs)))
		}
		return out
	})

	// A resolver may hand back unset tags; the result is total regardless.
	for i := range pairs {
		if !pairs[i].Tag.IsSet() {
			pairs[i].Tag = tagset.NounCommon
		}
	}

	return pairs
}

// TagBatch tags several documents concurrently, one document per worker.
// Results keep input order. Cancellation is checked between documents.
func (t *Tagger) TagBatch(ctx context.Context, docs [][]string, workers int) ([][]tagset.TaggedToken, error) {
	out := make([][]tagset.TaggedToken, len(docs))
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = t.Tag(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("tagger: batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tagger: batch: %w", err)
	}
	return out, nil
}

// stage runs fn and returns its result, or fallback if fn panics.
func stage[T any](t *Tagger, name string, fallback T, fn func() T) (result T) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Debug("tagging stage failed", "stage", name, "panic", r)
			result = fallback
		}
	}()
	return fn()
}

// fillUntagged copies pairs and tags every undecided token with rule.
func fillUntagged(pairs []tagset.TaggedToken, rule func(string) (tagset.Tag, bool)) []tagset.TaggedToken {
	out := make([]tagset.TaggedToken, len(pairs))
	for i, tt := range pairs {
		if !tt.Tag.IsDecided() {
			if tag, ok := rule(tt.Text); ok {
				tt.Tag = tag
			}
		}
		out[i] = tt
	}
	return out
}

func hasUntagged(pairs []tagset.TaggedToken) bool {
	for _, tt := range pairs {
		if !tt.Tag.IsDecided() {
			return true
		}
	}
	return false
}
