// Package pipeline wires the tagger, the chunker and the dependency parser
// into a single analysis pass.
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kittclouds/morfo/pkg/chunker"
	"github.com/kittclouds/morfo/pkg/dependency"
	"github.com/kittclouds/morfo/pkg/tagger"
	"github.com/kittclouds/morfo/pkg/tagset"
)

// Result is the full analysis of one token sequence.
type Result struct {
	Tokens    []tagset.TaggedToken        `json:"tokens"`
	Forest    []*chunker.Node             `json:"forest"`
	Sentences []dependency.SentenceResult `json:"sentences"`
}

// Pipeline manages the analysis stages.
type Pipeline struct {
	tagger *tagger.Tagger
	parser *dependency.Parser
}

// New creates a Pipeline. finder may implement any subset of the
// dependency finder capabilities; nil leaves every slot empty.
func New(tg *tagger.Tagger, finder any) *Pipeline {
	return &Pipeline{
		tagger: tg,
		parser: dependency.NewParser(finder),
	}
}

// Tagger returns the underlying tagger.
func (p *Pipeline) Tagger() *tagger.Tagger { return p.tagger }

// Tag runs tagging only.
func (p *Pipeline) Tag(tokens []string) []tagset.TaggedToken {
	return p.tagger.Tag(tokens)
}

// Chunk tags and chunks tokens.
func (p *Pipeline) Chunk(tokens []string) []*chunker.Node {
	return chunker.Chunk(p.tagger.Tag(tokens))
}

// Analyze runs every stage over tokens.
func (p *Pipeline) Analyze(tokens []string) Result {
	// 1. Tagging
	tagged := p.tagger.Tag(tokens)

	// 2. Chunking
	forest := chunker.Chunk(tagged)

	// 3. Sentences and dependencies
	sentences := p.parser.Parse(forest)

	return Result{Tokens: tagged, Forest: forest, Sentences: sentences}
}

// AnalyzeBatch analyzes documents concurrently, one per worker, keeping
// input order. Cancellation is checked between documents.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, docs [][]string, workers int) ([]Result, error) {
	out := make([]Result, len(docs))
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = p.Analyze(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pipeline: batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: batch: %w", err)
	}
	return out, nil
}
