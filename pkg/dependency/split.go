// Package dependency splits a phrase forest into sentences and extracts
// per-sentence dependency slots (root, subject, object, complements and
// punctuation) through an optional-capability finder.
package dependency

import (
	"github.com/kittclouds/morfo/pkg/chunker"
	"github.com/kittclouds/morfo/pkg/tagset"
)

// Sentence is one sentence worth of leaves and phrase nodes.
type Sentence []*chunker.Node

var sentenceEnd = map[string]bool{".": true, "?": true, "!": true}

// Split cuts nodes into sentences after every closing mark (".", "?", "!")
// whose tag is a symbol. A phrase node is judged by its first child when
// that child is a leaf. Colons never end a sentence. A trailing
// unterminated run becomes the last sentence.
func Split(nodes []*chunker.Node) []Sentence {
	var (
		sentences []Sentence
		current   Sentence
	)

	for _, n := range nodes {
		current = append(current, n)

		tt, ok := boundaryToken(n)
		if !ok || tt.Tag.Root() != "SYM" {
			continue
		}
		switch {
		case sentenceEnd[tt.Text]:
			sentences = append(sentences, current)
			current = nil
		case tt.Text == ":":
			// A colon before a pronoun, verb or determiner opens a clause
			// inside the same sentence, and so does any other colon.
		}
	}

	if len(current) > 0 {
		sentences = append(sentences, current)
	}
	return sentences
}

// boundaryToken returns the token a node is judged by when splitting.
func boundaryToken(n *chunker.Node) (tagset.TaggedToken, bool) {
	switch {
	case n == nil:
		return tagset.TaggedToken{}, false
	case n.IsLeaf():
		return *n.Token, n.Token.Text != "" && n.Token.Tag.IsSet()
	case len(n.Children) > 0 && n.Children[0].IsLeaf():
		first := n.Children[0].Token
		return *first, first.Text != "" && first.Tag.IsSet()
	}
	return tagset.TaggedToken{}, false
}

// Text joins the sentence's leaf texts with single spaces.
func (s Sentence) Text() string {
	var b []byte
	for _, n := range s {
		for _, tt := range n.Tokens() {
			if len(b) > 0 {
				b = append(b, ' ')
			}
			b = append(b, tt.Text...)
		}
	}
	return string(b)
}
