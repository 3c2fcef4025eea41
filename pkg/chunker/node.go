// Package chunker groups tagged tokens into shallow phrase trees with a
// hand-written lookahead grammar.
//
// Builders take the current stream and a cursor and return what they built
// together with the next cursor. The stream may already contain phrase
// nodes (a PP or NP produced by an earlier pass); tag predicates are false
// for them.
package chunker

import (
	"strings"

	"github.com/kittclouds/morfo/pkg/tagset"
)

// Label names a phrase category.
type Label string

const (
	NP       Label = "NP"
	VP       Label = "VP"
	PP       Label = "PP"
	ADJP     Label = "ADJP"
	ADVP     Label = "ADVP"
	WH       Label = "WH"
	INTERROG Label = "INTERROG"
)

// Valid reports whether l is one of the phrase labels.
func (l Label) Valid() bool {
	switch l {
	case NP, VP, PP, ADJP, ADVP, WH, INTERROG:
		return true
	}
	return false
}

// Node is either a leaf wrapping one tagged token or a labelled phrase.
// Nodes are never mutated after construction.
type Node struct {
	Label    Label               `json:"label,omitempty"`
	Token    *tagset.TaggedToken `json:"token,omitempty"`
	Children []*Node             `json:"children,omitempty"`
}

// Leaf wraps a tagged token.
func Leaf(tt tagset.TaggedToken) *Node {
	return &Node{Token: &tt}
}

// Phrase builds a labelled node over children.
func Phrase(label Label, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// Leaves wraps every token in a leaf.
func Leaves(tokens []tagset.TaggedToken) []*Node {
	out := make([]*Node, len(tokens))
	for i, tt := range tokens {
		out[i] = Leaf(tt)
	}
	return out
}

// IsLeaf reports whether n wraps a token.
func (n *Node) IsLeaf() bool { return n != nil && n.Token != nil }

// Is reports whether n is a phrase with the given label.
func (n *Node) Is(label Label) bool {
	return n != nil && n.Token == nil && n.Label == label
}

// Tag returns the leaf tag, or tagset.None for phrases.
func (n *Node) Tag() tagset.Tag {
	if !n.IsLeaf() {
		return tagset.None
	}
	return n.Token.Tag
}

// Text returns the leaf text, or the phrase's leaf texts joined by spaces.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.IsLeaf() {
		return n.Token.Text
	}
	return strings.Join(tagset.Texts(n.Tokens()), " ")
}

// Tokens flattens the subtree into its tagged tokens in order.
func (n *Node) Tokens() []tagset.TaggedToken {
	var out []tagset.TaggedToken
	n.walk(func(leaf *Node) { out = append(out, *leaf.Token) })
	return out
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		fn(n)
		return
	}
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// String renders the subtree in bracket notation: (VP bermain/VB-ACT).
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		b.WriteString(n.Token.Text)
		b.WriteByte('/')
		b.WriteString(string(n.Token.Tag))
		return
	}
	b.WriteByte('(')
	b.WriteString(string(n.Label))
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

// Forest renders a node sequence, one tree per space-separated item.
func Forest(nodes []*Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}
