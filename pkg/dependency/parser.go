package dependency

import (
	"github.com/kittclouds/morfo/pkg/chunker"
	"github.com/kittclouds/morfo/pkg/tagset"
)

// Components holds the dependency slots of one sentence. Slots a finder
// cannot fill stay nil or empty.
type Components struct {
	Root  *tagset.TaggedToken  `json:"root"`
	NSubj *tagset.TaggedToken  `json:"nsubj"`
	DObj  *tagset.TaggedToken  `json:"dobj"`
	XComp []tagset.TaggedToken `json:"xcomp"`
	Punct []tagset.TaggedToken `json:"punct"`
}

// SentenceResult is the parse of one sentence. IDs start at 1.
type SentenceResult struct {
	ID           int        `json:"sentence_id"`
	Text         string     `json:"text"`
	Dependencies Components `json:"dependencies"`
}

// Parser splits forests into sentences and runs the finder on each.
type Parser struct {
	root  RootFinder
	subj  SubjectFinder
	obj   func(Sentence) *tagset.TaggedToken
	xcomp XCompFinder
	punct PunctFinder
}

// NewParser probes finder for its capabilities. finder may implement any
// subset of the finder interfaces, or none.
func NewParser(finder any) *Parser {
	p := &Parser{}
	p.root, _ = finder.(RootFinder)
	p.subj, _ = finder.(SubjectFinder)
	switch f := finder.(type) {
	case ObjectFinder:
		p.obj = f.FindDObj
	case ObjFinder:
		p.obj = f.FindObj
	}
	p.xcomp, _ = finder.(XCompFinder)
	p.punct, _ = finder.(PunctFinder)
	return p
}

// Components fills the dependency slots for one sentence.
func (p *Parser) Components(s Sentence) Components {
	c := Components{
		XComp: []tagset.TaggedToken{},
		Punct: []tagset.TaggedToken{},
	}
	if p.root != nil {
		c.Root = p.root.FindRoot(s)
	}
	if p.subj != nil {
		c.NSubj = p.subj.FindNSubj(s)
	}
	if p.obj != nil {
		c.DObj = p.obj(s)
	}
	if p.xcomp != nil {
		if xs := p.xcomp.FindXComp(s); xs != nil {
			c.XComp = xs
		}
	}
	if p.punct != nil {
		if ps := p.punct.FindPunctuation(s); ps != nil {
			c.Punct = ps
		}
	}
	return c
}

// Parse splits nodes into sentences and extracts each one's components.
// Empty input yields an empty result.
func (p *Parser) Parse(nodes []*chunker.Node) []SentenceResult {
	results := []SentenceResult{}
	for idx, s := range Split(nodes) {
		if len(s) == 0 {
			continue
		}
		results = append(results, SentenceResult{
			ID:           idx + 1,
			Text:         s.Text(),
			Dependencies: p.Components(s),
		})
	}
	return results
}

// ParsePhrase parses the children of a phrase node. A leaf or nil node is
// not a parseable structure and yields an empty result.
func (p *Parser) ParsePhrase(n *chunker.Node) []SentenceResult {
	if n == nil || n.IsLeaf() {
		return []SentenceResult{}
	}
	return p.Parse(n.Children)
}
