package dependency

import (
	"strings"

	"github.com/orsinium-labs/stopwords"

	"github.com/kittclouds/morfo/pkg/chunker"
	"github.com/kittclouds/morfo/pkg/tagset"
)

// A finder implements any subset of the capability interfaces below. The
// parser probes them once; a missing capability leaves its slot empty.
type (
	RootFinder interface {
		FindRoot(Sentence) *tagset.TaggedToken
	}
	SubjectFinder interface {
		FindNSubj(Sentence) *tagset.TaggedToken
	}
	ObjectFinder interface {
		FindDObj(Sentence) *tagset.TaggedToken
	}
	// ObjFinder is consulted for the direct object only when the finder
	// is not an ObjectFinder.
	ObjFinder interface {
		FindObj(Sentence) *tagset.TaggedToken
	}
	XCompFinder interface {
		FindXComp(Sentence) []tagset.TaggedToken
	}
	PunctFinder interface {
		FindPunctuation(Sentence) []tagset.TaggedToken
	}
)

// HeuristicFinder reads dependency slots off the chunk structure:
//   - root is the first verb of the first VP
//   - nsubj is the head of the NP right before that VP
//   - dobj is the head of the first NP inside it, or right after it
//   - xcomp are the verbs of VPs embedded under a PP
//   - punct are the symbol leaves
//
// An NP head is its first noun or pronoun that is not a stopword.
type HeuristicFinder struct {
	StopWords       map[string]bool // custom stopwords, lowercase
	stopwordChecker *stopwords.Stopwords
}

// NewHeuristicFinder creates a finder with the Indonesian stopword list plus
// extra words.
func NewHeuristicFinder(extra ...string) *HeuristicFinder {
	f := &HeuristicFinder{
		StopWords:       make(map[string]bool, len(extra)),
		stopwordChecker: stopwords.Get("id"),
	}
	for _, w := range extra {
		f.StopWords[strings.ToLower(w)] = true
	}
	return f
}

// IsStopword reports whether word is ignored when picking phrase heads.
func (f *HeuristicFinder) IsStopword(word string) bool {
	key := strings.ToLower(word)
	if f.StopWords[key] {
		return true
	}
	return f.stopwordChecker != nil && f.stopwordChecker.Contains(key)
}

// FindRoot implements RootFinder.
func (f *HeuristicFinder) FindRoot(s Sentence) *tagset.TaggedToken {
	if vp := firstPhrase(s, chunker.VP); vp >= 0 {
		if tt := firstLeaf(s[vp], isVerb); tt != nil {
			return tt
		}
	}
	for _, n := range s {
		if tt := firstLeaf(n, isVerb); tt != nil {
			return tt
		}
	}
	return nil
}

// FindNSubj implements SubjectFinder.
func (f *HeuristicFinder) FindNSubj(s Sentence) *tagset.TaggedToken {
	vp := firstPhrase(s, chunker.VP)
	if vp <= 0 {
		return nil
	}
	// Nearest NP before the predicate.
	for i := vp - 1; i >= 0; i-- {
		if s[i].Is(chunker.NP) {
			return f.head(s[i])
		}
	}
	return nil
}

// FindDObj implements ObjectFinder.
func (f *HeuristicFinder) FindDObj(s Sentence) *tagset.TaggedToken {
	vp := firstPhrase(s, chunker.VP)
	if vp < 0 {
		return nil
	}
	for _, c := range s[vp].Children {
		if c.Is(chunker.NP) {
			if tt := f.head(c); tt != nil {
				return tt
			}
		}
	}
	for _, n := range s[vp+1:] {
		if n.Is(chunker.NP) {
			return f.head(n)
		}
		if n.Is(chunker.VP) {
			break
		}
	}
	return nil
}

// FindXComp implements XCompFinder.
func (f *HeuristicFinder) FindXComp(s Sentence) []tagset.TaggedToken {
	out := []tagset.TaggedToken{}
	var visit func(n *chunker.Node)
	visit = func(n *chunker.Node) {
		if n == nil || n.IsLeaf() {
			return
		}
		if n.Is(chunker.PP) {
			for _, c := range n.Children {
				if c.Is(chunker.VP) {
					if tt := firstLeaf(c, isVerb); tt != nil {
						out = append(out, *tt)
					}
				}
			}
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, n := range s {
		visit(n)
	}
	return out
}

// FindPunctuation implements PunctFinder.
func (f *HeuristicFinder) FindPunctuation(s Sentence) []tagset.TaggedToken {
	out := []tagset.TaggedToken{}
	for _, n := range s {
		for _, tt := range n.Tokens() {
			if tt.Tag.Root() == "SYM" {
				out = append(out, tt)
			}
		}
	}
	return out
}

// head picks the first non-stopword noun or pronoun of an NP, falling back
// to its first noun or pronoun.
func (f *HeuristicFinder) head(np *chunker.Node) *tagset.TaggedToken {
	var fallback *tagset.TaggedToken
	for _, tt := range np.Tokens() {
		if !isNominal(tt.Tag) {
			continue
		}
		if !f.IsStopword(tt.Text) {
			return &tt
		}
		if fallback == nil {
			fallback = &tt
		}
	}
	return fallback
}

func isVerb(t tagset.Tag) bool { return t.Root() == "VB" }

func isNominal(t tagset.Tag) bool {
	r := t.Root()
	return r == "NN" || r == "PRP"
}

func firstPhrase(s Sentence, label chunker.Label) int {
	for i, n := range s {
		if n.Is(label) {
			return i
		}
	}
	return -1
}

func firstLeaf(n *chunker.Node, pred func(tagset.Tag) bool) *tagset.TaggedToken {
	for _, tt := range n.Tokens() {
		if pred(tt.Tag) {
			return &tt
		}
	}
	return nil
}
