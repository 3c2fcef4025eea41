package chunker

import (
	"strings"

	"github.com/kittclouds/morfo/pkg/tagset"
)

// tagAt returns the tag of the leaf at i, or tagset.None for a phrase node
// or an out-of-range cursor.
func tagAt(nodes []*Node, i int) tagset.Tag {
	if i < 0 || i >= len(nodes) {
		return tagset.None
	}
	return nodes[i].Tag()
}

func phraseAt(nodes []*Node, i int, label Label) bool {
	return i >= 0 && i < len(nodes) && nodes[i].Is(label)
}

func isNPTag(t tagset.Tag) bool {
	switch t.Root() {
	case "DT", "PRP", "NN":
		return true
	}
	return false
}

// isAdjTag accepts the adjective subtypes that continue an ADJP. The bare
// "MOD" tag is never produced by the tagger but is honoured if injected.
func isAdjTag(t tagset.Tag) bool {
	return t == tagset.AdjEmotion || t == tagset.AdjQuality || t == "MOD"
}

func isAdvTag(t tagset.Tag) bool {
	switch t.Root() {
	case "MOD", "ADV":
		return true
	}
	return false
}

func isVerbTag(t tagset.Tag) bool { return t.HasPrefix("VB") }

func isModalHead(t tagset.Tag) bool {
	return t == tagset.ModalTemporal || t == tagset.ModalAction
}

func isPrepTag(t tagset.Tag) bool { return t.HasPrefix("IN-") }

// runWhile collects nodes from i while pred holds for their tag.
func runWhile(nodes []*Node, i int, pred func(tagset.Tag) bool) ([]*Node, int) {
	start := i
	for i < len(nodes) && pred(tagAt(nodes, i)) {
		i++
	}
	if i == start {
		return nil, i
	}
	return append([]*Node(nil), nodes[start:i]...), i
}

// BuildNP consumes determiners, pronouns, nouns and non-quality adjectives.
// When the NP is followed by a quality adjective or a verb, the predicate
// is built in place and both nodes are returned.
//
// The NP is returned even when it consumed nothing.
func BuildNP(nodes []*Node, i int) ([]*Node, int) {
	if i >= len(nodes) {
		return nil, i
	}

	buf, i := runWhile(nodes, i, func(t tagset.Tag) bool {
		return isNPTag(t) || (t.HasPrefix("JJ") && t != tagset.AdjQuality)
	})
	np := Phrase(NP, buf...)

	if next := tagAt(nodes, i); next == tagset.AdjQuality || isVerbTag(next) {
		vp, j := BuildVP(nodes, i)
		return []*Node{np, vp}, j
	}
	return []*Node{np}, i
}

// BuildVP builds a verb phrase with a fixed adjunct order: leading verb,
// modal or preposition clause, pre-built PPs, a second verb, an object NP,
// adverbs and quality adjectives, further preposition clauses and finally
// any remaining pre-built PPs.
//
// A temporal or action modal followed by a verb embeds the nested VP under
// a PP node headed by the modal.
func BuildVP(nodes []*Node, i int) (*Node, int) {
	if i >= len(nodes) {
		return nil, i
	}
	var buf []*Node

	if isVerbTag(tagAt(nodes, i)) {
		buf = append(buf, nodes[i])
		i++
	}

	switch tag := tagAt(nodes, i); {
	case isModalHead(tag):
		mod := nodes[i]
		i++
		if isVerbTag(tagAt(nodes, i)) {
			var nested *Node
			nested, i = BuildVP(nodes, i)
			buf = append(buf, Phrase(PP, mod, nested))
		} else {
			buf = append(buf, mod)
		}
	case isPrepTag(tag):
		pp, next, embedded := buildPrepClause(nodes, i)
		i = next
		buf = append(buf, pp)
		if embedded {
			return Phrase(VP, buf...), i
		}
	}

	for phraseAt(nodes, i, PP) {
		buf = append(buf, nodes[i])
		i++
	}

	if isVerbTag(tagAt(nodes, i)) && !endsInClause(buf) {
		buf = append(buf, nodes[i])
		i++
	}

	if isNPTag(tagAt(nodes, i)) {
		var span []*Node
		span, i = BuildNP(nodes, i)
		buf = append(buf, span...)
	}

	for tag := tagAt(nodes, i); tag.HasPrefix("ADV") || tag == tagset.AdjQuality; tag = tagAt(nodes, i) {
		buf = append(buf, nodes[i])
		i++
	}

	for isPrepTag(tagAt(nodes, i)) {
		var pp *Node
		pp, i, _ = buildPrepClause(nodes, i)
		buf = append(buf, pp)
	}

	for phraseAt(nodes, i, PP) {
		buf = append(buf, nodes[i])
		i++
	}

	return Phrase(VP, buf...), i
}

// endsInClause reports whether the last buffered node is an embedded PP or
// VP, after which a bare verb must not attach.
func endsInClause(buf []*Node) bool {
	if len(buf) == 0 {
		return false
	}
	last := buf[len(buf)-1]
	return last.Is(PP) || last.Is(VP)
}

// buildPrepClause builds the PP headed by the preposition at i. A verb
// right after the preposition embeds a VP; otherwise a noun run becomes an
// NP, or failing that an adverb run becomes an ADVP. embedded reports the
// VP case.
func buildPrepClause(nodes []*Node, i int) (pp *Node, next int, embedded bool) {
	head := nodes[i]
	i++

	if isVerbTag(tagAt(nodes, i)) {
		vp, j := BuildVP(nodes, i)
		return Phrase(PP, head, vp), j, true
	}
	if np, j := runWhile(nodes, i, isNPTag); np != nil {
		return Phrase(PP, head, Phrase(NP, np...)), j, false
	}
	if adv, j := runWhile(nodes, i, isAdvTag); adv != nil {
		return Phrase(PP, head, Phrase(ADVP, adv...)), j, false
	}
	return Phrase(PP, head), i, false
}

// BuildPP builds a prepositional phrase: the head followed by an adverb
// run, a pre-built NP, a fresh NP or nothing.
func BuildPP(nodes []*Node, i int) (*Node, int) {
	if i >= len(nodes) {
		return nil, i
	}
	head := nodes[i]
	i++

	if adv, j := runWhile(nodes, i, isAdvTag); adv != nil {
		return Phrase(PP, head, Phrase(ADVP, adv...)), j
	}
	if phraseAt(nodes, i, NP) {
		return Phrase(PP, head, nodes[i]), i + 1
	}
	if np, j := runWhile(nodes, i, isNPTag); np != nil {
		return Phrase(PP, head, Phrase(NP, np...)), j
	}
	return Phrase(PP, head), i
}

// BuildADJP takes the seed node at i and any following adjectives.
func BuildADJP(nodes []*Node, i int) (*Node, int) {
	return buildSeeded(nodes, i, ADJP, isAdjTag)
}

// BuildADVP takes the seed node at i and any following adverbs or modals.
func BuildADVP(nodes []*Node, i int) (*Node, int) {
	return buildSeeded(nodes, i, ADVP, isAdvTag)
}

func buildSeeded(nodes []*Node, i int, label Label, more func(tagset.Tag) bool) (*Node, int) {
	if i >= len(nodes) {
		return nil, i
	}
	rest, j := runWhile(nodes, i+1, more)
	return Phrase(label, append([]*Node{nodes[i]}, rest...)...), j
}

// interrogContent are the tag roots an interrogative clause runs over.
var interrogContent = map[string]bool{
	"VB": true, "MOD": true, "ADV": true, "NN": true,
	"PRP": true, "IN": true, "DT": true, "JJ": true,
}

// BuildInterrog builds a question: a WH node holding the question word and
// any quote symbols right after it, then a VP over the content words up to
// the next symbol. It returns nil when the node at i is not a question word.
func BuildInterrog(nodes []*Node, i int) (*Node, int) {
	if !tagAt(nodes, i).HasPrefix("Q-") {
		return nil, i
	}

	wh := []*Node{nodes[i]}
	quotes, i := runWhile(nodes, i+1, func(t tagset.Tag) bool {
		return t.HasPrefix(string(tagset.SymbolQuote))
	})
	wh = append(wh, quotes...)

	children := []*Node{Phrase(WH, wh...)}
	content, i := runWhile(nodes, i, func(t tagset.Tag) bool {
		return !strings.HasPrefix(string(t), "SYM") && interrogContent[t.Root()]
	})
	if content != nil {
		children = append(children, Phrase(VP, content...))
	}

	return Phrase(INTERROG, children...), i
}
