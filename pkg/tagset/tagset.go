// Package tagset defines the hierarchical tag vocabulary and the tagged-token
// pair shared by the tagger, chunker and dependency layers.
//
// A tag is a root category optionally followed by a hyphen and a subtype:
// "VB-ACT" has root "VB" and subtype "ACT". The empty tag means "not yet
// decided" and only appears between pipeline stages.
package tagset

import "strings"

// Tag is a hierarchical part-of-speech label.
type Tag string

// None is the unset tag.
const None Tag = ""

const (
	// Verbs
	VerbActive    Tag = "VB-ACT"
	VerbPassive   Tag = "VB-PASS"
	VerbStative   Tag = "VB-STAT"
	VerbCausative Tag = "VB-CAUS"

	// Nouns
	NounCommon     Tag = "NN-COM"
	NounAbstract   Tag = "NN-ABST"
	NounCollective Tag = "NN-COLL"
	NounRepeat     Tag = "NN-REPEAT"
	NounProper     Tag = "NN-PROP"

	// Determiners
	DetNumeral    Tag = "DT-NUM"
	DetOrdinal    Tag = "DT-ORD"
	DetDefinite   Tag = "DT-DEF"
	AdverbAttrib  Tag = "ADV-ATT"
	ModalEmphasis Tag = "MOD-EMPH"
	ModalTemporal Tag = "MOD-TEMP"
	ModalAction   Tag = "MOD-ACT"

	// Pronouns
	PronounPossessive    Tag = "PRP-POSS"
	PronounPersonal      Tag = "PRP-PER"
	PronounDemonstrative Tag = "PRP-DEM"

	AdjQuality Tag = "JJ-QUALITY"
	AdjEmotion Tag = "JJ-EMOTION"

	Preposition       Tag = "IN"
	InterjectionReply Tag = "INT-RESP"

	Symbol      Tag = "SYM"
	SymbolDash  Tag = "SYM-DASH"
	SymbolQuote Tag = "SYM-QUOTE"

	// Unknown is the marker produced by inference and by a starved decoder.
	Unknown Tag = "<UNK>"
	// Start is the synthetic sentence-start tag the scorer sees first.
	Start Tag = "<s>"
)

// Root returns the category before the first hyphen.
func (t Tag) Root() string {
	s := string(t)
	if i := strings.IndexByte(s, '-'); i >= 0 {
		return s[:i]
	}
	return s
}

// Sub returns the subtype after the first hyphen, or "".
func (t Tag) Sub() string {
	s := string(t)
	if i := strings.IndexByte(s, '-'); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// HasPrefix reports whether the tag text starts with prefix.
func (t Tag) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(t), prefix)
}

// IsSet reports whether a tag has been assigned.
func (t Tag) IsSet() bool { return t != None }

// IsDecided reports whether the tag is set and is not the unknown marker.
func (t Tag) IsDecided() bool { return t != None && t != Unknown }

func (t Tag) String() string { return string(t) }

// TaggedToken pairs a surface token with its tag. Identity is positional.
type TaggedToken struct {
	Text string `json:"text"`
	Tag  Tag    `json:"tag"`
}

// Pair is shorthand for constructing a TaggedToken.
func Pair(text string, tag Tag) TaggedToken {
	return TaggedToken{Text: text, Tag: tag}
}

// Untagged wraps plain tokens with unset tags.
func Untagged(tokens []string) []TaggedToken {
	out := make([]TaggedToken, len(tokens))
	for i, tok := range tokens {
		out[i] = TaggedToken{Text: tok}
	}
	return out
}

// Texts returns the surface forms of a tagged sequence.
func Texts(tokens []TaggedToken) []string {
	out := make([]string, len(tokens))
	for i, tt := range tokens {
		out[i] = tt.Text
	}
	return out
}
