package tagger

import (
	"strings"

	"github.com/kittclouds/morfo/pkg/lexicon"
	"github.com/kittclouds/morfo/pkg/tagset"
)

const dash = "-"

// Merge collapses reduplications, the "sama-sama" reply and configured
// idioms into single tagged units. It is a single left-to-right pass; once a
// rule consumes tokens there is no backtracking. idioms may be nil.
func Merge(pairs []tagset.TaggedToken, idioms *lexicon.Dictionary) []tagset.TaggedToken {
	merged := make([]tagset.TaggedToken, 0, len(pairs))

	var texts []string
	if idioms.Len() > 0 {
		texts = tagset.Texts(pairs)
	}

	n := len(pairs)
	for i := 0; i < n; {
		tok := pairs[i]

		if strings.EqualFold(tok.Text, "sama-sama") {
			merged = append(merged, tagset.Pair("sama-sama", tagset.InterjectionReply))
			i++
			continue
		}

		if i+2 < n {
			t1, t2, t3 := pairs[i].Text, pairs[i+1].Text, pairs[i+2].Text
			if strings.EqualFold(t1, "sama") && t2 == dash && strings.EqualFold(t3, "sama") {
				merged = append(merged, tagset.Pair("sama-sama", tagset.InterjectionReply))
				i += 3
				continue
			}
			if t2 == dash && t1 == t3 {
				merged = append(merged, tagset.Pair(t1+dash+t3, tagset.NounRepeat))
				i += 3
				continue
			}
		}

		if i+1 < n && strings.EqualFold(pairs[i].Text, "sama") && strings.EqualFold(pairs[i+1].Text, "sama") {
			merged = append(merged, tagset.Pair("sama-sama", tagset.InterjectionReply))
			i += 2
			continue
		}

		// A dash between two different words is punctuation, not a
		// reduplication or fusion marker.
		if i+2 < n && pairs[i+1].Text == dash && tok.Text != pairs[i+2].Text {
			merged = append(merged, tok, tagset.Pair(dash, tagset.SymbolDash))
			i += 2
			continue
		}

		if texts != nil {
			if words, tag := idioms.MatchAt(texts, i); words > 0 {
				merged = append(merged, tagset.Pair(strings.Join(texts[i:i+words], " "), tag))
				i += words
				continue
			}
		}

		merged = append(merged, tok)
		i++
	}

	return merged
}
