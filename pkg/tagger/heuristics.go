package tagger

import (
	"strings"

	"github.com/kittclouds/morfo/pkg/tagset"
)

// RuleTag applies the affix-literal rules to a token that neither the lexicon
// nor the pattern table recognised. Prefix checks run before suffix checks
// and the first match wins.
func RuleTag(token string) (tagset.Tag, bool) {
	switch {
	case token == "di":
		return tagset.Preposition, true
	case strings.HasPrefix(token, "ber-"),
		strings.HasPrefix(token, "me-"),
		strings.HasPrefix(token, "di-"):
		return tagset.VerbActive, true
	case strings.HasPrefix(token, "ter-"):
		return tagset.VerbStative, true
	case strings.HasPrefix(token, "se-") && len(token) > 3:
		return tagset.DetDefinite, true
	case strings.HasSuffix(token, "-kan"):
		return tagset.VerbCausative, true
	case strings.HasSuffix(token, "-nya"):
		return tagset.PronounPossessive, true
	case strings.HasSuffix(token, "-an"):
		return tagset.NounCommon, true
	case strings.HasSuffix(token, "-i") && len(token) > 3:
		return tagset.VerbStative, true
	}
	return tagset.None, false
}

// InferTag is the best-effort second pass over still-untagged tokens. It
// extends the affix rules with confix, emphasis and reduplication checks and
// falls back to tagset.Unknown.
func InferTag(token string) tagset.Tag {
	switch {
	case strings.HasPrefix(token, "ber-"),
		strings.HasPrefix(token, "me-"),
		strings.HasPrefix(token, "di-"):
		return tagset.VerbActive
	case strings.HasPrefix(token, "ter-"):
		return tagset.VerbStative
	case strings.HasPrefix(token, "ke-") && strings.HasSuffix(token, "-an"):
		return tagset.NounAbstract
	case strings.HasSuffix(token, "-kan"):
		return tagset.VerbCausative
	case strings.HasSuffix(token, "-nya"):
		return tagset.PronounPossessive
	case strings.HasSuffix(token, "-an"):
		return tagset.NounCommon
	case strings.HasSuffix(token, "-lah"):
		return tagset.ModalEmphasis
	case strings.HasSuffix(token, "-i"):
		return tagset.VerbStative
	case strings.Contains(token, "-"):
		if tagset.IsReduplicated(token) {
			return tagset.NounCollective
		}
		return tagset.NounCommon
	}
	return tagset.Unknown
}

// affixCandidates returns the heuristic candidate tags the decoder falls back
// to when neither the lexicon nor any pattern offers one.
func affixCandidates(token string) []tagset.Tag {
	var out []tagset.Tag
	for _, p := range []string{"me-", "ber-", "di-", "men-", "mem-", "ter-"} {
		if strings.HasPrefix(token, p) {
			out = append(out, tagset.VerbActive)
			break
		}
	}
	if strings.HasSuffix(token, "-an") {
		out = append(out, tagset.NounCommon)
	}
	if strings.HasSuffix(token, "-nya") || strings.HasSuffix(token, "-ku") {
		out = append(out, tagset.PronounPossessive)
	}
	if tagset.IsReduplicated(token) {
		out = append(out, tagset.NounCollective)
	}
	return out
}
