package tagger

import (
	"github.com/kittclouds/morfo/pkg/tagset"
)

var validPrefixes = map[string]bool{
	"di": true, "me": true, "ber": true, "ter": true, "mem": true, "men": true,
	"meng": true, "ke": true, "pe": true, "se": true, "pen": true, "pem": true,
	"per": true,
}

var validSuffixes = map[string]bool{
	"i": true, "kan": true, "an": true, "nya": true, "lah": true, "kah": true,
	"ku": true, "mu": true, "pun": true,
}

type suffixPair struct {
	first, second string
}

var doubleSuffixTags = map[suffixPair]tagset.Tag{
	{"an", "nya"}:  tagset.NounCommon,
	{"kan", "nya"}: tagset.VerbActive,
	{"i", "lah"}:   tagset.VerbActive,
	{"kan", "lah"}: tagset.VerbActive,
	{"an", "ku"}:   tagset.NounCommon,
	{"an", "mu"}:   tagset.NounCommon,
}

// measureWords take se- as a numeral ("seorang", "sekali").
var measureWords = map[string]bool{
	"buah": true, "orang": true, "ekor": true, "kali": true,
}

// prefixFamilyTag maps a prefix to the tag its derivations take.
func prefixFamilyTag(prefix string) tagset.Tag {
	switch prefix {
	case "di":
		return tagset.VerbPassive
	case "ber", "ter":
		return tagset.VerbStative
	case "pe", "pen", "pem", "per":
		return tagset.NounCommon
	}
	return tagset.VerbActive
}

// Fuse reassembles hyphen-marked affix fragments with their roots. Windows
// are tried longest first at each position; a fused window is consumed and
// the scan resumes right after it. Positions that match nothing pass through.
func Fuse(pairs []tagset.TaggedToken) []tagset.TaggedToken {
	fused := make([]tagset.TaggedToken, 0, len(pairs))
	n := len(pairs)

	for i := 0; i < n; {
		if tt, width := fuseAt(pairs, i); width > 0 {
			fused = append(fused, tt)
			i += width
			continue
		}
		fused = append(fused, pairs[i])
		i++
	}

	return fused
}

// fuseAt tries the five fusion windows at position i and returns the fused
// token and the number of input tokens it consumed (0 for no match).
func fuseAt(pairs []tagset.TaggedToken, i int) (tagset.TaggedToken, int) {
	n := len(pairs)

	// prefix- root -suffix -suffix
	if i+3 < n && tagset.IsPrefixFragment(pairs[i].Text) {
		pref := tagset.StripHyphens(pairs[i].Text)
		r := pairs[i+1]
		if s1, w1 := suffixAt(pairs, i+2); w1 > 0 && validPrefixes[pref] {
			if s2, w2 := suffixAt(pairs, i+2+w1); w2 > 0 {
				return tagset.Pair(pref+r.Text+s1+s2, prefixFamilyTag(pref)), 2 + w1 + w2
			}
		}
	}

	// prefix- root -suffix
	if i+2 < n && tagset.IsPrefixFragment(pairs[i].Text) {
		pref := tagset.StripHyphens(pairs[i].Text)
		r := pairs[i+1]
		if suf, w := suffixAt(pairs, i+2); w > 0 && validPrefixes[pref] {
			return tagset.Pair(pref+r.Text+suf, confixTag(pref, suf)), 2 + w
		}
	}

	// root -suffix -suffix
	if i+2 < n {
		r := pairs[i]
		if s1, w1 := suffixAt(pairs, i+1); w1 > 0 {
			if s2, w2 := suffixAt(pairs, i+1+w1); w2 > 0 {
				if tag, ok := doubleSuffixTags[suffixPair{s1, s2}]; ok {
					return tagset.Pair(r.Text+s1+s2, tag), 1 + w1 + w2
				}
			}
		}
	}

	// prefix- root
	if i+1 < n {
		p, r := pairs[i], pairs[i+1]
		if tagset.IsPrefixFragment(p.Text) {
			pref := tagset.StripHyphens(p.Text)
			if validPrefixes[pref] && !r.Tag.HasPrefix("SYM") {
				return tagset.Pair(pref+r.Text, prefixTag(pref, r)), 2
			}
		}
	}

	// root -suffix
	if i+1 < n {
		r := pairs[i]
		if suf, w := suffixAt(pairs, i+1); w > 0 && validSuffixes[suf] {
			return tagset.Pair(r.Text+suf, suffixTag(suf, r.Tag)), 1 + w
		}
	}

	return tagset.TaggedToken{}, 0
}

// suffixAt reads a suffix fragment at j. A hyphenated token ("-kan") takes
// one position. A bare dash followed by a known suffix word ("-", "kan")
// takes two. width is 0 when there is no suffix at j.
func suffixAt(pairs []tagset.TaggedToken, j int) (suffix string, width int) {
	if j >= len(pairs) {
		return "", 0
	}
	tok := pairs[j].Text
	if tagset.IsSuffixFragment(tok) {
		return tagset.StripHyphens(tok), 1
	}
	if tok == dash && j+1 < len(pairs) && validSuffixes[pairs[j+1].Text] {
		return pairs[j+1].Text, 2
	}
	return "", 0
}

// confixTag derives the tag for a prefix+root+suffix window.
func confixTag(prefix, suffix string) tagset.Tag {
	switch {
	case prefix == "di":
		return tagset.VerbPassive
	case prefix == "ber" || prefix == "ter":
		return tagset.VerbStative
	case prefix == "ke" && suffix == "an":
		return tagset.NounAbstract
	case prefix == "se" && suffix == "nya":
		return tagset.AdverbAttrib
	case prefix == "se":
		return tagset.NounCommon
	}
	return prefixFamilyTag(prefix)
}

// prefixTag derives the tag for a prefix+root window.
func prefixTag(prefix string, root tagset.TaggedToken) tagset.Tag {
	switch prefix {
	case "se":
		if measureWords[root.Text] {
			return tagset.DetNumeral
		}
		return tagset.AdverbAttrib
	case "ke":
		if root.Tag == tagset.DetNumeral {
			return tagset.DetOrdinal
		}
		return tagset.NounCommon
	}
	return prefixFamilyTag(prefix)
}

// suffixTag derives the tag for a root+suffix window. -nya nominalises every
// root, verbs included.
func suffixTag(suffix string, rootTag tagset.Tag) tagset.Tag {
	switch suffix {
	case "an", "nya", "ku", "mu":
		return tagset.NounCommon
	case "kan", "i":
		return tagset.VerbActive
	}
	return rootTag
}
