package tagset

import "strings"

// IsPrefixFragment reports whether a token is a split-off prefix ("di-").
// A bare dash is not a fragment.
func IsPrefixFragment(tok string) bool {
	return strings.HasSuffix(tok, "-") && StripHyphens(tok) != ""
}

// IsSuffixFragment reports whether a token is a split-off suffix ("-kan").
// A bare dash is not a fragment.
func IsSuffixFragment(tok string) bool {
	return strings.HasPrefix(tok, "-") && StripHyphens(tok) != ""
}

// StripHyphens removes leading and trailing hyphens.
func StripHyphens(tok string) string {
	return strings.Trim(tok, "-")
}

// IsReduplicated reports whether tok is two equal halves joined by a single
// hyphen ("anak-anak").
func IsReduplicated(tok string) bool {
	parts := strings.Split(tok, "-")
	return len(parts) == 2 && parts[0] != "" && parts[0] == parts[1]
}
