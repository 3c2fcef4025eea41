// Package data embeds the default tagging resources.
package data

import _ "embed"

// DefaultSeed is the built-in lexicon, pattern table, idiom list and
// transition scores in YAML.
//
//go:embed default.yaml
var DefaultSeed []byte
