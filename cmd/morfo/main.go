// Command morfo tags, chunks and parses pre-segmented Indonesian text.
//
// Tokens come from the arguments or, when there are none, from stdin with
// one document per line. Results are written as JSON, one value per
// document.
package main

import (
	"fmt"
	"os"
)

// Version info
const Version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "morfo:", err)
		os.Exit(1)
	}
}
