// Command tinyjs is a thin CLI driver over pkg/tinyjs (spec.md §1: the
// command-line wrapper is explicitly a consumer of the embedding
// surface, not part of the core engine).
package main

import (
	"fmt"
	"os"

	"github.com/tinyjs-go/tinyjs/cmd/tinyjs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
