// Command canvas lays out and renders hierarchical diagram canvases: it
// auto-sizes nodes from their text, organizes the four-level
// network/factory/machine/node hierarchy, and optionally rasterizes the
// result to PNG.
package main

import (
	"fmt"
	"os"

	"github.com/ha1tch/canvas-toolkit/cmd/canvas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
