// Package cmd wires the canvas binary's subcommand tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canvas",
	Short: "Lay out and render hierarchical diagram canvases",
	Long: `canvas auto-sizes, organizes, and renders the four-level
network/factory/machine/node diagrams this toolkit operates on.`,
}

// Execute runs the root command and its subcommand tree.
func Execute() error {
	return rootCmd.Execute()
}

// BinName returns the name used in usage/example text.
func BinName() string {
	return rootCmd.Use
}

func init() {
	rootCmd.Example = fmt.Sprintf(`  %s layout diagram.yaml
  %s render diagram.yaml -o diagram.png --theme light
  %s validate diagram.yaml
  %s convert diagram.yaml -o diagram.out.yaml`, BinName(), BinName(), BinName(), BinName())
}
