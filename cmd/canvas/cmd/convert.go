package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/canvas-toolkit/pkg/canvasfile"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Round-trip a canvas document back to the hierarchical YAML dialect",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		c, err := loadCanvas(args[0])
		if err != nil {
			return err
		}
		out, err := canvasfile.Serialize(c)
		if err != nil {
			return fmt.Errorf("serialize: %w", err)
		}
		if convertOutput == "" {
			_, err = os.Stdout.Write(out)
			return err
		}
		return os.WriteFile(convertOutput, out, 0o644)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output path (defaults to stdout)")
}
