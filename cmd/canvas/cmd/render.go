package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/canvas-toolkit/pkg/canvaslayout"
	"github.com/ha1tch/canvas-toolkit/pkg/canvasrender"
)

var (
	renderOutput string
	renderTheme  string
	renderScale  float64
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Auto-size, organize, and render a canvas to PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		c, err := loadCanvas(args[0])
		if err != nil {
			return err
		}

		metrics, err := canvasrender.NewMetrics()
		if err != nil {
			return fmt.Errorf("build font metrics: %w", err)
		}
		canvaslayout.AutoSizeNodes(c, metrics)
		canvaslayout.Organize(c, canvaslayout.Horizontal)

		out, err := os.Create(renderOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", renderOutput, err)
		}
		defer out.Close()

		return canvasrender.RenderPNG(c, out, renderTheme, renderScale)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "canvas.png", "output PNG path")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "dark", "color theme: dark or light")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 1.0, "output scale factor")
}
