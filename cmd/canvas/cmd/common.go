package cmd

import (
	"fmt"
	"os"

	"github.com/ha1tch/canvas-toolkit/pkg/canvas"
	"github.com/ha1tch/canvas-toolkit/pkg/canvasfile"
)

func loadCanvas(path string) (*canvas.Canvas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c, err := canvasfile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}
