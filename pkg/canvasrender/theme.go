// Package canvasrender renders a laid-out canvas to a PNG image and
// supplies the font-metrics oracle the Sizer measures text against. It
// is the one package in this module that resolves node and container
// style into actual colors; the layout engine never does.
package canvasrender

import (
	"fmt"
	"image/color"
)

// Palette is the full set of colors a theme resolves for every drawn
// element.
type Palette struct {
	Background       string
	TitleColor       string
	LabelColor       string
	BodyTextColor    string
	MutedTextColor   string
	MachineFill      string
	MachineFillAlpha float64
	MachineBorder    string
	MachineLabel     string
	FactoryBorder    string
	FactoryLabel     string
	NodeFill         string
	NodeText         string
	NodeLabel        string
	ConnectionBase   string
}

// DarkTheme is the default palette: Catppuccin Mocha.
var DarkTheme = Palette{
	Background:       "#11111b",
	TitleColor:       "#cdd6f4",
	LabelColor:       "#cdd6f4",
	BodyTextColor:    "#a6adc8",
	MutedTextColor:   "#6c7086",
	MachineFill:      "#181825",
	MachineFillAlpha: 120.0 / 255.0,
	MachineBorder:    "#313244",
	MachineLabel:     "#6c7086",
	FactoryBorder:    "#45475a",
	FactoryLabel:     "#a6adc8",
	NodeFill:         "#1e1e2e",
	NodeText:         "#cdd6f4",
	NodeLabel:        "#cdd6f4",
	ConnectionBase:   "#585b70",
}

// LightTheme is the alternate, light-background palette.
var LightTheme = Palette{
	Background:       "#ffffff",
	TitleColor:       "#1e1e2e",
	LabelColor:       "#1e1e2e",
	BodyTextColor:    "#4c4f69",
	MutedTextColor:   "#6c6f85",
	MachineFill:      "#e6e9ef",
	MachineFillAlpha: 180.0 / 255.0,
	MachineBorder:    "#bcc0cc",
	MachineLabel:     "#5c5f77",
	FactoryBorder:    "#9ca0b0",
	FactoryLabel:     "#4c4f69",
	NodeFill:         "#eff1f5",
	NodeText:         "#1e1e2e",
	NodeLabel:        "#1e1e2e",
	ConnectionBase:   "#8c8fa1",
}

// Themes is the name -> Palette registry.
var Themes = map[string]Palette{
	"dark":  DarkTheme,
	"light": LightTheme,
}

// GetTheme looks up a palette by name, returning an error naming the
// valid options when name isn't registered.
func GetTheme(name string) (Palette, error) {
	if p, ok := Themes[name]; ok {
		return p, nil
	}
	names := make([]string, 0, len(Themes))
	for n := range Themes {
		names = append(names, n)
	}
	return Palette{}, fmt.Errorf("canvasrender: unknown theme %q (valid: %v)", name, names)
}

// parseHex converts a "#rrggbb" string to an opaque color.RGBA. Invalid
// input yields opaque black rather than an error: themes are a closed,
// compile-time-known set, so malformed hex here indicates a programming
// mistake, not bad input data.
func parseHex(hex string) (color.RGBA, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{A: 255}, false
	}
	r, rok := hexByte(hex[1:3])
	g, gok := hexByte(hex[3:5])
	b, bok := hexByte(hex[5:7])
	if !rok || !gok || !bok {
		return color.RGBA{A: 255}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}

func hexByte(s string) (byte, bool) {
	hi, ok1 := hexNibble(s[0])
	lo, ok2 := hexNibble(s[1])
	if !ok1 || !ok2 {
		return 0, false
	}
	return hi<<4 | lo, true
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// withAlpha returns c blended toward the renderer's background at the
// given alpha in [0,1], approximating the translucent container fills
// renderer themes specify.
func withAlpha(c color.RGBA, alpha float64, bg color.RGBA) color.RGBA {
	blend := func(fg, bg uint8) uint8 {
		return uint8(float64(fg)*alpha + float64(bg)*(1-alpha))
	}
	return color.RGBA{
		R: blend(c.R, bg.R),
		G: blend(c.G, bg.G),
		B: blend(c.B, bg.B),
		A: 255,
	}
}
