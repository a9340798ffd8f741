package canvasrender

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ha1tch/canvas-toolkit/pkg/canvaslayout"
)

// Font point sizes per role, at 72 DPI. goregular ships no bold weight,
// so RoleLabel is distinguished from RoleBody by size alone rather than
// by a true bold face.
const (
	labelFontSize = 16.0
	bodyFontSize  = 13.0
	badgeFontSize = 10.0
)

// Metrics is the canvaslayout.FontMetrics implementation backing the
// Sizer, built from the embedded Go regular typeface at three sizes.
type Metrics struct {
	faces map[canvaslayout.FontRole]font.Face
}

// NewMetrics parses the embedded typeface once and builds the three
// role faces the Sizer and renderer measure and draw against.
func NewMetrics() (*Metrics, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("canvasrender: parse embedded font: %w", err)
	}

	sizes := map[canvaslayout.FontRole]float64{
		canvaslayout.RoleLabel: labelFontSize,
		canvaslayout.RoleBody:  bodyFontSize,
		canvaslayout.RoleBadge: badgeFontSize,
	}
	faces := make(map[canvaslayout.FontRole]font.Face, len(sizes))
	for role, size := range sizes {
		face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return nil, fmt.Errorf("canvasrender: build face: %w", err)
		}
		faces[role] = face
	}
	return &Metrics{faces: faces}, nil
}

// MeasureString returns the pixel width/height of text set in the given
// role's face, unwrapped.
func (m *Metrics) MeasureString(role canvaslayout.FontRole, text string) (width, height float64) {
	face := m.faces[role]
	w := font.MeasureString(face, text).Ceil()
	fm := face.Metrics()
	h := (fm.Ascent + fm.Descent).Ceil()
	return float64(w), float64(h)
}

// WrapText breaks text into lines that each fit within maxWidth in the
// given role's face, word-wrapping paragraph by paragraph and falling
// back to a character split for any single word wider than maxWidth.
func (m *Metrics) WrapText(role canvaslayout.FontRole, text string, maxWidth float64) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, m.wrapParagraph(role, paragraph, maxWidth)...)
	}
	return lines
}

func (m *Metrics) wrapParagraph(role canvaslayout.FontRole, paragraph string, maxWidth float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		cw, _ := m.MeasureString(role, candidate)
		if cw <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	lines = append(lines, current)

	var wrapped []string
	for _, line := range lines {
		lw, _ := m.MeasureString(role, line)
		if lw <= maxWidth || len([]rune(line)) <= 1 {
			wrapped = append(wrapped, line)
			continue
		}
		wrapped = append(wrapped, m.wrapByCharacter(role, line, maxWidth)...)
	}
	return wrapped
}

func (m *Metrics) wrapByCharacter(role canvaslayout.FontRole, word string, maxWidth float64) []string {
	var lines []string
	current := ""
	for _, r := range word {
		candidate := current + string(r)
		w, _ := m.MeasureString(role, candidate)
		if w <= maxWidth || current == "" {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = string(r)
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
