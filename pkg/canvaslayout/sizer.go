package canvaslayout

import (
	"math"

	"github.com/ha1tch/canvas-toolkit/pkg/canvas"
)

// FontRole selects which font face a FontMetrics call measures against.
type FontRole int

const (
	// RoleLabel is the node's bold title line.
	RoleLabel FontRole = iota
	// RoleBody is the node's wrapped content text.
	RoleBody
	// RoleBadge is the small type-tag badge drawn in the top bar.
	RoleBadge
)

// FontMetrics is the font-metrics oracle the Sizer measures text against.
// The layout engine never loads a font itself; a rendering collaborator
// supplies the concrete implementation so this package stays free of any
// font/image dependency.
type FontMetrics interface {
	// MeasureString returns the pixel width and height of text set in the
	// given role's font, unwrapped.
	MeasureString(role FontRole, text string) (width, height float64)
	// WrapText breaks text into lines that each fit within maxWidth when
	// measured in the given role's font.
	WrapText(role FontRole, text string, maxWidth float64) []string
}

// Sizer node-box layout constants.
const (
	NodePadding    = 24.0
	NodeTopBar     = 6.0
	NodeLabelGap   = 12.0
	NodeContentGap = 10.0
	NodeBottomPad  = 36.0
	NodeLineHeight = 24.0
	MinNodeWidth   = 180.0
	MinNodeHeight  = 80.0
	MaxNodeWidth   = 600.0

	typeBadgePadX = 12.0
	typeBadgeGap  = 10.0
)

// SizeNode computes the (width, height) a node's box must be to fit its
// label, type badge, and wrapped body content, clamped to
// [MinNodeWidth, MaxNodeWidth] horizontally and floored at MinNodeHeight
// vertically.
func SizeNode(n *canvas.Node, fm FontMetrics) (width, height float64) {
	labelW, labelH := fm.MeasureString(RoleLabel, n.GetLabel())

	badgeW := 0.0
	if n.Type != "" {
		w, _ := fm.MeasureString(RoleBadge, n.Type)
		badgeW = w + typeBadgePadX + typeBadgeGap
	}

	firstPassMax := MaxNodeWidth - 2*NodePadding
	firstPassLines := fm.WrapText(RoleBody, n.Content, firstPassMax)
	contentW := 0.0
	for _, line := range firstPassLines {
		w, _ := fm.MeasureString(RoleBody, line)
		contentW = maxF(contentW, w)
	}

	innerWidth := maxF(maxF(labelW, contentW), badgeW)
	width = clamp(innerWidth+2*NodePadding, MinNodeWidth, MaxNodeWidth)

	availableWidth := width - 2*NodePadding
	contentLines := fm.WrapText(RoleBody, n.Content, availableWidth)

	height = NodeTopBar + NodeLabelGap + labelH + NodeContentGap
	height += float64(len(contentLines)) * NodeLineHeight
	height += NodeBottomPad
	height = maxF(height, MinNodeHeight)

	return math.Round(width), math.Round(height)
}

// AutoSizeNodes runs SizeNode over every node in the canvas and writes the
// result back into each node's Width/Height fields.
func AutoSizeNodes(c *canvas.Canvas, fm FontMetrics) {
	for _, n := range c.AllNodes() {
		n.Width, n.Height = SizeNode(n, fm)
	}
}

func clamp(v, lo, hi float64) float64 {
	return maxF(lo, minF(hi, v))
}
