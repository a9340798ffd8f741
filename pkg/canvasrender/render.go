package canvasrender

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	ximgdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/canvas-toolkit/pkg/canvas"
	"github.com/ha1tch/canvas-toolkit/pkg/canvaslayout"
)

// Canvas-level drawing constants. These are distinct from the Sizer's
// own node box-chrome constants in pkg/canvaslayout (NodeTopBar,
// NodeLabelGap, ...), which this renderer also draws directly against.
const (
	CanvasPadding        = 60.0
	ContainerDrawPadding = 45.0
	ContainerLabelHeight = 40.0
	TitleAreaHeight      = 50.0

	// supersampleFactor renders at 4x resolution and downsamples with a
	// Catmull-Rom filter, the antialiasing strategy a plain image.RGBA
	// canvas has no native support for.
	supersampleFactor = 4
)

// RenderPNG draws a fully laid-out canvas to w as a PNG image, resolving
// the named theme for every color. Nodes must already have been sized
// and positioned (AutoSizeNodes + canvaslayout.Organize) before this is
// called; RenderPNG performs no layout of its own.
func RenderPNG(c *canvas.Canvas, w io.Writer, themeName string, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	palette, err := GetTheme(themeName)
	if err != nil {
		return err
	}

	nodes := c.AllNodes()
	bounds, ok := canvaslayout.Bounds(nodes)
	if !ok {
		bounds = canvaslayout.Rect{Width: 400, Height: 300}
	}

	titleOffset := 0.0
	if c.Title != "" {
		titleOffset = TitleAreaHeight
	}

	docWidth := bounds.Width + 2*CanvasPadding
	docHeight := bounds.Height + 2*CanvasPadding + titleOffset
	originX := bounds.X - CanvasPadding
	originY := bounds.Y - CanvasPadding - titleOffset

	metrics, err := NewMetrics()
	if err != nil {
		return err
	}

	ssWidth := int(math.Round(docWidth*scale)) * supersampleFactor
	ssHeight := int(math.Round(docHeight*scale)) * supersampleFactor
	if ssWidth <= 0 || ssHeight <= 0 {
		return fmt.Errorf("canvasrender: degenerate canvas size %dx%d", ssWidth, ssHeight)
	}

	img := image.NewRGBA(image.Rect(0, 0, ssWidth, ssHeight))
	bg, _ := parseHex(palette.Background)
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	r := &renderer{
		img: img, palette: palette, metrics: metrics, bg: bg,
		originX: originX, originY: originY,
		scale: scale * supersampleFactor,
	}

	if c.Title != "" {
		r.drawText(originX+CanvasPadding, originY+CanvasPadding/2, c.Title, canvaslayout.RoleLabel, mustHex(palette.TitleColor))
	}

	for _, nw := range c.Networks {
		for _, f := range nw.Factories {
			r.drawFactory(f)
			for _, m := range f.Machines {
				r.drawMachine(m)
			}
		}
	}

	for _, conn := range c.AllConnections() {
		src, ok1 := c.GetNode(conn.Source)
		dst, ok2 := c.GetNode(conn.Target)
		if !ok1 || !ok2 {
			continue
		}
		r.drawConnector(src, dst)
	}

	for _, n := range nodes {
		r.drawNode(n)
	}

	finalW := int(math.Round(docWidth * scale))
	finalH := int(math.Round(docHeight * scale))
	final := image.NewRGBA(image.Rect(0, 0, finalW, finalH))
	ximgdraw.CatmullRom.Scale(final, final.Bounds(), img, img.Bounds(), ximgdraw.Over, nil)

	return png.Encode(w, final)
}

type renderer struct {
	img              *image.RGBA
	palette          Palette
	metrics          *Metrics
	bg               color.RGBA
	originX, originY float64
	scale            float64
}

func (r *renderer) toPx(x, y float64) (int, int) {
	return int(math.Round((x - r.originX) * r.scale)), int(math.Round((y - r.originY) * r.scale))
}

func (r *renderer) fillRect(x, y, w, h float64, c color.Color) {
	x0, y0 := r.toPx(x, y)
	x1, y1 := r.toPx(x+w, y+h)
	draw.Draw(r.img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *renderer) strokeRect(x, y, w, h float64, c color.Color, lineWidth float64) {
	lw := int(math.Max(1, lineWidth*r.scale))
	x0, y0 := r.toPx(x, y)
	x1, y1 := r.toPx(x+w, y+h)
	u := image.NewUniform(c)
	draw.Draw(r.img, image.Rect(x0, y0, x1, y0+lw), u, image.Point{}, draw.Over)
	draw.Draw(r.img, image.Rect(x0, y1-lw, x1, y1), u, image.Point{}, draw.Over)
	draw.Draw(r.img, image.Rect(x0, y0, x0+lw, y1), u, image.Point{}, draw.Over)
	draw.Draw(r.img, image.Rect(x1-lw, y0, x1, y1), u, image.Point{}, draw.Over)
}

// drawText draws text with its top-left corner at (x, y) in document
// space, converting to the face's baseline via its ascent.
func (r *renderer) drawText(x, y float64, text string, role canvaslayout.FontRole, c color.Color) {
	face := r.metrics.faces[role]
	px, py := r.toPx(x, y)
	baseline := py + face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(px, baseline),
	}
	d.DrawString(text)
}

func (r *renderer) drawFactory(f *canvas.Factory) {
	nodes := allFactoryNodes(f)
	bounds, ok := canvaslayout.Bounds(nodes)
	if !ok {
		return
	}
	box := bounds.Inset(-ContainerDrawPadding)
	box.Height += ContainerLabelHeight
	box.Y -= ContainerLabelHeight

	r.strokeRect(box.X, box.Y, box.Width, box.Height, mustHex(r.palette.FactoryBorder), 1.5)
	r.drawText(box.X+8, box.Y+6, f.GetLabel(), canvaslayout.RoleBody, mustHex(r.palette.FactoryLabel))
}

func (r *renderer) drawMachine(m *canvas.Machine) {
	if len(m.Nodes) == 0 {
		return
	}
	bounds, ok := canvaslayout.Bounds(m.Nodes)
	if !ok {
		return
	}
	box := bounds.Inset(-canvaslayout.MachinePadding)
	box.Height += ContainerLabelHeight
	box.Y -= ContainerLabelHeight

	fill := withAlpha(mustHex(r.palette.MachineFill), r.palette.MachineFillAlpha, r.bg)
	r.fillRect(box.X, box.Y, box.Width, box.Height, fill)
	r.strokeRect(box.X, box.Y, box.Width, box.Height, mustHex(r.palette.MachineBorder), 1.5)
	r.drawText(box.X+8, box.Y+8, m.GetLabel(), canvaslayout.RoleBody, mustHex(r.palette.MachineLabel))
}

func (r *renderer) drawNode(n *canvas.Node) {
	style := n.GetStyle()
	border := mustHex(nonEmpty(style.BorderColor, r.palette.ConnectionBase))
	fill := mustHex(r.palette.NodeFill)

	r.fillRect(n.X, n.Y, n.Width, n.Height, fill)
	r.strokeRect(n.X, n.Y, n.Width, n.Height, border, 1)
	r.fillRect(n.X, n.Y, n.Width, canvaslayout.NodeTopBar, border)

	labelY := n.Y + canvaslayout.NodeTopBar + canvaslayout.NodeLabelGap
	r.drawText(n.X+canvaslayout.NodePadding, labelY, n.GetLabel(), canvaslayout.RoleLabel, mustHex(r.palette.NodeLabel))

	_, labelH := r.metrics.MeasureString(canvaslayout.RoleLabel, n.GetLabel())
	contentY := labelY + labelH + canvaslayout.NodeContentGap
	availableWidth := n.Width - 2*canvaslayout.NodePadding
	for _, line := range r.metrics.WrapText(canvaslayout.RoleBody, n.Content, availableWidth) {
		r.drawText(n.X+canvaslayout.NodePadding, contentY, line, canvaslayout.RoleBody, mustHex(r.palette.NodeText))
		contentY += canvaslayout.NodeLineHeight
	}

	if n.Type != "" {
		badgeY := n.Y + canvaslayout.NodeTopBar + 2
		r.drawText(n.X+n.Width-canvaslayout.NodePadding-40, badgeY, n.Type, canvaslayout.RoleBadge, mustHex(r.palette.MutedTextColor))
	}
}

func (r *renderer) drawConnector(src, dst *canvas.Node) {
	path := canvaslayout.SamplePath(nodeBoxOf(src), nodeBoxOf(dst))
	c := mustHex(r.palette.ConnectionBase)
	for i := 1; i < len(path.Points); i++ {
		r.drawLine(path.Points[i-1], path.Points[i], c)
	}
	r.drawArrowhead(path.Points[len(path.Points)-2], path.Points[len(path.Points)-1], c)
}

func (r *renderer) drawLine(a, b canvaslayout.Point, c color.Color) {
	x0, y0 := r.toPx(a.X, a.Y)
	x1, y1 := r.toPx(b.X, b.Y)
	steps := int(math.Max(math.Abs(float64(x1-x0)), math.Abs(float64(y1-y0))))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := int(math.Round(float64(x0) + t*float64(x1-x0)))
		py := int(math.Round(float64(y0) + t*float64(y1-y0)))
		r.img.Set(px, py, c)
		r.img.Set(px+1, py, c)
		r.img.Set(px, py+1, c)
	}
}

func (r *renderer) drawArrowhead(from, to canvaslayout.Point, c color.Color) {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	const size = 10.0
	const spread = 0.5
	left := canvaslayout.Point{X: to.X - size*math.Cos(angle-spread), Y: to.Y - size*math.Sin(angle-spread)}
	right := canvaslayout.Point{X: to.X - size*math.Cos(angle+spread), Y: to.Y - size*math.Sin(angle+spread)}
	r.drawLine(to, left, c)
	r.drawLine(to, right, c)
}

func nodeBoxOf(n *canvas.Node) canvaslayout.Rect {
	w, h := n.Width, n.Height
	if w == 0 {
		w = canvas.DefaultNodeWidth
	}
	if h == 0 {
		h = canvas.DefaultNodeHeight
	}
	return canvaslayout.Rect{X: n.X, Y: n.Y, Width: w, Height: h}
}

func allFactoryNodes(f *canvas.Factory) []*canvas.Node {
	var out []*canvas.Node
	for _, m := range f.Machines {
		out = append(out, m.Nodes...)
	}
	return out
}

func mustHex(hex string) color.RGBA {
	c, _ := parseHex(hex)
	return c
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
