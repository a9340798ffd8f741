package canvaslayout

import "math"

// Port identifies which side of a node's box a connector attaches to.
type Port string

const (
	PortTop    Port = "top"
	PortBottom Port = "bottom"
	PortLeft   Port = "left"
	PortRight  Port = "right"
)

// Path is a sampled connector: the two endpoint ports plus the polyline
// approximating the cubic bezier between them.
type Path struct {
	SourcePort, TargetPort Port
	Points                 []Point
}

// PathSegments is the number of segments the cubic bezier is sampled
// into; SamplePath returns PathSegments+1 points.
const PathSegments = 24

// horizonFactor is the ratio of the source node's height used to decide
// whether a connector routes vertically (top/bottom ports) or
// horizontally (left/right ports).
const horizonFactor = 1.5

// controlPointMinOffset is the minimum bezier control-point offset, used
// when the endpoints are close enough that 0.4x the gap would produce an
// implausibly flat curve.
const controlPointMinOffset = 40.0

// SamplePath computes the bezier-approximated polyline between a source
// and target node's boxes. It chooses ports via the horizon rule: a
// connector routes vertically, through top/bottom ports, only when the
// vertical distance between centers exceeds both horizonFactor times the
// source's height and the horizontal distance between centers; otherwise
// it routes horizontally through left/right ports.
func SamplePath(src, dst Rect) Path {
	dx := dst.CenterX() - src.CenterX()
	dy := dst.CenterY() - src.CenterY()
	horizon := src.Height * horizonFactor

	if math.Abs(dy) > horizon && math.Abs(dy) > math.Abs(dx) {
		return sampleVertical(src, dst, dy)
	}
	return sampleHorizontal(src, dst, dx)
}

func sampleVertical(src, dst Rect, dy float64) Path {
	var p0, p1 Point
	var sourcePort, targetPort Port
	var offsetSign float64

	if dy > 0 {
		p0 = Point{X: src.CenterX(), Y: src.Bottom()}
		p1 = Point{X: dst.CenterX(), Y: dst.Top()}
		sourcePort, targetPort = PortBottom, PortTop
		offsetSign = 1
	} else {
		p0 = Point{X: src.CenterX(), Y: src.Top()}
		p1 = Point{X: dst.CenterX(), Y: dst.Bottom()}
		sourcePort, targetPort = PortTop, PortBottom
		offsetSign = -1
	}

	offset := maxF(math.Abs(p1.Y-p0.Y)*0.4, controlPointMinOffset)
	c1 := Point{X: p0.X, Y: p0.Y + offsetSign*offset}
	c2 := Point{X: p1.X, Y: p1.Y - offsetSign*offset}

	return Path{
		SourcePort: sourcePort,
		TargetPort: targetPort,
		Points:     sampleCubicBezier(p0, c1, c2, p1, PathSegments),
	}
}

func sampleHorizontal(src, dst Rect, dx float64) Path {
	var p0, p1 Point
	var sourcePort, targetPort Port
	var offsetSign float64

	if dx >= 0 {
		p0 = Point{X: src.Right(), Y: src.CenterY()}
		p1 = Point{X: dst.Left(), Y: dst.CenterY()}
		sourcePort, targetPort = PortRight, PortLeft
		offsetSign = 1
	} else {
		p0 = Point{X: src.Left(), Y: src.CenterY()}
		p1 = Point{X: dst.Right(), Y: dst.CenterY()}
		sourcePort, targetPort = PortLeft, PortRight
		offsetSign = -1
	}

	offset := maxF(math.Abs(p1.X-p0.X)*0.4, controlPointMinOffset)
	c1 := Point{X: p0.X + offsetSign*offset, Y: p0.Y}
	c2 := Point{X: p1.X - offsetSign*offset, Y: p1.Y}

	return Path{
		SourcePort: sourcePort,
		TargetPort: targetPort,
		Points:     sampleCubicBezier(p0, c1, c2, p1, PathSegments),
	}
}

func sampleCubicBezier(p0, c1, c2, p1 Point, steps int) []Point {
	points := make([]Point, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		mt2 := mt * mt
		mt3 := mt2 * mt
		t2 := t * t
		t3 := t2 * t
		points[i] = Point{
			X: mt3*p0.X + 3*mt2*t*c1.X + 3*mt*t2*c2.X + t3*p1.X,
			Y: mt3*p0.Y + 3*mt2*t*c1.Y + 3*mt*t2*c2.Y + t3*p1.Y,
		}
	}
	return points
}
