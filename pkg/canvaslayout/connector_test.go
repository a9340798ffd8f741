package canvaslayout

import (
	"math"
	"testing"
)

func TestSamplePathVerticalWhenBeyondHorizon(t *testing.T) {
	src := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	dst := Rect{X: 10, Y: 200, Width: 100, Height: 50}
	path := SamplePath(src, dst)
	if path.SourcePort != PortBottom || path.TargetPort != PortTop {
		t.Errorf("ports = (%s,%s), want (bottom,top)", path.SourcePort, path.TargetPort)
	}
	if len(path.Points) != PathSegments+1 {
		t.Fatalf("len(Points) = %d, want %d", len(path.Points), PathSegments+1)
	}
	first, last := path.Points[0], path.Points[len(path.Points)-1]
	if first.Y != src.Bottom() {
		t.Errorf("first point Y = %v, want %v", first.Y, src.Bottom())
	}
	if last.Y != dst.Top() {
		t.Errorf("last point Y = %v, want %v", last.Y, dst.Top())
	}
}

func TestSamplePathHorizontalWhenWithinHorizon(t *testing.T) {
	src := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	dst := Rect{X: 300, Y: 10, Width: 100, Height: 50}
	path := SamplePath(src, dst)
	if path.SourcePort != PortRight || path.TargetPort != PortLeft {
		t.Errorf("ports = (%s,%s), want (right,left)", path.SourcePort, path.TargetPort)
	}
	first, last := path.Points[0], path.Points[len(path.Points)-1]
	if first.X != src.Right() {
		t.Errorf("first point X = %v, want %v", first.X, src.Right())
	}
	if last.X != dst.Left() {
		t.Errorf("last point X = %v, want %v", last.X, dst.Left())
	}
}

func TestSamplePathReversedHorizontalUsesLeftRightPorts(t *testing.T) {
	src := Rect{X: 300, Y: 0, Width: 100, Height: 50}
	dst := Rect{X: 0, Y: 10, Width: 100, Height: 50}
	path := SamplePath(src, dst)
	if path.SourcePort != PortLeft || path.TargetPort != PortRight {
		t.Errorf("ports = (%s,%s), want (left,right)", path.SourcePort, path.TargetPort)
	}
}

func TestSampleCubicBezierEndpoints(t *testing.T) {
	p0 := Point{0, 0}
	p1 := Point{100, 0}
	pts := sampleCubicBezier(p0, Point{30, 40}, Point{70, -40}, p1, 10)
	if math.Abs(pts[0].X-p0.X) > 1e-9 || math.Abs(pts[0].Y-p0.Y) > 1e-9 {
		t.Errorf("first point = %+v, want %+v", pts[0], p0)
	}
	last := pts[len(pts)-1]
	if math.Abs(last.X-p1.X) > 1e-9 || math.Abs(last.Y-p1.Y) > 1e-9 {
		t.Errorf("last point = %+v, want %+v", last, p1)
	}
}
