package canvaslayout

import (
	"testing"

	"github.com/ha1tch/canvas-toolkit/pkg/canvas"
)

func buildAvoiderCanvas() *canvas.Canvas {
	src := &canvas.Node{ID: "src", X: 0, Y: 0, Width: 100, Height: 50, Outputs: []string{"dst"}}
	dst := &canvas.Node{ID: "dst", X: 300, Y: 200, Width: 100, Height: 50}
	blocker := &canvas.Node{ID: "blocker", X: 150, Y: 50, Width: 100, Height: 50}
	m := &canvas.Machine{ID: "m1", Nodes: []*canvas.Node{src, dst, blocker}}
	f := &canvas.Factory{ID: "f1", Machines: []*canvas.Machine{m}}
	nw := &canvas.Network{ID: "nw1", Factories: []*canvas.Factory{f}}
	c := canvas.NewCanvas()
	c.Networks = []*canvas.Network{nw}
	c.BuildIndex()
	return c
}

func TestAvoidConnectorsNudgesIntersectingNode(t *testing.T) {
	c := buildAvoiderCanvas()
	blocker, _ := c.GetNode("blocker")
	before := blocker.Y

	AvoidConnectors(c)

	after := blocker.Y
	if after == before {
		t.Errorf("expected blocker to be nudged away from the connector path, stayed at y=%v", before)
	}
}

func TestAvoidConnectorsTerminatesWithoutPathCrossing(t *testing.T) {
	src := &canvas.Node{ID: "src", X: 0, Y: 0, Width: 100, Height: 50, Outputs: []string{"dst"}}
	dst := &canvas.Node{ID: "dst", X: 1000, Y: 0, Width: 100, Height: 50}
	m := &canvas.Machine{ID: "m1", Nodes: []*canvas.Node{src, dst}}
	f := &canvas.Factory{ID: "f1", Machines: []*canvas.Machine{m}}
	nw := &canvas.Network{ID: "nw1", Factories: []*canvas.Factory{f}}
	c := canvas.NewCanvas()
	c.Networks = []*canvas.Network{nw}
	c.BuildIndex()

	srcY, dstY := src.Y, dst.Y
	AvoidConnectors(c)
	if src.Y != srcY || dst.Y != dstY {
		t.Errorf("endpoints should never move: src.Y %v->%v, dst.Y %v->%v", srcY, src.Y, dstY, dst.Y)
	}
}

func TestShiftLeapfroggedSiblingsSkipsSiblingBeyondDisplacementCap(t *testing.T) {
	n := &canvas.Node{ID: "n", Y: 500}
	sibNear := &canvas.Node{ID: "sib-near", Y: 490}
	sibFar := &canvas.Node{ID: "sib-far", Y: 480}
	m := &canvas.Machine{ID: "m1", Nodes: []*canvas.Node{n, sibNear, sibFar}}
	nodeToMachine := map[string]*canvas.Machine{"n": m, "sib-near": m, "sib-far": m}

	originalY := map[string]float64{
		"n":        500,
		"sib-near": 490,
		// sib-far's recorded original y is far from where carrying it by
		// the full shift below would land it, so the cap must skip it.
		"sib-far": 0,
	}
	nudged := map[string]bool{}
	shift := 50.0
	preShiftY := 500.0 // both siblings are above n's pre-shift y -> carried when direction < 0
	shiftLeapfroggedSiblings(nodeToMachine, n, preShiftY, -shift, -1, nudged, originalY)

	if !nudged["sib-near"] {
		t.Errorf("sib-near should have been carried: within its displacement cap")
	}
	if sibNear.Y != 490-shift {
		t.Errorf("sib-near.Y = %v, want %v", sibNear.Y, 490-shift)
	}
	if nudged["sib-far"] {
		t.Errorf("sib-far should have been skipped: carrying it would exceed MaxNudgeDisplacement from its own original y")
	}
	if sibFar.Y != 480 {
		t.Errorf("sib-far.Y should be untouched, got %v", sibFar.Y)
	}
}

func TestClampDisplacementRespectsMaxNudge(t *testing.T) {
	got := clampDisplacement(1000, 0)
	if got != MaxNudgeDisplacement {
		t.Errorf("clampDisplacement(1000,0) = %v, want %v", got, MaxNudgeDisplacement)
	}
	got = clampDisplacement(-1000, 0)
	if got != -MaxNudgeDisplacement {
		t.Errorf("clampDisplacement(-1000,0) = %v, want %v", got, -MaxNudgeDisplacement)
	}
}
