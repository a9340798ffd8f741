package canvaslayout

import (
	"math"

	"github.com/ha1tch/canvas-toolkit/pkg/canvas"
)

// Avoider post-pass constants.
const (
	ConnectorClearance   = 20.0
	MaxNudgeIterations   = 6
	NodeBBoxMargin       = -8.0
	MaxNudgeDisplacement = 400.0
)

func nodeRect(n *canvas.Node) Rect {
	w, h := n.Width, n.Height
	if w == 0 {
		w = canvas.DefaultNodeWidth
	}
	if h == 0 {
		h = canvas.DefaultNodeHeight
	}
	return Rect{X: n.X, Y: n.Y, Width: w, Height: h}
}

func pathIntersectsNode(path Path, n *canvas.Node, margin float64) bool {
	box := nodeRect(n).Inset(margin)
	for _, p := range path.Points {
		if box.Contains(p) {
			return true
		}
	}
	return false
}

// pathYRangeOverNodeX returns the min/max y of path points whose x falls
// within the node's horizontal span.
func pathYRangeOverNodeX(path Path, n *canvas.Node) (minY, maxY float64, found bool) {
	box := nodeRect(n)
	minY, maxY = math.Inf(1), math.Inf(-1)
	for _, p := range path.Points {
		if p.X < box.Left() || p.X > box.Right() {
			continue
		}
		found = true
		minY = minF(minY, p.Y)
		maxY = maxF(maxY, p.Y)
	}
	return minY, maxY, found
}

// nudgeDirection decides whether a node should be pushed down (+1) or up
// (-1) to clear a path, by averaging the path's y where it passes over
// the node's x span against the node's own center. A node with no
// in-range path points defaults to being pushed down.
func nudgeDirection(path Path, n *canvas.Node) int {
	box := nodeRect(n)
	centerY := box.CenterY()
	sum, count := 0.0, 0
	for _, p := range path.Points {
		if p.X < box.Left() || p.X > box.Right() {
			continue
		}
		sum += p.Y
		count++
	}
	if count == 0 {
		return 1
	}
	if sum/float64(count) >= centerY {
		return 1
	}
	return -1
}

func buildNodeToMachine(c *canvas.Canvas) map[string]*canvas.Machine {
	out := make(map[string]*canvas.Machine)
	for _, nw := range c.Networks {
		for _, f := range nw.Factories {
			for _, m := range f.Machines {
				for _, n := range m.Nodes {
					out[n.ID] = m
				}
			}
		}
	}
	return out
}

// AvoidConnectors runs the iterative connector-aware node-nudging
// post-pass. For every connection, any other node whose margin-inset box
// intersects the connector's sampled bezier path is shifted vertically
// clear of it; a node's machine siblings are carried along with it when
// the nudge would otherwise let the node leapfrog past them. The pass
// repeats, up to MaxNudgeIterations times, stopping as soon as a full
// pass produces no nudges.
func AvoidConnectors(c *canvas.Canvas) {
	nodeToMachine := buildNodeToMachine(c)
	connections := c.AllConnections()

	originalY := make(map[string]float64)
	for _, n := range c.AllNodes() {
		originalY[n.ID] = n.Y
	}

	for iter := 0; iter < MaxNudgeIterations; iter++ {
		nudgedThisIteration := make(map[string]bool)
		anyNudge := false

		for _, conn := range connections {
			srcNode, ok1 := c.GetNode(conn.Source)
			dstNode, ok2 := c.GetNode(conn.Target)
			if !ok1 || !ok2 {
				continue
			}
			path := SamplePath(nodeRect(srcNode), nodeRect(dstNode))

			for _, n := range c.AllNodes() {
				if n.ID == conn.Source || n.ID == conn.Target {
					continue
				}
				if nudgedThisIteration[n.ID] {
					continue
				}
				if !pathIntersectsNode(path, n, NodeBBoxMargin) {
					continue
				}

				direction := nudgeDirection(path, n)
				minY, maxY, found := pathYRangeOverNodeX(path, n)
				if !found {
					continue
				}

				var shift float64
				if direction > 0 {
					shift = maxY + ConnectorClearance - n.Y
					if shift <= 0 {
						continue
					}
				} else {
					shift = (minY - n.Height - ConnectorClearance) - n.Y
					if shift >= 0 {
						continue
					}
				}

				preShiftY := n.Y
				clampedTarget := clampDisplacement(n.Y+shift, originalY[n.ID])
				shift = clampedTarget - n.Y
				if math.Abs(shift) < 5 {
					continue
				}

				n.Y = math.Round(n.Y + shift)
				nudgedThisIteration[n.ID] = true
				anyNudge = true

				shiftLeapfroggedSiblings(nodeToMachine, n, preShiftY, shift, direction, nudgedThisIteration, originalY)
			}
		}

		if !anyNudge {
			return
		}
	}
}

func clampDisplacement(target, original float64) float64 {
	delta := target - original
	if delta > MaxNudgeDisplacement {
		delta = MaxNudgeDisplacement
	}
	if delta < -MaxNudgeDisplacement {
		delta = -MaxNudgeDisplacement
	}
	return original + delta
}

// shiftLeapfroggedSiblings moves a node's machine siblings along with it
// when the nudge just applied would otherwise let the node jump past
// them without carrying them along. The comparison deliberately uses the
// node's pre-shift y, not its post-shift y: a sibling already past where
// the node used to sit is left alone, even though the node has since
// moved beyond it. A sibling is skipped, not partially moved, if carrying
// it by the full shift would push its displacement from its own original
// y beyond MaxNudgeDisplacement.
func shiftLeapfroggedSiblings(nodeToMachine map[string]*canvas.Machine, n *canvas.Node, preShiftY, shift float64, direction int, nudged map[string]bool, originalY map[string]float64) {
	machine, ok := nodeToMachine[n.ID]
	if !ok {
		return
	}
	for _, sib := range machine.Nodes {
		if sib.ID == n.ID || nudged[sib.ID] {
			continue
		}
		carried := direction > 0 && sib.Y >= preShiftY
		carried = carried || (direction < 0 && sib.Y <= preShiftY)
		if !carried {
			continue
		}

		sibOrig, ok := originalY[sib.ID]
		if !ok {
			sibOrig = sib.Y
		}
		sibDisplacement := math.Abs(sib.Y + shift - sibOrig)
		if sibDisplacement > MaxNudgeDisplacement {
			continue
		}

		sib.Y = math.Round(sib.Y + shift)
		nudged[sib.ID] = true
	}
}
