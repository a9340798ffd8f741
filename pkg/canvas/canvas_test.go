package canvas

import "testing"

func buildSample() *Canvas {
	n1 := &Node{ID: "n1", Type: "input", Outputs: []string{"n2"}}
	n2 := &Node{ID: "n2", Type: "process", Label: "Do Work"}
	m := &Machine{ID: "m1", Nodes: []*Node{n1, n2}}
	f := &Factory{ID: "f1", Machines: []*Machine{m}}
	nw := &Network{ID: "nw1", Factories: []*Factory{f}}
	c := NewCanvas()
	c.Networks = []*Network{nw}
	c.BuildIndex()
	return c
}

func TestGetLabelFallsBackToID(t *testing.T) {
	n := &Node{ID: "n1"}
	if got := n.GetLabel(); got != "n1" {
		t.Errorf("GetLabel() = %q, want %q", got, "n1")
	}
	n.Label = "Named"
	if got := n.GetLabel(); got != "Named" {
		t.Errorf("GetLabel() = %q, want %q", got, "Named")
	}
}

func TestGetStyleDefaultsByType(t *testing.T) {
	n := &Node{ID: "n1", Type: "input"}
	if got := n.GetStyle().BorderColor; got != NodeStyles["input"].BorderColor {
		t.Errorf("GetStyle().BorderColor = %q, want %q", got, NodeStyles["input"].BorderColor)
	}
	n.Type = "unknown-type"
	if got := n.GetStyle().BorderColor; got != NodeStyles["default"].BorderColor {
		t.Errorf("GetStyle().BorderColor = %q, want default %q", got, NodeStyles["default"].BorderColor)
	}
	override := NodeStyle{BorderColor: "#abcdef"}
	n.Style = &override
	if got := n.GetStyle().BorderColor; got != "#abcdef" {
		t.Errorf("GetStyle().BorderColor = %q, want override %q", got, "#abcdef")
	}
}

func TestGetNode(t *testing.T) {
	c := buildSample()
	n, ok := c.GetNode("n2")
	if !ok {
		t.Fatalf("GetNode(n2) not found")
	}
	if n.GetLabel() != "Do Work" {
		t.Errorf("GetNode(n2).GetLabel() = %q, want %q", n.GetLabel(), "Do Work")
	}
	if _, ok := c.GetNode("missing"); ok {
		t.Errorf("GetNode(missing) found, want not found")
	}
}

func TestAllNodesFlattensHierarchy(t *testing.T) {
	c := buildSample()
	nodes := c.AllNodes()
	if len(nodes) != 2 {
		t.Fatalf("AllNodes() len = %d, want 2", len(nodes))
	}
}

func TestAllConnectionsDeduplicatesEdges(t *testing.T) {
	n1 := &Node{ID: "n1", Outputs: []string{"n2"}}
	n2 := &Node{ID: "n2", Inputs: []string{"n1"}}
	m := &Machine{ID: "m1", Nodes: []*Node{n1, n2}}
	f := &Factory{ID: "f1", Machines: []*Machine{m}}
	nw := &Network{ID: "nw1", Factories: []*Factory{f}}
	c := NewCanvas()
	c.Networks = []*Network{nw}

	conns := c.AllConnections()
	if len(conns) != 1 {
		t.Fatalf("AllConnections() len = %d, want 1 (deduplicated)", len(conns))
	}
	if conns[0].Source != "n1" || conns[0].Target != "n2" {
		t.Errorf("AllConnections()[0] = %+v, want {n1 n2}", conns[0])
	}
}
