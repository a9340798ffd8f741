// Package canvas provides the four-level container data model that the
// layout engine and its collaborators operate on: networks contain
// factories, factories contain machines, machines contain nodes, and nodes
// connect to each other through inputs/outputs lists.
package canvas

import "sort"

// NodeStyle carries optional per-node visual overrides. A nil field (the
// zero value, "") means "use the default for the node's type".
type NodeStyle struct {
	BorderColor string
	FillColor   string
	TextColor   string
	LabelColor  string
	Icon        string
	CornerRadius float64
	BorderWidth  float64
}

// ContainerStyle carries optional per-container visual overrides for
// machines and factories.
type ContainerStyle struct {
	BorderColor  string
	FillColor    string
	LabelColor   string
	Alpha        float64
	CornerRadius float64
	BorderWidth  float64
}

// NodeStyles maps the recognized node type tags to their default border
// color. A type not present here falls back to the "default" entry.
var NodeStyles = map[string]NodeStyle{
	"input":    {BorderColor: "#89b4fa"},
	"output":   {BorderColor: "#f38ba8"},
	"process":  {BorderColor: "#a6e3a1"},
	"decision": {BorderColor: "#f9e2af"},
	"ai":       {BorderColor: "#cba6f7"},
	"source":   {BorderColor: "#94e2d5"},
	"static":   {BorderColor: "#9399b2"},
	"default":  {BorderColor: "#cdd6f4"},
}

// DefaultNodeWidth and DefaultNodeHeight are the dimensions a node gets
// before the Sizer runs, or when a caller never invokes the Sizer at all.
const (
	DefaultNodeWidth  = 360.0
	DefaultNodeHeight = 180.0
)

// Node is a single diagram element inside a machine.
type Node struct {
	ID      string
	Type    string
	Content string
	Label   string
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Inputs  []string
	Outputs []string
	Style   *NodeStyle
}

// GetLabel returns the node's label, falling back to its id when no label
// was set. It never mutates the node.
func (n *Node) GetLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// GetStyle returns the node's style override if present, otherwise the
// default style for its type (or the "default" entry for an unknown type).
func (n *Node) GetStyle() NodeStyle {
	if n.Style != nil {
		return *n.Style
	}
	if s, ok := NodeStyles[n.Type]; ok {
		return s
	}
	return NodeStyles["default"]
}

// Machine is a container of nodes.
type Machine struct {
	ID          string
	Label       string
	Description string
	Nodes       []*Node
	Style       *ContainerStyle
}

// GetLabel returns the machine's label, falling back to its id.
func (m *Machine) GetLabel() string {
	if m.Label != "" {
		return m.Label
	}
	return m.ID
}

// Factory is a container of machines.
type Factory struct {
	ID          string
	Label       string
	Description string
	Machines    []*Machine
	Style       *ContainerStyle
}

// GetLabel returns the factory's label, falling back to its id.
func (f *Factory) GetLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.ID
}

// Network is a container of factories. Networks have no Style field: they
// are not rendered as a visible container, only as a grouping boundary.
type Network struct {
	ID          string
	Label       string
	Description string
	Factories   []*Factory
}

// GetLabel returns the network's label, falling back to its id.
func (nw *Network) GetLabel() string {
	if nw.Label != "" {
		return nw.Label
	}
	return nw.ID
}

// Canvas is the root of the hierarchy plus document-level metadata.
type Canvas struct {
	Version         string
	Title           string
	Width           float64
	Height          float64
	BackgroundColor string
	Theme           string
	Networks        []*Network

	nodeIndex map[string]*Node
}

// TitleHeight is the data model's title height margin. Neither the layout
// engine nor the renderer in this module reads it: layout starts the
// canvas at a fixed y offset and the renderer reserves its own
// TitleAreaHeight when a title is set.
const TitleHeight = 40.0

// NewCanvas returns an empty canvas with the document defaults applied.
func NewCanvas() *Canvas {
	return &Canvas{
		Version: "1.0",
		Width:   1920,
		Height:  1080,
		Theme:   "dark",
	}
}

// BuildIndex rebuilds the flat id -> *Node lookup used by GetNode. Callers
// must invoke this after mutating the hierarchy (adding/removing nodes);
// the layout engine itself never changes node identity, so it never needs
// to call this mid-layout.
func (c *Canvas) BuildIndex() {
	c.nodeIndex = make(map[string]*Node)
	for _, nw := range c.Networks {
		for _, f := range nw.Factories {
			for _, m := range f.Machines {
				for _, n := range m.Nodes {
					c.nodeIndex[n.ID] = n
				}
			}
		}
	}
}

// GetNode looks up a node by id. BuildIndex must have been called at least
// once since the hierarchy was last populated.
func (c *Canvas) GetNode(id string) (*Node, bool) {
	if c.nodeIndex == nil {
		c.BuildIndex()
	}
	n, ok := c.nodeIndex[id]
	return n, ok
}

// AllNodes flattens every node across every network/factory/machine, in
// hierarchy order.
func (c *Canvas) AllNodes() []*Node {
	var out []*Node
	for _, nw := range c.Networks {
		for _, f := range nw.Factories {
			for _, m := range f.Machines {
				out = append(out, m.Nodes...)
			}
		}
	}
	return out
}

// Connection is a deduplicated directed edge between two node ids.
type Connection struct {
	Source string
	Target string
}

// AllConnections returns the deduplicated set of (source, target) edges
// implied by every node's Inputs/Outputs lists, in deterministic order.
func (c *Canvas) AllConnections() []Connection {
	seen := make(map[Connection]bool)
	for _, n := range c.AllNodes() {
		for _, out := range n.Outputs {
			seen[Connection{Source: n.ID, Target: out}] = true
		}
		for _, in := range n.Inputs {
			seen[Connection{Source: in, Target: n.ID}] = true
		}
	}
	out := make([]Connection, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}
