package canvaslayout

import (
	"math"

	"github.com/ha1tch/canvas-toolkit/pkg/canvas"
)

// Spacing and padding schedule for the bottom-up hierarchy driver.
const (
	NodeHorizontalSpacing = 90.0
	NodeVerticalSpacing    = 140.0

	ContainerHorizontalSpacing = 200.0
	ContainerVerticalSpacing   = 240.0

	NetworkHorizontalSpacing = 260.0
	NetworkVerticalSpacing   = 320.0

	InterNetworkHorizontalSpacing = 320.0
	InterNetworkVerticalSpacing   = 380.0

	MachinePadding = 55.0
	FactoryPadding = 75.0
	NetworkPadding = 100.0

	// LabelHeaderHeight is reserved above a rendered container's content
	// for its label. Networks are never rendered as a container, so it
	// is not added to a network's item size on the canvas, only to
	// machine and factory items and to the y offsets inside them.
	LabelHeaderHeight = 40.0

	GridColumnsNode      = 4
	GridColumnsContainer = 3

	documentStartX = 80.0
	documentStartY = 100.0
)

// Bounds computes the bounding box spanning a set of node positions and
// sizes, substituting the default node size for any node that was never
// sized, and ignoring non-finite coordinates. ok is false when no node
// contributed a finite position.
func Bounds(nodes []*canvas.Node) (bounds Rect, ok bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false
	for _, n := range nodes {
		if math.IsNaN(n.X) || math.IsInf(n.X, 0) || math.IsNaN(n.Y) || math.IsInf(n.Y, 0) {
			continue
		}
		r := nodeRect(n)
		found = true
		minX = minF(minX, r.Left())
		minY = minF(minY, r.Top())
		maxX = maxF(maxX, r.Right())
		maxY = maxF(maxY, r.Bottom())
	}
	if !found {
		return Rect{}, false
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// resolveContainerEdges maps node-level connections up to container-pairs,
// dropping self-edges and any endpoint outside the given container set,
// and deduplicating the result.
func resolveContainerEdges(connections []canvas.Connection, nodeToContainer map[string]string, containerIDs map[string]bool) []Edge {
	seen := make(map[Edge]bool)
	for _, conn := range connections {
		src, okS := nodeToContainer[conn.Source]
		dst, okD := nodeToContainer[conn.Target]
		if !okS || !okD || src == dst {
			continue
		}
		if !containerIDs[src] || !containerIDs[dst] {
			continue
		}
		seen[Edge{From: src, To: dst}] = true
	}
	out := make([]Edge, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	return out
}

func localEdgesAmong(nodes []*canvas.Node) []Edge {
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
	}
	seen := make(map[Edge]bool)
	var edges []Edge
	for _, n := range nodes {
		for _, out := range n.Outputs {
			if ids[out] {
				e := Edge{From: n.ID, To: out}
				if !seen[e] {
					seen[e] = true
					edges = append(edges, e)
				}
			}
		}
		for _, in := range n.Inputs {
			if ids[in] {
				e := Edge{From: in, To: n.ID}
				if !seen[e] {
					seen[e] = true
					edges = append(edges, e)
				}
			}
		}
	}
	return edges
}

func organizeMachine(m *canvas.Machine, orientation Orientation) (Rect, bool) {
	if len(m.Nodes) == 0 {
		return Rect{}, false
	}

	items := make([]*Item, len(m.Nodes))
	for i, n := range m.Nodes {
		r := nodeRect(n)
		items[i] = &Item{ID: n.ID, Width: r.Width, Height: r.Height, X: n.X, Y: n.Y}
	}
	edges := localEdgesAmong(m.Nodes)

	opts := Options{
		Orientation:       orientation,
		HorizontalSpacing: NodeHorizontalSpacing,
		VerticalSpacing:   NodeVerticalSpacing,
		StartX:            MachinePadding,
		StartY:            MachinePadding + LabelHeaderHeight,
		ReferenceCenterX:  MachinePadding,
		ReferenceCenterY:  MachinePadding + LabelHeaderHeight,
		GridColumns:       GridColumnsNode,
	}
	PlaceFlat(items, edges, opts)

	byID := make(map[string]*Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	for _, n := range m.Nodes {
		it := byID[n.ID]
		n.X, n.Y = it.X, it.Y
	}

	return Bounds(m.Nodes)
}

func allFactoryNodes(f *canvas.Factory) []*canvas.Node {
	var out []*canvas.Node
	for _, m := range f.Machines {
		out = append(out, m.Nodes...)
	}
	return out
}

func allNetworkNodes(nw *canvas.Network) []*canvas.Node {
	var out []*canvas.Node
	for _, f := range nw.Factories {
		out = append(out, allFactoryNodes(f)...)
	}
	return out
}

func organizeFactory(f *canvas.Factory, orientation Orientation, connections []canvas.Connection) (Rect, bool) {
	if len(f.Machines) == 0 {
		return Rect{}, false
	}

	type laidOutMachine struct {
		machine *canvas.Machine
		bounds  Rect
		item    *Item
	}
	layouts := make([]laidOutMachine, 0, len(f.Machines))
	nodeToMachine := make(map[string]string)
	machineIDs := make(map[string]bool, len(f.Machines))

	for _, m := range f.Machines {
		bounds, ok := organizeMachine(m, orientation)
		if !ok {
			bounds = Rect{Width: canvas.DefaultNodeWidth, Height: canvas.DefaultNodeHeight}
		}
		for _, n := range m.Nodes {
			nodeToMachine[n.ID] = m.ID
		}
		machineIDs[m.ID] = true
		item := &Item{
			ID:     m.ID,
			Width:  bounds.Width + MachinePadding*2,
			Height: bounds.Height + MachinePadding*2 + LabelHeaderHeight,
		}
		layouts = append(layouts, laidOutMachine{machine: m, bounds: bounds, item: item})
	}

	items := make([]*Item, len(layouts))
	for i, l := range layouts {
		items[i] = l.item
	}
	edges := resolveContainerEdges(connections, nodeToMachine, machineIDs)

	opts := Options{
		Orientation:       orientation,
		HorizontalSpacing: ContainerHorizontalSpacing,
		VerticalSpacing:   ContainerVerticalSpacing,
		StartX:            FactoryPadding,
		StartY:            FactoryPadding + LabelHeaderHeight,
		ReferenceCenterX:  FactoryPadding,
		ReferenceCenterY:  FactoryPadding + LabelHeaderHeight,
		GridColumns:       GridColumnsContainer,
	}
	PlaceFlat(items, edges, opts)

	for _, l := range layouts {
		dx := l.item.X + MachinePadding - l.bounds.X
		dy := l.item.Y + MachinePadding + LabelHeaderHeight - l.bounds.Y
		for _, n := range l.machine.Nodes {
			n.X += dx
			n.Y += dy
		}
	}

	return Bounds(allFactoryNodes(f))
}

func organizeNetwork(nw *canvas.Network, orientation Orientation, connections []canvas.Connection) (Rect, bool) {
	if len(nw.Factories) == 0 {
		return Rect{}, false
	}

	type laidOutFactory struct {
		factory *canvas.Factory
		bounds  Rect
		item    *Item
	}
	layouts := make([]laidOutFactory, 0, len(nw.Factories))
	nodeToFactory := make(map[string]string)
	factoryIDs := make(map[string]bool, len(nw.Factories))

	for _, f := range nw.Factories {
		bounds, ok := organizeFactory(f, orientation, connections)
		if !ok {
			bounds = Rect{Width: canvas.DefaultNodeWidth, Height: canvas.DefaultNodeHeight}
		}
		for _, n := range allFactoryNodes(f) {
			nodeToFactory[n.ID] = f.ID
		}
		factoryIDs[f.ID] = true
		item := &Item{
			ID:     f.ID,
			Width:  bounds.Width + FactoryPadding*2,
			Height: bounds.Height + FactoryPadding*2 + LabelHeaderHeight,
		}
		layouts = append(layouts, laidOutFactory{factory: f, bounds: bounds, item: item})
	}

	// A single factory needs no arrangement among siblings: translate it
	// straight to the network's origin rather than running the Placer.
	if len(layouts) == 1 {
		l := layouts[0]
		dx := NetworkPadding - l.bounds.X
		dy := NetworkPadding + LabelHeaderHeight - l.bounds.Y
		for _, n := range allFactoryNodes(l.factory) {
			n.X += dx
			n.Y += dy
		}
		return Bounds(allNetworkNodes(nw))
	}

	items := make([]*Item, len(layouts))
	for i, l := range layouts {
		items[i] = l.item
	}
	edges := resolveContainerEdges(connections, nodeToFactory, factoryIDs)

	opts := Options{
		Orientation:       orientation,
		HorizontalSpacing: NetworkHorizontalSpacing,
		VerticalSpacing:   NetworkVerticalSpacing,
		StartX:            NetworkPadding,
		StartY:            NetworkPadding + LabelHeaderHeight,
		ReferenceCenterX:  NetworkPadding,
		ReferenceCenterY:  NetworkPadding + LabelHeaderHeight,
		GridColumns:       GridColumnsContainer,
	}
	PlaceFlat(items, edges, opts)

	for _, l := range layouts {
		dx := l.item.X + FactoryPadding - l.bounds.X
		dy := l.item.Y + FactoryPadding + LabelHeaderHeight - l.bounds.Y
		for _, n := range allFactoryNodes(l.factory) {
			n.X += dx
			n.Y += dy
		}
	}

	return Bounds(allNetworkNodes(nw))
}

// Organize runs the full bottom-up hierarchical layout over a canvas:
// every machine is organized within its factory, every factory within
// its network, and every network against its siblings (skipped, with a
// direct translation to the document origin, when there is only one).
// AvoidConnectors then runs once as a post-pass over the whole canvas.
func Organize(c *canvas.Canvas, orientation Orientation) {
	if len(c.Networks) == 0 {
		return
	}
	connections := c.AllConnections()

	if len(c.Networks) == 1 {
		nw := c.Networks[0]
		bounds, ok := organizeNetwork(nw, orientation, connections)
		if ok {
			dx := documentStartX - bounds.X
			dy := documentStartY - bounds.Y
			for _, n := range allNetworkNodes(nw) {
				n.X += dx
				n.Y += dy
			}
		}
		AvoidConnectors(c)
		return
	}

	type laidOutNetwork struct {
		network *canvas.Network
		bounds  Rect
		item    *Item
	}
	layouts := make([]laidOutNetwork, 0, len(c.Networks))
	nodeToNetwork := make(map[string]string)
	networkIDs := make(map[string]bool, len(c.Networks))

	for _, nw := range c.Networks {
		bounds, ok := organizeNetwork(nw, orientation, connections)
		if !ok {
			bounds = Rect{Width: canvas.DefaultNodeWidth, Height: canvas.DefaultNodeHeight}
		}
		for _, n := range allNetworkNodes(nw) {
			nodeToNetwork[n.ID] = nw.ID
		}
		networkIDs[nw.ID] = true
		// Networks are never drawn as a rendered container, so no
		// LabelHeaderHeight is reserved for them.
		item := &Item{
			ID:     nw.ID,
			Width:  bounds.Width + NetworkPadding*2,
			Height: bounds.Height + NetworkPadding*2,
		}
		layouts = append(layouts, laidOutNetwork{network: nw, bounds: bounds, item: item})
	}

	items := make([]*Item, len(layouts))
	for i, l := range layouts {
		items[i] = l.item
	}
	edges := resolveContainerEdges(connections, nodeToNetwork, networkIDs)

	opts := Options{
		Orientation:       orientation,
		HorizontalSpacing: InterNetworkHorizontalSpacing,
		VerticalSpacing:   InterNetworkVerticalSpacing,
		StartX:            documentStartX,
		StartY:            documentStartY,
		ReferenceCenterX:  documentStartX,
		ReferenceCenterY:  documentStartY,
		GridColumns:       GridColumnsContainer,
	}
	PlaceFlat(items, edges, opts)

	for _, l := range layouts {
		dx := l.item.X + NetworkPadding - l.bounds.X
		dy := l.item.Y + NetworkPadding - l.bounds.Y
		for _, n := range allNetworkNodes(l.network) {
			n.X += dx
			n.Y += dy
		}
	}

	AvoidConnectors(c)
}
