package canvaslayout

import (
	"math"
	"sort"
)

// Orientation selects which axis the Placer lays levels out along.
type Orientation string

const (
	// Horizontal lays levels out left-to-right as columns; within a
	// column, items stack top-to-bottom with overlap prevented via a
	// previous-bottom clamp.
	Horizontal Orientation = "horizontal"
	// Vertical lays levels out top-to-bottom as rows; within a row,
	// items pack left-to-right around a reference center with no
	// overlap-prevention clamp. This asymmetry with Horizontal is
	// intentional, not a bug: it mirrors the heuristic this engine was
	// modeled on, which only guards against overlap along the column
	// axis.
	Vertical Orientation = "vertical"
)

// Item is a positionable box the Placer arranges: a node at the lowest
// hierarchy level, or a padded container bounding box one level up.
type Item struct {
	ID            string
	Width, Height float64
	X, Y          float64
	// NodeIDs can record which leaf node ids this item represents.
	// PlaceFlat does not read it, and the hierarchy driver leaves it nil.
	NodeIDs []string
}

// Edge is a directed edge between two Item ids.
type Edge struct {
	From, To string
}

// Options configures a single PlaceFlat call.
type Options struct {
	Orientation                       Orientation
	HorizontalSpacing, VerticalSpacing float64
	StartX, StartY                     float64
	ReferenceCenterX, ReferenceCenterY float64
	GridColumns                        int
}

// PlaceFlat assigns X/Y to every item, in place, from a flat topological
// layering of the given edges. Edges referencing an unknown item id, or a
// self-edge, are ignored. When there are no valid edges and more than one
// item, it falls back to a grid layout instead of stacking everything at
// one point.
func PlaceFlat(items []*Item, edges []Edge, opts Options) {
	if len(items) == 0 {
		return
	}
	if len(items) == 1 {
		items[0].X = math.Round(opts.StartX)
		items[0].Y = math.Round(opts.StartY)
		return
	}

	index := make(map[string]*Item, len(items))
	for _, it := range items {
		index[it.ID] = it
	}

	var validEdges []Edge
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		if _, ok := index[e.From]; !ok {
			continue
		}
		if _, ok := index[e.To]; !ok {
			continue
		}
		validEdges = append(validEdges, e)
	}

	if len(validEdges) == 0 {
		placeGrid(items, opts)
		return
	}

	levels := assignLevels(items, validEdges, index)

	if opts.Orientation == Vertical {
		placeVertical(items, levels, validEdges, opts)
	} else {
		placeHorizontal(items, levels, validEdges, opts)
	}
}

// assignLevels runs Kahn's algorithm to assign each item a topological
// level, relaxing a target's level upward on every incoming edge. Items
// left over after the queue drains (cycle participants) are assigned a
// level from whichever of their predecessors did get one, sorted by
// (y, x) to keep the fallback deterministic. Levels are then compressed
// to remove gaps.
func assignLevels(items []*Item, edges []Edge, index map[string]*Item) map[string]int {
	outgoing := make(map[string][]string)
	incoming := make(map[string][]string)
	indegree := make(map[string]int, len(items))
	for _, it := range items {
		indegree[it.ID] = 0
	}
	for _, e := range edges {
		outgoing[e.From] = append(outgoing[e.From], e.To)
		incoming[e.To] = append(incoming[e.To], e.From)
		indegree[e.To]++
	}

	levels := make(map[string]int, len(items))
	var queue []*Item
	for _, it := range items {
		if indegree[it.ID] == 0 {
			levels[it.ID] = 0
			queue = append(queue, it)
		}
	}
	sort.Slice(queue, func(i, j int) bool {
		if queue[i].X != queue[j].X {
			return queue[i].X < queue[j].X
		}
		return queue[i].Y < queue[j].Y
	})

	remaining := make(map[string]int, len(indegree))
	for k, v := range indegree {
		remaining[k] = v
	}
	visited := make(map[string]bool, len(items))

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur.ID] {
			continue
		}
		visited[cur.ID] = true

		for _, targetID := range outgoing[cur.ID] {
			if existing, ok := levels[targetID]; !ok || levels[cur.ID]+1 > existing {
				levels[targetID] = levels[cur.ID] + 1
			}
			remaining[targetID]--
			if remaining[targetID] <= 0 && !visited[targetID] {
				queue = append(queue, index[targetID])
			}
		}
	}

	var unresolved []*Item
	for _, it := range items {
		if _, ok := levels[it.ID]; !ok {
			unresolved = append(unresolved, it)
		}
	}
	sort.Slice(unresolved, func(i, j int) bool {
		if unresolved[i].Y != unresolved[j].Y {
			return unresolved[i].Y < unresolved[j].Y
		}
		return unresolved[i].X < unresolved[j].X
	})
	for _, it := range unresolved {
		maxIncoming := -1
		for _, src := range incoming[it.ID] {
			if lvl, ok := levels[src]; ok && lvl > maxIncoming {
				maxIncoming = lvl
			}
		}
		if maxIncoming >= 0 {
			levels[it.ID] = maxIncoming + 1
		} else {
			levels[it.ID] = 0
		}
	}

	normalizeLevels(items, levels)
	return levels
}

func normalizeLevels(items []*Item, levels map[string]int) {
	seen := make(map[int]bool)
	for _, it := range items {
		seen[levels[it.ID]] = true
	}
	uniq := make([]int, 0, len(seen))
	for v := range seen {
		uniq = append(uniq, v)
	}
	sort.Ints(uniq)
	remap := make(map[int]int, len(uniq))
	for i, v := range uniq {
		remap[v] = i
	}
	for _, it := range items {
		levels[it.ID] = remap[levels[it.ID]]
	}
}

// placeGrid lays items out in a grid when the graph has no usable edges,
// sorted by (y, x) for determinism, wrapping at GridColumns (defaulting
// to 1 if unset).
func placeGrid(items []*Item, opts Options) {
	sorted := append([]*Item(nil), items...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	columns := opts.GridColumns
	if columns <= 0 {
		columns = 1
	}
	rows := (len(sorted) + columns - 1) / columns

	colWidths := make([]float64, columns)
	rowHeights := make([]float64, rows)
	for idx, it := range sorted {
		row := idx / columns
		col := idx % columns
		colWidths[col] = maxF(colWidths[col], it.Width)
		rowHeights[row] = maxF(rowHeights[row], it.Height)
	}

	colX := make([]float64, columns)
	cursor := opts.StartX
	for c := 0; c < columns; c++ {
		colX[c] = cursor
		cursor += colWidths[c] + opts.HorizontalSpacing
	}
	rowY := make([]float64, rows)
	cursor = opts.StartY
	for r := 0; r < rows; r++ {
		rowY[r] = cursor
		cursor += rowHeights[r] + opts.VerticalSpacing
	}

	for idx, it := range sorted {
		row := idx / columns
		col := idx % columns
		it.X = math.Round(colX[col])
		it.Y = math.Round(rowY[row])
	}
}

// placeHorizontal lays levels out as columns. Within a column, items are
// ordered by the average center-y of their already-placed parents
// (falling back to the item's own current center-y when it has no placed
// parent), then stacked top to bottom with a previous-bottom clamp so
// siblings never overlap.
func placeHorizontal(items []*Item, levels map[string]int, edges []Edge, opts Options) {
	byLevel, maxLevel := groupByLevel(items, levels)
	parentsOf := parentsIndex(edges)
	placedCenterY := make(map[string]float64, len(items))

	columnX := opts.StartX
	for lvl := 0; lvl <= maxLevel; lvl++ {
		levelItems := byLevel[lvl]
		if len(levelItems) == 0 {
			continue
		}

		type entry struct {
			it             *Item
			center         float64
			fallbackCenter float64
		}
		entries := make([]entry, len(levelItems))
		columnWidth := 0.0
		for i, it := range levelItems {
			sum, n := 0.0, 0
			for _, p := range parentsOf[it.ID] {
				if c, ok := placedCenterY[p]; ok {
					sum += c
					n++
				}
			}
			fallbackCenter := it.Y + it.Height/2
			center := fallbackCenter
			if n > 0 {
				center = sum / float64(n)
			}
			entries[i] = entry{it: it, center: center, fallbackCenter: fallbackCenter}
			columnWidth = maxF(columnWidth, it.Width)
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].center != entries[j].center {
				return entries[i].center < entries[j].center
			}
			if entries[i].fallbackCenter != entries[j].fallbackCenter {
				return entries[i].fallbackCenter < entries[j].fallbackCenter
			}
			return entries[i].it.ID < entries[j].it.ID
		})

		previousBottom := math.Inf(-1)
		for _, e := range entries {
			it := e.it
			desiredTop := e.center - it.Height/2
			if !math.IsInf(previousBottom, -1) {
				desiredTop = maxF(desiredTop, previousBottom+opts.VerticalSpacing)
			}
			it.X = math.Round(columnX)
			it.Y = math.Round(desiredTop)
			placedCenterY[it.ID] = it.Y + it.Height/2
			previousBottom = it.Y + it.Height
		}
		columnX += columnWidth + opts.HorizontalSpacing
	}
}

// placeVertical lays levels out as rows. Within a row, items are sorted
// by (x, id) and packed left to right centered on ReferenceCenterX, with
// no overlap-prevention clamp against neighboring rows.
func placeVertical(items []*Item, levels map[string]int, edges []Edge, opts Options) {
	byLevel, maxLevel := groupByLevel(items, levels)

	rowY := opts.StartY
	for lvl := 0; lvl <= maxLevel; lvl++ {
		rowItems := byLevel[lvl]
		if len(rowItems) == 0 {
			continue
		}
		sorted := append([]*Item(nil), rowItems...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].X != sorted[j].X {
				return sorted[i].X < sorted[j].X
			}
			return sorted[i].ID < sorted[j].ID
		})

		totalWidth := 0.0
		for i, it := range sorted {
			totalWidth += it.Width
			if i > 0 {
				totalWidth += opts.HorizontalSpacing
			}
		}

		rowHeight := 0.0
		cursor := opts.ReferenceCenterX - totalWidth/2
		for _, it := range sorted {
			it.X = math.Round(cursor)
			it.Y = math.Round(rowY)
			cursor += it.Width + opts.HorizontalSpacing
			rowHeight = maxF(rowHeight, it.Height)
		}
		rowY += rowHeight + opts.VerticalSpacing
	}
}

func groupByLevel(items []*Item, levels map[string]int) (map[int][]*Item, int) {
	byLevel := make(map[int][]*Item)
	maxLevel := 0
	for _, it := range items {
		lvl := levels[it.ID]
		byLevel[lvl] = append(byLevel[lvl], it)
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}
	return byLevel, maxLevel
}

func parentsIndex(edges []Edge) map[string][]string {
	parents := make(map[string][]string)
	for _, e := range edges {
		parents[e.To] = append(parents[e.To], e.From)
	}
	return parents
}
