package canvaslayout

import "testing"

func baseOptions() Options {
	return Options{
		Orientation:       Horizontal,
		HorizontalSpacing: 90,
		VerticalSpacing:   140,
		StartX:            0,
		StartY:            0,
		ReferenceCenterX:  0,
		ReferenceCenterY:  0,
		GridColumns:       4,
	}
}

func TestPlaceFlatSingleItem(t *testing.T) {
	items := []*Item{{ID: "a", Width: 100, Height: 50}}
	opts := baseOptions()
	opts.StartX, opts.StartY = 80, 100
	PlaceFlat(items, nil, opts)
	if items[0].X != 80 || items[0].Y != 100 {
		t.Errorf("single item placed at (%v,%v), want (80,100)", items[0].X, items[0].Y)
	}
}

func TestPlaceFlatLinearChainAdvancesColumns(t *testing.T) {
	items := []*Item{
		{ID: "a", Width: 100, Height: 50},
		{ID: "b", Width: 100, Height: 50},
		{ID: "c", Width: 100, Height: 50},
	}
	edges := []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}}
	PlaceFlat(items, edges, baseOptions())

	byID := map[string]*Item{}
	for _, it := range items {
		byID[it.ID] = it
	}
	if byID["a"].X >= byID["b"].X || byID["b"].X >= byID["c"].X {
		t.Errorf("expected strictly increasing X per level, got a=%v b=%v c=%v", byID["a"].X, byID["b"].X, byID["c"].X)
	}
}

func TestPlaceFlatGridFallbackWhenNoEdges(t *testing.T) {
	items := []*Item{
		{ID: "a", Width: 100, Height: 50},
		{ID: "b", Width: 100, Height: 50},
		{ID: "c", Width: 100, Height: 50},
	}
	PlaceFlat(items, nil, baseOptions())

	seen := map[[2]float64]bool{}
	for _, it := range items {
		pos := [2]float64{it.X, it.Y}
		if seen[pos] {
			t.Errorf("two items share position %v in grid fallback", pos)
		}
		seen[pos] = true
	}
}

func TestPlaceFlatHorizontalPreventsOverlap(t *testing.T) {
	items := []*Item{
		{ID: "root", Width: 100, Height: 50},
		{ID: "a", Width: 100, Height: 300},
		{ID: "b", Width: 100, Height: 50},
	}
	edges := []Edge{{From: "root", To: "a"}, {From: "root", To: "b"}}
	PlaceFlat(items, edges, baseOptions())

	byID := map[string]*Item{}
	for _, it := range items {
		byID[it.ID] = it
	}
	if byID["a"].Y == byID["b"].Y {
		t.Fatalf("a and b should not share the same y in the same column")
	}
	// whichever comes second must start at or after the first's bottom + spacing
	first, second := byID["a"], byID["b"]
	if first.Y > second.Y {
		first, second = second, first
	}
	if second.Y < first.Y+first.Height+baseOptions().VerticalSpacing-0.5 {
		t.Errorf("overlap-prevention clamp violated: first bottom=%v, second top=%v", first.Y+first.Height, second.Y)
	}
}

func TestPlaceFlatHorizontalRootlessItemsUseOwnCenterNotSharedReference(t *testing.T) {
	// Two disconnected roots in the same level, both unrelated to any
	// placed parent: each must sort by its own current center (y +
	// height/2), not collapse onto the shared ReferenceCenterY.
	items := []*Item{
		{ID: "anchor", Width: 100, Height: 50},
		{ID: "lo", Width: 100, Height: 50, Y: 0},
		{ID: "hi", Width: 100, Height: 50, Y: 1000},
	}
	// Give "anchor" an edge to a second-level item so PlaceFlat has a
	// valid edge and runs the levelled layout instead of the no-edge grid
	// fallback, while "lo" and "hi" remain rootless (no incoming edge, no
	// parent).
	edges := []Edge{{From: "anchor", To: "child"}}
	items = append(items, &Item{ID: "child", Width: 100, Height: 50})

	opts := baseOptions()
	opts.ReferenceCenterY = 99999
	PlaceFlat(items, edges, opts)

	byID := map[string]*Item{}
	for _, it := range items {
		byID[it.ID] = it
	}
	if byID["lo"].Y >= byID["hi"].Y {
		t.Errorf("rootless items should sort by their own center (lo.Y=%v < hi.Y=%v), not collapse onto ReferenceCenterY", byID["lo"].Y, byID["hi"].Y)
	}
}

func TestPlaceFlatVerticalHasNoOverlapClamp(t *testing.T) {
	items := []*Item{
		{ID: "root", Width: 100, Height: 50},
		{ID: "a", Width: 100, Height: 50},
		{ID: "b", Width: 100, Height: 50},
	}
	edges := []Edge{{From: "root", To: "a"}, {From: "root", To: "b"}}
	opts := baseOptions()
	opts.Orientation = Vertical
	PlaceFlat(items, edges, opts)

	byID := map[string]*Item{}
	for _, it := range items {
		byID[it.ID] = it
	}
	if byID["a"].Y != byID["b"].Y {
		t.Errorf("vertical orientation should place same-level items on one row, got a.Y=%v b.Y=%v", byID["a"].Y, byID["b"].Y)
	}
}
