package geosoracle

import (
	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/r2"
)

// Polygonize assembles closed rings out of a bag of line strings.
//
// Modeled on golang/geo's builder_layers.go PolygonLayer.Build: that
// function walks a BuilderGraph's adjacency list greedily, marking
// edges used as it goes, and closes a loop whenever it returns to its
// start vertex. This is the same walk, adapted from BuilderGraph's
// snapped int32 vertex ids to planar r2.Point endpoints matched by
// exact equality (the segment store's endpoints are shared by
// construction: spec.md §3's chain invariant guarantees segment k's
// end equals segment k+1's start, so no snapping is needed here).
func (o *Oracle) Polygonize(lines []geometry.LineString) ([]geometry.Polygon, error) {
	type edge struct {
		from, to r2.Point
	}

	var edges []edge
	for _, l := range lines {
		for _, seg := range l.Segments() {
			edges = append(edges, edge{from: seg[0], to: seg[1]})
		}
	}

	outEdges := make(map[r2.Point][]int)
	for i, e := range edges {
		outEdges[e.from] = append(outEdges[e.from], i)
	}

	used := make([]bool, len(edges))
	var polys []geometry.Polygon

	for i := range edges {
		if used[i] {
			continue
		}

		var ring []r2.Point
		start := edges[i].from
		curr := i
		closed := false

		for {
			used[curr] = true
			e := edges[curr]
			ring = append(ring, e.from)

			if e.to == start {
				ring = append(ring, e.to)
				closed = true
				break
			}

			next := -1
			for _, cand := range outEdges[e.to] {
				if !used[cand] {
					next = cand
					break
				}
			}
			if next == -1 {
				break
			}
			curr = next
		}

		if closed && len(ring) >= 4 {
			polys = append(polys, geometry.Polygon{Ring: ring})
		}
	}

	return polys, nil
}
