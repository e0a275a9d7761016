package geosoracle

import (
	"testing"

	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/r2"
)

func TestPolygonizeSingleRing(t *testing.T) {
	o := New()
	lines := []geometry.LineString{
		{Points: []r2.Point{{0, 0}, {1, 0}}},
		{Points: []r2.Point{{1, 0}, {1, 1}}},
		{Points: []r2.Point{{1, 1}, {0, 1}}},
		{Points: []r2.Point{{0, 1}, {0, 0}}},
	}

	polys, err := o.Polygonize(lines)
	if err != nil {
		t.Fatalf("Polygonize returned error: %v", err)
	}
	if len(polys) != 1 {
		t.Fatalf("Polygonize returned %d polygons, want 1", len(polys))
	}
	if polys[0].Ring[0] != polys[0].Ring[len(polys[0].Ring)-1] {
		t.Errorf("expected a closed ring, got %v", polys[0].Ring)
	}
}

func TestPolygonizeOpenChainYieldsNothing(t *testing.T) {
	o := New()
	lines := []geometry.LineString{
		{Points: []r2.Point{{0, 0}, {1, 0}}},
		{Points: []r2.Point{{1, 0}, {1, 1}}},
	}

	polys, err := o.Polygonize(lines)
	if err != nil {
		t.Fatalf("Polygonize returned error: %v", err)
	}
	if len(polys) != 0 {
		t.Errorf("expected no polygons from an open chain, got %d", len(polys))
	}
}

func TestPolygonizeTwoDisjointRings(t *testing.T) {
	o := New()
	lines := []geometry.LineString{
		{Points: []r2.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		{Points: []r2.Point{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {5, 5}}},
	}

	polys, err := o.Polygonize(lines)
	if err != nil {
		t.Fatalf("Polygonize returned error: %v", err)
	}
	if len(polys) != 2 {
		t.Fatalf("Polygonize returned %d polygons, want 2", len(polys))
	}
}
