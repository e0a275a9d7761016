package geometry

import (
	"testing"

	"github.com/migurski/Bloch/r2"
)

func square(x0, y0, x1, y1 float64) Polygon {
	return Polygon{Ring: []r2.Point{
		{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0},
	}}
}

func TestPolygonArea(t *testing.T) {
	p := square(0, 0, 2, 1)
	if got, want := p.Area(), 2.0; got != want {
		t.Errorf("Area() = %v, want %v", got, want)
	}
}

func TestPolygonBoundaryIsClosed(t *testing.T) {
	p := square(0, 0, 1, 1)
	b := p.Boundary()
	if !b.IsClosed() {
		t.Errorf("expected polygon boundary to be a closed line string")
	}
}

func TestLinesFlattensCollections(t *testing.T) {
	l1 := LineString{Points: []r2.Point{{0, 0}, {1, 0}}}
	l2 := LineString{Points: []r2.Point{{1, 0}, {1, 1}}}
	c := Collection{Geometries: []Geometry{
		MultiLineString{Lines: []LineString{l1}},
		l2,
	}}
	got := Lines(c)
	if len(got) != 2 {
		t.Fatalf("Lines(c) returned %d lines, want 2", len(got))
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty(MultiLineString{}) {
		t.Errorf("expected empty MultiLineString to be IsEmpty")
	}
	if IsEmpty(LineString{Points: []r2.Point{{0, 0}, {1, 1}}}) {
		t.Errorf("expected non-empty LineString to not be IsEmpty")
	}
}
