// Package geometry models the tagged-variant geometries that flow
// between the topology builder, the simplifier, and the geometry
// oracle: points, line strings, polygons, and collections of these.
//
// spec.md §9 calls for a sum type here rather than duck-typing a
// "coords" attribute off whatever the oracle hands back; Dimension
// lets callers reject non-1-D intersection results (Phase A, spec.md
// §4.2 step 3) with a type switch.
package geometry

import "github.com/migurski/Bloch/r2"

// Geometry is implemented by every concrete geometry kind this module
// works with.
type Geometry interface {
	// Dimension returns -1 for an empty geometry, 0 for points, 1 for
	// linear geometries, 2 for areal geometries.
	Dimension() int
	// BBox returns the axis-aligned bounding box of the geometry.
	BBox() r2.Rect
}

// Point is a single coordinate.
type Point struct {
	P r2.Point
}

func (Point) Dimension() int  { return 0 }
func (p Point) BBox() r2.Rect { return r2.RectFromPoints(p.P) }

// LineString is an ordered, non-empty chain of vertices.
type LineString struct {
	Points []r2.Point
}

func (LineString) Dimension() int { return 1 }

func (l LineString) BBox() r2.Rect {
	return r2.RectFromPoints(l.Points...)
}

// IsClosed reports whether the line string's first and last points
// coincide (spec.md §4.3's "closed line" case).
func (l LineString) IsClosed() bool {
	if len(l.Points) < 2 {
		return false
	}
	return l.Points[0] == l.Points[len(l.Points)-1]
}

// Segments returns the consecutive-point segments making up the line.
func (l LineString) Segments() [][2]r2.Point {
	if len(l.Points) < 2 {
		return nil
	}
	out := make([][2]r2.Point, 0, len(l.Points)-1)
	for i := 0; i < len(l.Points)-1; i++ {
		out = append(out, [2]r2.Point{l.Points[i], l.Points[i+1]})
	}
	return out
}

// MultiLineString is an unordered collection of line strings, the
// shape line_merge and boundary/difference operations commonly return.
type MultiLineString struct {
	Lines []LineString
}

func (MultiLineString) Dimension() int { return 1 }

func (m MultiLineString) BBox() r2.Rect {
	r := r2.EmptyRect()
	for _, l := range m.Lines {
		r = r.Union(l.BBox())
	}
	return r
}

// Polygon is a single simply-connected ring (spec.md §9 Open Question
// 3 restricts this module to inputs without holes). Ring is closed:
// Ring[0] == Ring[len(Ring)-1].
type Polygon struct {
	Ring []r2.Point
}

func (Polygon) Dimension() int { return 2 }

func (p Polygon) BBox() r2.Rect {
	return r2.RectFromPoints(p.Ring...)
}

// Boundary returns the polygon's ring as a closed line string.
func (p Polygon) Boundary() LineString {
	return LineString{Points: p.Ring}
}

// ShoelaceArea2 returns twice the polygon's signed area (positive for
// a counter-clockwise ring).
func (p Polygon) ShoelaceArea2() float64 {
	if len(p.Ring) < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < len(p.Ring)-1; i++ {
		a, b := p.Ring[i], p.Ring[i+1]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

// Area returns the polygon's unsigned area.
func (p Polygon) Area() float64 {
	a := p.ShoelaceArea2() / 2
	if a < 0 {
		return -a
	}
	return a
}

// MultiPolygon is an unordered collection of polygons.
type MultiPolygon struct {
	Polygons []Polygon
}

func (MultiPolygon) Dimension() int { return 2 }

func (m MultiPolygon) BBox() r2.Rect {
	r := r2.EmptyRect()
	for _, p := range m.Polygons {
		r = r.Union(p.BBox())
	}
	return r
}

// Collection is a heterogeneous geometry collection, the catch-all an
// oracle might return from an areal/areal intersection (spec.md §4.2
// step 3 says to discard these; Collection exists so the discard can
// be an explicit, named case instead of a silent ignore).
type Collection struct {
	Geometries []Geometry
}

func (c Collection) Dimension() int {
	max := -1
	for _, g := range c.Geometries {
		if d := g.Dimension(); d > max {
			max = d
		}
	}
	return max
}

func (c Collection) BBox() r2.Rect {
	r := r2.EmptyRect()
	for _, g := range c.Geometries {
		r = r.Union(g.BBox())
	}
	return r
}

// IsEmpty reports whether g contains no geometry at all.
func IsEmpty(g Geometry) bool {
	if g == nil {
		return true
	}
	switch v := g.(type) {
	case MultiLineString:
		return len(v.Lines) == 0
	case MultiPolygon:
		return len(v.Polygons) == 0
	case Collection:
		return len(v.Geometries) == 0
	default:
		return false
	}
}

// Lines flattens any 1-D geometry into its constituent LineStrings.
// Non-1-D geometry yields nil.
func Lines(g Geometry) []LineString {
	switch v := g.(type) {
	case LineString:
		return []LineString{v}
	case MultiLineString:
		return v.Lines
	case Collection:
		var out []LineString
		for _, e := range v.Geometries {
			out = append(out, Lines(e)...)
		}
		return out
	default:
		return nil
	}
}
