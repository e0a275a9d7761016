// Package oracle defines the geometry oracle interface spec.md §6.1
// names as an external collaborator: intersection, line merging,
// boundary extraction, difference, proper-crossing tests, and
// polygonization from a bag of line strings. The core consumes these
// operations only through this interface; it never depends on a
// concrete geometry engine directly.
package oracle

import (
	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/r2"
)

// GeometryOracle is the set of geometric predicates the core depends
// on (spec.md §6.1). Implementations wrap a real geometry engine;
// oracle/geosoracle provides the default one.
type GeometryOracle interface {
	// Intersects reports whether a and b share at least one point.
	// Used as Phase A's cheap reject before computing a full
	// Intersection (spec.md §4.2 step 2).
	Intersects(a, b geometry.Polygon) (bool, error)

	// Intersection returns the intersection geometry of a and b.
	// The core discards anything that isn't 1-D (spec.md §4.2 step 3).
	Intersection(a, b geometry.Polygon) (geometry.Geometry, error)

	// LineMerge glues a MultiLineString's chains that share endpoints
	// into maximal LineStrings.
	LineMerge(g geometry.Geometry) (geometry.Geometry, error)

	// Boundary returns a polygon's boundary as a 1-D geometry.
	Boundary(p geometry.Polygon) (geometry.Geometry, error)

	// Difference returns a minus b.
	Difference(a, b geometry.Geometry) (geometry.Geometry, error)

	// Crosses reports whether two segments properly cross (shared
	// endpoints alone do not count, spec.md §6.1).
	Crosses(a, b [2]r2.Point) (bool, error)

	// Polygonize assembles a bag of line strings into zero or more
	// closed polygons.
	Polygonize(lines []geometry.LineString) ([]geometry.Polygon, error)

	// Area returns a polygon's area.
	Area(p geometry.Polygon) (float64, error)
}
