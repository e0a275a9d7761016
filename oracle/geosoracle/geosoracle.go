// Package geosoracle is the default oracle.GeometryOracle
// implementation. It backs Intersects, Intersection, LineMerge,
// Boundary, Difference, Crosses, and Area with
// github.com/spatial-go/geoos's GEOS-derived predicates, following the
// WKT-marshal-then-call shape of
// other_examples/...bean0303-geoos__strategy_geos.go's GEOAlgorithm.
//
// Polygonize has no geoos counterpart (geoos, like GEOS itself,
// expects a caller-assembled ring rather than offering "build polygons
// out of a loose bag of edges"), so it is built in-house here, modeled
// on golang/geo's builder_layers.go PolygonLayer.Build: a greedy
// Eulerian-path walk over an adjacency map, adapted from a snapped
// spherical BuilderGraph to a planar bag of line strings.
package geosoracle

import (
	"fmt"

	"github.com/spatial-go/geoos"

	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/r2"
	"github.com/migurski/Bloch/simerr"
)

// Oracle is the default GeometryOracle.
type Oracle struct {
	algo geoos.GEOAlgorithm
}

// New returns a ready-to-use Oracle.
func New() *Oracle {
	return &Oracle{}
}

func (o *Oracle) geom(g geometry.Geometry) (geoos.Geometry, error) {
	wkt, err := toWKT(g)
	if err != nil {
		return nil, err
	}
	gg, err := geoos.GeomFromWKT(wkt)
	if err != nil {
		return nil, fmt.Errorf("geosoracle: parsing WKT %q: %w", wkt, err)
	}
	return gg, nil
}

func (o *Oracle) fail(op string, err error) error {
	return &simerr.GeometryOracleFailure{Op: op, Err: err}
}

// Intersects reports whether a and b share at least one point.
func (o *Oracle) Intersects(a, b geometry.Polygon) (bool, error) {
	ga, err := o.geom(a)
	if err != nil {
		return false, o.fail("intersects", err)
	}
	gb, err := o.geom(b)
	if err != nil {
		return false, o.fail("intersects", err)
	}
	ok, err := o.algo.Intersects(ga, gb)
	if err != nil {
		return false, o.fail("intersects", err)
	}
	return ok, nil
}

// Intersection returns the intersection geometry of a and b.
func (o *Oracle) Intersection(a, b geometry.Polygon) (geometry.Geometry, error) {
	ga, err := o.geom(a)
	if err != nil {
		return nil, o.fail("intersection", err)
	}
	gb, err := o.geom(b)
	if err != nil {
		return nil, o.fail("intersection", err)
	}
	result, err := o.algo.Intersection(ga, gb)
	if err != nil {
		return nil, o.fail("intersection", err)
	}
	out, err := fromWKT(result.ToWKT())
	if err != nil {
		return nil, o.fail("intersection", err)
	}
	return out, nil
}

// LineMerge glues g's chains into maximal lines.
func (o *Oracle) LineMerge(g geometry.Geometry) (geometry.Geometry, error) {
	gg, err := o.geom(g)
	if err != nil {
		return nil, o.fail("line_merge", err)
	}
	merged, err := o.algo.LineMerge(gg)
	if err != nil {
		return nil, o.fail("line_merge", err)
	}
	out, err := fromWKT(merged.ToWKT())
	if err != nil {
		return nil, o.fail("line_merge", err)
	}
	return out, nil
}

// Boundary returns p's boundary.
func (o *Oracle) Boundary(p geometry.Polygon) (geometry.Geometry, error) {
	gp, err := o.geom(p)
	if err != nil {
		return nil, o.fail("boundary", err)
	}
	b, err := o.algo.Boundary(gp)
	if err != nil {
		return nil, o.fail("boundary", err)
	}
	out, err := fromWKT(b.ToWKT())
	if err != nil {
		return nil, o.fail("boundary", err)
	}
	return out, nil
}

// Difference returns a minus b.
func (o *Oracle) Difference(a, b geometry.Geometry) (geometry.Geometry, error) {
	ga, err := o.geom(a)
	if err != nil {
		return nil, o.fail("difference", err)
	}
	gb, err := o.geom(b)
	if err != nil {
		return nil, o.fail("difference", err)
	}
	d, err := o.algo.Difference(ga, gb)
	if err != nil {
		return nil, o.fail("difference", err)
	}
	out, err := fromWKT(d.ToWKT())
	if err != nil {
		return nil, o.fail("difference", err)
	}
	return out, nil
}

// Crosses reports whether segments a and b properly cross.
func (o *Oracle) Crosses(a, b [2]r2.Point) (bool, error) {
	la := geometry.LineString{Points: []r2.Point{a[0], a[1]}}
	lb := geometry.LineString{Points: []r2.Point{b[0], b[1]}}
	ga, err := o.geom(la)
	if err != nil {
		return false, o.fail("crosses", err)
	}
	gb, err := o.geom(lb)
	if err != nil {
		return false, o.fail("crosses", err)
	}
	ok, err := o.algo.Crosses(ga, gb)
	if err != nil {
		return false, o.fail("crosses", err)
	}
	return ok, nil
}

// Area returns p's area.
func (o *Oracle) Area(p geometry.Polygon) (float64, error) {
	gp, err := o.geom(p)
	if err != nil {
		return 0, o.fail("area", err)
	}
	a, err := o.algo.Area(gp)
	if err != nil {
		return 0, o.fail("area", err)
	}
	return a, nil
}
