// Package r2 provides basic types and operations for planar (2-D
// Cartesian) geometry, the coordinate system this module simplifies
// linework in. It plays the role that the r3 vector package plays for
// golang/geo's spherical s2 package: a small, dependency-free leaf
// package that everything else builds on.
package r2

import "math"

// Point is a point (or free vector, depending on context) in the plane.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Cross returns the z-component of the 3-D cross product of p and q,
// treated as vectors in the plane. Its absolute value is twice the
// area of the triangle (origin, p, q).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Norm2 returns the squared Euclidean length of p.
func (p Point) Norm2() float64 {
	return p.Dot(p)
}

// ApproxEqual reports whether p and q differ by at most eps in each
// coordinate.
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// TriangleArea2 returns twice the absolute area of the triangle formed
// by a, b, c. It is the fundamental quantity spec's Visvalingam-style
// collapse compares against tolerance^2 (the factor of two on both
// sides cancels, so callers comparing TriangleArea2 against 2*tolerance^2
// get the same decision as comparing the true area against tolerance^2;
// this package always works in the doubled form to avoid the division).
func TriangleArea2(a, b, c Point) float64 {
	return math.Abs(b.Sub(a).Cross(c.Sub(a)))
}

// Rect is an axis-aligned bounding box, possibly empty.
type Rect struct {
	Lo, Hi Point
	empty  bool
}

// EmptyRect returns the empty rectangle.
func EmptyRect() Rect {
	return Rect{empty: true}
}

// RectFromPoints returns the smallest Rect containing the given points.
// Returns the empty rect if no points are given.
func RectFromPoints(pts ...Point) Rect {
	r := EmptyRect()
	for _, p := range pts {
		r = r.AddPoint(p)
	}
	return r
}

// IsEmpty reports whether r contains no points.
func (r Rect) IsEmpty() bool {
	return r.empty
}

// AddPoint returns the smallest Rect containing r and p.
func (r Rect) AddPoint(p Point) Rect {
	if r.empty {
		return Rect{Lo: p, Hi: p}
	}
	return Rect{
		Lo: Point{math.Min(r.Lo.X, p.X), math.Min(r.Lo.Y, p.Y)},
		Hi: Point{math.Max(r.Hi.X, p.X), math.Max(r.Hi.Y, p.Y)},
	}
}

// Union returns the smallest Rect containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if r.empty {
		return s
	}
	if s.empty {
		return r
	}
	return Rect{
		Lo: Point{math.Min(r.Lo.X, s.Lo.X), math.Min(r.Lo.Y, s.Lo.Y)},
		Hi: Point{math.Max(r.Hi.X, s.Hi.X), math.Max(r.Hi.Y, s.Hi.Y)},
	}
}

// Intersects reports whether r and s share at least one point.
func (r Rect) Intersects(s Rect) bool {
	if r.empty || s.empty {
		return false
	}
	return r.Lo.X <= s.Hi.X && s.Lo.X <= r.Hi.X &&
		r.Lo.Y <= s.Hi.Y && s.Lo.Y <= r.Hi.Y
}

// ContainsPoint reports whether r contains p.
func (r Rect) ContainsPoint(p Point) bool {
	if r.empty {
		return false
	}
	return r.Lo.X <= p.X && p.X <= r.Hi.X && r.Lo.Y <= p.Y && p.Y <= r.Hi.Y
}

// ExpandByFraction returns r expanded outward by frac of its width and
// height on each axis (spec.md §4.2 step 1's 0.1%-per-axis bbox
// inflation, used so touching-but-not-overlapping features aren't
// missed by the feature-pair prefilter due to floating point
// kiss-touches).
func (r Rect) ExpandByFraction(frac float64) Rect {
	if r.empty {
		return r
	}
	dx := (r.Hi.X - r.Lo.X) * frac
	dy := (r.Hi.Y - r.Lo.Y) * frac
	if dx == 0 {
		dx = frac
	}
	if dy == 0 {
		dy = frac
	}
	return Rect{
		Lo: Point{r.Lo.X - dx, r.Lo.Y - dy},
		Hi: Point{r.Hi.X + dx, r.Hi.Y + dy},
	}
}
