package r2

import "testing"

func TestTriangleArea2(t *testing.T) {
	tests := []struct {
		a, b, c Point
		want    float64
	}{
		{Point{0, 0}, Point{2, 0}, Point{0, 2}, 4},
		{Point{0, 0}, Point{1, 0}, Point{2, 0}, 0}, // collinear
		{Point{1, 0}, Point{2, 0}, Point{0, 2}, 2},
	}
	for _, tc := range tests {
		if got := TriangleArea2(tc.a, tc.b, tc.c); got != tc.want {
			t.Errorf("TriangleArea2(%v, %v, %v) = %v, want %v", tc.a, tc.b, tc.c, got, tc.want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	r := RectFromPoints(Point{0, 0}, Point{1, 1})
	s := RectFromPoints(Point{1, 0}, Point{2, 1})
	if !r.Intersects(s) {
		t.Errorf("expected touching rects to intersect")
	}

	u := RectFromPoints(Point{5, 5}, Point{6, 6})
	if r.Intersects(u) {
		t.Errorf("expected disjoint rects to not intersect")
	}
}

func TestRectExpandByFraction(t *testing.T) {
	r := RectFromPoints(Point{0, 0}, Point{10, 10})
	e := r.ExpandByFraction(0.001)
	if e.Lo.X >= r.Lo.X || e.Hi.X <= r.Hi.X {
		t.Errorf("expected expansion to grow the rect, got %v from %v", e, r)
	}
}

func TestEmptyRect(t *testing.T) {
	r := EmptyRect()
	if !r.IsEmpty() {
		t.Errorf("expected EmptyRect to be empty")
	}
	if r.Intersects(RectFromPoints(Point{0, 0})) {
		t.Errorf("empty rect should not intersect anything")
	}
	r2 := r.AddPoint(Point{3, 4})
	if r2.IsEmpty() || r2.Lo != (Point{3, 4}) || r2.Hi != (Point{3, 4}) {
		t.Errorf("AddPoint on empty rect = %v, want degenerate rect at point", r2)
	}
}
