package simplify

import (
	"math"
	"testing"

	"github.com/migurski/Bloch/r2"
)

func TestBatchTriangleAreas2MatchesScalarFormula(t *testing.T) {
	points := []r2.Point{
		{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2},
	}
	area2 := make([]float64, len(points)-2)
	BatchTriangleAreas2(points, area2)

	for m := 1; m <= len(points)-2; m++ {
		want := r2.TriangleArea2(points[m-1], points[m], points[m+1])
		got := area2[m-1]
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("area2[%d] = %g, want %g", m-1, got, want)
		}
	}
}

func TestBatchTriangleAreas2ShortInputNoOp(t *testing.T) {
	points := []r2.Point{{0, 0}, {1, 1}}
	area2 := make([]float64, 0)
	BatchTriangleAreas2(points, area2) // must not panic
}
