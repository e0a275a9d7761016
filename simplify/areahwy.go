package simplify

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"

	"github.com/migurski/Bloch/r2"
)

// Batch Triangle Area (Visvalingam Collapse Scoring)
// Scoring every interior point of a line (spec.md §4.3 step b) means
// computing the doubled area of the triangle (p[m-1], p[m], p[m+1]) for
// every m in one shot. Laid out in SoA form this is the same
// load/multiply/store shape golang/geo's dot_hwy.go and vector_ops_hwy.go
// use for batch dot/cross products, just specialized to the planar
// cross-product-as-area formula instead of a 3-D one.

// BaseBatchTriangleAreas2 computes twice the absolute area of each
// triangle (ax[i],ay[i]), (bx[i],by[i]), (cx[i],cy[i]):
//
//	area2[i] = |(bx-ax)*(cy-ay) - (by-ay)*(cx-ax)|
func BaseBatchTriangleAreas2[T hwy.Floats](
	ax, ay, bx, by, cx, cy []T,
	area2 []T,
) {
	size := min(len(ax), len(ay), len(bx), len(by), len(cx), len(cy), len(area2))
	zero := hwy.Set(T(0))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vAx := hwy.Load(ax[offset:])
			vAy := hwy.Load(ay[offset:])
			vBx := hwy.Load(bx[offset:])
			vBy := hwy.Load(by[offset:])
			vCx := hwy.Load(cx[offset:])
			vCy := hwy.Load(cy[offset:])

			abx := hwy.Sub(vBx, vAx)
			aby := hwy.Sub(vBy, vAy)
			acx := hwy.Sub(vCx, vAx)
			acy := hwy.Sub(vCy, vAy)

			cross := hwy.Sub(hwy.Mul(abx, acy), hwy.Mul(aby, acx))
			abs := hwy.Max(cross, hwy.Sub(zero, cross))

			hwy.Store(abs, area2[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)

			vAx := hwy.MaskLoad(mask, ax[offset:])
			vAy := hwy.MaskLoad(mask, ay[offset:])
			vBx := hwy.MaskLoad(mask, bx[offset:])
			vBy := hwy.MaskLoad(mask, by[offset:])
			vCx := hwy.MaskLoad(mask, cx[offset:])
			vCy := hwy.MaskLoad(mask, cy[offset:])

			abx := hwy.Sub(vBx, vAx)
			aby := hwy.Sub(vBy, vAy)
			acx := hwy.Sub(vCx, vAx)
			acy := hwy.Sub(vCy, vAy)

			cross := hwy.Sub(hwy.Mul(abx, acy), hwy.Mul(aby, acx))
			abs := hwy.Max(cross, hwy.Sub(zero, cross))

			hwy.MaskStore(mask, abs, area2[offset:])
		},
	)
}

// BatchTriangleAreas2 scores every interior point of a chain of
// len(points) vertices, filling area2[m-1] with the doubled area of
// the triangle (points[m-1], points[m], points[m+1]) for each interior
// index 1 <= m <= len(points)-2. len(area2) must be len(points)-2.
func BatchTriangleAreas2(points []r2.Point, area2 []float64) {
	n := len(points)
	if n < 3 {
		return
	}
	ax := make([]float64, n-2)
	ay := make([]float64, n-2)
	bx := make([]float64, n-2)
	by := make([]float64, n-2)
	cx := make([]float64, n-2)
	cy := make([]float64, n-2)
	for m := 1; m <= n-2; m++ {
		i := m - 1
		ax[i], ay[i] = points[m-1].X, points[m-1].Y
		bx[i], by[i] = points[m].X, points[m].Y
		cx[i], cy[i] = points[m+1].X, points[m+1].Y
	}
	BaseBatchTriangleAreas2(ax, ay, bx, by, cx, cy, area2)
}
