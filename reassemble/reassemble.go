// Package reassemble implements spec.md §4.4: for each feature, gather
// its live segments from the store and reconstruct a polygon through
// the geometry oracle's Polygonize operation.
//
// Grounded on original_source/Bloch.py's save() loop: the
// polygonize(...).next() call (first polygon only, per spec.md §9's
// restriction to simply-connected inputs), the lost_portion
// computation, and the ReassemblySmall/ReassemblyLost split.
package reassemble

import (
	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/oracle"
	"github.com/migurski/Bloch/r2"
	"github.com/migurski/Bloch/segstore"
	"github.com/migurski/Bloch/simerr"
)

// lostPortionThreshold is spec.md §4.4's cutoff: below this, a missing
// reassembly is treated as a legitimate casualty of the requested
// tolerance rather than a bug.
const lostPortionThreshold = 4.0

// Reassembler reconstructs features from a simplified segment store.
type Reassembler struct {
	Store  *segstore.Store
	Oracle oracle.GeometryOracle
}

// New returns a Reassembler over the given store and oracle.
func New(store *segstore.Store, o oracle.GeometryOracle) *Reassembler {
	return &Reassembler{Store: store, Oracle: o}
}

// Result is one feature's reassembly outcome: either Polygon is set,
// or Skipped is true and Warning explains why.
type Result struct {
	Polygon geometry.Polygon
	Skipped bool
	Warning *simerr.ReassemblySmall
}

// Reassemble reconstructs every feature index in [0, numFeatures).
// originalAreas[i] is feature i's area before simplification, used to
// compute lost_portion for features Polygonize fails to reconstruct.
func (r *Reassembler) Reassemble(numFeatures int, originalAreas []float64, tolerance float64) ([]Result, error) {
	results := make([]Result, numFeatures)

	for i := 0; i < numFeatures; i++ {
		lines := r.linesOfFeature(i)

		polys, err := r.Oracle.Polygonize(lines)
		if err != nil {
			return nil, err
		}

		if len(polys) > 0 {
			results[i] = Result{Polygon: polys[0]}
			continue
		}

		// At tolerance 0 (spec.md §8's "simplify(0) is a no-op") there
		// is no tolerance-driven shrinkage to blame a missing polygon
		// on, so route straight to ReassemblyLost instead of dividing
		// by zero.
		lostPortion := lostPortionThreshold
		if tolerance > 0 {
			lostPortion = originalAreas[i] / (tolerance * tolerance)
		}
		if lostPortion < lostPortionThreshold {
			results[i] = Result{
				Skipped: true,
				Warning: &simerr.ReassemblySmall{Feature: i, LostPortion: lostPortion},
			}
			continue
		}

		return nil, &simerr.ReassemblyLost{Feature: i}
	}

	return results, nil
}

// linesOfFeature rebuilds each of a feature's constituent lines as a
// geometry.LineString, ordered by ascending guid within each line per
// spec.md §3's chain invariant, ready to hand to Polygonize.
func (r *Reassembler) linesOfFeature(feature int) []geometry.LineString {
	segs := r.Store.LiveSegmentsOfFeature(feature)

	seenLines := make(map[int64]bool)
	var out []geometry.LineString
	for _, seg := range segs {
		if seenLines[seg.LineID] {
			continue
		}
		seenLines[seg.LineID] = true

		lineSegs := r.Store.LiveSegmentsOfLine(seg.LineID)
		if len(lineSegs) == 0 {
			continue
		}
		out = append(out, geometry.LineString{Points: pointsFromSegments(lineSegs)})
	}
	return out
}

func pointsFromSegments(segs []segstore.Segment) []r2.Point {
	pts := make([]r2.Point, 0, len(segs)+1)
	pts = append(pts, segs[0].Start())
	for _, seg := range segs {
		pts = append(pts, seg.End())
	}
	return pts
}
