// Package simplify implements the progressive, topology-safe
// Visvalingam-style simplification loop of spec.md §4.3: the core
// collapses the smallest-area triangle formed by three consecutive
// points on a line, deferring any change whose neighborhood was
// already touched this pass and rejecting any collapse that would
// make a segment cross another segment anywhere in the dataset.
//
// Grounded line-for-line on original_source/Bloch.py's simplify()
// method: the stable_lines/preserved/popped bookkeeping, the
// ascending-area sort, the R-tree-queried crossing check, and the
// end-of-pass rebuild all come from there — with the source's `guid1`
// rebuild bug fixed rather than reproduced, per spec.md §9's explicit
// instruction (segstore.Store.RebuildRTree already carries that fix).
package simplify

import (
	"sort"

	"github.com/migurski/Bloch/oracle"
	"github.com/migurski/Bloch/r2"
	"github.com/migurski/Bloch/segstore"
	"github.com/migurski/Bloch/simerr"
)

// Simplifier runs simplify(tolerance) calls against a segment store,
// enforcing spec.md §4.3's tolerance monotonicity.
type Simplifier struct {
	Store    *segstore.Store
	Oracle   oracle.GeometryOracle
	Progress func(PassEvent) // optional

	prevTolerance float64
	hasRun        bool
}

// New returns a Simplifier over the given store and oracle.
func New(store *segstore.Store, o oracle.GeometryOracle) *Simplifier {
	return &Simplifier{Store: store, Oracle: o}
}

// PassEvent is an optional per-pass progress notification
// (SPEC_FULL.md §D.2, resurrected from original_source/Bloch.py's
// verbose flag).
type PassEvent struct {
	Pass        int
	LinesLeft   int
	Collapsed   int
	LiveSegment int
}

// candidate is one interior point's collapse opportunity: the triangle
// it forms with its neighbors, the pair of segments that would be
// merged, and the prospective replacement endpoints.
type candidate struct {
	area2     float64
	guidA     int64 // segment ending at the collapsed point
	guidB     int64 // segment starting at the collapsed point
	prevPoint r2.Point
	nextPoint r2.Point
}

// Simplify collapses segments until a full pass makes no change, or
// returns ToleranceRegressed if tolerance is smaller than a previous
// call's (spec.md §4.3).
func (s *Simplifier) Simplify(tolerance float64) error {
	if s.hasRun && tolerance < s.prevTolerance {
		return &simerr.ToleranceRegressed{Previous: s.prevTolerance, Requested: tolerance}
	}
	s.prevTolerance = tolerance
	s.hasRun = true

	threshold := tolerance * tolerance
	stableLines := make(map[int64]bool)

	for pass := 0; ; pass++ {
		candidateLines := s.Store.LiveLineIDs()
		preserved := make(map[int64]bool)
		popped := false
		collapsedThisPass := 0

		for _, lineID := range candidateLines {
			if stableLines[lineID] {
				continue
			}

			changed, hasCandidate, err := s.simplifyLine(lineID, threshold, preserved)
			if err != nil {
				return err
			}
			if changed {
				popped = true
				collapsedThisPass++
			}
			// spec.md §4.3 step 3c: a line is stable only once it has
			// no triangle at or under tolerance left at all. A line
			// whose candidates were all deferred this pass (preserved
			// conflict or a crossing-check rejection) stays in the
			// candidate set so a later pass — after a neighboring
			// collapse clears the obstruction — can retry it.
			if !hasCandidate {
				stableLines[lineID] = true
			}
		}

		s.Store.RebuildRTree()

		if s.Progress != nil {
			s.Progress(PassEvent{
				Pass:        pass,
				LinesLeft:   len(candidateLines) - len(stableLines),
				Collapsed:   collapsedThisPass,
				LiveSegment: s.Store.CountLive(),
			})
		}

		if !popped {
			break
		}
	}

	return nil
}

// simplifyLine runs one pass over a single line, collapsing as many
// non-conflicting triangles as it can. It reports whether anything
// changed this pass, and separately whether the line still had at
// least one triangle at or under tolerance (spec.md §4.3 step 3c) —
// the latter, not the former, decides whether the line goes into
// stableLines, since a triangle can be below tolerance and yet not
// collapse this pass (preserved conflict or a crossing rejection).
func (s *Simplifier) simplifyLine(lineID int64, threshold float64, preserved map[int64]bool) (changed, hasCandidate bool, err error) {
	segs := s.Store.LiveSegmentsOfLine(lineID)
	if len(segs) < 2 {
		return false, false, nil
	}

	points := make([]r2.Point, 0, len(segs)+1)
	points = append(points, segs[0].Start())
	for _, seg := range segs {
		points = append(points, seg.End())
	}

	if len(points) < 3 {
		return false, false, nil
	}

	area2 := make([]float64, len(points)-2)
	BatchTriangleAreas2(points, area2)

	var candidates []candidate
	for m := 1; m <= len(points)-2; m++ {
		a2 := area2[m-1]
		if a2 > 2*threshold {
			continue
		}
		candidates = append(candidates, candidate{
			area2:     a2,
			guidA:     segs[m-1].GUID,
			guidB:     segs[m].GUID,
			prevPoint: points[m-1],
			nextPoint: points[m+1],
		})
	}

	if len(candidates) == 0 {
		return false, false, nil
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].area2 < candidates[j].area2 })

	for _, c := range candidates {
		// area2 is twice the triangle's area; spec.md §4.3 step c/d
		// compares the true area against tolerance^2, so the doubled
		// form compares against 2*tolerance^2.
		if c.area2 > 2*threshold {
			break
		}
		if preserved[c.guidA] || preserved[c.guidB] {
			continue
		}

		crosses, crossErr := s.wouldCross(c.prevPoint, c.nextPoint, c.guidA, c.guidB)
		if crossErr != nil {
			return changed, true, crossErr
		}
		if crosses {
			continue
		}

		s.Store.MarkRemoved(c.guidB)
		s.Store.UpdateEndpoints(c.guidA, c.prevPoint.X, c.prevPoint.Y, c.nextPoint.X, c.nextPoint.Y)
		s.Store.RTree().Add(c.guidA, r2.RectFromPoints(c.prevPoint, c.nextPoint))
		preserved[c.guidA] = true
		preserved[c.guidB] = true
		changed = true
	}

	return changed, true, nil
}

// wouldCross reports whether the prospective replacement segment
// (prev, next) properly crosses any other live segment the R-tree
// returns for its bbox, on this line or any other; only guidA and guidB
// themselves are skipped (spec.md §4.3 step d's topology-safety check).
func (s *Simplifier) wouldCross(prev, next r2.Point, guidA, guidB int64) (bool, error) {
	bbox := r2.RectFromPoints(prev, next)
	for _, guid := range s.Store.RTree().Query(bbox) {
		if guid == guidA || guid == guidB {
			continue
		}
		other := s.Store.Get(guid)
		if other.Removed {
			continue
		}
		crosses, err := s.Oracle.Crosses([2]r2.Point{prev, next}, [2]r2.Point{other.Start(), other.End()})
		if err != nil {
			return false, err
		}
		if crosses {
			return true, nil
		}
	}
	return false, nil
}
