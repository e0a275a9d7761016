// Package topology implements the topology builder of spec.md §4.2: it
// decomposes a list of input polygons into shared-border lines and
// unshared-remainder lines and inserts their segments into a
// segstore.Store, ready for the simplifier to mutate.
//
// Grounded on original_source/Bloch.py's populate_shared_segments_by_rtree
// (the bbox-prefiltered primary path), populate_shared_segments_by_combination
// (the O(n²) fallback, kept here rather than dropped — spec.md §9 says
// either is acceptable and this module exercises both), and
// populate_unshared_segments, plus golang/geo's boolean_operation.go for
// the general shape of "intersect pairwise, then take a difference to
// get what's left over".
package topology

import (
	"fmt"
	"math"

	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/oracle"
	"github.com/migurski/Bloch/r2"
	"github.com/migurski/Bloch/segstore"
	"github.com/migurski/Bloch/simerr"
)

// bboxInflation is the per-axis fractional expansion applied to feature
// bounding boxes before the pairwise prefilter, covering floating-point
// kiss-touches between features that are supposed to share a border
// (spec.md §4.2 step 1).
const bboxInflation = 0.001

// smallNThreshold is the feature count below which the builder skips
// the bbox-indexed prefilter and falls back to the O(n²) all-pairs
// loop (spec.md §9 Open Question 2: either is acceptable; this module
// keeps both, switching on count rather than deleting the fallback).
const smallNThreshold = 16

// lengthTolerance is the post-condition slack spec.md §4.2's
// correctness clause allows between a feature's original boundary
// length and its accounted-for shared+unshared length.
const lengthTolerance = 1e-6

// ProgressEvent is an optional progress notification a Builder can emit
// while working through Phase A and Phase B (SPEC_FULL.md §D.2,
// resurrected from original_source/Bloch.py's verbose flag).
type ProgressEvent struct {
	Phase   string // "shared" or "unshared"
	Feature int    // feature index completed, or -1 for a pair-level event
	Detail  string
}

// Builder runs the two-phase topology extraction algorithm.
type Builder struct {
	Oracle   oracle.GeometryOracle
	Progress func(ProgressEvent) // optional

	store *segstore.Store
	// shared[i] accumulates every line string recorded as a shared
	// border touching feature i, across all of its neighbors. It is
	// Phase B's scratchpad only (spec.md §9's "Shared-border
	// aliasing" note) and is discarded once Phase B completes.
	shared map[int][]geometry.LineString

	// lineIDSeq allocates line_ids for this build. Kept as a Builder
	// field rather than module-level state per spec.md §9's
	// "encapsulate inside ... with clear ownership" note.
	lineIDSeq int64
}

// NewBuilder returns a Builder backed by the given oracle.
func NewBuilder(o oracle.GeometryOracle) *Builder {
	return &Builder{
		Oracle: o,
		shared: make(map[int][]geometry.LineString),
	}
}

func (b *Builder) report(ev ProgressEvent) {
	if b.Progress != nil {
		b.Progress(ev)
	}
}

// Build decomposes features into shared and unshared lines, inserting
// their segments into a fresh segstore.Store, and returns that store.
func (b *Builder) Build(features []geometry.Polygon) (*segstore.Store, error) {
	b.store = segstore.NewStore()
	b.shared = make(map[int][]geometry.LineString)

	if err := b.phaseA(features); err != nil {
		return nil, err
	}
	if err := b.phaseB(features); err != nil {
		return nil, err
	}
	return b.store, nil
}

// phaseA records every shared border between touching feature pairs
// (spec.md §4.2 Phase A).
func (b *Builder) phaseA(features []geometry.Polygon) error {
	pairs := b.candidatePairs(features)

	for _, p := range pairs {
		i, j := p[0], p[1]
		a, c := features[i], features[j]

		ok, err := b.Oracle.Intersects(a, c)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		inter, err := b.Oracle.Intersection(a, c)
		if err != nil {
			return err
		}
		if inter == nil || inter.Dimension() != 1 {
			continue
		}

		merged, err := b.Oracle.LineMerge(inter)
		if err != nil {
			return err
		}

		for _, line := range geometry.Lines(merged) {
			if len(line.Points) < 2 {
				continue
			}
			lineID := b.nextLineID()
			for _, seg := range line.Segments() {
				b.store.Insert(i, j, lineID, seg[0].X, seg[0].Y, seg[1].X, seg[1].Y)
			}
			b.shared[i] = append(b.shared[i], line)
			b.shared[j] = append(b.shared[j], line)
		}

		b.report(ProgressEvent{Phase: "shared", Feature: -1, Detail: fmt.Sprintf("%d/%d", i, j)})
	}

	return nil
}

// candidatePairs returns every unordered feature-pair index worth
// testing for intersection (spec.md §4.2 step 1).
func (b *Builder) candidatePairs(features []geometry.Polygon) [][2]int {
	if len(features) < smallNThreshold {
		return b.candidatePairsAllPairs(features)
	}
	return b.candidatePairsByBBoxIndex(features)
}

// candidatePairsAllPairs is the O(n²) fallback, grounded on
// original_source/Bloch.py's populate_shared_segments_by_combination.
func (b *Builder) candidatePairsAllPairs(features []geometry.Polygon) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(features); i++ {
		for j := i + 1; j < len(features); j++ {
			if features[i].BBox().ExpandByFraction(bboxInflation).Intersects(features[j].BBox()) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// candidatePairsByBBoxIndex builds a feature-bbox R-tree and uses it to
// prune pairs, grounded on original_source/Bloch.py's
// populate_shared_segments_by_rtree.
func (b *Builder) candidatePairsByBBoxIndex(features []geometry.Polygon) [][2]int {
	index := segstore.NewRTree()
	for i, f := range features {
		index.Add(int64(i), f.BBox().ExpandByFraction(bboxInflation))
	}

	seen := make(map[[2]int]bool)
	var pairs [][2]int
	for i, f := range features {
		for _, guid := range index.Query(f.BBox().ExpandByFraction(bboxInflation)) {
			j := int(guid)
			if j == i {
				continue
			}
			key := [2]int{i, j}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			pairs = append(pairs, key)
		}
	}
	return pairs
}

// phaseB records, for each feature, the part of its boundary not
// covered by any shared border (spec.md §4.2 Phase B).
func (b *Builder) phaseB(features []geometry.Polygon) error {
	for i, f := range features {
		boundary, err := b.Oracle.Boundary(f)
		if err != nil {
			return err
		}

		remainder := boundary
		for _, border := range b.shared[i] {
			remainder, err = b.Oracle.Difference(remainder, border)
			if err != nil {
				return err
			}
		}

		var unsharedLen float64
		for _, line := range geometry.Lines(remainder) {
			if len(line.Points) < 2 {
				continue
			}
			lineID := b.nextLineID()
			for _, seg := range line.Segments() {
				b.store.Insert(i, segstore.NoFeature, lineID, seg[0].X, seg[0].Y, seg[1].X, seg[1].Y)
				unsharedLen += segmentLength(seg)
			}
		}

		if err := b.checkIntegrity(i, f, unsharedLen); err != nil {
			return err
		}

		b.report(ProgressEvent{Phase: "unshared", Feature: i})
	}

	// Phase B's scratchpad is no longer needed (spec.md §9).
	b.shared = nil

	return nil
}

// checkIntegrity is spec.md §4.2's post-condition: the original
// boundary length must equal the sum of shared and unshared lengths
// recorded for the feature, within lengthTolerance.
func (b *Builder) checkIntegrity(i int, f geometry.Polygon, unsharedLen float64) error {
	original := lineStringLength(f.Boundary())

	var sharedLen float64
	for _, seg := range b.store.LiveSegmentsOfFeature(i) {
		if seg.IsShared() {
			sharedLen += seg.Length()
		}
	}

	delta := original - sharedLen - unsharedLen
	if delta < 0 {
		delta = -delta
	}
	if delta >= lengthTolerance {
		return &simerr.TopologyIntegrity{Feature: i, Delta: delta}
	}
	return nil
}

func (b *Builder) nextLineID() int64 {
	b.lineIDSeq++
	return b.lineIDSeq
}

func segmentLength(seg [2]r2.Point) float64 {
	d := seg[1].Sub(seg[0])
	return math.Sqrt(d.X*d.X + d.Y*d.Y)
}

func lineStringLength(l geometry.LineString) float64 {
	var total float64
	for _, seg := range l.Segments() {
		total += segmentLength(seg)
	}
	return total
}
