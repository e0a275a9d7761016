package segstore

import (
	"sort"

	"github.com/migurski/Bloch/r2"
)

// RTree is a dynamic bounding-box index mapping guid -> bbox (spec.md
// §3 "Spatial index", §4.1's paired R-tree: Query(bbox), Add(guid,
// bbox)).
//
// There is no R-tree library anywhere in the retrieved example
// corpus, and the source's own rtree.Rtree() has no Go equivalent to
// import, so this is built the way golang/geo's own PointIndex is
// built (point_index.go): entries kept sorted by a scalar key with
// sort.Search-based positioning, generalized here from a single
// CellID sort key to an interval sort on bbox.Lo.X, with the overlap
// test applied as a linear scan of every entry before the search
// position. For
// the segment-count scales this module targets (tens of thousands of
// segments per simplify pass, not planet-scale point clouds) this is
// the right trade: no tree-rebalancing machinery, no invented
// dependency.
type RTree struct {
	entries []rtreeEntry
	sorted  bool
}

type rtreeEntry struct {
	guid int64
	bbox r2.Rect
}

// NewRTree returns an empty RTree.
func NewRTree() *RTree {
	return &RTree{}
}

// Add appends an entry for guid with the given bbox. An earlier entry
// for the same guid is not replaced; it stays until the next Rebuild.
func (t *RTree) Add(guid int64, bbox r2.Rect) {
	t.entries = append(t.entries, rtreeEntry{guid: guid, bbox: bbox})
	t.sorted = false
}

// Query returns the guids of every entry whose bbox might intersect
// the given bbox (a conservative superset, same contract as spec.md
// §4.1's "guids that might intersect").
func (t *RTree) Query(bbox r2.Rect) []int64 {
	if bbox.IsEmpty() || len(t.entries) == 0 {
		return nil
	}
	t.ensureSorted()

	// start is the first entry whose Lo.X exceeds bbox.Hi.X. Entries
	// are sorted ascending by Lo.X, so no entry from start onward can
	// overlap; every entry before start is tested.
	start := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].bbox.Lo.X > bbox.Hi.X
	})

	var out []int64
	for i := 0; i < start; i++ {
		e := t.entries[i]
		if e.bbox.Intersects(bbox) {
			out = append(out, e.guid)
		}
	}
	return out
}

// Rebuild discards all entries and replaces them with fn's live
// segments, keyed by their true guid. This is the "rebuild the R-tree
// from the live segments of the store" step of spec.md §4.3's
// end-of-pass housekeeping.
//
// The source this spec was distilled from has a bug here: its rebuild
// loop inserts every live segment under a stale guid1 left over from
// the inner collapse loop above it (see spec.md §9's Open Questions).
// Rebuild always uses the guid the caller passes in, not a
// leftover variable, so that bug cannot recur here.
func (t *RTree) Rebuild(live func(yield func(guid int64, bbox r2.Rect))) {
	t.entries = t.entries[:0]
	live(func(guid int64, bbox r2.Rect) {
		t.entries = append(t.entries, rtreeEntry{guid: guid, bbox: bbox})
	})
	t.sorted = false
	t.ensureSorted()
}

// NumEntries returns the number of indexed entries.
func (t *RTree) NumEntries() int {
	return len(t.entries)
}

func (t *RTree) ensureSorted() {
	if t.sorted {
		return
	}
	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].bbox.Lo.X < t.entries[j].bbox.Lo.X
	})
	t.sorted = true
}
