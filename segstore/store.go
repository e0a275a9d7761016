package segstore

import "github.com/migurski/Bloch/r2"

// Store is the segment table of spec.md §4.1: a mutable table with
// three indexes (by line, by src1, by src2), paired with an RTree.
//
// Grounded directly on original_source/Bloch.py's in-memory SQLite
// segments table and its three CREATE INDEX statements
// (segments_lines, shape1_parts, shape2_parts) — this rebuilds that
// table as plain Go slices/maps instead of a SQL schema, since the
// whole store lives in memory for the lifetime of one Dataset (spec.md
// §6.4: "None. The segment store is in-memory...").
type Store struct {
	rows     []Segment // index i holds the segment with GUID == int64(i)
	byLine   map[int64][]int64
	bySrc1   map[int][]int64
	bySrc2   map[int][]int64
	rtree    *RTree
	nextGUID int64
}

// NewStore returns an empty Store with a fresh RTree.
func NewStore() *Store {
	return &Store{
		byLine: make(map[int64][]int64),
		bySrc1: make(map[int][]int64),
		bySrc2: make(map[int][]int64),
		rtree:  NewRTree(),
	}
}

// RTree returns the store's paired spatial index.
func (s *Store) RTree() *RTree {
	return s.rtree
}

// Insert appends a new segment and returns its guid (spec.md §4.1:
// insert(src1, src2, line_id, x1, y1, x2, y2) -> guid).
func (s *Store) Insert(src1, src2 int, lineID int64, x1, y1, x2, y2 float64) int64 {
	guid := s.nextGUID
	s.nextGUID++

	seg := Segment{
		GUID: guid, Src1: src1, Src2: src2, LineID: lineID,
		X1: x1, Y1: y1, X2: x2, Y2: y2,
	}
	s.rows = append(s.rows, seg)

	s.byLine[lineID] = append(s.byLine[lineID], guid)
	s.bySrc1[src1] = append(s.bySrc1[src1], guid)
	if src2 != NoFeature {
		s.bySrc2[src2] = append(s.bySrc2[src2], guid)
	}
	s.rtree.Add(guid, seg.BBox())

	return guid
}

// UpdateEndpoints rewrites the coordinates of an existing segment
// (spec.md §4.1: update_endpoints(guid, x1, y1, x2, y2)).
func (s *Store) UpdateEndpoints(guid int64, x1, y1, x2, y2 float64) {
	row := &s.rows[guid]
	row.X1, row.Y1, row.X2, row.Y2 = x1, y1, x2, y2
}

// MarkRemoved sets the removed flag on a segment (spec.md §4.1:
// mark_removed(guid)). The flag is set once and never reset, per
// spec.md §3's segment lifecycle.
func (s *Store) MarkRemoved(guid int64) {
	s.rows[guid].Removed = true
}

// Get returns the segment with the given guid.
func (s *Store) Get(guid int64) Segment {
	return s.rows[guid]
}

// NumSegments returns the total number of segments ever inserted,
// including removed ones.
func (s *Store) NumSegments() int {
	return len(s.rows)
}

// LiveSegmentsOfLine returns a line's live segments ordered by
// ascending guid (spec.md §4.1: live_segments_of_line(line_id) ->
// ordered sequence by guid; spec.md §3's invariant that guid order
// within a line is chain order).
func (s *Store) LiveSegmentsOfLine(lineID int64) []Segment {
	guids := append([]int64(nil), s.byLine[lineID]...)
	return s.liveSegmentsByGUIDs(guids)
}

// LiveSegmentsOfFeature returns the union of live segments where
// src1 == i or src2 == i (spec.md §4.1:
// live_segments_of_feature(i) -> sequence).
func (s *Store) LiveSegmentsOfFeature(i int) []Segment {
	seen := make(map[int64]bool)
	var guids []int64
	for _, guid := range s.bySrc1[i] {
		if !seen[guid] {
			seen[guid] = true
			guids = append(guids, guid)
		}
	}
	for _, guid := range s.bySrc2[i] {
		if !seen[guid] {
			seen[guid] = true
			guids = append(guids, guid)
		}
	}
	return s.liveSegmentsByGUIDs(guids)
}

func (s *Store) liveSegmentsByGUIDs(guids []int64) []Segment {
	out := make([]Segment, 0, len(guids))
	for _, guid := range guids {
		if seg := s.rows[guid]; !seg.Removed {
			out = append(out, seg)
		}
	}
	return out
}

// LiveLineIDs returns every line_id that still has at least one live
// segment, ordered by descending live-segment count (spec.md §4.3
// step 1: "Snapshot the set of candidate lines ... ordered by
// descending live-segment count").
func (s *Store) LiveLineIDs() []int64 {
	type lineCount struct {
		id    int64
		count int
	}
	counts := make(map[int64]int)
	for lineID, guids := range s.byLine {
		n := 0
		for _, guid := range guids {
			if !s.rows[guid].Removed {
				n++
			}
		}
		if n > 0 {
			counts[lineID] = n
		}
	}
	ordered := make([]lineCount, 0, len(counts))
	for id, n := range counts {
		ordered = append(ordered, lineCount{id, n})
	}
	// Stable-ish ordering: descending count, then ascending id so test
	// fixtures are deterministic.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0; j-- {
			a, b := ordered[j-1], ordered[j]
			if a.count > b.count || (a.count == b.count && a.id <= b.id) {
				break
			}
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}
	ids := make([]int64, len(ordered))
	for i, lc := range ordered {
		ids[i] = lc.id
	}
	return ids
}

// CountLive returns the number of live (non-removed) segments.
func (s *Store) CountLive() int {
	n := 0
	for _, row := range s.rows {
		if !row.Removed {
			n++
		}
	}
	return n
}

// CountLines returns the number of distinct line_ids with at least
// one live segment.
func (s *Store) CountLines() int {
	return len(s.LiveLineIDs())
}

// CountFeatures returns the number of distinct features (src1 values)
// with at least one live segment.
func (s *Store) CountFeatures() int {
	seen := make(map[int]bool)
	for _, row := range s.rows {
		if row.Removed {
			continue
		}
		seen[row.Src1] = true
		if row.Src2 != NoFeature {
			seen[row.Src2] = true
		}
	}
	return len(seen)
}

// RebuildRTree rebuilds the spatial index from the store's current
// live segments, each keyed by its true guid (spec.md §4.3 end-of-pass
// step, with the source's guid1-reuse bug fixed per spec.md §9).
func (s *Store) RebuildRTree() {
	s.rtree.Rebuild(func(yield func(guid int64, bbox r2.Rect)) {
		for _, row := range s.rows {
			if row.Removed {
				continue
			}
			yield(row.GUID, row.BBox())
		}
	})
}
