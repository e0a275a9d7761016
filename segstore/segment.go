// Package segstore implements the segment store and paired spatial
// index of spec.md §3 and §4.1: a persistent, indexable table of every
// segment in the dataset, tagged with its owning feature(s) and parent
// line, plus a dynamic bounding-box index kept consistent with the
// live segments.
package segstore

import (
	"math"

	"github.com/migurski/Bloch/r2"
)

// NoFeature marks an unset src2 (spec.md §3: "src2: second feature
// index if this is a shared-border segment, else unset").
const NoFeature = -1

// Segment is the fundamental unit of the store (spec.md §3).
type Segment struct {
	GUID    int64
	Src1    int
	Src2    int // NoFeature if this segment isn't a shared border.
	LineID  int64
	X1, Y1  float64
	X2, Y2  float64
	Removed bool
}

// Start returns the segment's start point.
func (s Segment) Start() r2.Point { return r2.Point{X: s.X1, Y: s.Y1} }

// End returns the segment's end point.
func (s Segment) End() r2.Point { return r2.Point{X: s.X2, Y: s.Y2} }

// BBox returns the segment's axis-aligned bounding box.
func (s Segment) BBox() r2.Rect {
	return r2.RectFromPoints(s.Start(), s.End())
}

// IsShared reports whether this segment belongs to two features.
func (s Segment) IsShared() bool {
	return s.Src2 != NoFeature
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	dx, dy := s.X2-s.X1, s.Y2-s.Y1
	return math.Sqrt(dx*dx + dy*dy)
}
