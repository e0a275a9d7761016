package simplify

import (
	"testing"

	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/oracle/geosoracle"
	"github.com/migurski/Bloch/r2"
	"github.com/migurski/Bloch/segstore"
	"github.com/migurski/Bloch/topology"
)

func buildStore(t *testing.T, features []geometry.Polygon) *segstore.Store {
	t.Helper()
	b := topology.NewBuilder(geosoracle.New())
	store, err := b.Build(features)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return store
}

func TestSimplifyCollinearVertexRemoved(t *testing.T) {
	poly := geometry.Polygon{Ring: []r2.Point{
		{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0},
	}}
	store := buildStore(t, []geometry.Polygon{poly})

	s := New(store, geosoracle.New())
	if err := s.Simplify(0.01); err != nil {
		t.Fatalf("Simplify returned error: %v", err)
	}

	lineIDs := store.LiveLineIDs()
	if len(lineIDs) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lineIDs))
	}
	segs := store.LiveSegmentsOfLine(lineIDs[0])

	for _, seg := range segs {
		if seg.Start().ApproxEqual(r2.Point{1, 0}, 1e-9) || seg.End().ApproxEqual(r2.Point{1, 0}, 1e-9) {
			t.Errorf("expected collinear vertex (1,0) to be removed, found it in %+v", seg)
		}
	}
}

func TestSimplifyToleranceRegressedFails(t *testing.T) {
	poly := geometry.Polygon{Ring: []r2.Point{{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}
	store := buildStore(t, []geometry.Polygon{poly})
	s := New(store, geosoracle.New())

	if err := s.Simplify(500); err != nil {
		t.Fatalf("first Simplify returned error: %v", err)
	}
	err := s.Simplify(250)
	if err == nil {
		t.Fatal("expected ToleranceRegressed, got nil")
	}
}

func TestSimplifyIdempotentOnRepeatedCall(t *testing.T) {
	poly := geometry.Polygon{Ring: []r2.Point{{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}
	store := buildStore(t, []geometry.Polygon{poly})
	s := New(store, geosoracle.New())

	if err := s.Simplify(0.01); err != nil {
		t.Fatalf("first Simplify returned error: %v", err)
	}
	before := store.CountLive()
	if err := s.Simplify(0.01); err != nil {
		t.Fatalf("second Simplify returned error: %v", err)
	}
	after := store.CountLive()
	if before != after {
		t.Errorf("expected repeated simplify at the same tolerance to be a no-op, live count went from %d to %d", before, after)
	}
}

func TestSimplifyNoOpAtZeroToleranceLeavesNonCollinearVertices(t *testing.T) {
	poly := geometry.Polygon{Ring: []r2.Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}
	store := buildStore(t, []geometry.Polygon{poly})
	before := store.CountLive()

	s := New(store, geosoracle.New())
	if err := s.Simplify(0); err != nil {
		t.Fatalf("Simplify(0) returned error: %v", err)
	}
	after := store.CountLive()
	if after != before {
		t.Errorf("expected simplify(0) to leave a simple square's non-collinear vertices alone, live count went from %d to %d", before, after)
	}
}

func TestSimplifyLineReportsCandidateEvenWhenDeferredByPreservedConflict(t *testing.T) {
	poly := geometry.Polygon{Ring: []r2.Point{{0, 0}, {1, 0}, {2, 0.01}, {2, 2}, {0, 2}, {0, 0}}}
	store := buildStore(t, []geometry.Polygon{poly})
	s := New(store, geosoracle.New())

	lineIDs := store.LiveLineIDs()
	if len(lineIDs) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lineIDs))
	}
	segs := store.LiveSegmentsOfLine(lineIDs[0])

	// Mark every segment's guid as already preserved this pass, simulating a
	// neighboring collapse that ran first and claimed the whole neighborhood.
	preserved := make(map[int64]bool)
	for _, seg := range segs {
		preserved[seg.GUID] = true
	}

	changed, hasCandidate, err := s.simplifyLine(lineIDs[0], 10*10, preserved)
	if err != nil {
		t.Fatalf("simplifyLine returned error: %v", err)
	}
	if changed {
		t.Fatal("expected no collapse while every segment is preserved")
	}
	if !hasCandidate {
		t.Fatal("expected hasCandidate=true: a below-tolerance triangle existed even though it was deferred, so the line must not be marked stable")
	}
}

func TestSimplifyPreservesSharedBorderBetweenTouchingSquares(t *testing.T) {
	a := geometry.Polygon{Ring: []r2.Point{{0, 0}, {2, 0}, {2, 1}, {0, 1}, {0, 0}}}
	b := geometry.Polygon{Ring: []r2.Point{{2, 0}, {3, 0}, {3, 1}, {2, 1}, {2, 0}}}
	store := buildStore(t, []geometry.Polygon{a, b})

	s := New(store, geosoracle.New())
	if err := s.Simplify(0.1); err != nil {
		t.Fatalf("Simplify returned error: %v", err)
	}

	var sharedLen float64
	for _, seg := range store.LiveSegmentsOfFeature(0) {
		if seg.IsShared() {
			sharedLen += seg.Length()
		}
	}
	if sharedLen == 0 {
		t.Fatal("expected the shared border between the two squares to survive simplification")
	}
}
