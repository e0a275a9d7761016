package reassemble

import (
	"errors"
	"testing"

	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/oracle/geosoracle"
	"github.com/migurski/Bloch/r2"
	"github.com/migurski/Bloch/segstore"
	"github.com/migurski/Bloch/simerr"
	"github.com/migurski/Bloch/topology"
)

func TestReassembleSingleSquare(t *testing.T) {
	poly := geometry.Polygon{Ring: []r2.Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}
	b := topology.NewBuilder(geosoracle.New())
	store, err := b.Build([]geometry.Polygon{poly})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	r := New(store, geosoracle.New())
	results, err := r.Reassemble(1, []float64{poly.Area()}, 0.1)
	if err != nil {
		t.Fatalf("Reassemble returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Skipped {
		t.Fatalf("expected feature 0 to reassemble, got skipped: %v", results[0].Warning)
	}
	if len(results[0].Polygon.Ring) < 4 {
		t.Errorf("expected a closed ring with at least 4 points, got %v", results[0].Polygon.Ring)
	}
}

func TestReassembleSmallFeatureDroppedWithWarning(t *testing.T) {
	poly := geometry.Polygon{Ring: []r2.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	store := segstore.NewStore()

	r := New(store, geosoracle.New())
	results, err := r.Reassemble(1, []float64{poly.Area()}, 100)
	if err != nil {
		t.Fatalf("Reassemble returned error: %v", err)
	}
	if !results[0].Skipped {
		t.Fatal("expected the tiny feature to be skipped under a large tolerance")
	}
	if results[0].Warning == nil {
		t.Fatal("expected a ReassemblySmall warning to be attached")
	}
}

func TestReassembleZeroToleranceRoutesMissingFeatureToReassemblyLost(t *testing.T) {
	store := segstore.NewStore()
	r := New(store, geosoracle.New())

	_, err := r.Reassemble(1, []float64{1.0}, 0)
	if err == nil {
		t.Fatal("expected ReassemblyLost rather than a divide-by-zero at tolerance 0")
	}
	var lost *simerr.ReassemblyLost
	if !errors.As(err, &lost) {
		t.Errorf("expected *simerr.ReassemblyLost, got %T", err)
	}
}

func TestReassembleMissingLargeFeatureFails(t *testing.T) {
	store := segstore.NewStore()
	r := New(store, geosoracle.New())

	_, err := r.Reassemble(1, []float64{1e9}, 0.001)
	if err == nil {
		t.Fatal("expected ReassemblyLost for a large feature with no reconstructable polygon")
	}
	var lost *simerr.ReassemblyLost
	if !errors.As(err, &lost) {
		t.Errorf("expected *simerr.ReassemblyLost, got %T", err)
	}
}
