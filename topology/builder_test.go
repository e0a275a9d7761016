package topology

import (
	"testing"

	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/oracle/geosoracle"
	"github.com/migurski/Bloch/r2"
)

func square(x0, y0, x1, y1 float64) geometry.Polygon {
	return geometry.Polygon{Ring: []r2.Point{
		{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0},
	}}
}

func TestBuildTwoTouchingSquaresSharesOneBorder(t *testing.T) {
	a := square(0, 0, 2, 1)
	b := geometry.Polygon{Ring: []r2.Point{{2, 0}, {3, 0}, {3, 1}, {2, 1}, {2, 0}}}

	builder := NewBuilder(geosoracle.New())
	store, err := builder.Build([]geometry.Polygon{a, b})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	var sharedLen float64
	for _, seg := range store.LiveSegmentsOfFeature(0) {
		if seg.IsShared() {
			sharedLen += seg.Length()
		}
	}
	if sharedLen == 0 {
		t.Fatalf("expected a nonzero shared border between the two squares")
	}
}

func TestBuildSmallNUsesAllPairsFallback(t *testing.T) {
	features := []geometry.Polygon{square(0, 0, 1, 1), square(1, 0, 2, 1)}
	b := NewBuilder(geosoracle.New())
	pairs := b.candidatePairs(features)
	if len(pairs) != 1 {
		t.Fatalf("expected exactly 1 candidate pair below the small-n threshold, got %d", len(pairs))
	}
}

func TestCandidatePairsByBBoxIndexMatchesAllPairs(t *testing.T) {
	var features []geometry.Polygon
	for i := 0; i < 20; i++ {
		x := float64(i)
		features = append(features, square(x, 0, x+1, 1))
	}

	b := NewBuilder(geosoracle.New())
	all := b.candidatePairsAllPairs(features)
	indexed := b.candidatePairsByBBoxIndex(features)

	toSet := func(pairs [][2]int) map[[2]int]bool {
		m := make(map[[2]int]bool)
		for _, p := range pairs {
			m[p] = true
		}
		return m
	}

	wantSet, gotSet := toSet(all), toSet(indexed)
	if len(wantSet) != len(gotSet) {
		t.Fatalf("all-pairs found %d pairs, bbox index found %d", len(wantSet), len(gotSet))
	}
	for p := range wantSet {
		if !gotSet[p] {
			t.Errorf("bbox index missed pair %v", p)
		}
	}
}

func TestBuildDisjointFeaturesHaveNoSharedSegments(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(10, 10, 11, 11)

	builder := NewBuilder(geosoracle.New())
	store, err := builder.Build([]geometry.Polygon{a, b})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	for _, seg := range store.LiveSegmentsOfFeature(0) {
		if seg.IsShared() {
			t.Errorf("expected no shared segments between disjoint features, got one: %+v", seg)
		}
	}
}
