// Package dataset ties the topology builder, simplifier, and
// reassembler together behind the user-visible API of spec.md §6.3:
// load a resource into a Dataset, call Simplify with a monotone
// non-decreasing tolerance any number of times, and save the result.
//
// Grounded on original_source/Bloch.py's module-level load/save
// functions and its Datasource abstraction — this module splits that
// into a Dataset (owns the in-memory state across calls) plus Load/Save
// collaborator interfaces, per spec.md §6.2's "file I/O ... is outside
// the core" boundary.
package dataset

import (
	"fmt"

	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/oracle"
	"github.com/migurski/Bloch/reassemble"
	"github.com/migurski/Bloch/segstore"
	"github.com/migurski/Bloch/simerr"
	"github.com/migurski/Bloch/simplify"
	"github.com/migurski/Bloch/topology"
)

// Field is one attribute value preserved verbatim across a Dataset's
// lifetime (spec.md §3: "an opaque attribute record preserved verbatim
// to output").
type Field struct {
	Name  string
	Value any
}

// Feature is one input polygon plus its attribute record.
type Feature struct {
	Geometry   geometry.Polygon
	Attributes []Field
}

// Bundle is the collaborator-facing shape spec.md §6.2 names: a
// reference system tag, field names, and per-feature attribute tuples
// plus geometry.
type Bundle struct {
	SRS      string
	Features []Feature
}

// Loader reads a Bundle from an external resource (spec.md §6.3's
// load(resource)). The concrete resource type — a path, a reader, a
// URL — is left to the collaborator.
type Loader interface {
	Load(resource string) (Bundle, error)
}

// Saver writes a Bundle to an external resource (spec.md §6.3's
// save(Dataset, resource)).
type Saver interface {
	Save(resource string, b Bundle) error
}

// Dataset is the in-memory, mutable state spanning a load/simplify*/save
// session (spec.md §6.4: "None. The segment store is in-memory for the
// lifetime of a Dataset.").
type Dataset struct {
	srs           string
	originalAreas []float64
	attributes    [][]Field
	numFeatures   int
	oracle        oracle.GeometryOracle
	builder       *topology.Builder
	store         *segstore.Store
	simplifier    *simplify.Simplifier
	warnings      []simerr.ReassemblySmall
	lastResults   []reassemble.Result

	builderProgress  func(topology.ProgressEvent)
	simplifyProgress func(simplify.PassEvent)
}

// LoadOption customizes Load, currently limited to wiring the
// optional progress hooks SPEC_FULL.md §D.2 resurrects from
// original_source/Bloch.py's verbose flag.
type LoadOption func(*Dataset)

// WithBuilderProgress wires a callback for topology.Builder's
// per-pair/per-feature progress events during Load.
func WithBuilderProgress(fn func(topology.ProgressEvent)) LoadOption {
	return func(d *Dataset) { d.builderProgress = fn }
}

// WithSimplifyProgress wires a callback for simplify.Simplifier's
// per-pass progress events during every subsequent Simplify call.
func WithSimplifyProgress(fn func(simplify.PassEvent)) LoadOption {
	return func(d *Dataset) { d.simplifyProgress = fn }
}

// Load reads a bundle through the given Loader and builds its topology
// (spec.md §6.3's load(resource) -> Dataset).
func Load(l Loader, resource string, o oracle.GeometryOracle, opts ...LoadOption) (*Dataset, error) {
	bundle, err := l.Load(resource)
	if err != nil {
		return nil, fmt.Errorf("dataset: loading %q: %w", resource, err)
	}

	d := &Dataset{oracle: o}
	for _, opt := range opts {
		opt(d)
	}

	polys := make([]geometry.Polygon, len(bundle.Features))
	attrs := make([][]Field, len(bundle.Features))
	areas := make([]float64, len(bundle.Features))
	for i, f := range bundle.Features {
		polys[i] = f.Geometry
		attrs[i] = f.Attributes
		areas[i] = f.Geometry.Area()
	}

	builder := topology.NewBuilder(o)
	builder.Progress = d.builderProgress
	store, err := builder.Build(polys)
	if err != nil {
		return nil, err
	}

	simplifier := simplify.New(store, o)
	simplifier.Progress = d.simplifyProgress

	d.srs = bundle.SRS
	d.originalAreas = areas
	d.attributes = attrs
	d.numFeatures = len(polys)
	d.builder = builder
	d.store = store
	d.simplifier = simplifier

	// original_source/Bloch.py's save() reassembles whatever is live in
	// the store unconditionally, so a load-then-save round-trips the
	// (un-simplified) originals without requiring an intervening
	// Simplify call. Reassemble once here, at tolerance 0, so Bundle
	// and Save have something to read immediately after Load.
	if err := d.reassemble(0); err != nil {
		return nil, err
	}

	return d, nil
}

// Simplify runs spec.md §4.3's core loop against the dataset's segment
// store. tolerance must be non-decreasing across calls on the same
// Dataset (enforced by the underlying Simplifier).
func (d *Dataset) Simplify(tolerance float64) error {
	if err := d.simplifier.Simplify(tolerance); err != nil {
		return err
	}
	return d.reassemble(tolerance)
}

// reassemble gathers the store's current live segments into polygons
// and refreshes d.lastResults/d.warnings. Called once at the end of
// Load (tolerance 0) and again at the end of every Simplify call, so
// Bundle/Save always reflect the dataset's current state rather than
// only the state after the most recent Simplify.
func (d *Dataset) reassemble(tolerance float64) error {
	r := reassemble.New(d.store, d.oracle)
	results, err := r.Reassemble(d.numFeatures, d.originalAreas, tolerance)
	if err != nil {
		return err
	}

	d.lastResults = results
	d.warnings = d.warnings[:0]
	for _, res := range results {
		if res.Warning != nil {
			d.warnings = append(d.warnings, *res.Warning)
		}
	}

	return nil
}

// Warnings returns every non-fatal ReassemblySmall warning from the
// dataset's current state — i.e. its most recent Load or Simplify
// call, not a running log across the dataset's whole lifetime (spec.md
// §7: "ReassemblySmall ... is recoverable and logged").
func (d *Dataset) Warnings() []simerr.ReassemblySmall {
	return d.warnings
}

// Bundle renders the dataset's current reassembled state as an output
// Bundle. Features skipped at reassembly time are absent, per spec.md
// §6.2.
func (d *Dataset) Bundle() Bundle {
	b := Bundle{SRS: d.srs}
	for i, res := range d.lastResults {
		if res.Skipped {
			continue
		}
		b.Features = append(b.Features, Feature{
			Geometry:   res.Polygon,
			Attributes: d.attributes[i],
		})
	}
	return b
}

// Save writes the dataset's current state through the given Saver
// (spec.md §6.3's save(Dataset, resource)).
func (d *Dataset) Save(s Saver, resource string) error {
	return s.Save(resource, d.Bundle())
}
