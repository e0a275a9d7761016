package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/r2"
)

// GeoJSON is a demo Loader/Saver exercising the load/simplify/save
// pipeline end-to-end (spec.md §6.2 places file I/O outside the core;
// this is one concrete collaborator among many possible ones).
//
// No GeoJSON library appears anywhere in the retrieved corpus — the
// two nearest candidates in other_examples/ (yohancabion-godal's
// vector.go, MathewBravo-gospatial's geometry.go) both hand-roll their
// own JSON geometry structs rather than importing a GeoJSON codec, so
// encoding/json is the honest choice here too (see DESIGN.md).
type GeoJSON struct{}

type geojsonFeatureCollection struct {
	Type     string            `json:"type"`
	CRS      *geojsonCRS       `json:"crs,omitempty"`
	Features []geojsonFeature  `json:"features"`
}

type geojsonCRS struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
}

type geojsonFeature struct {
	Type       string            `json:"type"`
	Properties map[string]any    `json:"properties"`
	Geometry   geojsonGeometry   `json:"geometry"`
}

type geojsonGeometry struct {
	Type        string          `json:"type"`
	Coordinates [][][2]float64  `json:"coordinates"`
}

// Load reads a GeoJSON FeatureCollection of Polygon features from a
// file path.
func (GeoJSON) Load(resource string) (Bundle, error) {
	data, err := os.ReadFile(resource)
	if err != nil {
		return Bundle{}, err
	}

	var fc geojsonFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return Bundle{}, fmt.Errorf("dataset: parsing GeoJSON: %w", err)
	}

	srs := "EPSG:4326"
	if fc.CRS != nil {
		if name, ok := fc.CRS.Properties["name"]; ok {
			srs = name
		}
	}

	b := Bundle{SRS: srs}
	for _, gf := range fc.Features {
		if gf.Geometry.Type != "Polygon" {
			return Bundle{}, fmt.Errorf("dataset: unsupported geometry type %q (only Polygon is supported)", gf.Geometry.Type)
		}
		if len(gf.Geometry.Coordinates) == 0 {
			continue
		}

		ring := make([]r2.Point, len(gf.Geometry.Coordinates[0]))
		for i, c := range gf.Geometry.Coordinates[0] {
			ring[i] = r2.Point{X: c[0], Y: c[1]}
		}

		var fields []Field
		for k, v := range gf.Properties {
			fields = append(fields, Field{Name: k, Value: v})
		}

		b.Features = append(b.Features, Feature{
			Geometry:   geometry.Polygon{Ring: ring},
			Attributes: fields,
		})
	}

	return b, nil
}

// Save writes a Bundle as a GeoJSON FeatureCollection of Polygon
// features to a file path.
func (GeoJSON) Save(resource string, b Bundle) error {
	fc := geojsonFeatureCollection{
		Type: "FeatureCollection",
		CRS: &geojsonCRS{
			Type:       "name",
			Properties: map[string]string{"name": b.SRS},
		},
	}

	for _, f := range b.Features {
		props := make(map[string]any, len(f.Attributes))
		for _, field := range f.Attributes {
			props[field.Name] = field.Value
		}

		coords := make([][2]float64, len(f.Geometry.Ring))
		for i, p := range f.Geometry.Ring {
			coords[i] = [2]float64{p.X, p.Y}
		}

		fc.Features = append(fc.Features, geojsonFeature{
			Type:       "Feature",
			Properties: props,
			Geometry: geojsonGeometry{
				Type:        "Polygon",
				Coordinates: [][][2]float64{coords},
			},
		})
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset: encoding GeoJSON: %w", err)
	}

	return os.WriteFile(resource, data, 0o644)
}
