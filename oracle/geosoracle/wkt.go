package geosoracle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/migurski/Bloch/geometry"
	"github.com/migurski/Bloch/r2"
)

// toWKT renders a geometry.Geometry as Well-Known Text, the
// interchange format github.com/spatial-go/geoos's Geometry
// constructors and the underlying GEOS bindings both consume (see
// other_examples/...bean0303-geoos__strategy_geos.go's
// MarshalString/UnmarshalString round trip through exactly this
// format before calling into geo.Area, geo.Boundary, etc).
func toWKT(g geometry.Geometry) (string, error) {
	switch v := g.(type) {
	case geometry.Point:
		return fmt.Sprintf("POINT (%s)", fmtPoint(v.P)), nil
	case geometry.LineString:
		return fmt.Sprintf("LINESTRING (%s)", fmtPoints(v.Points)), nil
	case geometry.MultiLineString:
		parts := make([]string, len(v.Lines))
		for i, l := range v.Lines {
			parts[i] = fmt.Sprintf("(%s)", fmtPoints(l.Points))
		}
		return fmt.Sprintf("MULTILINESTRING (%s)", strings.Join(parts, ", ")), nil
	case geometry.Polygon:
		return fmt.Sprintf("POLYGON ((%s))", fmtPoints(v.Ring)), nil
	case geometry.MultiPolygon:
		parts := make([]string, len(v.Polygons))
		for i, p := range v.Polygons {
			parts[i] = fmt.Sprintf("((%s))", fmtPoints(p.Ring))
		}
		return fmt.Sprintf("MULTIPOLYGON (%s)", strings.Join(parts, ", ")), nil
	default:
		return "", fmt.Errorf("geosoracle: unsupported geometry kind %T", g)
	}
}

func fmtPoint(p r2.Point) string {
	return strconv.FormatFloat(p.X, 'g', -1, 64) + " " + strconv.FormatFloat(p.Y, 'g', -1, 64)
}

func fmtPoints(pts []r2.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmtPoint(p)
	}
	return strings.Join(parts, ", ")
}

// fromWKT parses the subset of WKT this module produces/consumes back
// into a geometry.Geometry: POINT, LINESTRING, MULTILINESTRING,
// POLYGON, MULTIPOLYGON, and GEOMETRYCOLLECTION.
func fromWKT(s string) (geometry.Geometry, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "GEOMETRYCOLLECTION EMPTY") {
		return geometry.Collection{}, nil
	}

	upper := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(upper, "POINT"):
		pts, err := parsePointLists(s, "POINT")
		if err != nil {
			return nil, err
		}
		if len(pts) == 0 || len(pts[0]) == 0 {
			return geometry.Collection{}, nil
		}
		return geometry.Point{P: pts[0][0]}, nil

	case strings.HasPrefix(upper, "MULTILINESTRING"):
		groups, err := parsePointLists(s, "MULTILINESTRING")
		if err != nil {
			return nil, err
		}
		lines := make([]geometry.LineString, 0, len(groups))
		for _, pts := range groups {
			if len(pts) > 0 {
				lines = append(lines, geometry.LineString{Points: pts})
			}
		}
		return geometry.MultiLineString{Lines: lines}, nil

	case strings.HasPrefix(upper, "LINESTRING"):
		groups, err := parsePointLists(s, "LINESTRING")
		if err != nil {
			return nil, err
		}
		if len(groups) == 0 {
			return geometry.MultiLineString{}, nil
		}
		return geometry.LineString{Points: groups[0]}, nil

	case strings.HasPrefix(upper, "MULTIPOLYGON"):
		groups, err := parseRingLists(s, "MULTIPOLYGON")
		if err != nil {
			return nil, err
		}
		polys := make([]geometry.Polygon, 0, len(groups))
		for _, ring := range groups {
			if len(ring) > 0 {
				polys = append(polys, geometry.Polygon{Ring: ring})
			}
		}
		return geometry.MultiPolygon{Polygons: polys}, nil

	case strings.HasPrefix(upper, "POLYGON"):
		groups, err := parseRingLists(s, "POLYGON")
		if err != nil {
			return nil, err
		}
		if len(groups) == 0 {
			return geometry.MultiPolygon{}, nil
		}
		return geometry.Polygon{Ring: groups[0]}, nil

	case strings.HasPrefix(upper, "GEOMETRYCOLLECTION"):
		// This module never asks the oracle to hand back nested
		// collections of collections; treat the inner text as one
		// flat bag of top-level geometries separated by top-level
		// commas (best-effort, sufficient for the intersection
		// results Phase A produces).
		inner := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s[len("GEOMETRYCOLLECTION"):]), "("), ")")
		parts := splitTopLevel(inner)
		var geoms []geometry.Geometry
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			g, err := fromWKT(part)
			if err != nil {
				return nil, err
			}
			geoms = append(geoms, g)
		}
		return geometry.Collection{Geometries: geoms}, nil

	default:
		return nil, fmt.Errorf("geosoracle: unsupported WKT %q", s)
	}
}

// parsePointLists extracts each parenthesized group of "x y, x y, ..."
// coordinate pairs out of a LINESTRING/MULTILINESTRING/POINT WKT body.
func parsePointLists(s, tag string) ([][]r2.Point, error) {
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), tag))
	if strings.EqualFold(strings.TrimSpace(body), "EMPTY") {
		return nil, nil
	}
	groups := splitGroups(body)
	out := make([][]r2.Point, 0, len(groups))
	for _, g := range groups {
		pts, err := parseCoordList(g)
		if err != nil {
			return nil, err
		}
		out = append(out, pts)
	}
	return out, nil
}

// parseRingLists extracts each polygon's outer ring out of a
// POLYGON/MULTIPOLYGON WKT body. Holes (subsequent rings within a
// polygon) are ignored: spec.md §9 restricts this module to
// simply-connected polygons.
func parseRingLists(s, tag string) ([][]r2.Point, error) {
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), tag))
	if strings.EqualFold(strings.TrimSpace(body), "EMPTY") {
		return nil, nil
	}
	polyGroups := splitGroups(body)
	out := make([][]r2.Point, 0, len(polyGroups))
	for _, pg := range polyGroups {
		rings := splitGroups(pg)
		if len(rings) == 0 {
			continue
		}
		pts, err := parseCoordList(rings[0])
		if err != nil {
			return nil, err
		}
		out = append(out, pts)
	}
	return out, nil
}

func parseCoordList(s string) ([]r2.Point, error) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "()"))
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	pts := make([]r2.Point, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) < 2 {
			return nil, fmt.Errorf("geosoracle: malformed coordinate %q", part)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, err
		}
		pts = append(pts, r2.Point{X: x, Y: y})
	}
	return pts, nil
}

// splitGroups strips one enclosing parenthesis pair and splits the rest
// at the top parenthesis level: "((a, b), (c, d))" becomes
// ["(a, b)", "(c, d)"].
func splitGroups(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	return splitTopLevelParens(s)
}

func splitTopLevelParens(s string) []string {
	var groups []string
	depth := 0
	start := -1
	for i, r := range s {
		switch r {
		case '(':
			if depth == 0 {
				start = i
			}
			depth++
		case ')':
			depth--
			if depth == 0 && start >= 0 {
				groups = append(groups, s[start:i+1])
				start = -1
			}
		}
	}
	if len(groups) == 0 && strings.TrimSpace(s) != "" {
		// Flat coordinate list with no nested parens, e.g. POINT's body.
		groups = append(groups, s)
	}
	return groups
}

func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}
