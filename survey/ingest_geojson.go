package survey

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/kwv/trenchplan/geomx"
	"github.com/kwv/trenchplan/trench"
)

// GeoJSONIngest loads LOE and feature polygons from an on-disk corpus
// layout of <DataDir>/<site>/<loe_index>/{loe.geojson, features.geojson}.
// Decoding uses geojson.go's lazy RawMessage-coordinate types and handles
// Polygon/MultiPolygon geometry only, since this corpus only ever carries
// polygonal geometry.
type GeoJSONIngest struct {
	DataDir string

	// SimplifyTolerance, if non-zero, runs Douglas-Peucker simplification
	// (github.com/paulmach/orb/simplify) on the LOE ring before it's
	// handed to the generator, guarding against LOE polygons with very
	// large vertex counts becoming a throughput bottleneck.
	SimplifyTolerance float64
}

func (g GeoJSONIngest) groupDir(site string, index int) string {
	return filepath.Join(g.DataDir, site, fmt.Sprintf("%d", index))
}

// LoadLOE implements Ingest.
func (g GeoJSONIngest) LoadLOE(site string, index int) (trench.LOE, error) {
	path := filepath.Join(g.groupDir(site, index), "loe.geojson")
	data, err := os.ReadFile(path)
	if err != nil {
		return trench.LOE{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var feature Feature
	if err := json.Unmarshal(data, &feature); err != nil {
		return trench.LOE{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	poly, err := decodeSinglePolygon(feature.Geometry)
	if err != nil {
		return trench.LOE{}, fmt.Errorf("%s: %w", path, err)
	}

	if g.SimplifyTolerance > 0 {
		poly = simplifyPolygon(poly, g.SimplifyTolerance)
	}

	return trench.LOE{Polygon: poly}, nil
}

// LoadFeatures implements Ingest. An empty result after filtering is an
// ingest failure.
func (g GeoJSONIngest) LoadFeatures(site string, index int, layerFilter string) (trench.FeatureSet, error) {
	path := filepath.Join(g.groupDir(site, index), "features.geojson")
	data, err := os.ReadFile(path)
	if err != nil {
		return trench.FeatureSet{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return trench.FeatureSet{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	var polys []geomx.Polygon
	for _, f := range fc.Features {
		if layerFilter != "" && f.Layer() != layerFilter {
			continue
		}
		poly, err := decodeSinglePolygon(f.Geometry)
		if err != nil {
			continue // non-Polygon geometry skipped, not fatal for the set
		}
		polys = append(polys, poly)
	}

	if len(polys) == 0 {
		return trench.FeatureSet{}, fmt.Errorf("%s: empty feature set after filtering (layer=%q)", path, layerFilter)
	}

	return trench.FeatureSet{Features: polys}, nil
}

// decodeSinglePolygon decodes a Polygon geometry's exterior ring (holes,
// if any, are dropped) or, for a MultiPolygon, its first polygon's
// exterior ring.
func decodeSinglePolygon(geom *Geometry) (geomx.Polygon, error) {
	if geom == nil {
		return geomx.Polygon{}, fmt.Errorf("missing geometry")
	}
	switch geom.Type {
	case GeometryPolygon:
		var rings [][][2]float64
		if err := json.Unmarshal(geom.Coordinates, &rings); err != nil {
			return geomx.Polygon{}, fmt.Errorf("decoding polygon coordinates: %w", err)
		}
		if len(rings) == 0 {
			return geomx.Polygon{}, fmt.Errorf("polygon has no rings")
		}
		return ringToPolygon(rings[0]), nil
	case GeometryMultiPolygon:
		var polys [][][][2]float64
		if err := json.Unmarshal(geom.Coordinates, &polys); err != nil {
			return geomx.Polygon{}, fmt.Errorf("decoding multipolygon coordinates: %w", err)
		}
		if len(polys) == 0 || len(polys[0]) == 0 {
			return geomx.Polygon{}, fmt.Errorf("multipolygon has no rings")
		}
		return ringToPolygon(polys[0][0]), nil
	default:
		return geomx.Polygon{}, fmt.Errorf("non-Polygon geometry %q not supported", geom.Type)
	}
}

func ringToPolygon(ring [][2]float64) geomx.Polygon {
	points := make([]orb.Point, len(ring))
	for i, c := range ring {
		points[i] = orb.Point{c[0], c[1]}
	}
	return geomx.NewPolygon(points)
}

func simplifyPolygon(p geomx.Polygon, tolerance float64) geomx.Polygon {
	ring := orb.Ring(p.Exterior)
	simplified := simplify.DouglasPeucker(tolerance).Simplify(ring.Clone())
	r, ok := simplified.(orb.Ring)
	if !ok || len(r) < 4 {
		return p
	}
	return geomx.Polygon{Exterior: r}
}
