// Command groupbyloe is a preprocessing tool, run ahead of a survey,
// that produces the on-disk corpus layout the core expects: it
// partitions a raw features GeoJSON collection into one bundle per LOE,
// by polygon intersection with each LOE, and normalises the LANDSCAPE and
// Phase properties onto Layer.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"

	"github.com/kwv/trenchplan/geomx"
	"github.com/kwv/trenchplan/survey"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <input-base-name> <output-dir>\n", os.Args[0])
		os.Exit(2)
	}
	baseName := os.Args[1]
	outDir := os.Args[2]

	loeFC, err := readFeatureCollection(fmt.Sprintf("LOE_%s.geojson", baseName))
	if err != nil {
		log.Fatalf("reading LOE collection: %v", err)
	}
	featuresFC, err := readFeatureCollection(fmt.Sprintf("features_%s.geojson", baseName))
	if err != nil {
		log.Fatalf("reading features collection: %v", err)
	}

	loePolys := make([]geomx.Polygon, 0, len(loeFC.Features))
	for _, f := range loeFC.Features {
		poly, err := featurePolygon(f)
		if err != nil {
			log.Printf("skipping LOE feature: %v", err)
			loePolys = append(loePolys, geomx.Polygon{})
			continue
		}
		loePolys = append(loePolys, poly)
	}

	grouped := make([][]*survey.Feature, len(loeFC.Features))

	total := 0
	placed := 0
	for _, f := range featuresFC.Features {
		poly, err := featurePolygon(f)
		if err != nil {
			log.Printf("skipping feature with unsupported geometry: %v", err)
			continue
		}
		total++
		inAny := false
		for i, loePoly := range loePolys {
			if loePoly.Exterior == nil {
				continue
			}
			if !geomx.Intersects(poly, loePoly) {
				continue
			}
			normalizeLayer(f)
			grouped[i] = append(grouped[i], f)
			inAny = true
		}
		if inAny {
			placed++
		}
	}

	fmt.Printf("Number of features not in LOE: %d for %s\n", total-placed, baseName)

	for i, features := range grouped {
		dir := filepath.Join(outDir, baseName, fmt.Sprintf("%d", i))
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("creating %s: %v", dir, err)
		}
		if err := writeFeatureCollection(filepath.Join(dir, "features.geojson"), &survey.FeatureCollection{
			Type:     "FeatureCollection",
			Features: features,
		}); err != nil {
			log.Fatalf("writing features for LOE %d: %v", i, err)
		}
		if err := writeFeature(filepath.Join(dir, "loe.geojson"), loeFC.Features[i]); err != nil {
			log.Fatalf("writing loe %d: %v", i, err)
		}
	}
}

// normalizeLayer standardises the LANDSCAPE/Phase property names onto
// Layer, matching group_to_LOE's property rewrite.
func normalizeLayer(f *survey.Feature) {
	if f.Properties == nil {
		return
	}
	if v, ok := f.Properties["LANDSCAPE"]; ok {
		f.Properties["Layer"] = v
		delete(f.Properties, "LANDSCAPE")
	}
	if v, ok := f.Properties["Phase"]; ok {
		f.Properties["Layer"] = v
		delete(f.Properties, "Phase")
	}
}

func readFeatureCollection(path string) (*survey.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var fc survey.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fc, nil
}

func writeFeatureCollection(path string, fc *survey.FeatureCollection) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

func writeFeature(path string, f *survey.Feature) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// featurePolygon decodes a feature's Polygon (or first MultiPolygon
// member) exterior ring, mirroring group_to_LOE's Polygon-only matching
// ("Non Polygon GeoJSON not supported" is logged and the feature skipped).
func featurePolygon(f *survey.Feature) (geomx.Polygon, error) {
	if f.Geometry == nil {
		return geomx.Polygon{}, fmt.Errorf("missing geometry")
	}
	switch f.Geometry.Type {
	case survey.GeometryPolygon:
		var rings [][][2]float64
		if err := json.Unmarshal(f.Geometry.Coordinates, &rings); err != nil {
			return geomx.Polygon{}, fmt.Errorf("decoding polygon coordinates: %w", err)
		}
		if len(rings) == 0 {
			return geomx.Polygon{}, fmt.Errorf("polygon has no rings")
		}
		return ringToPolygon(rings[0]), nil
	case survey.GeometryMultiPolygon:
		var polys [][][][2]float64
		if err := json.Unmarshal(f.Geometry.Coordinates, &polys); err != nil {
			return geomx.Polygon{}, fmt.Errorf("decoding multipolygon coordinates: %w", err)
		}
		if len(polys) == 0 || len(polys[0]) == 0 {
			return geomx.Polygon{}, fmt.Errorf("multipolygon has no rings")
		}
		return ringToPolygon(polys[0][0]), nil
	default:
		return geomx.Polygon{}, fmt.Errorf("non-Polygon GeoJSON not supported: %s", f.Geometry.Type)
	}
}

func ringToPolygon(ring [][2]float64) geomx.Polygon {
	points := make([]orb.Point, len(ring))
	for i, c := range ring {
		points[i] = orb.Point{c[0], c[1]}
	}
	return geomx.NewPolygon(points)
}
