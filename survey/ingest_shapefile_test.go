package survey

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// buildTestShapefile writes a minimal single-polygon-record .shp file at
// path, using the square described by ring (closed, [x,y] pairs).
func buildTestShapefile(t *testing.T, path string, ring [][2]float64) {
	t.Helper()

	var content bytes.Buffer
	binary.Write(&content, binary.LittleEndian, int32(5)) // shape type: polygon
	for i := 0; i < 4; i++ {
		binary.Write(&content, binary.LittleEndian, math.Float64bits(0)) // bounding box, unused by the reader
	}
	binary.Write(&content, binary.LittleEndian, int32(1))          // numParts
	binary.Write(&content, binary.LittleEndian, int32(len(ring))) // numPoints
	binary.Write(&content, binary.LittleEndian, int32(0))          // parts[0]
	for _, pt := range ring {
		binary.Write(&content, binary.LittleEndian, math.Float64bits(pt[0]))
		binary.Write(&content, binary.LittleEndian, math.Float64bits(pt[1]))
	}

	var record bytes.Buffer
	binary.Write(&record, binary.BigEndian, int32(1))                        // record number
	binary.Write(&record, binary.BigEndian, int32(content.Len()/2))          // content length in 16-bit words
	record.Write(content.Bytes())

	var file bytes.Buffer
	binary.Write(&file, binary.BigEndian, int32(9994)) // file code
	file.Write(make([]byte, 20))                        // unused header words
	totalLenWords := int32((100 + record.Len()) / 2)
	binary.Write(&file, binary.BigEndian, totalLenWords)
	binary.Write(&file, binary.LittleEndian, int32(1000)) // version
	binary.Write(&file, binary.LittleEndian, int32(5))    // shape type
	file.Write(make([]byte, 64))                          // bounding box, unused
	file.Write(record.Bytes())

	if err := os.WriteFile(path, file.Bytes(), 0644); err != nil {
		t.Fatalf("writing test shapefile: %v", err)
	}
}

func TestShapefileIngestLoadLOE(t *testing.T) {
	dataDir := t.TempDir()
	dir := filepath.Join(dataDir, "site-a", "0")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating group dir: %v", err)
	}
	ring := [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	buildTestShapefile(t, filepath.Join(dir, "loe.shp"), ring)

	ingest := ShapefileIngest{DataDir: dataDir}
	loe, err := ingest.LoadLOE("site-a", 0)
	if err != nil {
		t.Fatalf("LoadLOE: %v", err)
	}
	if got := loe.Polygon.Area(); got != 100 {
		t.Fatalf("LOE area = %v, want 100", got)
	}
}

func TestShapefileIngestLoadFeatures(t *testing.T) {
	dataDir := t.TempDir()
	dir := filepath.Join(dataDir, "site-a", "0")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating group dir: %v", err)
	}
	ring := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	buildTestShapefile(t, filepath.Join(dir, "features.shp"), ring)

	ingest := ShapefileIngest{DataDir: dataDir}
	fs, err := ingest.LoadFeatures("site-a", 0, "")
	if err != nil {
		t.Fatalf("LoadFeatures: %v", err)
	}
	if len(fs.Features) != 1 {
		t.Fatalf("expected 1 feature record, got %d", len(fs.Features))
	}
}

func TestShapefileIngestMissingFile(t *testing.T) {
	ingest := ShapefileIngest{DataDir: t.TempDir()}
	if _, err := ingest.LoadLOE("nowhere", 0); err == nil {
		t.Fatalf("expected an error for a missing shapefile")
	}
}
