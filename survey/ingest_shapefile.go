package survey

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"

	"github.com/kwv/trenchplan/geomx"
	"github.com/kwv/trenchplan/trench"
)

// shapefile record shape types this reader understands. Records of any
// other shape type are skipped.
const (
	shapeTypePolygon = 5
)

// shapefileHeaderLen is the fixed 100-byte ESRI shapefile file header.
const shapefileHeaderLen = 100

// ShapefileIngest loads LOE and feature polygons from binary ESRI
// shapefiles: a loe.shp and a features.shp per (site, loe_index) group
// directory — the second of two on-disk corpus layouts this package
// supports alongside GeoJSONIngest. No shapefile-reading library appears
// anywhere in the retrieved corpus (see DESIGN.md), so this decodes the
// fixed big-endian/little-endian mixed binary layout directly via
// encoding/binary. Only the .shp files are read.
type ShapefileIngest struct {
	DataDir string
}

func (s ShapefileIngest) groupDir(site string, index int) string {
	return filepath.Join(s.DataDir, site, fmt.Sprintf("%d", index))
}

// LoadLOE implements Ingest. The LOE shapefile is expected to contain a
// single polygon record.
func (s ShapefileIngest) LoadLOE(site string, index int) (trench.LOE, error) {
	path := filepath.Join(s.groupDir(site, index), "loe.shp")
	polys, err := readShapefilePolygons(path)
	if err != nil {
		return trench.LOE{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(polys) == 0 {
		return trench.LOE{}, fmt.Errorf("%s: no polygon records", path)
	}
	return trench.LOE{Polygon: polys[0]}, nil
}

// LoadFeatures implements Ingest. layerFilter is accepted for contract
// symmetry with GeoJSONIngest but shapefiles carry layer identity via a
// sidecar .dbf this reader does not parse; callers requiring layer
// filtering over shapefile corpora should pre-split the shapefile per
// layer, mirroring how group_to_LOE pre-splits per LOE.
func (s ShapefileIngest) LoadFeatures(site string, index int, layerFilter string) (trench.FeatureSet, error) {
	path := filepath.Join(s.groupDir(site, index), "features.shp")
	polys, err := readShapefilePolygons(path)
	if err != nil {
		return trench.FeatureSet{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(polys) == 0 {
		return trench.FeatureSet{}, fmt.Errorf("%s: empty feature set", path)
	}
	return trench.FeatureSet{Features: polys}, nil
}

// readShapefilePolygons decodes every Polygon-type record's first
// (exterior) ring from an ESRI .shp file.
//
// File layout: a 100-byte header (big-endian file code/length fields,
// little-endian version/shape-type fields — the ESRI spec mixes byte
// order within the same header), followed by variable-length records.
// Each record header is big-endian (record number, content length in
// 16-bit words); record content is little-endian starting with a 4-byte
// shape type.
func readShapefilePolygons(path string) ([]geomx.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < shapefileHeaderLen {
		return nil, fmt.Errorf("file too short to be a shapefile")
	}

	fileCode := binary.BigEndian.Uint32(data[0:4])
	if fileCode != 9994 {
		return nil, fmt.Errorf("bad shapefile file code %d", fileCode)
	}
	fileLenWords := binary.BigEndian.Uint32(data[24:28])
	fileLenBytes := int(fileLenWords) * 2

	var polys []geomx.Polygon
	pos := shapefileHeaderLen

	for pos+8 <= fileLenBytes && pos+8 <= len(data) {
		contentLenWords := binary.BigEndian.Uint32(data[pos+4 : pos+8])
		contentLenBytes := int(contentLenWords) * 2
		recStart := pos + 8
		recEnd := recStart + contentLenBytes
		if recEnd > len(data) {
			return nil, fmt.Errorf("truncated shapefile record at offset %d", pos)
		}

		poly, ok, err := decodeShapeRecord(data[recStart:recEnd])
		if err != nil {
			return nil, err
		}
		if ok {
			polys = append(polys, poly)
		}

		pos = recEnd
	}

	return polys, nil
}

// decodeShapeRecord decodes a single record's content (everything after
// the 8-byte record header). ok is false for non-Polygon shape types,
// which this ingest adapter does not support.
func decodeShapeRecord(content []byte) (geomx.Polygon, bool, error) {
	if len(content) < 4 {
		return geomx.Polygon{}, false, fmt.Errorf("record too short for shape type")
	}
	shapeType := binary.LittleEndian.Uint32(content[0:4])
	if shapeType != shapeTypePolygon {
		return geomx.Polygon{}, false, nil
	}

	// Polygon record: 4-byte shape type, Box (4 float64), NumParts
	// (int32), NumPoints (int32), Parts ([NumParts]int32), Points
	// ([NumPoints] of x,y float64 pairs), all little-endian.
	const boxLen = 4 * 8
	if len(content) < 4+boxLen+8 {
		return geomx.Polygon{}, false, fmt.Errorf("polygon record too short for header")
	}

	offset := 4 + boxLen
	numParts := int(int32(binary.LittleEndian.Uint32(content[offset : offset+4])))
	numPoints := int(int32(binary.LittleEndian.Uint32(content[offset+4 : offset+8])))
	offset += 8

	if numParts < 1 || numPoints < 1 {
		return geomx.Polygon{}, false, fmt.Errorf("polygon record has no parts or points")
	}

	partsLen := numParts * 4
	if len(content) < offset+partsLen {
		return geomx.Polygon{}, false, fmt.Errorf("polygon record truncated parts array")
	}
	parts := make([]int, numParts)
	for i := 0; i < numParts; i++ {
		parts[i] = int(int32(binary.LittleEndian.Uint32(content[offset+i*4 : offset+i*4+4])))
	}
	offset += partsLen

	pointsLen := numPoints * 16
	if len(content) < offset+pointsLen {
		return geomx.Polygon{}, false, fmt.Errorf("polygon record truncated points array")
	}

	// Exterior ring is the first part (holes, if any, are stripped).
	ringStart := parts[0]
	ringEnd := numPoints
	if numParts > 1 {
		ringEnd = parts[1]
	}

	ring := make([]orb.Point, 0, ringEnd-ringStart)
	for i := ringStart; i < ringEnd; i++ {
		base := offset + i*16
		x := math.Float64frombits(binary.LittleEndian.Uint64(content[base : base+8]))
		y := math.Float64frombits(binary.LittleEndian.Uint64(content[base+8 : base+16]))
		ring = append(ring, orb.Point{x, y})
	}

	return geomx.NewPolygon(ring), true, nil
}
