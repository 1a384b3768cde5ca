package trench

import (
	"math"
	"testing"

	"github.com/kwv/trenchplan/geomx"
	"github.com/paulmach/orb"
)

// unitSquareLOE builds the side-2 square centred at the origin used by the
// concrete scenarios: vertices at (+-1, +-1), so the centroid-to-corner
// half-extent is sqrt(2).
func unitSquareLOE() LOE {
	return LOE{Polygon: geomx.NewPolygon([]orb.Point{
		{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
	})}
}

func circlePolygon(centre orb.Point, radius float64, segments int) geomx.Polygon {
	pts := make([]orb.Point, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = orb.Point{centre[0] + radius*math.Cos(theta), centre[1] + radius*math.Sin(theta)}
	}
	return geomx.NewPolygon(pts)
}

func layoutAtRotation(t *testing.T, layouts []Layout, k int) Layout {
	t.Helper()
	for _, l := range layouts {
		if l.Rotation == k {
			return l
		}
	}
	t.Fatalf("no layout at rotation %d", k)
	return Layout{}
}

// Scenario 1: unit-square LOE, continuous parallel spacing 0.5 width 0.1 ->
// measured coverage close to 20%.
func TestGenerateContinuousCoverageScenario(t *testing.T) {
	cfg := Continuous(0.1, SpacingOf(0.5))
	layouts, err := Generate(cfg, unitSquareLOE(), 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	l := layoutAtRotation(t, layouts, 0)
	coverage := l.Geometry.Area() / unitSquareLOE().Polygon.Area() * 100
	if coverage < 15 || coverage > 25 {
		t.Fatalf("measured coverage = %.2f%%, want roughly 20%%", coverage)
	}
}

// Scenario 2: standard_grid width=0.1 length=0.1 spacing 0.5 against a
// unit-square LOE, evaluated against a single central disk feature of
// radius 0.2.
func TestGenerateStandardGridHitsCentralDisk(t *testing.T) {
	cfg := StandardGrid(0.1, 0.1, SpacingOf(0.5))
	loe := unitSquareLOE()
	layouts, err := Generate(cfg, loe, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	l := layoutAtRotation(t, layouts, 0)

	disk := circlePolygon(orb.Point{0, 0}, 0.2, 64)
	hits := Evaluate(l, FeatureSet{Features: []geomx.Polygon{disk}})
	if hits.Hits != 1 {
		t.Fatalf("hits = %d, want 1 (only the central pit should meet the disk)", hits.Hits)
	}
	if hits.Misses != 0 {
		t.Fatalf("misses = %d, want 0", hits.Misses)
	}
}

// Scenario 3: a thin strip feature along y=0 is hit by the k=0 continuous
// sweep, since every strip at k=0 is itself centred on y=0.
func TestGenerateContinuousHitsAlignedStripFeature(t *testing.T) {
	loe := LOE{Polygon: geomx.NewPolygon([]orb.Point{
		{-10, -10}, {10, -10}, {10, 10}, {-10, 10},
	})}
	cfg := Continuous(1, SpacingOf(5))
	layouts, err := Generate(cfg, loe, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	l := layoutAtRotation(t, layouts, 0)

	feature := geomx.Rectangle(orb.Point{0, 0}, 20, 0.02, 0)
	hits := Evaluate(l, FeatureSet{Features: []geomx.Polygon{feature}})
	if hits.Hits != 1 {
		t.Fatalf("hits at k=0 = %d, want 1", hits.Hits)
	}
}

func TestGenerateHitCountBounds(t *testing.T) {
	loe := unitSquareLOE()
	cfg := StandardGrid(0.1, 0.1, SpacingOf(0.5))
	layouts, err := Generate(cfg, loe, 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	features := []geomx.Polygon{
		circlePolygon(orb.Point{0, 0}, 0.2, 32),
		circlePolygon(orb.Point{0.5, 0.5}, 0.05, 32),
		circlePolygon(orb.Point{5, 5}, 0.05, 32),
	}
	for _, l := range layouts {
		h := Evaluate(l, FeatureSet{Features: features})
		if h.Hits < 0 || h.Hits > len(features) {
			t.Fatalf("rotation %d: hits %d out of bounds", l.Rotation, h.Hits)
		}
		if h.Hits+h.Misses != len(features) {
			t.Fatalf("rotation %d: hits+misses = %d, want %d", l.Rotation, h.Hits+h.Misses, len(features))
		}
	}
}

func TestGenerateDegenerateLOERejected(t *testing.T) {
	degenerate := LOE{Polygon: geomx.NewPolygon([]orb.Point{{0, 0}, {1, 0}})}
	cfg := Continuous(0.1, SpacingOf(0.5))
	_, err := Generate(cfg, degenerate, 1)
	if err == nil {
		t.Fatalf("expected an error for a degenerate LOE")
	}
}

func TestGenerateRotationCountMatchesSymmetry(t *testing.T) {
	loe := unitSquareLOE()
	cfg := TestPits(0.1, SpacingOf(0.5))
	layouts, err := Generate(cfg, loe, 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(layouts) != cfg.Structure.RotationalSymmetry() {
		t.Fatalf("got %d layouts, want %d (one per distinct rotation)", len(layouts), cfg.Structure.RotationalSymmetry())
	}
}
