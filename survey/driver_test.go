package survey

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"

	"github.com/kwv/trenchplan/geomx"
	"github.com/kwv/trenchplan/trench"
)

var errNoLOE = errors.New("no such LOE")

// fakeIngest is an in-memory Ingest for driver tests, in place of a real
// on-disk corpus.
type fakeIngest struct {
	loe      trench.LOE
	features trench.FeatureSet
	loeErr   error
}

func (f fakeIngest) LoadLOE(site string, index int) (trench.LOE, error) {
	if f.loeErr != nil {
		return trench.LOE{}, f.loeErr
	}
	return f.loe, nil
}

func (f fakeIngest) LoadFeatures(site string, index int, layerFilter string) (trench.FeatureSet, error) {
	return f.features, nil
}

func squarePolygon(half float64) geomx.Polygon {
	return geomx.NewPolygon([]orb.Point{
		{-half, -half}, {half, -half}, {half, half}, {-half, half},
	})
}

func TestRunAccumulatesAcrossSitesAndPatterns(t *testing.T) {
	ingest := fakeIngest{
		loe: trench.LOE{Polygon: squarePolygon(1)},
		features: trench.FeatureSet{Features: []geomx.Polygon{
			geomx.Rectangle(orb.Point{0, 0}, 0.2, 0.2, 0),
		}},
	}

	cfg := RunConfig{
		DataDir: "unused",
		Sites: []SiteConfig{
			{Name: "site-a", LOEIndices: []int{0, 1}},
		},
		Patterns: []PatternSpec{
			{Name: "continuous", Width: 0.1, Spacing: 0.5},
			{Name: "test_pits", Width: 0.1, Spacing: 0.5},
		},
	}

	totals, err := Run(cfg, ingest)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(totals.Results) != 4 { // 2 LOE indices x 2 patterns
		t.Fatalf("expected 4 results, got %d", len(totals.Results))
	}
	if totals.Layouts == 0 {
		t.Fatalf("expected at least one layout produced")
	}
}

func TestRunSkipsFailingIngestWithoutAborting(t *testing.T) {
	ingest := fakeIngest{loeErr: errNoLOE}

	cfg := RunConfig{
		DataDir: "unused",
		Sites:   []SiteConfig{{Name: "site-a", LOEIndices: []int{0}}},
		Patterns: []PatternSpec{
			{Name: "continuous", Width: 0.1, Spacing: 0.5},
		},
	}

	totals, err := Run(cfg, ingest)
	if err != nil {
		t.Fatalf("Run should not error on a skippable ingest failure: %v", err)
	}
	if len(totals.Results) != 0 {
		t.Fatalf("expected zero results when every LOE fails to load, got %d", len(totals.Results))
	}
}
