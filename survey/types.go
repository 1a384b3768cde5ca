package survey

import "github.com/kwv/trenchplan/trench"

// Ingest is the contract fixed at the boundary between the core and the
// ingest collaborators: polygons are planar, in the LOE's coordinate
// system, holes stripped, rings closed. layerFilter, when non-empty,
// restricts LoadFeatures to features whose Layer property equals it.
type Ingest interface {
	LoadLOE(site string, index int) (trench.LOE, error)
	LoadFeatures(site string, index int, layerFilter string) (trench.FeatureSet, error)
}

// SiteLOE names one (site, loe_index) pair to run, and the resolved
// on-disk group directory it was loaded from.
type SiteLOE struct {
	Site string
	LOE  int
	Dir  string
}

// RunResult is the per-(site, loe_index, pattern) aggregate a run
// produces: layouts attempted and produced, plus accumulated hits and
// misses across all of them.
type RunResult struct {
	Site            string
	LOE             int
	Pattern         string
	LayoutsAttempted int
	LayoutsProduced int
	Hits            int
	Misses          int
}

// PercentFound is hits/(hits+misses)*100, or 0 if no features were
// evaluated.
func (r RunResult) PercentFound() float64 {
	total := r.Hits + r.Misses
	if total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(total) * 100.0
}

// Totals aggregates RunResults across an entire survey run.
type Totals struct {
	Hits    int
	Misses  int
	Layouts int
	Results []RunResult
}

// PercentFound is the aggregate hits/(hits+misses)*100 across the whole run.
func (t Totals) PercentFound() float64 {
	total := t.Hits + t.Misses
	if total == 0 {
		return 0
	}
	return float64(t.Hits) / float64(total) * 100.0
}

// Add folds one RunResult into the running totals.
func (t *Totals) Add(r RunResult) {
	t.Hits += r.Hits
	t.Misses += r.Misses
	t.Layouts += r.LayoutsProduced
	t.Results = append(t.Results, r)
}
