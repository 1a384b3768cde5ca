package survey

import (
	"fmt"
	"log"

	"github.com/kwv/trenchplan/trench"
)

// Run walks every configured (site, loe_index) pair against every
// configured pattern:
//  1. load LOE + feature polygons, skipping (site, loe_index) on any
//     ingest error (logged);
//  2. invoke the generator;
//  3. evaluate every layout produced;
//  4. accumulate totals across all (layout, LOE, config) triples.
func Run(cfg RunConfig, ingest Ingest) (Totals, error) {
	patterns := make([]trench.TrenchConfig, 0, len(cfg.Patterns))
	for _, spec := range cfg.Patterns {
		built, err := spec.Build()
		if err != nil {
			return Totals{}, fmt.Errorf("building pattern %q: %w", spec.Name, err)
		}
		patterns = append(patterns, built)
	}

	var totals Totals

	for _, site := range cfg.Sites {
		for _, loeIndex := range site.LOEIndices {
			loe, err := ingest.LoadLOE(site.Name, loeIndex)
			if err != nil {
				log.Printf("skipping %s/%d: loading LOE: %v", site.Name, loeIndex, err)
				continue
			}
			features, err := ingest.LoadFeatures(site.Name, loeIndex, cfg.LayerFilter)
			if err != nil {
				log.Printf("skipping %s/%d: loading features: %v", site.Name, loeIndex, err)
				continue
			}

			for i, pattern := range patterns {
				name := cfg.Patterns[i].Name
				result, err := runOne(site.Name, loeIndex, name, pattern, loe, features, cfg.Workers)
				if err != nil {
					log.Printf("skipping %s/%d pattern %s: %v", site.Name, loeIndex, name, err)
					continue
				}
				totals.Add(result)
			}
		}
	}

	return totals, nil
}

func runOne(site string, loeIndex int, patternName string, cfg trench.TrenchConfig, loe trench.LOE, features trench.FeatureSet, workers int) (RunResult, error) {
	layouts, err := trench.Generate(cfg, loe, workers)
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		Site:             site,
		LOE:              loeIndex,
		Pattern:          patternName,
		LayoutsAttempted: cfg.Structure.RotationalSymmetry(),
		LayoutsProduced:  len(layouts),
	}

	for _, h := range trench.EvaluateAll(layouts, features, workers) {
		result.Hits += h.Hits
		result.Misses += h.Misses
	}

	return result, nil
}
