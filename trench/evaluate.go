package trench

import (
	"runtime"
	"sync"

	"github.com/kwv/trenchplan/geomx"
)

// Hits is the per-layout result of the evaluator: hits + misses always
// equals the feature count.
type Hits struct {
	Layout Layout
	Hits   int
	Misses int
}

// Evaluate counts how many features in fs intersect layout. The evaluator
// does not deduplicate features across layouts.
func Evaluate(layout Layout, fs FeatureSet) Hits {
	hits := 0
	for _, f := range fs.Features {
		if geomx.IntersectsAny(layout.Geometry, f) {
			hits++
		}
	}
	return Hits{Layout: layout, Hits: hits, Misses: len(fs.Features) - hits}
}

// EvaluateAll scores every layout against the shared, read-only feature
// set, fanned out over a bounded worker pool. Results preserve the input
// layout order regardless of completion order.
func EvaluateAll(layouts []Layout, fs FeatureSet, workers int) []Hits {
	if len(layouts) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(layouts) {
		workers = len(layouts)
	}

	results := make([]Hits, len(layouts))

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = Evaluate(layouts[i], fs)
			}
		}()
	}
	for i := range layouts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
