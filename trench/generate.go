package trench

import (
	"runtime"
	"sync"

	"github.com/kwv/trenchplan/geomx"
	"github.com/paulmach/orb"
)

// Generate runs the full layout generator for cfg against loe: it locates
// the centroid and half-extent, dispatches on Distribution, sweeps every
// distinct rotation in parallel, and returns the resulting layouts in
// rotation order. Coverage-mode rotations that fail to converge are
// simply absent from the result; if every rotation fails, Generate
// returns an empty, non-nil slice.
//
// workers caps the number of goroutines used for the sweep; 0 selects
// runtime.GOMAXPROCS(0).
func Generate(cfg TrenchConfig, loe LOE, workers int) ([]Layout, error) {
	centroid, ok := loe.Polygon.Centroid()
	if !ok {
		return nil, ErrDegenerateLOE
	}
	r := loe.Polygon.MaxVertexDistance(centroid)

	symmetry := cfg.Structure.RotationalSymmetry()

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > symmetry {
		workers = symmetry
	}

	results := make([]*Layout, symmetry)

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				results[k] = sweepRotation(cfg, loe, centroid, r, k)
			}
		}()
	}
	for k := 0; k < symmetry; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()

	layouts := make([]Layout, 0, symmetry)
	for _, l := range results {
		if l != nil {
			layouts = append(layouts, *l)
		}
	}
	return layouts, nil
}

// sweepRotation computes a single rotation k of the sweep: build (or, for
// coverage mode, solve for) the unrotated pattern, rotate it about
// centroid by k degrees, clip to the LOE, and return the resulting
// Layout. Returns nil if coverage mode could not converge at this
// rotation.
func sweepRotation(cfg TrenchConfig, loe LOE, centroid orb.Point, r float64, k int) *Layout {
	var clipped geomx.MultiPolygon

	if cfg.Distribution.IsSpacing() {
		unrotated := buildUnrotatedPattern(cfg.Structure, cfg.Distribution.Spacing(), centroid, r)
		rotated := geomx.RotateMultiPolygon(unrotated, centroid, float64(k))
		clipped = geomx.ClipLOEToPattern(loe.Polygon, rotated)
	} else {
		solved, ok := solveCoverage(cfg, loe, centroid, r, k)
		if !ok {
			return nil
		}
		clipped = solved
	}

	return &Layout{Rotation: k, Geometry: clipped}
}
