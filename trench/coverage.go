package trench

import (
	"math"

	"github.com/kwv/trenchplan/geomx"
	"github.com/paulmach/orb"
)

// maxCoverageIterations bounds the damped fixed-point loop.
const maxCoverageIterations = 10

// convergenceHalfWidth is the open-interval half-width (percentage
// points) the solver must land within to declare convergence.
const convergenceHalfWidth = 0.05

// dampingBase is the per-iteration damping factor alpha_n = dampingBase^n.
const dampingBase = 0.82

// seedSpacing computes the initial spacing estimate s0 for a coverage
// target.
func seedSpacing(s Structure, target Percentage) float64 {
	f := target.Fraction()
	if s.IsParallel() {
		return s.LineFootprint().Width / f
	}
	rect := s.RectangleFootprint()
	s0 := math.Sqrt(rect.Width * rect.Length / f)
	if s.ArrayParams().Separated {
		s0 /= 2
	}
	return s0
}

// solveCoverage finds a spacing that realises cfg.Distribution's coverage
// target at rotation k, clipped to loe. ok is false if the target is
// unreachable above minimum spacing, or the iteration limit is exhausted
// without convergence.
func solveCoverage(cfg TrenchConfig, loe LOE, centroid orb.Point, r float64, k int) (geomx.MultiPolygon, bool) {
	target := cfg.Distribution.Target()
	spacing := seedSpacing(cfg.Structure, target)
	minSpacing := cfg.MinimumSpacing
	loeArea := loe.Polygon.Area()

	if spacing < minSpacing {
		return nil, false
	}

	for n := 0; n < maxCoverageIterations; n++ {
		unrotated := buildUnrotatedPattern(cfg.Structure, spacing, centroid, r)
		rotated := geomx.RotateMultiPolygon(unrotated, centroid, float64(k))
		clipped := geomx.ClipLOEToPattern(loe.Polygon, rotated)

		current := clipped.Area() / loeArea * 100.0

		if math.Abs(current-float64(target)) < convergenceHalfWidth {
			return clipped, true
		}

		alpha := math.Pow(dampingBase, float64(n))
		e := (float64(target) - current) / float64(target)

		if e < 0 {
			spacing = spacing * (1 + (-e)*alpha)
		} else {
			spacing = spacing / (1 + e*alpha)
		}

		if spacing < minSpacing {
			return nil, false
		}
	}

	return nil, false
}
