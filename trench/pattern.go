package trench

import (
	"math"

	"github.com/kwv/trenchplan/geomx"
	"github.com/paulmach/orb"
)

// gridIndices returns K = {-N, ..., N} for N = floor(R/s), the grid index
// set the unrotated pattern is built over.
func gridIndices(r, spacing float64) []int {
	n := int(math.Floor(r / spacing))
	k := make([]int, 0, 2*n+1)
	for i := -n; i <= n; i++ {
		k = append(k, i)
	}
	return k
}

// buildUnrotatedPattern constructs the unrotated multipolygon for the
// given structure at the given spacing, centred at c with half-extent r.
// Serial by design: building a single pattern is cheap relative to
// clipping it across a full rotation sweep, so there is no benefit to
// parallelising this step.
func buildUnrotatedPattern(s Structure, spacing float64, c orb.Point, r float64) geomx.MultiPolygon {
	if s.IsParallel() {
		return buildParallelPattern(s.LineFootprint(), spacing, c, r)
	}
	return buildArrayPattern(s.RectangleFootprint(), s.ArrayParams(), spacing, c, r)
}

// buildParallelPattern places a rectangle of width w and length 2R,
// centred at c + (i*s, 0), angle 0, for every i in K.
func buildParallelPattern(line Line, spacing float64, c orb.Point, r float64) geomx.MultiPolygon {
	k := gridIndices(r, spacing)
	pattern := make(geomx.MultiPolygon, 0, len(k))
	for _, i := range k {
		centre := orb.Point{c[0] + float64(i)*spacing, c[1]}
		pattern = append(pattern, geomx.Rectangle(centre, line.Width, 2*r, 0))
	}
	return pattern
}

// buildArrayPattern enumerates (i, j) in K x K, picking the rotation per
// ArrayConfig.Axis and skipping every other cell when Separated.
func buildArrayPattern(rect Rectangle, a ArrayConfig, spacing float64, c orb.Point, r float64) geomx.MultiPolygon {
	k := gridIndices(r, spacing)
	minK := k[0]

	var pattern geomx.MultiPolygon
	for _, i := range k {
		for _, j := range k {
			xIndex := i - minK
			yIndex := j - minK
			alt := (xIndex+yIndex)%2 == 0

			var rotation Degree
			switch a.Axis {
			case ByCell:
				if alt {
					rotation = a.BaseAngle
				} else {
					rotation = a.AlternateAngle
				}
			case ByColumn:
				if xIndex%2 == 0 {
					rotation = a.BaseAngle
				} else {
					rotation = a.AlternateAngle
				}
			}

			// The checkerboard removes the alt=true half, leaving the
			// alt=false cells.
			if a.Separated && alt {
				continue
			}

			centre := orb.Point{c[0] + float64(i)*spacing, c[1] + float64(j)*spacing}
			pattern = append(pattern, geomx.Rectangle(centre, rect.Width, rect.Length, float64(rotation)))
		}
	}
	return pattern
}
