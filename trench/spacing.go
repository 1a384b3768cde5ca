package trench

import "math"

// RotationalSymmetry returns the smallest positive rotation (in degrees)
// up to which sweep rotations are distinct: 180 for Parallel and all
// Array structures except square, separated-false arrays, which have
// order 90.
func (s Structure) RotationalSymmetry() int {
	if s.IsParallel() {
		return 180
	}
	r := s.RectangleFootprint()
	if r.Width == r.Length && !s.ArrayParams().Separated {
		return 90
	}
	return 180
}

// MinimumSpacing returns the smallest centre-to-centre spacing at which no
// two trenches of the structure would overlap.
func (s Structure) MinimumSpacing() float64 {
	if s.IsParallel() {
		return s.LineFootprint().Width
	}
	return arrayMinimumSpacing(s.RectangleFootprint(), s.ArrayParams())
}

// rectCorners returns the four corners of a width x length rectangle
// centred at the origin, rotated by angleDeg: for each half-extent
// decomposition (l*cos(phi), l*sin(phi)) etc with phi = 90 - theta, yield
// the four signed combinations.
func rectCorners(width, length, angleDeg float64) [4][2]float64 {
	theta := angleDeg * math.Pi / 180.0
	phi := math.Pi/2 - theta

	lx, ly := length/2*math.Cos(phi), length/2*math.Sin(phi)
	wx, wy := width/2*math.Sin(phi), width/2*math.Cos(phi)

	return [4][2]float64{
		{lx - wx, ly + wy},
		{lx + wx, ly - wy},
		{-lx + wx, -ly - wy},
		{-lx - wx, -ly + wy},
	}
}

// verticalGap computes the vertical centre-to-centre separation needed
// for rectangle B (corners cornersB) to sit above rectangle A (corners
// cornersA) without overlap: for B's topmost corner, walk its two
// incident edges; for each edge with finite slope, compute the vertical
// gap against every A corner whose x lies within the edge's x-span, and
// take the symmetric max (A into B, B into A).
func verticalGap(cornersA, cornersB [4][2]float64) float64 {
	gapOneWay := func(top, other [4][2]float64) float64 {
		topIdx := 0
		for i := 1; i < 4; i++ {
			if other[i][1] > other[topIdx][1] {
				topIdx = i
			}
		}
		_ = top
		apex := other[topIdx]
		max := 0.0
		for _, nb := range []int{(topIdx + 1) % 4, (topIdx + 3) % 4} {
			edgeOther := other[nb]
			dx := edgeOther[0] - apex[0]
			if dx == 0 {
				continue // vertical edge, no finite slope to project along
			}
			m := (edgeOther[1] - apex[1]) / dx
			c := apex[1] - m*apex[0]
			xLo, xHi := apex[0], edgeOther[0]
			if xLo > xHi {
				xLo, xHi = xHi, xLo
			}
			for _, corner := range top {
				if corner[0] < xLo || corner[0] > xHi {
					continue
				}
				gap := -(corner[1] - (m*corner[0] + c))
				if gap > max {
					max = gap
				}
			}
		}
		return max
	}

	return math.Max(gapOneWay(cornersA, cornersB), gapOneWay(cornersB, cornersA))
}

// pairwiseGap is verticalGap generalised to an arbitrary pair of
// orientations: rotate a unit rectangle by angleA and angleB respectively,
// then compute the vertical gap between the two.
func pairwiseGap(width, length, angleA, angleB float64) float64 {
	cornersA := rectCorners(width, length, angleA)
	cornersB := rectCorners(width, length, angleB)
	return verticalGap(cornersA, cornersB)
}

// arrayMinimumSpacing computes the minimum spacing for Array structures:
// combine vertical, horizontal and diagonal sub-problems depending on
// ArrayConfig, halving vertical/horizontal contributions when Separated,
// then take the max across the combined results.
func arrayMinimumSpacing(r Rectangle, a ArrayConfig) float64 {
	base := float64(a.BaseAngle)
	alt := float64(a.AlternateAngle)

	var vertical, horizontal, diagonal float64

	switch a.Axis {
	case ByCell:
		vertical = pairwiseGap(r.Width, r.Length, base, alt)
		horizontal = pairwiseGap(r.Width, r.Length, base+90, alt+90)
		diagonal = pairwiseGap(r.Width, r.Length, base+45, base+45)
	case ByColumn:
		v1 := pairwiseGap(r.Width, r.Length, base, base)
		v2 := pairwiseGap(r.Width, r.Length, alt, alt)
		vertical = math.Max(v1, v2)
		horizontal = pairwiseGap(r.Width, r.Length, base+90, alt+90)
		diagonal = pairwiseGap(r.Width, r.Length, alt+45, base+45)
	}

	if a.Separated {
		vertical /= 2
		horizontal /= 2
	}

	return math.Max(vertical, math.Max(horizontal, diagonal))
}
