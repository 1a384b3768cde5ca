// Package geomx is the narrow geometry boundary the trench package depends
// on. It wraps github.com/paulmach/orb's point/ring/polygon types with the
// handful of operations the pattern model and layout generator need that
// orb itself does not provide: rigid rotation about an arbitrary centre,
// convex-clip intersection, and the intersects predicate. orb ships point
// types and planar area/centroid/distance helpers but no polygon boolean
// ops, so clipping and the intersects predicate are hand-rolled here.
package geomx

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Polygon is a planar region with a single exterior ring. Holes are
// stripped upstream of ingest.
type Polygon struct {
	Exterior orb.Ring
}

// MultiPolygon is a disjoint union of polygons, produced by the layout
// generator.
type MultiPolygon []Polygon

// NewPolygon builds a Polygon from raw (x, y) pairs, closing the ring if
// the caller didn't.
func NewPolygon(points []orb.Point) Polygon {
	ring := make(orb.Ring, len(points))
	copy(ring, points)
	if len(ring) > 0 {
		first, last := ring[0], ring[len(ring)-1]
		if first != last {
			ring = append(ring, first)
		}
	}
	return Polygon{Exterior: ring}
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	if len(p.Exterior) < 3 {
		return 0
	}
	return math.Abs(planar.Area(orb.Polygon{p.Exterior}))
}

// Area returns the summed unsigned area of every polygon in the
// multipolygon.
func (mp MultiPolygon) Area() float64 {
	total := 0.0
	for _, p := range mp {
		total += p.Area()
	}
	return total
}

// Centroid returns the area-weighted centroid of the polygon's exterior
// ring. ok is false for degenerate (zero-area) rings; callers should
// reject such an LOE rather than fall back to some other reference point.
func (p Polygon) Centroid() (orb.Point, bool) {
	if len(p.Exterior) < 3 {
		return orb.Point{}, false
	}
	centroid, area := planar.CentroidArea(orb.Polygon{p.Exterior})
	if math.Abs(area) < 1e-12 {
		return orb.Point{}, false
	}
	return centroid, true
}

// MaxVertexDistance returns the largest Euclidean distance from c to any
// vertex of the polygon's exterior ring. Used as the pattern half-extent R
// that must be covered before clipping to the LOE boundary.
func (p Polygon) MaxVertexDistance(c orb.Point) float64 {
	max := 0.0
	for _, v := range p.Exterior {
		d := planar.Distance(v, c)
		if d > max {
			max = d
		}
	}
	return max
}

// RotatePoint rotates p about centre by angleDeg degrees (counter-clockwise
// for positive angles under a standard mathematical x/y frame).
func RotatePoint(p, centre orb.Point, angleDeg float64) orb.Point {
	if angleDeg == 0 {
		return p
	}
	rad := angleDeg * math.Pi / 180.0
	sin, cos := math.Sin(rad), math.Cos(rad)
	dx, dy := p[0]-centre[0], p[1]-centre[1]
	return orb.Point{
		centre[0] + dx*cos - dy*sin,
		centre[1] + dx*sin + dy*cos,
	}
}

// RotatePolygon rotates every vertex of p about centre by angleDeg degrees.
func RotatePolygon(p Polygon, centre orb.Point, angleDeg float64) Polygon {
	if angleDeg == 0 {
		return p
	}
	ring := make(orb.Ring, len(p.Exterior))
	for i, v := range p.Exterior {
		ring[i] = RotatePoint(v, centre, angleDeg)
	}
	return Polygon{Exterior: ring}
}

// RotateMultiPolygon rotates every polygon in mp about centre by angleDeg
// degrees.
func RotateMultiPolygon(mp MultiPolygon, centre orb.Point, angleDeg float64) MultiPolygon {
	out := make(MultiPolygon, len(mp))
	for i, p := range mp {
		out[i] = RotatePolygon(p, centre, angleDeg)
	}
	return out
}

// Translate shifts every vertex of p by (dx, dy).
func Translate(p Polygon, dx, dy float64) Polygon {
	ring := make(orb.Ring, len(p.Exterior))
	for i, v := range p.Exterior {
		ring[i] = orb.Point{v[0] + dx, v[1] + dy}
	}
	return Polygon{Exterior: ring}
}

// Rectangle describes a trench footprint: at angleDeg=0, width spans x and
// length spans y, centred at the origin before rotation and translation.
// This matches trench/spacing.go's rectCorners convention, where the
// minimum-spacing direction (the axis trenches are offset along) is the
// width axis.
func Rectangle(centre orb.Point, width, length, angleDeg float64) Polygon {
	hw, hl := width/2, length/2
	ring := orb.Ring{
		{-hw, -hl},
		{hw, -hl},
		{hw, hl},
		{-hw, hl},
		{-hw, -hl},
	}
	local := Polygon{Exterior: ring}
	rotated := RotatePolygon(local, orb.Point{0, 0}, angleDeg)
	return Translate(rotated, centre[0], centre[1])
}

// Intersects reports whether two polygons' interiors or boundaries share
// any point. Boundary-only contact counts as an intersection.
func Intersects(a, b Polygon) bool {
	if len(a.Exterior) < 3 || len(b.Exterior) < 3 {
		return false
	}
	// Any vertex of one ring inside (or on) the other.
	for _, v := range a.Exterior {
		if pointInOrOnRing(v, b.Exterior) {
			return true
		}
	}
	for _, v := range b.Exterior {
		if pointInOrOnRing(v, a.Exterior) {
			return true
		}
	}
	// Otherwise the two boundaries might cross without either ring
	// containing a vertex of the other (classic overlapping-crosses case).
	return ringsCross(a.Exterior, b.Exterior)
}

// IntersectsAny reports whether poly intersects any polygon of mp.
func IntersectsAny(mp MultiPolygon, poly Polygon) bool {
	for _, p := range mp {
		if Intersects(p, poly) {
			return true
		}
	}
	return false
}

func pointInOrOnRing(pt orb.Point, ring orb.Ring) bool {
	if onRingBoundary(pt, ring) {
		return true
	}
	return rayCastContains(pt, ring)
}

func onRingBoundary(pt orb.Point, ring orb.Ring) bool {
	for i := 0; i < len(ring)-1; i++ {
		if pointOnSegment(pt, ring[i], ring[i+1]) {
			return true
		}
	}
	return false
}

func pointOnSegment(pt, a, b orb.Point) bool {
	const eps = 1e-9
	cross := (b[0]-a[0])*(pt[1]-a[1]) - (b[1]-a[1])*(pt[0]-a[0])
	if math.Abs(cross) > eps {
		return false
	}
	dot := (pt[0]-a[0])*(b[0]-a[0]) + (pt[1]-a[1])*(b[1]-a[1])
	if dot < 0 {
		return false
	}
	sq := (b[0]-a[0])*(b[0]-a[0]) + (b[1]-a[1])*(b[1]-a[1])
	return dot <= sq
}

// rayCastContains implements the standard even-odd ray casting
// point-in-polygon test. ring must be closed (first == last).
func rayCastContains(pt orb.Point, ring orb.Ring) bool {
	inside := false
	n := len(ring)
	if n < 4 {
		return false
	}
	for i, j := 0, n-2; i < n-1; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > pt[1]) != (yj > pt[1]) {
			xCross := xi + (pt[1]-yi)/(yj-yi)*(xj-xi)
			if pt[0] < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func ringsCross(a, b orb.Ring) bool {
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(b)-1; j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := crossSign(p3, p4, p1)
	d2 := crossSign(p3, p4, p2)
	d3 := crossSign(p1, p2, p3)
	d4 := crossSign(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegmentBounds(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegmentBounds(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegmentBounds(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegmentBounds(p1, p2, p4) {
		return true
	}
	return false
}

func crossSign(a, b, c orb.Point) float64 {
	v := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	const eps = 1e-9
	switch {
	case v > eps:
		return 1
	case v < -eps:
		return -1
	default:
		return 0
	}
}

func onSegmentBounds(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}
