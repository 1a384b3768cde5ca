package geomx

import "github.com/paulmach/orb"

// ClipToConvex returns the intersection of subject with a convex clip
// polygon, via Sutherland-Hodgman. subject may be any simple polygon
// (convex or not, e.g. an LOE); clip must be convex (e.g. a trench
// rectangle/strip, which the pattern model always builds as an
// axis-rotated rectangle). Standard Sutherland-Hodgman only requires the
// clip polygon to be convex, so this orientation lets an arbitrary LOE be
// clipped against each convex trench unit independently: the whole
// (multi-polygon) pattern is clipped to the LOE by clipping each
// constituent unit in turn.
//
// Returns an empty polygon (nil Exterior) if the intersection is empty.
func ClipToConvex(subject, clip Polygon) Polygon {
	if len(subject.Exterior) < 4 || len(clip.Exterior) < 4 {
		return Polygon{}
	}

	output := ringPoints(subject.Exterior)

	clipRing := clip.Exterior
	for i := 0; i < len(clipRing)-1; i++ {
		if len(output) == 0 {
			break
		}
		edgeA, edgeB := clipRing[i], clipRing[i+1]
		output = clipAgainstEdge(output, edgeA, edgeB)
	}

	if len(output) < 3 {
		return Polygon{}
	}
	return NewPolygon(output)
}

// ClipMultiPolygonToConvex clips every polygon of mp against clip and
// collects the non-empty results. Each trench unit clips independently,
// so every resulting polygon is a subset of clip.
func ClipMultiPolygonToConvex(mp MultiPolygon, clip Polygon) MultiPolygon {
	var out MultiPolygon
	for _, p := range mp {
		clipped := ClipToConvex(p, clip)
		if len(clipped.Exterior) >= 4 {
			out = append(out, clipped)
		}
	}
	return out
}

// ClipLOEToPattern clips an LOE polygon against every unit of a pattern
// multipolygon (each unit convex) and returns the resulting multipolygon:
// the loe ∩ rotated_pattern intersection that the layout generator scores
// coverage against.
func ClipLOEToPattern(loe Polygon, pattern MultiPolygon) MultiPolygon {
	var out MultiPolygon
	for _, unit := range pattern {
		clipped := ClipToConvex(loe, unit)
		if len(clipped.Exterior) >= 4 {
			out = append(out, clipped)
		}
	}
	return out
}

func ringPoints(ring orb.Ring) []orb.Point {
	if len(ring) == 0 {
		return nil
	}
	pts := make([]orb.Point, len(ring))
	copy(pts, ring)
	// Work with an open ring (no duplicated closing vertex) internally.
	if pts[0] == pts[len(pts)-1] && len(pts) > 1 {
		pts = pts[:len(pts)-1]
	}
	return pts
}

func clipAgainstEdge(poly []orb.Point, edgeA, edgeB orb.Point) []orb.Point {
	var output []orb.Point
	n := len(poly)
	for i := 0; i < n; i++ {
		curr := poly[i]
		prev := poly[(i+n-1)%n]

		currInside := isInsideEdge(curr, edgeA, edgeB)
		prevInside := isInsideEdge(prev, edgeA, edgeB)

		if currInside {
			if !prevInside {
				output = append(output, segmentIntersection(prev, curr, edgeA, edgeB))
			}
			output = append(output, curr)
		} else if prevInside {
			output = append(output, segmentIntersection(prev, curr, edgeA, edgeB))
		}
	}
	return output
}

// isInsideEdge reports whether p is on the left side of the directed edge
// edgeA->edgeB (left is "inside" for a counter-clockwise-wound convex
// clip polygon; Rectangle() always winds its ring consistently, so this
// holds regardless of the rotation applied to it).
func isInsideEdge(p, edgeA, edgeB orb.Point) bool {
	cross := (edgeB[0]-edgeA[0])*(p[1]-edgeA[1]) - (edgeB[1]-edgeA[1])*(p[0]-edgeA[0])
	return cross >= 0
}

func segmentIntersection(p1, p2, edgeA, edgeB orb.Point) orb.Point {
	x1, y1 := p1[0], p1[1]
	x2, y2 := p2[0], p2[1]
	x3, y3 := edgeA[0], edgeA[1]
	x4, y4 := edgeB[0], edgeB[1]

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if denom == 0 {
		return p2
	}
	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	return orb.Point{
		x1 + t*(x2-x1),
		y1 + t*(y2-y1),
	}
}
