// Package trench implements the pattern model, the layout generator and
// its symmetry sweep, the coverage solver, and the feature-hit evaluator.
// Everything here is pure and side-effect free except for the parallel
// sweep/evaluate entry points, which only ever touch read-only shared
// state (the LOE polygon, the feature list, the unrotated pattern).
package trench

import "github.com/kwv/trenchplan/geomx"

// Degree is an angle in degrees, normalised mod 360 only when compared.
type Degree float64

// Normalized returns d reduced to [0, 360).
func (d Degree) Normalized() Degree {
	v := float64(d)
	v = mod360(v)
	return Degree(v)
}

func mod360(v float64) float64 {
	const full = 360.0
	r := v - full*float64(int(v/full))
	if r < 0 {
		r += full
	}
	return r
}

// Percentage is an area fraction, stored as a percent in (0, 100].
type Percentage float64

// Fraction converts the percentage to its decimal equivalent.
func (p Percentage) Fraction() float64 {
	return float64(p) / 100.0
}

// RotationAxis selects how rotation angle is assigned to array cells.
type RotationAxis int

const (
	// ByCell alternates rotation angle per-cell in a checkerboard.
	ByCell RotationAxis = iota
	// ByColumn alternates rotation angle per-column.
	ByColumn
)

// Rectangle is a trench footprint in metres.
type Rectangle struct {
	Width  float64
	Length float64
}

// Line is an infinite-strip footprint in metres (only a width; length is
// derived from the pattern half-extent at build time).
type Line struct {
	Width float64
}

// ArrayConfig parameterises a periodic 2-D array of rectangles.
type ArrayConfig struct {
	BaseAngle      Degree
	AlternateAngle Degree
	Axis           RotationAxis
	Separated      bool
}

// structureKind tags which alternative a Structure holds.
type structureKind int

const (
	structureParallel structureKind = iota
	structureArray
)

// Structure is the tagged alternative {Parallel(Line), Array(Rectangle,
// ArrayConfig)}. Construct with NewParallel or NewArray; the zero value is
// not a valid Structure.
type Structure struct {
	kind      structureKind
	line      Line
	rectangle Rectangle
	array     ArrayConfig
}

// NewParallel builds a Parallel(Line) structure.
func NewParallel(line Line) Structure {
	return Structure{kind: structureParallel, line: line}
}

// NewArray builds an Array(Rectangle, ArrayConfig) structure.
func NewArray(rect Rectangle, cfg ArrayConfig) Structure {
	return Structure{kind: structureArray, rectangle: rect, array: cfg}
}

// IsParallel reports whether the structure is the Parallel alternative.
func (s Structure) IsParallel() bool { return s.kind == structureParallel }

// LineFootprint returns the structure's Line footprint. Only valid when IsParallel.
func (s Structure) LineFootprint() Line { return s.line }

// RectangleFootprint returns the structure's Rectangle footprint. Only
// valid when !IsParallel.
func (s Structure) RectangleFootprint() Rectangle { return s.rectangle }

// ArrayParams returns the structure's array parameters. Only valid when
// !IsParallel.
func (s Structure) ArrayParams() ArrayConfig { return s.array }

// distributionKind tags which alternative a Distribution holds.
type distributionKind int

const (
	distributionSpacing distributionKind = iota
	distributionCoverage
)

// Distribution is the tagged alternative {Spacing(metres), Coverage(Percentage)}.
type Distribution struct {
	kind     distributionKind
	spacing  float64
	coverage Percentage
}

// SpacingOf builds a fixed-spacing Distribution.
func SpacingOf(metres float64) Distribution {
	return Distribution{kind: distributionSpacing, spacing: metres}
}

// CoverageOf builds a coverage-target Distribution.
func CoverageOf(target Percentage) Distribution {
	return Distribution{kind: distributionCoverage, coverage: target}
}

// IsSpacing reports whether the distribution is the fixed-spacing alternative.
func (d Distribution) IsSpacing() bool { return d.kind == distributionSpacing }

// Spacing returns the fixed spacing value. Only valid when IsSpacing.
func (d Distribution) Spacing() float64 { return d.spacing }

// Target returns the coverage target. Only valid when !IsSpacing.
func (d Distribution) Target() Percentage { return d.coverage }

// LOE is a study-area boundary: a single simple polygon.
type LOE struct {
	Polygon geomx.Polygon
}

// FeatureSet is the known buried features for one LOE.
type FeatureSet struct {
	Features []geomx.Polygon
}

// Layout is one clipped rotation of a pattern.
type Layout struct {
	// Rotation is the sweep index k (degrees) this layout was produced at.
	Rotation int
	Geometry geomx.MultiPolygon
}
