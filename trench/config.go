package trench

import "fmt"

// TrenchConfig is the complete, immutable pattern description. Build one
// via the named constructors below (Continuous, ParallelArray,
// StandardGrid, TestPits, Herringbone) or via New for a custom
// Structure/Distribution pair.
type TrenchConfig struct {
	Structure      Structure
	Distribution   Distribution
	MinimumSpacing float64
}

// New validates and builds a TrenchConfig from an arbitrary Structure and
// Distribution. It panics if Distribution is a fixed Spacing at or below
// the structure's minimum spacing — this is a caller bug, not a
// recoverable error.
func New(structure Structure, dist Distribution) TrenchConfig {
	min := structure.MinimumSpacing()
	if dist.IsSpacing() && dist.Spacing() <= min {
		panic(fmt.Errorf("%w: spacing %.4f <= minimum %.4f", ErrSpacingTooSmall, dist.Spacing(), min))
	}
	return TrenchConfig{Structure: structure, Distribution: dist, MinimumSpacing: min}
}

// Continuous builds a Parallel(Line width) configuration: evenly spaced
// infinite strips.
func Continuous(width float64, dist Distribution) TrenchConfig {
	return New(NewParallel(Line{Width: width}), dist)
}

// ParallelArray builds an Array(Rect, base=alt=0, ByCell, separated=true)
// configuration: a checkerboard of unrotated rectangles.
func ParallelArray(width, length float64, dist Distribution) TrenchConfig {
	cfg := ArrayConfig{BaseAngle: 0, AlternateAngle: 0, Axis: ByCell, Separated: true}
	return New(NewArray(Rectangle{Width: width, Length: length}, cfg), dist)
}

// StandardGrid builds an Array(Rect, base=0 alt=90, ByCell,
// separated=false) configuration: a full grid alternating perpendicular
// rectangles at every cell.
func StandardGrid(width, length float64, dist Distribution) TrenchConfig {
	cfg := ArrayConfig{BaseAngle: 0, AlternateAngle: 90, Axis: ByCell, Separated: false}
	return New(NewArray(Rectangle{Width: width, Length: length}, cfg), dist)
}

// TestPits builds an Array(square Rect, base=alt=0, ByCell,
// separated=false) configuration: a dense grid of square test pits.
func TestPits(width float64, dist Distribution) TrenchConfig {
	cfg := ArrayConfig{BaseAngle: 0, AlternateAngle: 0, Axis: ByCell, Separated: false}
	return New(NewArray(Rectangle{Width: width, Length: width}, cfg), dist)
}

// Herringbone builds an Array(Rect, base=45 alt=315, ByColumn,
// separated=false) configuration: alternating diagonal columns.
func Herringbone(width, length float64, dist Distribution) TrenchConfig {
	cfg := ArrayConfig{BaseAngle: 45, AlternateAngle: 315, Axis: ByColumn, Separated: false}
	return New(NewArray(Rectangle{Width: width, Length: length}, cfg), dist)
}
