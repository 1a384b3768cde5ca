package trench

import (
	"math"
	"testing"
)

func TestMinimumSpacingParallel(t *testing.T) {
	s := NewParallel(Line{Width: 0.3})
	if got := s.MinimumSpacing(); got != 0.3 {
		t.Fatalf("parallel minimum spacing = %v, want 0.3", got)
	}
}

func TestMinimumSpacingParallelArrayHalvesSeparated(t *testing.T) {
	a := ArrayConfig{BaseAngle: 0, AlternateAngle: 0, Axis: ByCell, Separated: true}
	separated := NewArray(Rectangle{Width: 1, Length: 2}, a).MinimumSpacing()

	a.Separated = false
	joined := NewArray(Rectangle{Width: 1, Length: 2}, a).MinimumSpacing()

	if separated >= joined {
		t.Fatalf("separated minimum spacing (%v) should be smaller than joined (%v)", separated, joined)
	}
	// For a 1x2 rectangle at 0 degrees the joined sub-problems are vertical 2,
	// horizontal 1 and diagonal sqrt(2). Separated halves only the vertical
	// and horizontal terms (to 1 and 0.5), so the unhalved diagonal wins.
	if want := math.Sqrt(2); math.Abs(separated-want) > 1e-9 {
		t.Fatalf("separated spacing should halve vertical/horizontal and keep the diagonal: got %v, want %v", separated, want)
	}
}

func TestRotationalSymmetryParallel(t *testing.T) {
	s := NewParallel(Line{Width: 1})
	if got := s.RotationalSymmetry(); got != 180 {
		t.Fatalf("parallel symmetry = %d, want 180", got)
	}
}

func TestRotationalSymmetrySquareJoinedArray(t *testing.T) {
	a := ArrayConfig{BaseAngle: 0, AlternateAngle: 90, Axis: ByCell, Separated: false}
	s := NewArray(Rectangle{Width: 1, Length: 1}, a)
	if got := s.RotationalSymmetry(); got != 90 {
		t.Fatalf("square joined array symmetry = %d, want 90", got)
	}
}

func TestRotationalSymmetryNonSquareArray(t *testing.T) {
	a := ArrayConfig{BaseAngle: 0, AlternateAngle: 90, Axis: ByCell, Separated: false}
	s := NewArray(Rectangle{Width: 1, Length: 2}, a)
	if got := s.RotationalSymmetry(); got != 180 {
		t.Fatalf("non-square array symmetry = %d, want 180", got)
	}
}

func TestRotationalSymmetrySeparatedSquareArray(t *testing.T) {
	a := ArrayConfig{BaseAngle: 0, AlternateAngle: 0, Axis: ByCell, Separated: true}
	s := NewArray(Rectangle{Width: 1, Length: 1}, a)
	if got := s.RotationalSymmetry(); got != 180 {
		t.Fatalf("separated square array symmetry = %d, want 180", got)
	}
}
