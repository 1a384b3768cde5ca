package trench

import "errors"

// ErrDegenerateLOE is returned when an LOE polygon has no well-defined
// centroid (zero area, or an empty exterior ring). Fatal for that LOE;
// callers should skip it.
var ErrDegenerateLOE = errors.New("trench: LOE has no centroid (degenerate geometry)")

// ErrSpacingTooSmall is a configuration failure: a constructor was asked
// for a fixed Spacing distribution at or below the structure's minimum
// spacing. It is never returned to a caller in normal operation —
// constructors panic with it, since this is a caller bug, not a
// recoverable runtime condition.
var ErrSpacingTooSmall = errors.New("trench: configured spacing does not exceed minimum spacing")

// ErrCoverageUnreachable signals that the coverage solver could not find a
// spacing above minimum_spacing that meets the target for a given
// rotation. It is not surfaced as an error to the driver; it is the
// reason a particular rotation contributes no Layout to a sweep.
var ErrCoverageUnreachable = errors.New("trench: coverage target unreachable above minimum spacing")
