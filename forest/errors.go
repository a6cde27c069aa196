// Package forest implements spec.md §4.5 (component C5): turning one
// Optimal Decision Tree into the scan-loop-shaped structure a generated
// state machine actually dispatches through — a main forest of s+1
// phase-indexed roots plus, for each terminal column offset, an end
// forest that never reads a pixel past the image edge.
//
// See DESIGN.md for the Open Question decision this package implements:
// the s+1 main-forest roots are unspecialized ODT copies that differ
// only in their leaves' Next field (so compression does not merge them
// into one another), while end-forest specialization (pruning
// out-of-bounds pixel reads) is implemented directly and exactly, since
// it is the one piece of the
// original's forest construction recoverable from spec.md without
// guessing.
package forest

import "errors"

// ErrInvalidShift indicates Build was called with a non-positive
// horizontal shift.
var ErrInvalidShift = errors.New("forest: horizontal shift must be positive")
