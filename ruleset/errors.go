// Package ruleset implements spec.md §4.1 (component C1): it enumerates
// the 2^k neighborhood configurations of a mask plus any extra
// (non-pixel) conditions, and binds a non-empty symbolic action set to
// each configuration.
//
// Error policy mirrors the teacher's builder package: only sentinel
// variables are exposed here; callers branch with errors.Is, and this
// package wraps them with %w to attach the offending configuration index.
package ruleset

import "errors"

// ErrUnsatisfiableRule indicates the rule generator produced an empty
// action set for some configuration (spec.md §4.1 "Failure", §7).
var ErrUnsatisfiableRule = errors.New("ruleset: rule generator produced no actions")

// ErrEmptyActionCatalog indicates New or NewFromTable was called with zero
// catalog entries.
var ErrEmptyActionCatalog = errors.New("ruleset: action catalog is empty")

// ErrDuplicateCondition indicates an extra condition name collides with a
// pixel name or another extra condition.
var ErrDuplicateCondition = errors.New("ruleset: duplicate condition name")

// ErrTooManyConditions indicates k exceeds the 64-bit configuration index
// this package's bit layout supports.
var ErrTooManyConditions = errors.New("ruleset: too many conditions for a 64-bit configuration index")
