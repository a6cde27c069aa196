// Package odt implements spec.md §4.3 (component C3): branch-and-bound
// construction of an Optimal Decision Tree over a RuleSet's 2^k
// configurations, minimizing the expected number of condition
// evaluations, with a deterministic tie-break when more than one
// condition reaches the minimum.
package odt

import "errors"

// ErrInconsistentRuleSet indicates no decision tree can represent the
// RuleSet: some subset of configurations reachable by exhausting every
// condition still disagrees on the action to take (spec.md §4.3
// "Failure").
var ErrInconsistentRuleSet = errors.New("odt: rule set has no consistent decision tree")

// ErrEmptyRuleSet indicates Build was called on a RuleSet with zero
// conditions (K() == 0).
var ErrEmptyRuleSet = errors.New("odt: rule set has no conditions")
