// Package masks supplies concrete mask/rule-set definitions used as
// example programs and integration-test fixtures: the Guo-Hall thinning
// first sub-iteration and a Grana-style 2x2 connected-component labeling
// mask (spec.md §8 scenarios 3 and 4).
package masks
