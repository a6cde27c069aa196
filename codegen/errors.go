// Package codegen implements spec.md §4.7 (component C7): emitting a
// (possibly compressed) forest as the text of a jump-network state
// machine, via a two-pass walk (label discovery, then recursive
// if/else emission) over caller-supplied condition/action text and
// before/after hooks.
package codegen

import "errors"

// ErrEmissionIO wraps a write failure against the destination writer
// (spec.md §7 "EmissionIO").
var ErrEmissionIO = errors.New("codegen: emission write failed")
