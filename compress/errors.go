// Package compress implements spec.md §4.6 (component C6): repeatedly
// hash-consing a forest and merging overlapping leaves until a fixed
// point, reporting progress through an injected progress.Sink.
package compress

import "errors"

// ErrNoRoots indicates Compress was called with zero roots.
var ErrNoRoots = errors.New("compress: forest has no roots")
