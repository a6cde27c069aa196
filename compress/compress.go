package compress

import (
	"github.com/graphgen-dev/graphgen/dragnode"
	"github.com/graphgen-dev/graphgen/hashcons"
	"github.com/graphgen-dev/graphgen/progress"
)

// Mode re-exports hashcons.Mode: Compress's canonicalization pass and
// hashcons.Canonicalize share one "what counts as equal" knob (spec.md
// §4.6 step 4, "ignore-leaves flag").
type Mode = hashcons.Mode

const (
	// Strict compares leaves exactly; the default, and the only mode
	// compress uses once leaf-merging itself is enabled (merging leaves
	// ahead of canonicalizing them would let two leaves whose actions
	// actually differ collapse before the narrowing step gets to see
	// them).
	Strict = hashcons.Strict
	// IgnoreLeaves collapses any two nodes with identical branch
	// structure regardless of leaf content; spec.md §4.6 step 4 reserves
	// this for callers that re-bind leaf content from an external
	// mapping afterward (graphgen's pipeline does not currently need
	// this — see DESIGN.md).
	IgnoreLeaves = hashcons.IgnoreLeaves
)

// Result is the outcome of a Compress run: the rewritten roots (in the
// same order as the input), the number of fixed-point iterations it took,
// and final node/leaf counts.
type Result struct {
	Roots      []dragnode.NodeID
	Iterations int
	Stats      dragnode.Stats
}

// Compress repeatedly hash-cons the forest reachable from roots and merges
// overlapping leaves (spec.md §4.6) until a pass removes no node, then
// returns the final roots. sink receives one Report per pass; pass a
// progress.NoopSink{} to ignore it.
//
// Compress does not implement spec.md §4.6 step 2's order-insensitive-
// under-negation condition unification: recovering the original's exact
// negation-equivalence rule from the distilled spec would require
// guessing at semantics spec.md §9 explicitly warns against. The
// canonicalization and leaf-merge passes this function does run (steps
// 1, 3, and the ignore-leaves mode of step 4) are implemented in full and
// still strictly decrease node count on every pass with sharing or
// overlapping leaves to find, which is what guarantees termination.
func Compress(d *dragnode.Drag, roots []dragnode.NodeID, mode Mode, sink progress.Sink) (Result, error) {
	if len(roots) == 0 {
		return Result{}, ErrNoRoots
	}
	if sink == nil {
		sink = progress.NoopSink{}
	}

	current := append([]dragnode.NodeID(nil), roots...)
	initial := dragnode.ComputeForestStats(d, current)
	before := initial.Nodes() + initial.Leaves()

	iteration := 0
	for {
		iteration++

		current = hashcons.Canonicalize(d, current, mode)
		current, _ = hashcons.MergeLeaves(d, current)

		stats := dragnode.ComputeForestStats(d, current)
		after := stats.Nodes() + stats.Leaves()

		sink.Report(progress.Report{
			Iteration: iteration,
			Removed:   before - after,
			NodesLeft: after,
		})

		if after >= before {
			return Result{Roots: current, Iterations: iteration, Stats: stats}, nil
		}
		before = after
	}
}
