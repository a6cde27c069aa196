// Package graphgen is an offline code generator for pixel-labeling and
// image-morphology algorithms.
//
// 🚀 What is graphgen?
//
//	Given a pixel-neighborhood mask and a rule set mapping every
//	neighborhood configuration to one or more symbolic actions, it
//	builds an Optimal Decision Tree, splits it into a scan-line forest,
//	compresses the forest into a shared DAG to a fixed point, and emits
//	the result as a labeled jump-network state machine.
//
// ✨ Pipeline stages, one package each:
//
//   - pixel/    — mask description: named neighbor offsets + scan shift
//   - ruleset/  — the 2^k configuration-to-action truth table
//   - dragnode/ — the shared decision-DAG arena both trees and forests use
//   - odt/      — branch-and-bound Optimal Decision Tree construction
//   - hashcons/ — content-addressed subgraph canonicalization
//   - forest/   — main/end-group scan-line forest partitioning
//   - compress/ — iterative forest compression to a fixed point
//   - codegen/  — two-pass state-machine text emission
//   - masks/    — concrete mask fixtures (Guo-Hall thinning, Grana labeling)
//   - ganconfig/ — process-wide configuration loading
//
// Run builds this package's own convenience wiring of the whole chain;
// cmd/graphgen is the CLI built on top of it.
package graphgen
