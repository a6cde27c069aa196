package forest

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/graphgen-dev/graphgen/dragnode"
	"github.com/graphgen-dev/graphgen/pixel"
)

// Forest is the scan-loop-shaped structure built from one ODT (spec.md
// §4.5): a main forest of shift+1 phase-indexed roots, one end forest per
// terminal column offset 1..shift, and, per end group, the total mapping
// from each main-root index to the end-root index it jumps to.
type Forest struct {
	Drag      *dragnode.Drag
	Shift     int
	MainRoots []dragnode.NodeID   // len == Shift+1, indexed by intra-line phase
	EndRoots  map[int][]dragnode.NodeID // end-group e -> len Shift+1 roots
	Mapping   map[int][]int       // Mapping[e][i] = end-root index main-root i jumps to
}

// EndGroups returns the terminal column offsets 1..Shift in ascending
// order.
func (f *Forest) EndGroups() []int {
	groups := maps.Keys(f.EndRoots)
	sort.Ints(groups)

	return groups
}

// Build turns odtRoot into a Forest over d, given the mask's horizontal
// shift (the number of columns the scan window advances each step, 1 or
// 2 for the masks spec.md §8 exercises, though Build accepts any positive
// shift).
//
// Main forest: shift+1 copies of the ODT with the same branch structure,
// each copy's leaves dispatching (via Node.Next) to the following
// intra-line phase, cyclically. The copies are not pre-specialized on
// pixels observed at the previous scan step (spec.md §9 warns against
// guessing at the original's prior-step specialization). Because their
// leaves carry different Next values, strict hash-consing in the
// compress package does not merge one copy into another.
//
// End forests: for every e in 1..shift, one genuinely specialized copy
// per main root, built by partially evaluating to "false" every
// condition on a pixel whose horizontal coordinate falls at or past the
// image edge for that end-group (Coords[0] >= e) — the direct analogue
// of the original's `c < w - p.coords_[0]` boundary guard.
//
// Mapping is the identity: both main and end roots are enumerated in the
// same phase order, so mapping[e][i] = i is total and deterministic by
// construction.
func Build(d *dragnode.Drag, odtRoot dragnode.NodeID, ps *pixel.PixelSet, shift int) (*Forest, error) {
	if shift < 1 {
		return nil, ErrInvalidShift
	}

	mainRoots := make([]dragnode.NodeID, shift+1)
	for i := 0; i <= shift; i++ {
		next := (i + 1) % (shift + 1)
		mainRoots[i] = copyWithNext(d, odtRoot, next)
	}

	endRoots := make(map[int][]dragnode.NodeID, shift)
	mapping := make(map[int][]int, shift)
	for e := 1; e <= shift; e++ {
		zeroed := outOfRangeConditions(ps, e)
		roots := make([]dragnode.NodeID, shift+1)
		m := make([]int, shift+1)
		for i, main := range mainRoots {
			roots[i] = partialEvalFalse(d, main, zeroed)
			m[i] = i
		}
		endRoots[e] = roots
		mapping[e] = m
	}

	for _, r := range mainRoots {
		d.AddRoot(r)
	}
	for _, roots := range endRoots {
		for _, r := range roots {
			d.AddRoot(r)
		}
	}

	return &Forest{
		Drag:      d,
		Shift:     shift,
		MainRoots: mainRoots,
		EndRoots:  endRoots,
		Mapping:   mapping,
	}, nil
}

// outOfRangeConditions returns the set of condition (pixel) names whose
// horizontal coordinate is at or past the image edge for end-group e —
// reading them would run off the end of the scan line.
func outOfRangeConditions(ps *pixel.PixelSet, e int) map[string]struct{} {
	out := make(map[string]struct{})
	for i := 0; i < ps.Len(); i++ {
		p := ps.At(i)
		if len(p.Coords) > 0 && p.Coords[0] >= e {
			out[p.Name] = struct{}{}
		}
	}

	return out
}

// copyWithNext deep-copies the subtree rooted at id into d, setting every
// resulting leaf's Next field to next. Sharing within the source subtree
// (a node reachable by more than one path) is preserved in the copy via
// a per-call memo, mirroring dragnode.Drag.Clone's contract at subtree
// granularity.
func copyWithNext(d *dragnode.Drag, id dragnode.NodeID, next int) dragnode.NodeID {
	memo := make(map[dragnode.NodeID]dragnode.NodeID)
	var walk func(dragnode.NodeID) dragnode.NodeID
	walk = func(id dragnode.NodeID) dragnode.NodeID {
		if v, ok := memo[id]; ok {
			return v
		}
		n := d.Node(id)
		var out dragnode.NodeID
		if n.Kind == dragnode.Leaf {
			out = d.NewLeaf(n.Actions, next)
		} else {
			out = d.NewCondition(n.Condition, walk(n.Left), walk(n.Right))
		}
		memo[id] = out

		return out
	}

	return walk(id)
}

// partialEvalFalse rewrites the subtree rooted at id, dropping every
// condition node whose name is in zeroed and replacing it with its false
// (Left) branch recursively evaluated — the condition is known false
// because the pixel it reads lies outside the image for this end-group.
func partialEvalFalse(d *dragnode.Drag, id dragnode.NodeID, zeroed map[string]struct{}) dragnode.NodeID {
	memo := make(map[dragnode.NodeID]dragnode.NodeID)
	var walk func(dragnode.NodeID) dragnode.NodeID
	walk = func(id dragnode.NodeID) dragnode.NodeID {
		if v, ok := memo[id]; ok {
			return v
		}
		n := d.Node(id)
		var out dragnode.NodeID
		switch {
		case n.Kind == dragnode.Leaf:
			out = id
		default:
			if _, drop := zeroed[n.Condition]; drop {
				out = walk(n.Left)
			} else {
				out = d.NewCondition(n.Condition, walk(n.Left), walk(n.Right))
			}
		}
		memo[id] = out

		return out
	}

	return walk(id)
}
