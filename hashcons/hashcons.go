// Package hashcons implements spec.md §4.4 (component C4): content-
// addressed canonicalization of a Drag so structurally identical
// subgraphs collapse onto one shared node, the mechanism the compressor
// relies on, in every compression round, to share subgraphs across all
// roots of a forest.
package hashcons

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/graphgen-dev/graphgen/dragnode"
	"github.com/graphgen-dev/graphgen/ruleset"
)

// Mode selects what canonicalization treats as "equal" (spec.md §4.4,
// "a mode controlling whether leaves compare by exact action set or are
// ignored entirely, needed because the compressor later merges leaves the
// canonicalizer must not have already collapsed").
type Mode int

const (
	// Strict canonicalizes leaves by their exact (actions, next) pair:
	// two leaves only merge if they are identical. This is the mode
	// graphgen.Run passes to the compressor.
	Strict Mode = iota
	// IgnoreLeaves treats every leaf as interchangeable, merging any two
	// nodes with identical branch structure regardless of what their
	// leaves contain. A compress.Compress caller selects it through the
	// mode argument; graphgen.Run does not use it, and MergeLeaves does
	// not depend on it.
	IgnoreLeaves
)

// Canonicalize rewrites d in place: every pair of structurally-equal
// subgraphs reachable from roots collapses onto a single shared NodeID,
// and Canonicalize returns the rewritten root ids in root order. It runs
// a single bottom-up pass (post-order over each root, memoized across
// roots) so sharing discovered while canonicalizing one root is available
// to every subsequent root — this is what lets an end-forest tree share
// the subtrees it has in common with the main-forest tree it was pruned
// from.
func Canonicalize(d *dragnode.Drag, roots []dragnode.NodeID, mode Mode) []dragnode.NodeID {
	table := make(map[uint64][]dragnode.NodeID) // hash -> candidate canonical ids
	canon := make(map[dragnode.NodeID]dragnode.NodeID)

	var visit func(id dragnode.NodeID) dragnode.NodeID
	visit = func(id dragnode.NodeID) dragnode.NodeID {
		if c, ok := canon[id]; ok {
			return c
		}

		n := d.Node(id)
		var key uint64
		var rewritten dragnode.NodeID
		switch n.Kind {
		case dragnode.Leaf:
			key = leafKey(n, mode)
			rewritten = id
		default:
			left := visit(n.Left)
			right := visit(n.Right)
			key = conditionKey(n.Condition, left, right)
			rewritten = d.NewCondition(n.Condition, left, right)
		}

		for _, cand := range table[key] {
			if dragnode.Equal(d, rewritten, d, cand, mode == IgnoreLeaves) {
				canon[id] = cand
				return cand
			}
		}
		table[key] = append(table[key], rewritten)
		canon[id] = rewritten

		return rewritten
	}

	out := make([]dragnode.NodeID, len(roots))
	for i, r := range roots {
		out[i] = visit(r)
	}

	return out
}

func leafKey(n dragnode.Node, mode Mode) uint64 {
	if mode == IgnoreLeaves {
		return xxhash.Sum64String("leaf:*")
	}

	h := xxhash.New()
	_, _ = h.WriteString("leaf:")
	for _, tok := range n.Actions.Sorted().Tokens() {
		_, _ = h.WriteString(tok)
		_, _ = h.WriteString(";")
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(n.Next)))
	_, _ = h.Write(buf[:])

	return h.Sum64()
}

func conditionKey(cond string, left, right dragnode.NodeID) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString("cond:")
	_, _ = h.WriteString(cond)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(left))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(right))
	_, _ = h.Write(buf[:])

	return h.Sum64()
}

// MergeLeaves runs one pass of leaf-merging (spec.md §4.6): any two
// leaves with overlapping action sets are unified into a single leaf
// whose actions are the set intersection (never the union — spec.md §4.6
// is explicit that merging is narrowing, not widening, since a node must
// remain consistent with every rule it was built to satisfy), provided
// they share the same Next. MergeLeaves returns the rewritten roots and
// reports whether any merge happened, so callers can iterate to a fixed
// point.
func MergeLeaves(d *dragnode.Drag, roots []dragnode.NodeID) (rewritten []dragnode.NodeID, changed bool) {
	leafIDs := make([]dragnode.NodeID, 0)
	seen := make(map[dragnode.NodeID]struct{})
	var collect func(id dragnode.NodeID)
	collect = func(id dragnode.NodeID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		n := d.Node(id)
		if n.Kind == dragnode.Leaf {
			leafIDs = append(leafIDs, id)
			return
		}
		collect(n.Left)
		collect(n.Right)
	}
	for _, r := range roots {
		collect(r)
	}
	sort.Slice(leafIDs, func(i, j int) bool { return leafIDs[i] < leafIDs[j] })

	union := make(map[dragnode.NodeID]dragnode.NodeID)
	var find func(dragnode.NodeID) dragnode.NodeID
	find = func(x dragnode.NodeID) dragnode.NodeID {
		if p, ok := union[x]; ok && p != x {
			r := find(p)
			union[x] = r
			return r
		}
		return x
	}
	mergedActions := make(map[dragnode.NodeID]ruleset.Actions)
	for _, id := range leafIDs {
		union[id] = id
		mergedActions[id] = d.Node(id).Actions
	}

	for i := 0; i < len(leafIDs); i++ {
		for j := i + 1; j < len(leafIDs); j++ {
			a, b := find(leafIDs[i]), find(leafIDs[j])
			if a == b {
				continue
			}
			na, nb := d.Node(a), d.Node(b)
			if na.Next != nb.Next {
				continue
			}
			// Compare the groups' up-to-date accumulated intersections,
			// not the original per-node action sets: once a or b has
			// already absorbed another leaf, its acceptable action set
			// has narrowed, and a later merge must respect that narrower
			// set or it can reintroduce an action the earlier merge ruled
			// out.
			inter := mergedActions[a].Intersect(mergedActions[b])
			if len(inter) == 0 {
				continue
			}
			union[b] = a
			mergedActions[a] = inter
			changed = true
		}
	}
	if !changed {
		return roots, false
	}

	replacement := make(map[dragnode.NodeID]dragnode.NodeID)
	for _, id := range leafIDs {
		root := find(id)
		if _, ok := replacement[root]; !ok {
			replacement[root] = d.NewLeaf(mergedActions[root].Sorted(), d.Node(root).Next)
		}
	}

	rewrittenMemo := make(map[dragnode.NodeID]dragnode.NodeID)
	var rewrite func(id dragnode.NodeID) dragnode.NodeID
	rewrite = func(id dragnode.NodeID) dragnode.NodeID {
		if v, ok := rewrittenMemo[id]; ok {
			return v
		}
		n := d.Node(id)
		var out dragnode.NodeID
		if n.Kind == dragnode.Leaf {
			out = replacement[find(id)]
		} else {
			out = d.NewCondition(n.Condition, rewrite(n.Left), rewrite(n.Right))
		}
		rewrittenMemo[id] = out

		return out
	}

	rewritten = make([]dragnode.NodeID, len(roots))
	for i, r := range roots {
		rewritten[i] = rewrite(r)
	}

	return rewritten, true
}
