package codegen

import (
	"fmt"
	"io"
	"sort"

	"github.com/graphgen-dev/graphgen/dragnode"
)

// BeforeAfterFunc produces the opening or closing text for one tree arm
// (spec.md §4.7: "four hook callbacks producing text for the
// opening/closing of main and end trees, each receiving (root index,
// prefix, mapping table, end-group id)"). For a main-tree hook, mapping
// is nil and endGroup is 0.
type BeforeAfterFunc func(rootIndex int, prefix string, mapping []int, endGroup int) string

// Hooks bundles the four BeforeAfterFunc collaborators Emit needs.
type Hooks struct {
	MainBefore BeforeAfterFunc
	MainAfter  BeforeAfterFunc
	EndBefore  BeforeAfterFunc
	EndAfter   BeforeAfterFunc
}

// Emit writes the two-pass emission spec.md §4.7 describes for one
// complete forest (a main forest plus, keyed by end-group, its end
// forests) to w, and returns the next free label id (for a subsequent
// Emit call over another forest to continue the id space from, per
// spec.md's determinism requirement).
//
// Label discovery runs once over every root (main and end together,
// since both share one dragnode.Drag pool and a node may be referenced
// from both), so a node reachable from two different trees is correctly
// recognized as multiply-referenced even though this function interleaves
// their emission in a single pass, rather than needing two independent
// calls to agree on a label set.
func Emit(
	w io.Writer,
	d *dragnode.Drag,
	prefix string,
	mainRoots []dragnode.NodeID,
	endRoots map[int][]dragnode.NodeID,
	mapping map[int][]int,
	conditionText func(string) string,
	actionText ActionTextFunc,
	withGotos bool,
	hooks Hooks,
	startID int,
) (int, error) {
	endGroups := make([]int, 0, len(endRoots))
	for e := range endRoots {
		endGroups = append(endGroups, e)
	}
	sort.Ints(endGroups)

	allRoots := append([]dragnode.NodeID(nil), mainRoots...)
	for _, e := range endGroups {
		allRoots = append(allRoots, endRoots[e]...)
	}

	labeled, order := discoverLabels(d, allRoots)

	labelID := make(map[dragnode.NodeID]int, len(order))
	next := startID
	for _, id := range order {
		labelID[id] = next
		next++
	}

	e := &emitter{
		w:             w,
		d:             d,
		conditionText: conditionText,
		actionText:    actionText,
		withGotos:     withGotos,
		labeled:       labeled,
		labelID:       labelID,
	}

	for _, id := range order {
		if err := e.writeLabelArm(id); err != nil {
			return 0, err
		}
	}

	for i, root := range mainRoots {
		if err := e.writeRoot(root, i, prefix, nil, 0, hooks.MainBefore, hooks.MainAfter); err != nil {
			return 0, err
		}
	}
	for _, eg := range endGroups {
		m := mapping[eg]
		for i, root := range endRoots[eg] {
			if err := e.writeRoot(root, i, prefix, m, eg, hooks.EndBefore, hooks.EndAfter); err != nil {
				return 0, err
			}
		}
	}

	return next, nil
}

// discoverLabels is spec.md §4.7's label-discovery pass: a depth-first
// traversal over allRoots that flags every internal node referenced more
// than once (via dragnode.ReferenceCounts) and records the first-visit
// order of those nodes, the order label ids get assigned in.
func discoverLabels(d *dragnode.Drag, allRoots []dragnode.NodeID) (map[dragnode.NodeID]bool, []dragnode.NodeID) {
	counts := dragnode.ReferenceCounts(d, allRoots)
	labeled := make(map[dragnode.NodeID]bool, len(counts))
	for id, c := range counts {
		if c > 1 && d.Node(id).Kind != dragnode.Leaf {
			labeled[id] = true
		}
	}

	visited := make(map[dragnode.NodeID]bool)
	var order []dragnode.NodeID
	var walk func(id dragnode.NodeID)
	walk = func(id dragnode.NodeID) {
		if visited[id] {
			return
		}
		visited[id] = true
		n := d.Node(id)
		if n.Kind == dragnode.Leaf {
			return
		}
		if labeled[id] {
			order = append(order, id)
		}
		walk(n.Left)
		walk(n.Right)
	}
	for _, r := range allRoots {
		walk(r)
	}

	return labeled, order
}

type emitter struct {
	w             io.Writer
	d             *dragnode.Drag
	conditionText func(string) string
	actionText    ActionTextFunc
	withGotos     bool
	labeled       map[dragnode.NodeID]bool
	labelID       map[dragnode.NodeID]int
}

func (e *emitter) printf(format string, args ...interface{}) error {
	if _, err := fmt.Fprintf(e.w, format, args...); err != nil {
		return fmt.Errorf("%w: %v", ErrEmissionIO, err)
	}

	return nil
}

// writeLabelArm emits the "NODE_<id> => { ... }" arm for a
// multiply-referenced node. The label carries no prefix: Emit's prefix
// reaches only the hooks, and back-references name the same bare label.
func (e *emitter) writeLabelArm(id dragnode.NodeID) error {
	if err := e.printf("NODE_%d => {\n", e.labelID[id]); err != nil {
		return err
	}
	if err := e.writeEntry(id); err != nil {
		return err
	}

	return e.printf("}\n")
}

// writeRoot emits one tree's before hook, body, and after hook.
func (e *emitter) writeRoot(root dragnode.NodeID, index int, prefix string, mapping []int, endGroup int, before, after BeforeAfterFunc) error {
	if before != nil {
		if err := e.printf("%s", before(index, prefix, mapping, endGroup)); err != nil {
			return err
		}
	}
	if err := e.writeEntry(root); err != nil {
		return err
	}
	if after != nil {
		if err := e.printf("%s", after(index, prefix, mapping, endGroup)); err != nil {
			return err
		}
	}

	return nil
}

// writeEntry emits id's own body inline — used both for a NODE_ arm and
// for a root arm, the two contexts spec.md §4.7 says always inline a
// node's own structure rather than back-referencing it.
func (e *emitter) writeEntry(id dragnode.NodeID) error {
	n := e.d.Node(id)
	if n.Kind == dragnode.Leaf {
		return e.writeLeaf(n)
	}

	return e.writeCondition(id)
}

func (e *emitter) writeCondition(id dragnode.NodeID) error {
	n := e.d.Node(id)
	if err := e.printf("if %s {\n", e.conditionText(n.Condition)); err != nil {
		return err
	}
	if err := e.writeChild(n.Right); err != nil {
		return err
	}
	if err := e.printf("} else {\n"); err != nil {
		return err
	}
	if err := e.writeChild(n.Left); err != nil {
		return err
	}

	return e.printf("}\n")
}

// writeChild emits a back-reference if id names an already-labeled node,
// otherwise inlines it (recursively, for a condition node; directly, for
// a leaf).
func (e *emitter) writeChild(id dragnode.NodeID) error {
	if e.labeled[id] {
		return e.printf("return Some(NODE_%d)\n", e.labelID[id])
	}

	n := e.d.Node(id)
	if n.Kind == dragnode.Leaf {
		return e.writeLeaf(n)
	}

	return e.writeCondition(id)
}

// writeLeaf emits a leaf's first action's statement (spec.md §4.7 "Note
// on multiple actions per leaf") and, if withGotos is set and Next names
// a following tree, a "return Some(next)" dispatch.
func (e *emitter) writeLeaf(n dragnode.Node) error {
	action := n.Actions.Sorted().First()
	if err := e.printf("%s\n", e.actionText(action)); err != nil {
		return err
	}
	if e.withGotos && n.Next >= 0 {
		return e.printf("return Some(%d)\n", n.Next)
	}

	return nil
}
