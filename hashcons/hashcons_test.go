package hashcons_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphgen-dev/graphgen/dragnode"
	"github.com/graphgen-dev/graphgen/hashcons"
	"github.com/graphgen-dev/graphgen/ruleset"
)

// twoIdenticalTrees builds two structurally-identical condition trees
// (independent NodeIDs, same shape, same leaf actions and Next).
func twoIdenticalTrees(t *testing.T) (*dragnode.Drag, []dragnode.NodeID) {
	t.Helper()
	d := dragnode.New()
	var roots []dragnode.NodeID
	for i := 0; i < 2; i++ {
		f := d.NewLeaf(ruleset.Actions{ruleset.Nothing}, -1)
		tr := d.NewLeaf(ruleset.Actions{ruleset.NewLabel}, -1)
		roots = append(roots, d.NewCondition("P1", f, tr))
	}

	return d, roots
}

func TestCanonicalize_MergesIdenticalTrees(t *testing.T) {
	d, roots := twoIdenticalTrees(t)
	out := hashcons.Canonicalize(d, roots, hashcons.Strict)

	assert.Equal(t, out[0], out[1])
}

func TestCanonicalize_PreservesSemantics(t *testing.T) {
	d, roots := twoIdenticalTrees(t)
	out := hashcons.Canonicalize(d, roots, hashcons.Strict)

	assert.Equal(t, ruleset.NewLabel, dragnode.Eval(d, out[1], map[string]bool{"P1": true}))
}

func TestMergeLeaves_IntersectsOverlappingActions(t *testing.T) {
	d := dragnode.New()
	a := d.NewLeaf(ruleset.Actions{ruleset.NewLabel, ruleset.Nothing}, -1)
	b := d.NewLeaf(ruleset.Actions{ruleset.Nothing}, -1)
	root := d.NewCondition("P1", a, b)

	out, changed := hashcons.MergeLeaves(d, []dragnode.NodeID{root})
	assert.True(t, changed)

	n := d.Node(out[0])
	left := d.Node(n.Left)
	right := d.Node(n.Right)
	assert.Equal(t, left.Actions.Tokens(), right.Actions.Tokens())
	assert.Equal(t, []string{"nothing"}, left.Actions.Tokens())
}

// TestMergeLeaves_DoesNotLeakActionsAcrossChainedMerges exercises a chain
// of three leaves where pairwise comparisons must use each group's
// already-narrowed action set, not the leaves' original ones: leafA
// ({newlabel, keep0}) overlaps and merges with leafB ({newlabel}),
// narrowing the group to {newlabel}; leafC ({keep0}) must then be
// compared against that narrowed {newlabel}, not against leafA's original
// {newlabel, keep0}, so it stays unmerged rather than reintroducing
// "keep0" into the newlabel-only group.
func TestMergeLeaves_DoesNotLeakActionsAcrossChainedMerges(t *testing.T) {
	d := dragnode.New()
	leafA := d.NewLeaf(ruleset.Actions{ruleset.NewLabel, ruleset.Keep0}, -1)
	leafB := d.NewLeaf(ruleset.Actions{ruleset.NewLabel}, -1)
	leafC := d.NewLeaf(ruleset.Actions{ruleset.Keep0}, -1)
	inner := d.NewCondition("P2", leafB, leafC)
	root := d.NewCondition("P1", leafA, inner)

	out, changed := hashcons.MergeLeaves(d, []dragnode.NodeID{root})
	assert.True(t, changed)

	top := d.Node(out[0])
	mergedA := d.Node(top.Left)
	assert.Equal(t, []string{"newlabel"}, mergedA.Actions.Tokens())

	bottom := d.Node(top.Right)
	mergedB := d.Node(bottom.Left)
	untouchedC := d.Node(bottom.Right)
	assert.Equal(t, []string{"newlabel"}, mergedB.Actions.Tokens())
	assert.Equal(t, []string{"keep0"}, untouchedC.Actions.Tokens())
}

func TestMergeLeaves_NoOverlapNoChange(t *testing.T) {
	d := dragnode.New()
	a := d.NewLeaf(ruleset.Actions{ruleset.NewLabel}, -1)
	b := d.NewLeaf(ruleset.Actions{ruleset.Keep0}, -1)
	root := d.NewCondition("P1", a, b)

	_, changed := hashcons.MergeLeaves(d, []dragnode.NodeID{root})
	assert.False(t, changed)
}
