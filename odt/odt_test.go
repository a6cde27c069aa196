package odt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphgen-dev/graphgen/dragnode"
	"github.com/graphgen-dev/graphgen/odt"
	"github.com/graphgen-dev/graphgen/pixel"
	"github.com/graphgen-dev/graphgen/ruleset"
)

func trivialRuleSet(t *testing.T) *ruleset.RuleSet {
	t.Helper()
	ps, err := pixel.New([]int{1, 1}, pixel.Pixel{Name: "P1", Coords: []int{0, 0}})
	require.NoError(t, err)
	rs, err := ruleset.New(ps, nil, []string{"nothing", "newlabel"}, func(r *ruleset.RuleBuilder) {
		if r.Bit("P1") == 0 {
			r.Add("nothing")
		} else {
			r.Add("newlabel")
		}
	})
	require.NoError(t, err)

	return rs
}

func TestBuild_TrivialRuleSet(t *testing.T) {
	rs := trivialRuleSet(t)
	d, root, err := odt.Build(rs)
	require.NoError(t, err)

	assert.Equal(t, ruleset.Nothing, dragnode.Eval(d, root, map[string]bool{"P1": false}))
	assert.Equal(t, ruleset.NewLabel, dragnode.Eval(d, root, map[string]bool{"P1": true}))
}

// TestBuild_RedundantConditionIsElided exercises spec.md §8 scenario 2: a
// condition that never affects the outcome should not appear in the tree
// at all.
func TestBuild_RedundantConditionIsElided(t *testing.T) {
	ps, err := pixel.New([]int{1, 1},
		pixel.Pixel{Name: "P1", Coords: []int{0, 0}},
		pixel.Pixel{Name: "P2", Coords: []int{1, 0}},
	)
	require.NoError(t, err)

	rs, err := ruleset.New(ps, nil, []string{"nothing", "newlabel"}, func(r *ruleset.RuleBuilder) {
		if r.Bit("P1") == 0 {
			r.Add("nothing")
		} else {
			r.Add("newlabel")
		}
	})
	require.NoError(t, err)

	d, root, err := odt.Build(rs)
	require.NoError(t, err)

	order := dragnode.SortedConditionOrder(d, []dragnode.NodeID{root})
	assert.Equal(t, []string{"P1"}, order)

	for _, p2 := range []bool{false, true} {
		assert.Equal(t, ruleset.Nothing,
			dragnode.Eval(d, root, map[string]bool{"P1": false, "P2": p2}))
		assert.Equal(t, ruleset.NewLabel,
			dragnode.Eval(d, root, map[string]bool{"P1": true, "P2": p2}))
	}
}

func TestBuild_EmptyRuleSet(t *testing.T) {
	_, _, err := odt.Build(&ruleset.RuleSet{})
	assert.ErrorIs(t, err, odt.ErrEmptyRuleSet)
}

func TestWithWeights_PanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() {
		odt.WithWeights(map[string]int{"P1": 0})
	})
}
