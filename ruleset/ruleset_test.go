package ruleset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphgen-dev/graphgen/pixel"
	"github.com/graphgen-dev/graphgen/ruleset"
)

func onePixelMask(t *testing.T) *pixel.PixelSet {
	t.Helper()
	ps, err := pixel.New([]int{1, 1}, pixel.Pixel{Name: "P1", Coords: []int{0, 0}})
	require.NoError(t, err)

	return ps
}

// TestNew_TrivialRuleSet builds scenario 1 of spec.md §8: k=1, condition
// P1, rules {0->nothing, 1->newlabel}.
func TestNew_TrivialRuleSet(t *testing.T) {
	ps := onePixelMask(t)
	rs, err := ruleset.New(ps, nil, []string{"nothing", "newlabel"}, func(r *ruleset.RuleBuilder) {
		if r.Bit("P1") == 0 {
			r.Add("nothing")
		} else {
			r.Add("newlabel")
		}
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rs.K())
	assert.Equal(t, 2, rs.NumConfigurations())
	assert.Equal(t, ruleset.Nothing, rs.Actions(0).First())
	assert.Equal(t, ruleset.NewLabel, rs.Actions(1).First())
}

// TestNew_UnsatisfiableRule ensures an empty action set is reported with
// the offending configuration.
func TestNew_UnsatisfiableRule(t *testing.T) {
	ps := onePixelMask(t)
	_, err := ruleset.New(ps, nil, []string{"nothing"}, func(r *ruleset.RuleBuilder) {
		// Never adds an action: every configuration is unsatisfiable.
	})
	assert.ErrorIs(t, err, ruleset.ErrUnsatisfiableRule)
}

// TestNew_ExtraCondition exercises the "iter" bit concatenation spec.md
// §4.1 describes for thinning masks.
func TestNew_ExtraCondition(t *testing.T) {
	ps := onePixelMask(t)
	rs, err := ruleset.New(ps, []string{"iter"}, []string{"keep0", "keep1"}, func(r *ruleset.RuleBuilder) {
		if r.Bit("iter") == 0 {
			r.Add("keep0")
		} else {
			r.Add("keep1")
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rs.K())
	assert.Equal(t, []string{"P1", "iter"}, rs.Conditions())

	// config=0b01 => P1=1, iter=0 => keep0; config=0b11 => iter=1 => keep1.
	assert.Equal(t, ruleset.Keep0, rs.Actions(1).First())
	assert.Equal(t, ruleset.Keep1, rs.Actions(3).First())
}

func TestActions_IntersectAndFirst(t *testing.T) {
	a := ruleset.Actions{ruleset.NewLabel, ruleset.Merge("P2", "P3")}
	b := ruleset.Actions{ruleset.Merge("P3", "P2"), ruleset.Nothing}

	inter := a.Intersect(b)
	require.Len(t, inter, 1)
	assert.Equal(t, "eP2+P3", inter[0].Token)
	assert.Equal(t, "eP2+P3", a.Sorted().First().Token) // "e..." < "newlabel" lexicographically
}

func TestParseAction(t *testing.T) {
	cases := map[string]ruleset.Family{
		"nothing":  ruleset.FamilyNothing,
		"newlabel": ruleset.FamilyNewLabel,
		"keep0":    ruleset.FamilyKeep0,
		"keep1":    ruleset.FamilyKeep1,
		"change0":  ruleset.FamilyChange0,
		"eP2+P3":   ruleset.FamilyMerge,
		"CCW":      ruleset.FamilyChainCode,
	}
	for token, want := range cases {
		a, err := ruleset.ParseAction(token)
		require.NoError(t, err)
		assert.Equal(t, want, a.Family, token)
	}
}

func TestNewFromTable_RejectsWrongSize(t *testing.T) {
	ps := onePixelMask(t)
	_, err := ruleset.NewFromTable(ps, nil, []string{"nothing"}, []ruleset.Actions{{ruleset.Nothing}})
	assert.Error(t, err)
}
