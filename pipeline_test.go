package graphgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphgen "github.com/graphgen-dev/graphgen"
	"github.com/graphgen-dev/graphgen/dragnode"
	"github.com/graphgen-dev/graphgen/masks"
	"github.com/graphgen-dev/graphgen/progress"
	"github.com/graphgen-dev/graphgen/ruleset"
)

func TestRun_BuildsCompressedForestForGrana2x2(t *testing.T) {
	rs, ps, err := masks.Grana2x2Labeling()
	require.NoError(t, err)

	result, err := graphgen.Run(rs, ps, 0, progress.NoopSink{})
	require.NoError(t, err)

	assert.Len(t, result.MainRoots, ps.HorizontalShift()+1)
	assert.Len(t, result.EndRoots, ps.HorizontalShift())
	for _, e := range []int{1, 2} {
		assert.Len(t, result.Mapping[e], ps.HorizontalShift()+1)
	}
}

func TestRun_ShiftOverrideChangesForestWidth(t *testing.T) {
	rs, ps, err := masks.GuoHallThinningFirstSubiteration()
	require.NoError(t, err)

	result, err := graphgen.Run(rs, ps, 2, progress.NoopSink{})
	require.NoError(t, err)
	assert.Len(t, result.MainRoots, 3)
}

// TestRun_ForestMatchesBruteForceRuleSetAcrossScanLine exercises the
// round-trip law spec.md §8 describes: walking the compressed forest
// left to right over a synthetic scan line, switching to the matching
// end-group root whenever a pixel would read past the image edge, must
// agree with evaluating the RuleSet directly against every column's true
// neighborhood — for every column, not just an interior one where no
// pixel runs off the edge.
func TestRun_ForestMatchesBruteForceRuleSetAcrossScanLine(t *testing.T) {
	rs, ps, err := masks.Grana2x2Labeling()
	require.NoError(t, err)

	result, err := graphgen.Run(rs, ps, 0, progress.NoopSink{})
	require.NoError(t, err)

	const width = 6
	shift := ps.HorizontalShift()

	// rows[dy] holds the boolean pixel values at vertical offset dy,
	// indexed by column. Deliberately varied by row and pattern so every
	// branch of Grana2x2Labeling's "nothing"/"newlabel"/"merge" split is
	// exercised, not just an all-on or all-off scan line.
	patterns := [][3][width]bool{
		{
			{false, false, false, false, false, false},
			{false, false, false, false, false, false},
			{false, false, false, false, false, false},
		},
		{
			{true, true, true, true, true, true},
			{true, true, true, true, true, true},
			{true, true, true, true, true, true},
		},
		{
			{false, true, false, true, false, true},
			{true, false, true, false, true, false},
			{false, false, true, true, false, false},
		},
		{
			{true, false, false, true, true, false},
			{false, true, true, false, false, true},
			{true, true, false, false, true, true},
		},
	}

	rowAt := func(p [3][width]bool, dy int) [width]bool { return p[dy+1] }

	for patIdx, pat := range patterns {
		for c := 0; c < width; c++ {
			assignment := make(map[string]bool, ps.Len())
			for i := 0; i < ps.Len(); i++ {
				px := ps.At(i)
				x, dy := c+px.Coords[0], px.Coords[1]
				if dy < -1 || dy > 1 {
					continue
				}
				if x >= 0 && x < width {
					assignment[px.Name] = rowAt(pat, dy)[x]
				}
			}
			want := bruteForceAction(rs, assignment)

			e := width - c
			var root dragnode.NodeID
			if e >= 1 && e <= shift {
				root = result.EndRoots[e][0]
			} else {
				root = result.MainRoots[0]
			}
			got := dragnode.Eval(result.Drag, root, assignment)
			require.Equalf(t, want, got, "pattern=%d col=%d", patIdx, c)
		}
	}
}

func bruteForceAction(rs *ruleset.RuleSet, assignment map[string]bool) ruleset.Action {
	var config uint64
	for i, cond := range rs.Conditions() {
		if assignment[cond] {
			config |= 1 << uint(i)
		}
	}

	return rs.Actions(config).Sorted().First()
}
