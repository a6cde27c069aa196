package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphgen-dev/graphgen/codegen"
	"github.com/graphgen-dev/graphgen/pixel"
	"github.com/graphgen-dev/graphgen/ruleset"
)

func TestRowPointerAccessor_RendersRowAndColumn(t *testing.T) {
	ps, err := pixel.New([]int{1, 1},
		pixel.Pixel{Name: "P0", Coords: []int{0, 0}},
		pixel.Pixel{Name: "Pm1", Coords: []int{-1, -1}},
		pixel.Pixel{Name: "Pp2", Coords: []int{2, 1}},
	)
	require.NoError(t, err)

	pa := &codegen.RowPointerAccessor{PixelSet: ps}

	assert.Equal(t, "img_row00[c]", pa.Access("P0"))
	assert.Equal(t, "img_row11[c - 1]", pa.Access("Pm1"))
	assert.Equal(t, "img_row01[c + 2]", pa.Access("Pp2"))
}

func TestRowPointerAccessor_PassesThroughExtraCondition(t *testing.T) {
	ps, err := pixel.New([]int{1, 1}, pixel.Pixel{Name: "P0", Coords: []int{0, 0}})
	require.NoError(t, err)
	pa := &codegen.RowPointerAccessor{PixelSet: ps}

	assert.Equal(t, "iter", pa.Access("iter"))
}

func TestLabelingActionText_MergeBuildsNestedCalls(t *testing.T) {
	ps, err := pixel.New([]int{1, 1},
		pixel.Pixel{Name: "P0", Coords: []int{0, 0}},
		pixel.Pixel{Name: "P1", Coords: []int{1, 0}},
		pixel.Pixel{Name: "P2", Coords: []int{2, 0}},
	)
	require.NoError(t, err)
	pa := &codegen.RowPointerAccessor{PixelSet: ps}
	render := codegen.LabelingActionText(pa, "solver")

	out := render(ruleset.Merge("P1", "P2"))
	assert.Equal(t, "solver.Merge(img_row00[c + 2], img_row00[c + 1])", out)
}

func TestLabelingActionText_NothingAndNewLabel(t *testing.T) {
	render := codegen.LabelingActionText(&codegen.RowPointerAccessor{}, "solver")
	assert.Equal(t, "0", render(ruleset.Nothing))
	assert.Equal(t, "solver.NewLabel()", render(ruleset.NewLabel))
}

func TestConditionTextFromAccessor_WrapsAsNonzeroTest(t *testing.T) {
	ps, err := pixel.New([]int{1, 1}, pixel.Pixel{Name: "P0", Coords: []int{0, 0}})
	require.NoError(t, err)
	pa := &codegen.RowPointerAccessor{PixelSet: ps}

	conditionText := codegen.ConditionTextFromAccessor(pa)
	assert.Equal(t, "img_row00[c] != 0", conditionText("P0"))
}
