package codegen

import (
	"fmt"
	"strings"

	"github.com/graphgen-dev/graphgen/pixel"
	"github.com/graphgen-dev/graphgen/ruleset"
)

// PixelAccessor renders the expression text that reads a named condition's
// value, the "condition-name -> condition-expression text" collaborator
// spec.md §4.7 takes as an emitter input. A condition absent from the
// backing PixelSet (an "extra" condition such as "iter") is passed
// through verbatim, since it names a scalar the caller's template already
// knows how to reference.
type PixelAccessor interface {
	Access(condition string) string
}

// RowPointerAccessor renders 2D row-pointer expressions the way the
// original's GenerateAccessPixelCode/GeneratePointersCode do: an
// identifier built from the row offset's sign and magnitude
// (row00/row11/row01/...), plus a column adjustment applied to the
// current-column variable. Slice identifiers are included for masks
// whose PixelSet carries a third coordinate, mirroring the original, but
// — per the original's own "3D generation only works with unitary shift"
// caveat — graphgen does not otherwise validate 3D shift combinations.
type RowPointerAccessor struct {
	PixelSet *pixel.PixelSet
	// ImagePrefix names the base pointer family (default "img_" if empty).
	ImagePrefix string
	// Column is the current-column variable name (default "c" if empty).
	Column string
}

// Access implements PixelAccessor.
func (r *RowPointerAccessor) Access(condition string) string {
	i, ok := r.PixelSet.Index(condition)
	if !ok {
		return condition
	}
	p := r.PixelSet.At(i)

	prefix := r.ImagePrefix
	if prefix == "" {
		prefix = "img_"
	}
	col := r.Column
	if col == "" {
		col = "c"
	}

	var sliceID string
	if len(p.Coords) > 2 {
		sliceID = "slice" + signDigit(p.Coords[2]) + fmt.Sprint(abs(p.Coords[2])) + "_"
	}
	rowID := "row" + signDigit(p.Coords[1]) + fmt.Sprint(abs(p.Coords[1]))

	colExpr := col
	switch {
	case p.Coords[0] > 0:
		colExpr = fmt.Sprintf("%s + %d", col, p.Coords[0])
	case p.Coords[0] < 0:
		colExpr = fmt.Sprintf("%s - %d", col, -p.Coords[0])
	}

	return fmt.Sprintf("%s%s%s[%s]", prefix, sliceID, rowID, colExpr)
}

func signDigit(v int) string {
	if v < 0 {
		return "1"
	}

	return "0"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// ActionTextFunc renders one Action's statement text, the "action-index ->
// action-statement text" emitter input.
type ActionTextFunc func(a ruleset.Action) string

// LabelingActionText returns an ActionTextFunc implementing the labeling
// family's CreateAssignmentCode convention: "nothing" renders as a
// background sentinel, "newlabel" allocates a fresh label, and a merge
// action renders through mergeExpr. solverExpr names the label-equivalence
// solver variable (the original's "solver").
func LabelingActionText(pa PixelAccessor, solverExpr string) ActionTextFunc {
	return func(a ruleset.Action) string {
		switch a.Family {
		case ruleset.FamilyNothing:
			return "0"
		case ruleset.FamilyNewLabel:
			return solverExpr + ".NewLabel()"
		case ruleset.FamilyMerge:
			return mergeExpr(a.Provenance, pa, solverExpr)
		default:
			return a.Token
		}
	}
}

// mergeExpr reproduces CreateAssignmentCodeRec's recursive pairwise
// LabelsSolver::merge balanced-tree construction: a single pixel resolves
// to its access expression directly; more than one splits into a front
// half and back half (back half first, by the size/2 boundary) and nests
// merge(back, front, solver) calls. names must be non-empty.
func mergeExpr(names []string, pa PixelAccessor, solverExpr string) string {
	if len(names) == 1 {
		return pa.Access(names[0])
	}

	mid := len(names) / 2
	front := names[:mid]
	back := names[mid:]

	return fmt.Sprintf("%s.Merge(%s, %s)", solverExpr, mergeExpr(back, pa, solverExpr), mergeExpr(front, pa, solverExpr))
}

// ThinningActionText returns an ActionTextFunc for the thinning family
// (keep0/keep1/change0 render as literal pixel values) and passes any
// other family's token straight through.
func ThinningActionText() ActionTextFunc {
	return func(a ruleset.Action) string {
		switch a.Family {
		case ruleset.FamilyKeep0, ruleset.FamilyChange0:
			return "0"
		case ruleset.FamilyKeep1:
			return "1"
		default:
			return a.Token
		}
	}
}

// ChainCodeActionText returns an ActionTextFunc rendering a chaincode
// action as its opaque token, unchanged (spec.md §3: chaincode tokens
// pass through verbatim).
func ChainCodeActionText() ActionTextFunc {
	return func(a ruleset.Action) string {
		return a.Token
	}
}

// ConditionTextFromAccessor adapts a PixelAccessor into the plain
// condition-name-to-text function Emit takes, wrapping the access
// expression as a truth test (nonzero test), matching the original's
// `(<access>).to_u8() > 0` convention.
func ConditionTextFromAccessor(pa PixelAccessor) func(string) string {
	return func(cond string) string {
		return strings.TrimSpace(pa.Access(cond)) + " != 0"
	}
}
