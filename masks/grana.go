package masks

import (
	"github.com/graphgen-dev/graphgen/pixel"
	"github.com/graphgen-dev/graphgen/ruleset"
)

// granaCatalog is the labeling action vocabulary spec.md §3 names.
var granaCatalog = []string{"nothing", "newlabel", "merge"}

// grana2x2Externals names the five already-scanned context pixels the
// mask consults, in the order spec.md §3 item 5 lists them.
var grana2x2Externals = []string{"P", "Q", "R", "S", "T"}

// Grana2x2Mask builds the block-based connected-component labeling mask:
// five external context pixels above and to the left of a 2x2 foreground
// block (A top-left/origin, B top-right, C bottom-left, D bottom-right),
// advancing the scan by two columns per application.
//
// This mask's exact pixel layout is not ported from original_source: the
// retrieved pack's Spaghetti4C driver (spaghetti4c_main.cpp) references
// the actual Grana rule-set class (Rosenfeld4CRS) only by name — its
// definition was not among the retrieved files. The layout below is
// authored directly from spec.md's own description ("five external
// pixels plus the 2x2 block, shift 2") rather than ported; see DESIGN.md.
func Grana2x2Mask() (*pixel.PixelSet, error) {
	return pixel.New([]int{2, 2},
		pixel.Pixel{Name: "A", Coords: []int{0, 0}},
		pixel.Pixel{Name: "B", Coords: []int{1, 0}},
		pixel.Pixel{Name: "C", Coords: []int{0, 1}},
		pixel.Pixel{Name: "D", Coords: []int{1, 1}},
		pixel.Pixel{Name: "P", Coords: []int{-1, -1}},
		pixel.Pixel{Name: "Q", Coords: []int{0, -1}},
		pixel.Pixel{Name: "R", Coords: []int{1, -1}},
		pixel.Pixel{Name: "S", Coords: []int{2, -1}},
		pixel.Pixel{Name: "T", Coords: []int{-1, 0}},
	)
}

// Grana2x2Labeling builds the rule set over Grana2x2Mask: an all-background
// block is "nothing"; a foreground block with no foreground external
// neighbor gets "newlabel"; a foreground block with one or more foreground
// external neighbors merges their label provenance (spec.md §3's "merge"
// family; ruleset.Merge renders the token as "e<pixelname>[+...]").
//
// As with Grana2x2Mask, this decision logic is a reconstruction from
// spec.md's description of the labeling family, not a port of the
// original's rule table (not present in the retrieved pack) — see
// DESIGN.md's entry for this package.
func Grana2x2Labeling() (*ruleset.RuleSet, *pixel.PixelSet, error) {
	ps, err := Grana2x2Mask()
	if err != nil {
		return nil, nil, err
	}

	rs, err := ruleset.New(ps, nil, granaCatalog, grana2x2Gen)
	if err != nil {
		return nil, nil, err
	}

	return rs, ps, nil
}

func grana2x2Gen(r *ruleset.RuleBuilder) {
	if r.Bit("A") == 0 && r.Bit("B") == 0 && r.Bit("C") == 0 && r.Bit("D") == 0 {
		r.Add("nothing")
		return
	}

	var neighbors []string
	for _, name := range grana2x2Externals {
		if r.Bit(name) == 1 {
			neighbors = append(neighbors, name)
		}
	}

	if len(neighbors) == 0 {
		r.Add("newlabel")
		return
	}

	r.AddAction(ruleset.Merge(neighbors...))
}
