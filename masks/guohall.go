package masks

import (
	"github.com/graphgen-dev/graphgen/pixel"
	"github.com/graphgen-dev/graphgen/ruleset"
)

// guoHallCatalog is the thinning action vocabulary spec.md §3 names.
var guoHallCatalog = []string{"keep0", "keep1", "change0"}

// GuoHallMask builds the 3x3 neighborhood mask the Guo-Hall thinning
// first sub-iteration reads, named after the original's P1 (origin) .. P9
// (north-west) layout: P1 is the origin and P2..P9 run clockwise from
// north (P2 north, P3 north-east, P4 east, ..., P9 north-west), matching
// ruleset_generator_thin_gh.cpp's pixel_wrapper.
func GuoHallMask() (*pixel.PixelSet, error) {
	return pixel.New([]int{1, 1},
		pixel.Pixel{Name: "P1", Coords: []int{0, 0}},
		pixel.Pixel{Name: "P2", Coords: []int{0, -1}},
		pixel.Pixel{Name: "P3", Coords: []int{1, -1}},
		pixel.Pixel{Name: "P4", Coords: []int{1, 0}},
		pixel.Pixel{Name: "P5", Coords: []int{1, 1}},
		pixel.Pixel{Name: "P6", Coords: []int{0, 1}},
		pixel.Pixel{Name: "P7", Coords: []int{-1, 1}},
		pixel.Pixel{Name: "P8", Coords: []int{-1, 0}},
		pixel.Pixel{Name: "P9", Coords: []int{-1, -1}},
	)
}

// GuoHallThinningFirstSubiteration builds the rule set for the Guo-Hall
// thinning algorithm's first sub-iteration, ported directly from
// ruleset_generator_thin_gh.cpp: a pixel survives (keep1) unless it is
// already background (keep0) or the connectivity number C, the two
// neighbor counts N1/N2, and the sub-iteration-dependent corner guard m
// jointly mark it removable (change0). The "iter" extra condition
// selects between the two sub-iteration guards the original computes
// from the same formula; this constructor fixes neither bit away, so
// the returned rule set still carries both (callers wanting only the
// first sub-iteration's rows restrict evaluation to iter=0, exactly as
// spec.md §4.1 allows for non-pixel discriminators).
func GuoHallThinningFirstSubiteration() (*ruleset.RuleSet, *pixel.PixelSet, error) {
	ps, err := GuoHallMask()
	if err != nil {
		return nil, nil, err
	}

	rs, err := ruleset.New(ps, []string{"iter"}, guoHallCatalog, guoHallGen)
	if err != nil {
		return nil, nil, err
	}

	return rs, ps, nil
}

func guoHallGen(r *ruleset.RuleBuilder) {
	if r.Bit("P1") == 0 {
		r.Add("keep0")
		return
	}

	p2, p3, p4 := r.Bit("P2"), r.Bit("P3"), r.Bit("P4")
	p5, p6, p7 := r.Bit("P5"), r.Bit("P6"), r.Bit("P7")
	p8, p9 := r.Bit("P8"), r.Bit("P9")

	c := b2i(p2 == 0 && (p3 == 1 || p4 == 1)) +
		b2i(p4 == 0 && (p5 == 1 || p6 == 1)) +
		b2i(p6 == 0 && (p7 == 1 || p8 == 1)) +
		b2i(p8 == 0 && (p9 == 1 || p2 == 1))

	n1 := b2i(p9 == 1 || p2 == 1) + b2i(p3 == 1 || p4 == 1) +
		b2i(p5 == 1 || p6 == 1) + b2i(p7 == 1 || p8 == 1)
	n2 := b2i(p2 == 1 || p3 == 1) + b2i(p4 == 1 || p5 == 1) +
		b2i(p6 == 1 || p7 == 1) + b2i(p8 == 1 || p9 == 1)
	n := n1
	if n2 < n {
		n = n2
	}

	var m int
	if r.Bit("iter") == 0 {
		m = b2i(p6 == 1 || p7 == 1 || p9 == 0)
	} else {
		m = b2i(p2 == 1 || p3 == 1 || p5 == 0)
	}

	if c == 1 && n >= 2 && n <= 3 && m == 0 {
		r.Add("change0")
		return
	}

	r.Add("keep1")
}

func b2i(cond bool) int {
	if cond {
		return 1
	}

	return 0
}
