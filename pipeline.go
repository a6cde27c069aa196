package graphgen

import (
	"github.com/graphgen-dev/graphgen/compress"
	"github.com/graphgen-dev/graphgen/dragnode"
	"github.com/graphgen-dev/graphgen/forest"
	"github.com/graphgen-dev/graphgen/odt"
	"github.com/graphgen-dev/graphgen/pixel"
	"github.com/graphgen-dev/graphgen/progress"
	"github.com/graphgen-dev/graphgen/ruleset"
)

// PipelineResult bundles the compressed forest a Run call produced: the
// shared Drag, the main-forest roots, and the per-end-group roots, all
// already hash-consed and leaf-merged to a fixed point.
type PipelineResult struct {
	Drag      *dragnode.Drag
	MainRoots []dragnode.NodeID
	EndRoots  map[int][]dragnode.NodeID
	Mapping   map[int][]int
	Stats     dragnode.Stats
}

// Run is the library-level equivalent of cmd/graphgen's driver: build the
// Optimal Decision Tree for rs, split it into a forest over shift (ps's
// own horizontal shift if shift <= 0), and compress that forest to a
// fixed point. Callers that want file output or CLI flags should use
// cmd/graphgen; Run exists for embedding the pipeline in another program
// without a subprocess.
func Run(rs *ruleset.RuleSet, ps *pixel.PixelSet, shift int, sink progress.Sink) (PipelineResult, error) {
	if shift <= 0 {
		shift = ps.HorizontalShift()
	}

	d, root, err := odt.Build(rs)
	if err != nil {
		return PipelineResult{}, err
	}

	f, err := forest.Build(d, root, ps, shift)
	if err != nil {
		return PipelineResult{}, err
	}

	endGroups := f.EndGroups()
	allRoots := append([]dragnode.NodeID(nil), f.MainRoots...)
	for _, e := range endGroups {
		allRoots = append(allRoots, f.EndRoots[e]...)
	}

	result, err := compress.Compress(d, allRoots, compress.Strict, sink)
	if err != nil {
		return PipelineResult{}, err
	}

	mainRoots := result.Roots[:len(f.MainRoots)]
	endRoots := make(map[int][]dragnode.NodeID, len(endGroups))
	offset := len(f.MainRoots)
	for _, e := range endGroups {
		n := len(f.EndRoots[e])
		endRoots[e] = result.Roots[offset : offset+n]
		offset += n
	}

	return PipelineResult{
		Drag:      d,
		MainRoots: mainRoots,
		EndRoots:  endRoots,
		Mapping:   f.Mapping,
		Stats:     result.Stats,
	}, nil
}
