// Command graphgen drives the offline pipeline spec.md §1 describes end
// to end for one mask: build the Optimal Decision Tree, split it into a
// main/end-group forest, compress the forest to a fixed point, and emit
// the result as scanning-loop source text plus a one-tree debug dump.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	graphgen "github.com/graphgen-dev/graphgen"
	"github.com/graphgen-dev/graphgen/codegen"
	"github.com/graphgen-dev/graphgen/dragnode"
	"github.com/graphgen-dev/graphgen/ganconfig"
	"github.com/graphgen-dev/graphgen/masks"
	"github.com/graphgen-dev/graphgen/odt"
	"github.com/graphgen-dev/graphgen/pixel"
	"github.com/graphgen-dev/graphgen/progress"
	"github.com/graphgen-dev/graphgen/ruleset"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "graphgen",
		Short: "Generate a scanning-loop decision forest for a pixel-labeling or thinning mask",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v)
		},
	}

	flags := cmd.Flags()
	flags.String("algorithm-name", "", "algorithm label used in emitted comments and logs")
	flags.String("mask-name", "", "mask to build: guohall or grana2x2")
	flags.String("code-path", "", "destination file for the emitted forest state machine")
	flags.String("treecode-path", "", "destination file for a one-tree debug emission")
	flags.Int("end-group-count", 0, "override the mask's horizontal shift as the end-group count (0 = use the mask's own shift)")

	for _, name := range []string{"algorithm-name", "mask-name", "code-path", "treecode-path", "end-group-count"} {
		if err := v.BindPFlag(toConfigKey(name), flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	v.AutomaticEnv()

	return cmd
}

// toConfigKey turns a kebab-case flag name into the snake_case key
// ganconfig.Load recognizes.
func toConfigKey(flagName string) string {
	out := make([]byte, 0, len(flagName))
	for _, c := range flagName {
		if c == '-' {
			out = append(out, '_')
			continue
		}
		out = append(out, byte(c))
	}

	return string(out)
}

func run(v *viper.Viper) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	cfg, err := ganconfig.Load(v)
	if err != nil {
		return err
	}
	logger.Info().Str("algorithm", cfg.AlgorithmName).Str("mask", cfg.MaskName).Msg("starting run")

	rs, ps, actionText, err := selectMask(cfg.MaskName)
	if err != nil {
		return err
	}

	// Built twice deliberately: once through graphgen.Run for the
	// compressed forest code_path needs, once standalone for the raw,
	// uncompressed single-tree debug dump treecode_path names (spec.md
	// §6). Re-running odt.Build is cheap relative to forest compression
	// and keeps the two outputs independent of each other's internals.
	root, rootDrag, err := buildRawTree(rs)
	if err != nil {
		return fmt.Errorf("build odt: %w", err)
	}
	odtStats := dragnode.ComputeStats(rootDrag, root)
	logger.Info().Int("nodes", odtStats.Nodes()).Int("leaves", odtStats.Leaves()).Msg("odt built")

	sink := progress.NewZerologSink(logger)
	result, err := graphgen.Run(rs, ps, cfg.EndGroupCount, sink)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}
	logger.Info().
		Int("nodes", result.Stats.Nodes()).
		Int("leaves", result.Stats.Leaves()).
		Msg("forest compressed")

	pa := &codegen.RowPointerAccessor{PixelSet: ps}
	conditionText := codegen.ConditionTextFromAccessor(pa)

	if err := emitCode(result.Drag, cfg.AlgorithmName, cfg.CodePath, result.MainRoots, result.EndRoots, result.Mapping, conditionText, actionText); err != nil {
		return fmt.Errorf("emit code: %w", err)
	}
	if err := emitTreecode(rootDrag, root, conditionText, actionText, cfg.TreecodePath); err != nil {
		return fmt.Errorf("emit treecode: %w", err)
	}

	logger.Info().Str("code_path", cfg.CodePath).Str("treecode_path", cfg.TreecodePath).Msg("run complete")

	return nil
}

// selectMask dispatches cfg.MaskName to a concrete mask/rule-set pair and
// the action-rendering function its family needs.
func selectMask(maskName string) (*ruleset.RuleSet, *pixel.PixelSet, codegen.ActionTextFunc, error) {
	switch maskName {
	case "guohall":
		rs, ps, err := masks.GuoHallThinningFirstSubiteration()
		if err != nil {
			return nil, nil, nil, err
		}

		return rs, ps, codegen.ThinningActionText(), nil
	case "grana2x2":
		rs, ps, err := masks.Grana2x2Labeling()
		if err != nil {
			return nil, nil, nil, err
		}
		pa := &codegen.RowPointerAccessor{PixelSet: ps}

		return rs, ps, codegen.LabelingActionText(pa, "solver"), nil
	default:
		return nil, nil, nil, fmt.Errorf("graphgen: %q: %w", maskName, ErrUnknownMask)
	}
}

// buildRawTree runs odt.Build standalone, independent of graphgen.Run,
// so the treecode debug dump reflects the uncompressed single tree even
// though the forest pipeline rebuilds its own copy internally.
func buildRawTree(rs *ruleset.RuleSet) (dragnode.NodeID, *dragnode.Drag, error) {
	d, root, err := odt.Build(rs)
	if err != nil {
		return 0, nil, err
	}

	return root, d, nil
}

func emitCode(
	d *dragnode.Drag,
	algorithmName, path string,
	mainRoots []dragnode.NodeID,
	endRoots map[int][]dragnode.NodeID,
	mapping map[int][]int,
	conditionText func(string) string,
	actionText codegen.ActionTextFunc,
) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", codegen.ErrEmissionIO, err)
	}
	defer w.Close()

	hooks := codegen.Hooks{
		MainBefore: func(i int, prefix string, _ []int, _ int) string {
			return fmt.Sprintf("// %s: main tree %d\n", prefix, i)
		},
		MainAfter: func(int, string, []int, int) string { return "\n" },
		EndBefore: func(i int, prefix string, _ []int, eg int) string {
			return fmt.Sprintf("// %s: end-group %d tree %d\n", prefix, eg, i)
		},
		EndAfter: func(int, string, []int, int) string { return "\n" },
	}

	_, err = codegen.Emit(w, d, algorithmName, mainRoots, endRoots, mapping, conditionText, actionText, true, hooks, 0)

	return err
}

// emitTreecode writes a single-tree, hook-free emission of the raw ODT
// (before forest partitioning), the debug dump cfg.TreecodePath names
// (spec.md §6: "destination file for a one-tree emission (debugging)").
func emitTreecode(
	d *dragnode.Drag,
	root dragnode.NodeID,
	conditionText func(string) string,
	actionText codegen.ActionTextFunc,
	path string,
) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", codegen.ErrEmissionIO, err)
	}
	defer w.Close()

	_, err = codegen.Emit(w, d, "tree", []dragnode.NodeID{root}, nil, nil, conditionText, actionText, false, codegen.Hooks{}, 0)

	return err
}
