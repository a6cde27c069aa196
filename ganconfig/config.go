package ganconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the five process-wide keys spec.md §6 names. All fields
// are required once Load returns successfully, except EndGroupCount,
// which defaults to the mask's horizontal shift when unset (0).
type Config struct {
	AlgorithmName string
	MaskName      string
	CodePath      string
	TreecodePath  string
	EndGroupCount int
}

// required lists the keys Load treats as mandatory.
var required = []string{"algorithm_name", "mask_name", "code_path", "treecode_path"}

// Load reads the five recognized keys from v (already configured by the
// caller with whatever file/env/flag sources it needs — ganconfig itself
// never touches the filesystem or process environment directly, matching
// the teacher's own config.go convention of a plain, side-effect-free
// constructor over caller-supplied inputs) and returns a populated Config.
// Load returns ErrConfigMissing, naming the first unset required key, if
// any of algorithm_name/mask_name/code_path/treecode_path is empty.
func Load(v *viper.Viper) (Config, error) {
	for _, key := range required {
		if v.GetString(key) == "" {
			return Config{}, fmt.Errorf("ganconfig: %s: %w", key, ErrConfigMissing)
		}
	}

	return Config{
		AlgorithmName: v.GetString("algorithm_name"),
		MaskName:      v.GetString("mask_name"),
		CodePath:      v.GetString("code_path"),
		TreecodePath:  v.GetString("treecode_path"),
		EndGroupCount: v.GetInt("end_group_count"),
	}, nil
}
