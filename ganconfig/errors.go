// Package ganconfig loads the process-wide configuration spec.md §6
// requires before pipeline entry: algorithm_name, mask_name, code_path,
// treecode_path, and end_group_count.
package ganconfig

import "errors"

// ErrConfigMissing indicates a required key was not set before pipeline
// entry (spec.md §7 "ConfigMissing").
var ErrConfigMissing = errors.New("ganconfig: required key is not set")
