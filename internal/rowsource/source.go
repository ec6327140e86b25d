// Package rowsource loads compatibility-matrix rows from the configuration
// formats matrixci consumes (but does not define): a CI pipeline definition
// file or a workflow-automation YAML.
package rowsource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"matrixci/internal/matrix"
)

// ErrMissingMatrixDefinition is returned when no recognized configuration
// source exists in the project directory.
var ErrMissingMatrixDefinition = errors.New("no matrix definition found (.matrix.yml or workflow YAML)")

// pipelineFileNames are the CI pipeline definition candidates, in preference
// order.
var pipelineFileNames = []string{".matrix.yml", ".matrix.yaml"}

// workflowDir holds workflow-automation YAML files.
const workflowDir = ".github/workflows"

// Definition is a loaded matrix: the ordered rows plus the test command the
// definition declares, if any.
type Definition struct {
	Rows   []*matrix.Row
	Script string
}

// Load picks a configuration source by file presence — the pipeline file is
// preferred, workflow YAML is the fallback — and parses it into rows.
func Load(dir string) (*Definition, error) {
	for _, name := range pipelineFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			def, err := LoadPipeline(path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return def, nil
		}
	}

	if def, ok, err := loadAnyWorkflow(dir); err != nil {
		return nil, err
	} else if ok {
		return def, nil
	}

	return nil, fmt.Errorf("%s: %w", dir, ErrMissingMatrixDefinition)
}

func loadAnyWorkflow(dir string) (*Definition, bool, error) {
	var candidates []string
	for _, pattern := range []string{"*.yml", "*.yaml"} {
		matches, err := filepath.Glob(filepath.Join(dir, workflowDir, pattern))
		if err != nil {
			return nil, false, err
		}
		candidates = append(candidates, matches...)
	}
	sort.Strings(candidates)

	for _, path := range candidates {
		def, err := LoadWorkflow(path)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", path, err)
		}
		if def != nil {
			return def, true, nil
		}
	}
	return nil, false, nil
}
