package rowsource

import (
	"os"
	"sort"

	"matrixci/internal/matrix"

	"gopkg.in/yaml.v3"
)

// workflowFile mirrors the subset of workflow-automation YAML this tool
// understands: a job whose strategy matrix has runtime and manifest axes.
//
//	jobs:
//	  test:
//	    strategy:
//	      matrix:
//	        runtime: [3.2.9, latest]
//	        manifest: [manifests/stable.manifest]
type workflowFile struct {
	Jobs map[string]workflowJob `yaml:"jobs"`
}

type workflowJob struct {
	Strategy struct {
		Matrix struct {
			Runtime  []string `yaml:"runtime"`
			Manifest []string `yaml:"manifest"`
		} `yaml:"matrix"`
	} `yaml:"strategy"`
}

// LoadWorkflow parses a workflow file. It returns a nil Definition (and nil
// error) when the file is valid YAML but contains no usable matrix, so the
// caller can keep scanning other workflow files.
func LoadWorkflow(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file workflowFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}

	// Jobs are scanned in name order so row order is stable across runs.
	names := make([]string, 0, len(file.Jobs))
	for name := range file.Jobs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := file.Jobs[name].Strategy.Matrix
		if len(m.Runtime) == 0 || len(m.Manifest) == 0 {
			continue
		}
		var rows []*matrix.Row
		for _, runtime := range m.Runtime {
			for _, manifest := range m.Manifest {
				rows = append(rows, matrix.NewRow(runtime, manifest))
			}
		}
		return &Definition{Rows: rows}, nil
	}
	return nil, nil
}
