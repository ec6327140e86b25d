// Package workflowgen renders a workflow-automation YAML file from a loaded
// matrix definition, so projects can mirror their local matrix in CI.
package workflowgen

import (
	"errors"
	"fmt"
	"io"

	"matrixci/internal/env"
	"matrixci/internal/matrix"

	"gopkg.in/yaml.v3"
)

// DefaultScript is used when the matrix definition declares no test command.
const DefaultScript = "make test"

type workflow struct {
	Name string         `yaml:"name"`
	On   []string       `yaml:"on"`
	Jobs map[string]job `yaml:"jobs"`
}

type job struct {
	Strategy strategy `yaml:"strategy"`
	Steps    []step   `yaml:"steps"`
}

type strategy struct {
	FailFast bool       `yaml:"fail-fast"`
	Matrix   matrixAxes `yaml:"matrix"`
}

type matrixAxes struct {
	Include []includeEntry `yaml:"include"`
}

type includeEntry struct {
	Runtime  string `yaml:"runtime"`
	Manifest string `yaml:"manifest"`
}

type step struct {
	Run string            `yaml:"run"`
	Env map[string]string `yaml:"env"`
}

// Write renders rows as one workflow job with an explicit include list, one
// entry per row, each step carrying the manifest and runtime bindings.
func Write(w io.Writer, rows []*matrix.Row, script string) error {
	if len(rows) == 0 {
		return errors.New("cannot generate a workflow from an empty matrix")
	}
	if script == "" {
		script = DefaultScript
	}

	include := make([]includeEntry, 0, len(rows))
	for _, row := range rows {
		include = append(include, includeEntry{
			Runtime:  row.RequestedVersion,
			Manifest: row.ManifestPath,
		})
	}

	wf := workflow{
		Name: "compatibility-matrix",
		On:   []string{"push", "pull_request"},
		Jobs: map[string]job{
			"matrix": {
				Strategy: strategy{
					FailFast: false,
					Matrix:   matrixAxes{Include: include},
				},
				Steps: []step{{
					Run: script,
					Env: map[string]string{
						env.ManifestVar: "${{ matrix.manifest }}",
						env.RuntimeVar:  "${{ matrix.runtime }}",
					},
				}},
			},
		},
	}

	data, err := yaml.Marshal(&wf)
	if err != nil {
		return fmt.Errorf("rendering workflow: %w", err)
	}
	_, err = w.Write(data)
	return err
}
