package rowsource

import (
	"errors"
	"fmt"
	"os"

	"matrixci/internal/matrix"

	"gopkg.in/yaml.v3"
)

// pipelineFile mirrors the CI pipeline definition format:
//
//	script: make test
//	runtimes: [3.2.9, latest]
//	manifests: [manifests/stable.manifest]
//	exclude:
//	  - runtime: latest
//	    manifest: manifests/legacy.manifest
//	include:
//	  - runtime: 3.1.0
//	    manifest: manifests/ancient.manifest
//
// Rows are the cartesian product of runtimes and manifests, minus exclusions,
// plus explicit inclusions, in that order.
type pipelineFile struct {
	Script    string     `yaml:"script"`
	Runtimes  []string   `yaml:"runtimes"`
	Manifests []string   `yaml:"manifests"`
	Exclude   []rowEntry `yaml:"exclude"`
	Include   []rowEntry `yaml:"include"`
}

type rowEntry struct {
	Runtime  string `yaml:"runtime"`
	Manifest string `yaml:"manifest"`
}

// LoadPipeline parses a pipeline definition file into matrix rows.
func LoadPipeline(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parsePipeline(raw)
}

func parsePipeline(raw []byte) (*Definition, error) {
	var file pipelineFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing pipeline definition: %w", err)
	}
	if len(file.Runtimes) == 0 {
		return nil, errors.New("pipeline definition declares no runtimes")
	}
	if len(file.Manifests) == 0 {
		return nil, errors.New("pipeline definition declares no manifests")
	}

	excluded := make(map[rowEntry]bool, len(file.Exclude))
	for _, e := range file.Exclude {
		excluded[e] = true
	}

	var rows []*matrix.Row
	for _, runtime := range file.Runtimes {
		for _, manifest := range file.Manifests {
			if excluded[rowEntry{Runtime: runtime, Manifest: manifest}] {
				continue
			}
			rows = append(rows, matrix.NewRow(runtime, manifest))
		}
	}
	for _, inc := range file.Include {
		if inc.Runtime == "" || inc.Manifest == "" {
			return nil, fmt.Errorf("include entry needs both runtime and manifest, got %+v", inc)
		}
		rows = append(rows, matrix.NewRow(inc.Runtime, inc.Manifest))
	}

	return &Definition{Rows: rows, Script: file.Script}, nil
}
