package config

import (
	"errors"
	"fmt"
	"strings"
)

type Config struct {
	Source    Source
	Execution Execution
	Output    Output
}

type Source struct {
	// Dir is the project directory searched for a matrix definition (see --dir).
	Dir string

	// From fetches the matrix definition from a GitHub repository instead of
	// the local directory, as OWNER/REPO (see --from).
	From string

	// Ref is the branch, tag, or commit used with --from (see --ref).
	// Empty means the repository's default branch.
	Ref string
}

type Execution struct {
	// Command is the test command run once per compatible row (see --command).
	// Empty falls back to the matrix definition's script, then to "make test".
	Command string

	// Runtime overrides active runtime version discovery (see --runtime).
	// Intended for CI images where no version manager is installed.
	Runtime string

	// ManagerTool is the version-manager executable probed for alias listings
	// and the current version (see --manager).
	ManagerTool string

	// Validate checks every row's manifest before running (see --validate).
	Validate bool
}

type Output struct {
	// Silent suppresses the report; outcomes still decide the exit code (see --silent).
	Silent bool

	// NoColor disables ANSI tinting (see --no-color).
	NoColor bool

	// Verbose enables diagnostics such as per-request GitHub API logging.
	Verbose bool
}

func New() *Config {
	return &Config{
		Source: Source{
			Dir: ".",
		},
		Execution: Execution{
			ManagerTool: "rvm",
		},
	}
}

func (c *Config) Validate() error {
	if c.Source.Dir == "" {
		c.Source.Dir = "."
	}

	if c.Source.From != "" {
		owner, repo, ok := strings.Cut(strings.TrimSpace(c.Source.From), "/")
		if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
			return fmt.Errorf("invalid --from value %q: expected OWNER/REPO", c.Source.From)
		}
		c.Source.From = owner + "/" + repo
	}
	if c.Source.Ref != "" && c.Source.From == "" {
		return errors.New("--ref requires --from")
	}

	if strings.TrimSpace(c.Execution.ManagerTool) == "" {
		return errors.New("--manager must not be empty")
	}

	return nil
}
