package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"matrixci/internal/config"
	"matrixci/internal/env"
	gh "matrixci/internal/github"
	"matrixci/internal/rowsource"
)

var cfg = config.New()

// loadDefinition resolves the matrix definition from the configured source:
// a GitHub repository when --from is set, the local project directory
// otherwise.
func loadDefinition(ctx context.Context, cfg *config.Config) (*rowsource.Definition, error) {
	if cfg.Source.From == "" {
		return rowsource.Load(cfg.Source.Dir)
	}

	token, err := gh.ResolveAuthToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving GitHub auth token: %w", err)
	}
	var verboseLog io.Writer
	if cfg.Output.Verbose {
		verboseLog = os.Stderr
	}
	client, err := gh.NewClient(ctx, token, verboseLog)
	if err != nil {
		return nil, err
	}
	return rowsource.LoadRemote(ctx, client, cfg.Source.From, cfg.Source.Ref)
}

// buildEnvironment wires the process-environment collaborator for the
// configured version manager.
func buildEnvironment(cfg *config.Config) *env.Env {
	return &env.Env{Aliases: env.DetectAliasListerTool(cfg.Execution.ManagerTool)}
}

// activeRuntime returns the runtime version this run considers current: the
// --runtime override if given, discovery otherwise.
func activeRuntime(cfg *config.Config, e *env.Env) (string, error) {
	if cfg.Execution.Runtime != "" {
		return cfg.Execution.Runtime, nil
	}
	return e.CurrentRuntimeVersion()
}
