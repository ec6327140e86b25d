package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"matrixci/internal/flags"
	"matrixci/internal/matrix"
	"matrixci/internal/shell"
	"matrixci/internal/workflowgen"

	"github.com/spf13/cobra"
)

// Exit code contract:
// 0 = every compatible row passed
// 1 = at least one compatible row failed
// 2 = no row matched the active runtime
// 3 = fatal error (bad config, no matrix definition, invalid row)
func exitCodeForRun(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, matrix.ErrSomeRowsFailed):
		return 1
	case errors.Is(err, matrix.ErrNoCompatibleRuntime):
		return 2
	default:
		return 3
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the test command for every compatible matrix row",
	Long: `Run the test command once per compatibility-matrix row whose runtime version
matches the active one. Rows run strictly in definition order; incompatible
rows are skipped and reported, not treated as failures.

For each compatible row the manifest env var (MATRIXCI_MANIFEST) is bound to
the row's manifest for the duration of the command and restored afterwards.
Alias names in the matrix (for example a floating "latest") are resolved
through the version manager's alias listing before comparison.

The test command comes from --command, else the definition's script field,
else "` + workflowgen.DefaultScript + `".

Exit codes:
	0 = every compatible row passed
	1 = at least one compatible row failed
	2 = no row matched the active runtime
	3 = fatal error (bad config, no matrix definition, invalid row)

Examples:
  # Run the matrix in the current directory
  matrixci run

  # Validate manifests first and run with a pinned active version
  matrixci run --validate --runtime 3.2.9

  # Run a matrix defined in another repository
  matrixci run --from acme/tool --ref main
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		os.Exit(runMatrix(context.Background()))
	},
}

func runMatrix(ctx context.Context) int {
	def, err := loadDefinition(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}

	command := cfg.Execution.Command
	if command == "" {
		command = def.Script
	}
	if command == "" {
		command = workflowgen.DefaultScript
	}

	e := buildEnvironment(cfg)
	active, err := activeRuntime(cfg, e)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}

	m, err := matrix.New(def.Rows, active, e, matrix.Options{
		Silent:              cfg.Output.Silent,
		Color:               !cfg.Output.NoColor,
		ValidateOnConstruct: cfg.Execution.Validate,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}

	runner := &shell.Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Dir:    dirForCommand(),
	}

	err = m.RunEach(func(row *matrix.Row, sel matrix.Selection) bool {
		if !cfg.Output.Silent {
			fmt.Fprintf(os.Stderr, "Running %s...\n", row.Label())
		}
		passed, runErr := runner.Run(ctx, command, sel.Environ())
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running %s: %v\n", row.Label(), runErr)
			return false
		}
		return passed
	})
	if err != nil && exitCodeForRun(err) == 3 {
		// Summary-level failures already printed their report; everything
		// else still needs a message.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitCodeForRun(err)
}

// dirForCommand keeps remote runs executing in the local working directory;
// --dir only points at where the local definition lives.
func dirForCommand() string {
	if cfg.Source.From != "" {
		return ""
	}
	return cfg.Source.Dir
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&cfg.Source.Dir, flags.FlagDir, ".", "Project directory holding the matrix definition")
	runCmd.Flags().StringVar(&cfg.Source.From, flags.FlagFrom, "", "Fetch the matrix definition from a GitHub repository (OWNER/REPO)")
	runCmd.Flags().StringVar(&cfg.Source.Ref, flags.FlagRef, "", "Branch, tag, or commit for --from (default: default branch)")

	runCmd.Flags().StringVar(&cfg.Execution.Command, flags.FlagCommand, "", "Test command to run per row (default: the definition's script, else \""+workflowgen.DefaultScript+"\")")
	runCmd.Flags().StringVar(&cfg.Execution.Runtime, flags.FlagRuntime, "", "Active runtime version override (default: discovered from MATRIXCI_RUNTIME or the version manager)")
	runCmd.Flags().StringVar(&cfg.Execution.ManagerTool, flags.FlagManager, "rvm", "Version-manager executable used for alias listings")
	runCmd.Flags().BoolVar(&cfg.Execution.Validate, flags.FlagValidate, false, "Validate every row's manifest before running")

	runCmd.Flags().BoolVar(&cfg.Output.Silent, flags.FlagSilent, false, "Suppress the report (outcomes still decide the exit code)")
	runCmd.Flags().BoolVar(&cfg.Output.NoColor, flags.FlagNoColor, false, "Disable ANSI colors in the report")
}
