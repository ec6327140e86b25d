package cli

import (
	"context"
	"fmt"
	"os"

	"matrixci/internal/flags"
	"matrixci/internal/workflowgen"

	"github.com/spf13/cobra"
)

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a workflow definition file from the matrix",
	Long: `Generate a workflow-automation YAML file mirroring the matrix definition:
one job with an explicit include entry per row, each step binding the row's
manifest and runtime for the test command.

Examples:
  # Print the workflow to stdout
  matrixci generate

  # Write it where the workflow loader will find it
  matrixci generate --out .github/workflows/matrix.yml
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		def, err := loadDefinition(context.Background(), cfg)
		if err != nil {
			return err
		}

		script := cfg.Execution.Command
		if script == "" {
			script = def.Script
		}

		if generateOut == "" {
			return workflowgen.Write(cmd.OutOrStdout(), def.Rows, script)
		}

		f, err := os.Create(generateOut)
		if err != nil {
			return err
		}
		if err := workflowgen.Write(f, def.Rows, script); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", generateOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&cfg.Source.Dir, flags.FlagDir, ".", "Project directory holding the matrix definition")
	generateCmd.Flags().StringVar(&cfg.Execution.Command, flags.FlagCommand, "", "Test command to embed in the workflow (default: the definition's script)")
	generateCmd.Flags().StringVar(&generateOut, flags.FlagOut, "", "Write the workflow to this path instead of stdout")
}
