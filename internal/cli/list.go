package cli

import (
	"context"
	"fmt"
	"io"

	"matrixci/internal/flags"
	"matrixci/internal/matrix"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List matrix rows and their compatibility with the active runtime",
	Long: `List every row of the matrix definition together with the version it resolves
to through the alias listing and whether it would run on this machine.

Examples:
  matrixci list
  matrixci list --dir ../other-project
  matrixci list --runtime 3.2.9
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := context.Background()
		def, err := loadDefinition(ctx, cfg)
		if err != nil {
			return err
		}

		e := buildEnvironment(cfg)
		active, err := activeRuntime(cfg, e)
		if err != nil {
			return err
		}

		return printRows(cmd.OutOrStdout(), def.Rows, active, e.CurrentAliasListing())
	},
}

func printRows(w io.Writer, rows []*matrix.Row, active, aliasListing string) error {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Active runtime: %s\n", active)

	for _, row := range rows {
		compatible, err := row.IsCompatibleWith(active, aliasListing)
		if err != nil {
			return err
		}
		state := "skip"
		if compatible {
			state = "run"
		}
		if row.ResolvedVersion() != row.RequestedVersion {
			fmt.Fprintf(w, "%s  %s (resolves to %s)  [%s]\n", row.ManifestPath, row.RequestedVersion, row.ResolvedVersion(), state)
		} else {
			fmt.Fprintf(w, "%s  %s  [%s]\n", row.ManifestPath, row.RequestedVersion, state)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&cfg.Source.Dir, flags.FlagDir, ".", "Project directory holding the matrix definition")
	listCmd.Flags().StringVar(&cfg.Source.From, flags.FlagFrom, "", "Fetch the matrix definition from a GitHub repository (OWNER/REPO)")
	listCmd.Flags().StringVar(&cfg.Source.Ref, flags.FlagRef, "", "Branch, tag, or commit for --from")
	listCmd.Flags().StringVar(&cfg.Execution.Runtime, flags.FlagRuntime, "", "Active runtime version override")
	listCmd.Flags().StringVar(&cfg.Execution.ManagerTool, flags.FlagManager, "rvm", "Version-manager executable used for alias listings")
}
