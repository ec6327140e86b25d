package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "matrixci",
	Short: "Run a test suite once per entry of a compatibility matrix",
	Long: `matrixci runs a test command once per entry of a compatibility matrix — a set
of (runtime version, dependency manifest) pairs — skipping entries whose runtime
does not match the one actually active, and reporting a pass/fail/skip summary.

It lets a single CI job exercise multiple dependency-manifest configurations
without needing one physical runtime per configuration. matrixci never installs
or switches runtime versions itself; it only decides whether a row's required
version matches the active one.

Examples:
	# Show available commands and global flags
	matrixci --help

	# Run the matrix defined in the current directory
	matrixci run

	# Show the matrix rows and their compatibility
	matrixci list

	# Print build info
	matrixci version`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Output.Verbose, "verbose", false, "Enable verbose diagnostics (prints every GitHub API call when fetching remote definitions)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
