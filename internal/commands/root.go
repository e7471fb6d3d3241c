package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Parse, reconcile and summarize bank transaction exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newAmazonCommand())
	rootCmd.AddCommand(newLearnCommand())
	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportSummaryCommand())
	rootCmd.AddCommand(newLogCommand())

	return rootCmd
}
