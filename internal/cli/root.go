package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the conflictsweep command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "conflictsweep [flags]",
		Short: "Resolve device-suffixed sync conflict files",
		Long: `conflictsweep walks a synchronized folder and resolves the conflict copies
a sync client leaves behind, such as report-DESKTOP1.docx next to report.docx.
The newer file is kept under the original name and the older one is deleted.
Conflict copies without an original are reported, or deleted with --orphans.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Args:          cobra.NoArgs,
		RunE:          RunSweep,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(rootCmd)
	AddSweepFlags(rootCmd)

	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
