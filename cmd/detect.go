package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/bomb/internal/app"
	"github.com/oshokin/bomb/internal/logger"
)

var (
	//nolint:gochecknoglobals // Cobra flag storage.
	detectShowAll bool

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	detectCmd = &cobra.Command{
		Use:   "detect {paths}",
		Short: "Report byte-order marks without changing files",
		Long: `Prints 'path: family' for every file that starts with a byte-order mark.

Use --all to list files without a mark as well.`,
		Args:             cobra.MinimumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, paths []string) {
			if !app.ExecuteDetectCommand(cmd.Context(), appConfig, paths, detectShowAll, cmd.OutOrStdout()) {
				logger.Fatal(cmd.Context(), "Some files could not be read")
			}
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	detectCmd.Flags().BoolVarP(&detectShowAll, "all", "a", false, "also list files without a byte-order mark.")

	rootCmd.AddCommand(detectCmd)
}
