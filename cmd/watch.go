package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/bomb/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var watchCmd = &cobra.Command{
	Use:   "watch {folders}",
	Short: "Strip byte-order marks from files as they change",
	Long: `Watches the given folders recursively and strips byte-order marks
from files that are created or modified, until interrupted.

Stripped files are always rewritten in place.`,
	Args:             cobra.MinimumNArgs(1),
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, dirs []string) {
		appConfig.OutputPath = ""

		app.ExecuteWatchCommand(cmd.Context(), appConfig, dirs)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	watchCmd.Flags().BoolP(
		"dry-run",
		"n",
		false,
		"report files that would be stripped without changing anything.")

	rootCmd.AddCommand(watchCmd)
}
