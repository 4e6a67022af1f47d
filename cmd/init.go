package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/bomb/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default settings",
	Long: `Creates the configuration file given by --config
(or .bomb.yaml in the current folder) filled with default settings.

An existing file is never overwritten.`,
	Args: cobra.NoArgs,
	// Configuration is not loaded: it may be invalid or about to be created.
	PersistentPreRun: func(*cobra.Command, []string) {},
	Run: func(cmd *cobra.Command, _ []string) {
		app.ExecuteInitCommand(cmd.Context(), configFilenameFromFlag)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(initCmd)
}
