package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/bomb/internal/app"
	"github.com/oshokin/bomb/internal/config"
	"github.com/oshokin/bomb/internal/logger"
	"github.com/oshokin/bomb/internal/utils"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals // It is required to read input paths from a file before the command runs.
	pathsFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "bomb [flags] {paths}",
		Short: "Strip byte-order marks from text files.",
		Long: `bomb removes leading byte-order marks (BOMs) from files.
It recognizes the signatures of:
- UTF-8
- UTF-16 (big and little endian)
- UTF-32 (big and little endian)

Paths may be files, folders (processed recursively) or glob patterns such as 'src/**/*.csv'.
Files are rewritten in place unless an output folder is given.`,
		Args:             cobra.ArbitraryArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			paths, err := collectPaths(args, pathsFilenameFromFlag)
			if err != nil {
				logger.Fatalf(cmd.Context(), "Failed to read paths: %v", err)
			}

			if len(paths) == 0 {
				_ = cmd.Usage()

				logger.Fatal(cmd.Context(), "No paths given")
			}

			if !app.ExecuteRootCommand(cmd.Context(), appConfig, paths) {
				logger.Fatal(cmd.Context(), "Some files could not be processed")
			}
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	persistentFlags := rootCmd.PersistentFlags()

	persistentFlags.StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	persistentFlags.String(
		"log-level",
		"",
		"logging level: debug, info, warn, error.")

	persistentFlags.Int64P(
		"concurrency",
		"j",
		0,
		"number of files processed simultaneously.")

	persistentFlags.StringSliceP(
		"include",
		"i",
		nil,
		"only process files matching these patterns, for example: '**/*.csv'.")

	persistentFlags.StringSliceP(
		"exclude",
		"x",
		nil,
		"skip files matching these patterns, for example: 'vendor/**'.")

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"directory to write stripped files to (files are rewritten in place if omitted).")

	rootCmdFlags.BoolP(
		"dry-run",
		"n",
		false,
		"report files that would be stripped without changing anything.")

	rootCmdFlags.StringVarP(
		&pathsFilenameFromFlag,
		"from-file",
		"f",
		"",
		"read paths from a file, one per line.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if flag := flags.Lookup("concurrency"); flag != nil && flag.Changed {
		cfg.MaxConcurrentFiles, _ = flags.GetInt64("concurrency")
	}

	if flag := flags.Lookup("include"); flag != nil && flag.Changed {
		cfg.IncludePatterns, _ = flags.GetStringSlice("include")
	}

	if flag := flags.Lookup("exclude"); flag != nil && flag.Changed {
		cfg.ExcludePatterns, _ = flags.GetStringSlice("exclude")
	}

	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("dry-run"); flag != nil && flag.Changed {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}

	return config.ValidateConfig(cfg)
}

// collectPaths merges the positional arguments with the paths listed in pathsFilename.
func collectPaths(args []string, pathsFilename string) ([]string, error) {
	if pathsFilename == "" {
		return args, nil
	}

	paths, err := utils.ReadUniqueLinesFromFile(pathsFilename)
	if err != nil {
		return nil, err
	}

	return utils.Deduplicate(append(append([]string{}, args...), paths...)), nil
}
