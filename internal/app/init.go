package app

import (
	"context"

	"github.com/oshokin/bomb/internal/config"
	"github.com/oshokin/bomb/internal/logger"
)

// ExecuteInitCommand writes a configuration file with default settings.
func ExecuteInitCommand(ctx context.Context, configFilename string) {
	if configFilename == "" {
		configFilename = config.DefaultConfigFilename
	}

	if err := config.WriteDefaultConfig(configFilename); err != nil {
		logger.Fatalf(ctx, "Failed to write configuration: %v", err)

		return
	}

	logger.Infof(ctx, "Configuration written to '%s'", configFilename)
}
