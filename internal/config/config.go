package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/bomb/internal/constants"
	"github.com/oshokin/bomb/internal/logger"
	"github.com/oshokin/bomb/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// OutputPath is the directory stripped copies are written to.
	// Empty means files are rewritten in place.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	// DryRun reports what would be stripped without writing anything.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
	// MaxConcurrentFiles is the maximum number of files processed simultaneously.
	MaxConcurrentFiles int64 `mapstructure:"max_concurrent_files" yaml:"max_concurrent_files"`
	// MaxFileSize is the largest file that is read (e.g., "64MB"). Empty or "0" disables the limit.
	MaxFileSize string `mapstructure:"max_file_size" yaml:"max_file_size"`
	// IncludePatterns are doublestar patterns a file must match to be processed.
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`
	// ExcludePatterns are doublestar patterns that exclude a file from processing.
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
	// WatchDebounce is the quiet period after a change before a watched file is processed.
	WatchDebounce string `mapstructure:"watch_debounce" yaml:"watch_debounce"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `yaml:"-"`
	// ParsedMaxFileSize is the parsed file size limit in bytes, 0 means unlimited.
	ParsedMaxFileSize int64 `yaml:"-"`
	// ParsedWatchDebounce is the parsed watch debounce duration.
	ParsedWatchDebounce time.Duration `yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".bomb.yaml"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultMaxConcurrentFiles is the default number of files processed simultaneously.
	DefaultMaxConcurrentFiles = 4

	// DefaultMaxFileSize is the default upper bound for the size of processed files.
	DefaultMaxFileSize = "64MB"

	// DefaultWatchDebounce is the default quiet period for watched files.
	DefaultWatchDebounce = "200ms"

	// DefaultIncludePattern matches every file.
	DefaultIncludePattern = "**"
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidConcurrentFiles indicates that the concurrent files count is invalid.
	ErrInvalidConcurrentFiles = errors.New("max concurrent files must be a positive integer")
	// ErrInvalidPattern indicates that an include or exclude pattern is malformed.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidWatchDebounce indicates that the watch debounce duration is invalid.
	ErrInvalidWatchDebounce = errors.New("watch_debounce must not be negative")
	// ErrConfigExists indicates that the configuration file is already present.
	ErrConfigExists = errors.New("config file already exists")
)

// DefaultConfig returns the settings used when no configuration file is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:           DefaultLogLevel,
		MaxConcurrentFiles: DefaultMaxConcurrentFiles,
		MaxFileSize:        DefaultMaxFileSize,
		IncludePatterns:    []string{DefaultIncludePattern},
		ExcludePatterns:    []string{".git/**", "**/.git/**"},
		WatchDebounce:      DefaultWatchDebounce,
	}
}

// LoadConfig loads configuration settings from a YAML file.
// A missing default file is not an error: defaults are used instead.
// A missing file that was requested explicitly is.
func LoadConfig(configFilename string) (*Config, error) {
	isExplicit := configFilename != ""
	if !isExplicit {
		configFilename = DefaultConfigFilename
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configFilename)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if isExplicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("output_path", defaults.OutputPath)
	v.SetDefault("dry_run", defaults.DryRun)
	v.SetDefault("max_concurrent_files", defaults.MaxConcurrentFiles)
	v.SetDefault("max_file_size", defaults.MaxFileSize)
	v.SetDefault("include_patterns", defaults.IncludePatterns)
	v.SetDefault("exclude_patterns", defaults.ExcludePatterns)
	v.SetDefault("watch_debounce", defaults.WatchDebounce)
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if cfg.MaxConcurrentFiles <= 0 {
		return ErrInvalidConcurrentFiles
	}

	cfg.ParsedMaxFileSize = 0

	maxFileSize := strings.TrimSpace(cfg.MaxFileSize)
	if maxFileSize != "" && maxFileSize != "0" {
		parsedMaxFileSize, err := humanize.ParseBytes(maxFileSize)
		if err != nil {
			return fmt.Errorf("failed to parse max file size: %w", err)
		}

		// os.FileInfo.Size is an int64, so the limit is compared as one.
		cfg.ParsedMaxFileSize = utils.SafeUint64ToInt64(parsedMaxFileSize)
	}

	if len(cfg.IncludePatterns) == 0 {
		cfg.IncludePatterns = []string{DefaultIncludePattern}
	}

	for _, pattern := range append(append([]string{}, cfg.IncludePatterns...), cfg.ExcludePatterns...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
		}
	}

	cfg.ParsedWatchDebounce = 0

	if strings.TrimSpace(cfg.WatchDebounce) != "" {
		parsedWatchDebounce, err := time.ParseDuration(strings.TrimSpace(cfg.WatchDebounce))
		if err != nil {
			return fmt.Errorf("failed to parse watch debounce: %w", err)
		}

		if parsedWatchDebounce < 0 {
			return ErrInvalidWatchDebounce
		}

		cfg.ParsedWatchDebounce = parsedWatchDebounce
	}

	return nil
}

// WriteDefaultConfig writes the default configuration to a new YAML file.
// An existing file is never overwritten.
func WriteDefaultConfig(configFilename string) error {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	isExist, err := utils.IsFileExist(configFilename)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if isExist {
		return fmt.Errorf("%w: %s", ErrConfigExists, configFilename)
	}

	content, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFilename, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
