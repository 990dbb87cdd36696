package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by cmakedox
	EnvPrefix = "CMAKEDOX"

	// DefaultSuffix is appended to the script file name to name its output
	DefaultSuffix = ".h"

	// DefaultDoxygen is the doxygen executable looked up on PATH
	DefaultDoxygen = "doxygen"

	// configName is searched in the working directory when no file is given
	configName = ".cmakedox"
)

var (
	ErrInvalidWorkers = errors.New("workers must not be negative")
	ErrEmptySuffix    = errors.New("output suffix cannot be empty")
)

// Config holds everything a conversion run needs. It is built once and
// passed down explicitly.
type Config struct {
	OutputDir string `mapstructure:"output_dir"` // Empty writes next to each input
	Suffix    string `mapstructure:"suffix"`
	Workers   int    `mapstructure:"workers"`
	Force     bool   `mapstructure:"force"` // Ignore the manifest and convert everything

	Manifest string `mapstructure:"manifest"` // SQLite manifest path, empty disables incremental runs

	Doxygen  string `mapstructure:"doxygen"`  // Doxygen executable
	Doxyfile string `mapstructure:"doxyfile"` // Run doxygen with this file after converting

	DBDir string `mapstructure:"db_dir"` // Manifest directory of the MCP server

	Verbose bool `mapstructure:"verbose"`
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	ConfigFile string         // Explicit config file, must exist when set
	EnvFile    string         // .env file, ignored when missing
	Flags      *pflag.FlagSet // Command line flags override everything else
}

// flagKeys maps command line flag names to configuration keys
var flagKeys = map[string]string{
	"output":   "output_dir",
	"suffix":   "suffix",
	"workers":  "workers",
	"force":    "force",
	"manifest": "manifest",
	"doxygen":  "doxygen",
	"generate": "doxyfile",
	"verbose":  "verbose",
	"db-dir":   "db_dir",
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Suffix:  DefaultSuffix,
		Workers: runtime.NumCPU(),
		Doxygen: DefaultDoxygen,
	}
}

// Load merges defaults, the config file, the environment and flags, in
// increasing order of precedence
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	v := viper.New()

	defaults := Default()
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("suffix", defaults.Suffix)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("force", defaults.Force)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("doxygen", defaults.Doxygen)
	v.SetDefault("doxyfile", defaults.Doxyfile)
	v.SetDefault("db_dir", defaults.DBDir)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	if c.Suffix == "" {
		return ErrEmptySuffix
	}
	return nil
}

// Incremental reports whether a manifest is configured
func (c *Config) Incremental() bool {
	return c.Manifest != ""
}

// Generate reports whether doxygen runs after conversion
func (c *Config) Generate() bool {
	return c.Doxyfile != ""
}
