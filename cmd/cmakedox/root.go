package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/cmakedox/internal/config"
	"github.com/dshills/cmakedox/internal/converter"
	"github.com/dshills/cmakedox/internal/generator"
	"github.com/dshills/cmakedox/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var errNoInputArgs = errors.New("requires at least one INPUT unless --generate is set")

// getVersionString reports the version and the SQLite build flavour
func getVersionString() string {
	return fmt.Sprintf("%s (built: %s, sqlite: %s/%s)", version, buildTime, storage.BuildMode, storage.DriverName)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmakedox [flags] INPUT...",
		Short: "Convert CMake script comments into Doxygen C header stubs",
		Long: `cmakedox scans CMake scripts for documented functions, macros, options
and variables and writes a Doxygen-friendly C header per script.

Each INPUT is a script, a directory (its scripts, not recursive) or a glob
pattern. Outputs are named after the script with the output suffix added,
e.g. 'FindWidgets.cmake' becomes 'FindWidgets.cmake.h'.

With --generate, doxygen runs from the output directory after converting.
INPUT may then be omitted to only rerun doxygen.`,
		Example: `  cmakedox -o build/doxygen cmake/
  cmakedox -g Doxyfile -o build/doxygen 'cmake/Find*.cmake'
  cmakedox filter cmake/Helpers.cmake`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default is ./.cmakedox.yaml)")

	cmd.Flags().StringP("generate", "g", "", "run doxygen with this Doxyfile after converting")
	cmd.Flags().StringP("output", "o", "", "output directory (default: next to each input)")
	cmd.Flags().String("suffix", config.DefaultSuffix, "output file suffix")
	cmd.Flags().Int("workers", 0, "concurrent conversions (default: number of CPUs)")
	cmd.Flags().String("manifest", "", "SQLite manifest enabling incremental runs")
	cmd.Flags().Bool("force", false, "convert every input even when unchanged")
	cmd.Flags().String("doxygen", config.DefaultDoxygen, "doxygen executable")

	cmd.AddCommand(newFilterCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// loadConfig reads the configuration with cmd's flags applied on top
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	return config.Load(config.LoadOptions{
		ConfigFile: cfgFile,
		Flags:      cmd.Flags(),
	})
}

// newLogger writes leveled logs to w, keeping stdout free for output
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "cmakedox",
		Level:  level,
	})
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 && !cfg.Generate() {
		return errNoInputArgs
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	// The generator is checked first so a missing doxygen fails before any
	// output is written
	var gen *generator.Runner
	if cfg.Generate() {
		gen = generator.New(cfg.Doxygen, logger)
		gen.Stdout = cmd.OutOrStdout()
		gen.Stderr = cmd.ErrOrStderr()
		if err := gen.Check(ctx); err != nil {
			logger.Error("doxygen is not available", "executable", cfg.Doxygen, "err", err)
			return &ExitError{Code: 1, Err: err}
		}
	}

	var store storage.Storage
	if cfg.Incremental() {
		sqlite, err := storage.NewSQLiteStorage(cfg.Manifest)
		if err != nil {
			return fmt.Errorf("failed to open manifest: %w", err)
		}
		defer func() { _ = sqlite.Close() }()
		store = sqlite
	}

	conv := converter.New(store, logger)
	stats, err := conv.ConvertAll(ctx, args, &converter.Config{
		OutputDir: cfg.OutputDir,
		Suffix:    cfg.Suffix,
		Workers:   cfg.Workers,
		Force:     cfg.Force,
	})
	if err != nil {
		return err
	}

	if len(args) > 0 && len(stats.Results) == 0 {
		logger.Warn("nothing to convert", "err", converter.ErrNoInputs, "inputs", args)
	} else {
		logger.Info("conversion complete",
			"converted", stats.FilesConverted,
			"skipped", stats.FilesSkipped,
			"variables", stats.Variables,
			"callables", stats.Callables,
			"duration", stats.Duration)
	}

	// Relative paths in the Doxyfile resolve against the output directory
	if gen != nil {
		if err := gen.Run(ctx, cfg.Doxyfile, cfg.OutputDir); err != nil {
			if errors.Is(err, generator.ErrGeneratorNotFound) {
				return &ExitError{Code: 1, Err: err}
			}
			return err
		}
	}

	return nil
}
