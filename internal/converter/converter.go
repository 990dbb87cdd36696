package converter

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/cmakedox/internal/assembler"
	"github.com/dshills/cmakedox/internal/storage"
	"github.com/dshills/cmakedox/pkg/types"
)

// DefaultSuffix is appended to the input file name to name the output
const DefaultSuffix = ".h"

// ErrNoInputs reports that no input named a script
var ErrNoInputs = errors.New("no input files")

// Converter coordinates the conversion pipeline: expand -> convert -> record
type Converter struct {
	assembler *assembler.Assembler
	storage   storage.Storage // Optional manifest for incremental runs
	logger    *log.Logger
}

// Config contains configuration for a conversion run
type Config struct {
	OutputDir string // Output directory, created if missing (default: next to each input)
	Suffix    string // Output file suffix (default: ".h")
	Workers   int    // Number of concurrent workers (default: runtime.NumCPU())
	Force     bool   // Convert even when the manifest says the input is unchanged
}

// Statistics contains statistics about a conversion run
type Statistics struct {
	FilesConverted int
	FilesSkipped   int
	Variables      int
	Callables      int
	Duration       time.Duration

	// Results in input order
	Results []*types.ConversionResult
}

// outcome is the result of one file plus the hash recorded in the manifest
type outcome struct {
	result *types.ConversionResult
	hash   [32]byte
}

// New creates a new Converter. store may be nil to disable incremental runs.
func New(store storage.Storage, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Converter{
		assembler: assembler.New(),
		storage:   store,
		logger:    logger,
	}
}

// normalize fills in defaults
func (cfg *Config) normalize() *Config {
	out := Config{}
	if cfg != nil {
		out = *cfg
	}
	if out.Suffix == "" {
		out.Suffix = DefaultSuffix
	}
	if out.Workers <= 0 {
		out.Workers = runtime.NumCPU()
	}
	return &out
}

// OutputPath returns where the conversion of inputPath is written
func (cfg *Config) OutputPath(inputPath string) string {
	c := cfg.normalize()
	dir := c.OutputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, filepath.Base(inputPath)+c.Suffix)
}

// ConvertText converts script content without touching the filesystem
func (c *Converter) ConvertText(text, fileName string) (string, *types.ConversionResult, error) {
	return c.assembler.AssembleString(text, filepath.Base(fileName))
}

// Convert writes the conversion of a script file to w
func (c *Converter) Convert(w io.Writer, inputPath string) (*types.ConversionResult, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	result, err := c.assembler.Assemble(w, string(content), filepath.Base(inputPath))
	if err != nil {
		return nil, err
	}
	result.InputPath = inputPath
	return result, nil
}

// ConvertAll expands the inputs and converts every script
// found. Outputs are complete on disk when it returns.
func (c *Converter) ConvertAll(ctx context.Context, inputs []string, config *Config) (*Statistics, error) {
	cfg := config.normalize()
	startTime := time.Now()

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	files := c.filterOutputs(ExpandInputs(inputs), cfg)
	c.logger.Debug("expanded inputs", "inputs", len(inputs), "files", len(files))

	known, err := c.loadManifest(ctx, cfg)
	if err != nil {
		return nil, err
	}

	outcomes, err := c.convertFiles(ctx, files, known, cfg)
	if err != nil {
		return nil, err
	}

	if err := c.recordManifest(ctx, outcomes); err != nil {
		return nil, err
	}

	stats := &Statistics{
		Results:  make([]*types.ConversionResult, 0, len(outcomes)),
		Duration: time.Since(startTime),
	}
	for _, o := range outcomes {
		if o.result.Skipped {
			stats.FilesSkipped++
		} else {
			stats.FilesConverted++
		}
		stats.Variables += o.result.Variables
		stats.Callables += o.result.Callables
		stats.Results = append(stats.Results, o.result)
	}

	return stats, nil
}

// filterOutputs drops files that are themselves generated outputs, so that
// converting a directory twice does not produce 'X.cmake.h.h'. Each drop is
// reported because an input named on the command line may be one of them.
func (c *Converter) filterOutputs(files []string, cfg *Config) []string {
	kept := files[:0:0]
	for _, f := range files {
		if strings.HasSuffix(f, cfg.Suffix) {
			c.logger.Info("skipping input with the output suffix", "path", f, "suffix", cfg.Suffix)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// loadManifest returns the manifest entries keyed by absolute input path
func (c *Converter) loadManifest(ctx context.Context, cfg *Config) (map[string]*storage.Conversion, error) {
	known := make(map[string]*storage.Conversion)
	if c.storage == nil || cfg.Force {
		return known, nil
	}

	convs, err := c.storage.ListConversions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	for _, conv := range convs {
		known[conv.InputPath] = conv
	}
	return known, nil
}

// outputGroups partitions file indexes by output path, keeping input order
// inside each group. Inputs sharing an output must never be written at once.
func outputGroups(files []string, cfg *Config) [][]int {
	var groups [][]int
	byOutput := make(map[string]int)

	for i, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		out := cfg.OutputPath(abs)

		g, ok := byOutput[out]
		if !ok {
			g = len(groups)
			byOutput[out] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// convertFiles converts files concurrently; any failure cancels the rest.
// Each output path is owned by one worker, which converts its inputs in
// order so the last input wins.
func (c *Converter) convertFiles(ctx context.Context, files []string, known map[string]*storage.Conversion, cfg *Config) ([]outcome, error) {
	outcomes := make([]outcome, len(files))

	// Create worker pool with semaphore
	semaphore := make(chan struct{}, cfg.Workers)
	var done int32

	g, gctx := errgroup.WithContext(ctx)
	for _, group := range outputGroups(files, cfg) {
		if len(group) > 1 {
			c.logger.Warn("inputs share an output file, the last one wins",
				"output", cfg.OutputPath(files[group[0]]), "inputs", len(group))
		}

		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case semaphore <- struct{}{}:
				// Acquire semaphore
			}
			defer func() { <-semaphore }()

			// Once an earlier input rewrote the output, later ones must too
			rewritten := false
			for _, i := range group {
				if err := gctx.Err(); err != nil {
					return err
				}

				o, err := c.convertFile(files[i], known, cfg, rewritten)
				if err != nil {
					return err
				}
				outcomes[i] = o
				rewritten = rewritten || !o.result.Skipped

				n := atomic.AddInt32(&done, 1)
				c.logger.Debug("converted", "input", files[i], "output", o.result.OutputPath,
					"skipped", o.result.Skipped, "records", o.result.Records(),
					"progress", fmt.Sprintf("%d/%d", n, len(files)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// ConvertFile converts a single script and writes its output
func (c *Converter) ConvertFile(ctx context.Context, inputPath string, config *Config) (*types.ConversionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o, err := c.convertFile(inputPath, nil, config.normalize(), true)
	if err != nil {
		return nil, err
	}
	return o.result, nil
}

// convertFile converts one file unless the manifest shows it unchanged and
// force is false
func (c *Converter) convertFile(inputPath string, known map[string]*storage.Conversion, cfg *Config, force bool) (outcome, error) {
	absPath, err := filepath.Abs(inputPath)
	if err != nil {
		return outcome{}, err
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return outcome{}, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	hash := sha256.Sum256(content)
	outputPath := cfg.OutputPath(absPath)

	if prev, ok := known[absPath]; ok && !force && unchanged(prev, hash, outputPath) {
		return outcome{result: prev.ToConversionResult(), hash: hash}, nil
	}

	result, err := c.writeOutput(outputPath, string(content), filepath.Base(absPath))
	if err != nil {
		return outcome{}, err
	}
	result.InputPath = absPath
	result.OutputPath = outputPath

	return outcome{result: result, hash: hash}, nil
}

// unchanged reports whether a previous conversion can be reused
func unchanged(prev *storage.Conversion, hash [32]byte, outputPath string) bool {
	if prev.ContentHash != hash || prev.OutputPath != outputPath {
		return false
	}
	_, err := os.Stat(outputPath)
	return err == nil
}

func (c *Converter) writeOutput(outputPath, content, fileName string) (result *types.ConversionResult, err error) {
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", outputPath, cerr)
		}
	}()

	result, err = c.assembler.Assemble(f, content, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return result, nil
}

// recordManifest stores the converted files in one transaction
func (c *Converter) recordManifest(ctx context.Context, outcomes []outcome) error {
	if c.storage == nil {
		return nil
	}

	tx, err := c.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, o := range outcomes {
		if o.result.Skipped {
			continue
		}
		if err := tx.UpsertConversion(ctx, storage.FromConversionResult(o.result, o.hash)); err != nil {
			return fmt.Errorf("failed to record %s: %w", o.result.InputPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
