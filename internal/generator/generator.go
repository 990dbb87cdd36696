package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultExecutable is the documentation generator looked up on PATH
const DefaultExecutable = "doxygen"

// ErrGeneratorNotFound is returned when the generator cannot be executed
var ErrGeneratorNotFound = errors.New("documentation generator not found")

// Runner invokes an external documentation generator
type Runner struct {
	Executable string
	Stdout     io.Writer
	Stderr     io.Writer

	logger *log.Logger
}

// New creates a Runner for executable, falling back to DefaultExecutable.
// Generator output is forwarded to the process stdout and stderr.
func New(executable string, logger *log.Logger) *Runner {
	if executable == "" {
		executable = DefaultExecutable
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Executable: executable,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		logger:     logger,
	}
}

// Check verifies that the generator can be started by asking for its version
func (r *Runner) Check(ctx context.Context) error {
	cmd := r.command(ctx, "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrGeneratorNotFound, r.Executable, err)
	}
	return nil
}

// Run executes the generator on doxyfile from workDir (empty means the
// current directory). A non-zero exit is logged and not returned: only a
// generator that cannot be started is an error.
func (r *Runner) Run(ctx context.Context, doxyfile, workDir string) error {
	absDoxyfile, err := filepath.Abs(doxyfile)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", doxyfile, err)
	}

	cmd := r.command(ctx, absDoxyfile)
	cmd.Dir = workDir

	r.logger.Info("running generator", "executable", r.Executable, "doxyfile", absDoxyfile, "dir", workDir)

	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		r.logger.Warn("generator failed", "executable", r.Executable, "exit_code", exitErr.ExitCode())
		return nil
	default:
		return fmt.Errorf("%w: %s: %v", ErrGeneratorNotFound, r.Executable, err)
	}
}

func (r *Runner) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, r.Executable, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd
}
