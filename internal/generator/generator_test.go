package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator writes a shell script that prints its arguments and working
// directory, then exits with the given status
func fakeGenerator(t *testing.T, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	path := filepath.Join(t.TempDir(), "fake-doxygen")
	script := "#!/bin/sh\necho \"args: $*\"\necho \"dir: $(pwd)\"\nexit " + strconv.Itoa(exitCode) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func newTestRunner(executable string) (*Runner, *bytes.Buffer) {
	r := New(executable, nil)
	var out bytes.Buffer
	r.Stdout = &out
	r.Stderr = &out
	return r, &out
}

func TestNew_Default(t *testing.T) {
	r := New("", nil)
	assert.Equal(t, DefaultExecutable, r.Executable)
	assert.NotNil(t, r.logger)
}

func TestCheck(t *testing.T) {
	r, out := newTestRunner(fakeGenerator(t, 0))

	require.NoError(t, r.Check(context.Background()))
	assert.Contains(t, out.String(), "args: --version")
}

func TestCheck_NotFound(t *testing.T) {
	r, _ := newTestRunner(filepath.Join(t.TempDir(), "no-such-generator"))

	err := r.Check(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneratorNotFound)
}

func TestCheck_NonZeroExit(t *testing.T) {
	r, _ := newTestRunner(fakeGenerator(t, 3))

	assert.ErrorIs(t, r.Check(context.Background()), ErrGeneratorNotFound)
}

func TestRun(t *testing.T) {
	r, out := newTestRunner(fakeGenerator(t, 0))
	workDir := t.TempDir()

	require.NoError(t, r.Run(context.Background(), "Doxyfile", workDir))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "args: "+filepath.Join(cwd, "Doxyfile"))

	// pwd may resolve symlinks in the temp dir
	resolved, err := filepath.EvalSymlinks(workDir)
	require.NoError(t, err)
	dirLine := strings.TrimSpace(strings.SplitN(out.String(), "dir: ", 2)[1])
	assert.Contains(t, []string{workDir, resolved}, dirLine)
}

func TestRun_FailureIsNotFatal(t *testing.T) {
	r, _ := newTestRunner(fakeGenerator(t, 2))

	assert.NoError(t, r.Run(context.Background(), "Doxyfile", ""))
}

func TestRun_NotFound(t *testing.T) {
	r, _ := newTestRunner(filepath.Join(t.TempDir(), "no-such-generator"))

	assert.ErrorIs(t, r.Run(context.Background(), "Doxyfile", ""), ErrGeneratorNotFound)
}
