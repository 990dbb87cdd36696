package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory so no stray .env or config
// file is picked up
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("output", "o", "", "")
	fs.String("suffix", DefaultSuffix, "")
	fs.Int("workers", 0, "")
	fs.Bool("force", false, "")
	fs.String("manifest", "", "")
	fs.StringP("generate", "g", "", "")
	fs.BoolP("verbose", "v", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, DefaultSuffix, cfg.Suffix)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, DefaultDoxygen, cfg.Doxygen)
	assert.Empty(t, cfg.OutputDir)
	assert.False(t, cfg.Incremental())
	assert.False(t, cfg.Generate())
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("CMAKEDOX_OUTPUT_DIR", "docs/gen")
	t.Setenv("CMAKEDOX_WORKERS", "3")
	t.Setenv("CMAKEDOX_DOXYGEN", "/opt/doxygen/bin/doxygen")
	t.Setenv("CMAKEDOX_FORCE", "true")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "docs/gen", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "/opt/doxygen/bin/doxygen", cfg.Doxygen)
	assert.True(t, cfg.Force)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CMAKEDOX_MANIFEST=state.db\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("CMAKEDOX_MANIFEST") })

	cfg, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "state.db", cfg.Manifest)
	assert.True(t, cfg.Incremental())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cmakedox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("suffix: .dox\nworkers: 2\ndoxyfile: Doxyfile\n"), 0644))

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, ".dox", cfg.Suffix)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Generate())
}

func TestLoad_DiscoveredConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cmakedox.yaml"), []byte("output_dir: out\n"), 0644))

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(dir, "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_FlagsOverride(t *testing.T) {
	isolate(t)
	t.Setenv("CMAKEDOX_OUTPUT_DIR", "from-env")
	t.Setenv("CMAKEDOX_SUFFIX", ".env.h")

	cfg, err := Load(LoadOptions{Flags: newFlags(t, "-o", "from-flag", "-g", "Doxyfile", "-v")})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.OutputDir)
	assert.Equal(t, "Doxyfile", cfg.Doxyfile)
	assert.True(t, cfg.Verbose)

	// Unset flags do not mask the environment
	assert.Equal(t, ".env.h", cfg.Suffix)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"negative workers", map[string]string{"CMAKEDOX_WORKERS": "-1"}, ErrInvalidWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(LoadOptions{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Suffix = ""
	assert.ErrorIs(t, cfg.Validate(), ErrEmptySuffix)

	cfg = Default()
	cfg.Workers = -4
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidWorkers)
}
