package assembler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cmakedox/pkg/types"
)

func TestAssemble_Golden(t *testing.T) {
	tests := []struct {
		script    string
		variables int
		callables int
		isPackage bool
	}{
		{"Helpers.cmake", 2, 2, false},
		{"FindWidgets.cmake", 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("testdata", tt.script))
			require.NoError(t, err)
			want, err := os.ReadFile(filepath.Join("testdata", tt.script+".h"))
			require.NoError(t, err)

			got, result, err := New().AssembleString(string(content), tt.script)
			require.NoError(t, err)

			if diff := cmp.Diff(string(want), got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.variables, result.Variables)
			assert.Equal(t, tt.callables, result.Callables)
			assert.Equal(t, tt.isPackage, result.IsPackage)
			assert.Equal(t, strings.TrimSuffix(tt.script, ".cmake"), result.GroupID)
		})
	}
}

func TestAssemble_NoHeader(t *testing.T) {
	got, _, err := New().AssembleString("function(foo a b)\n", "Plain.cmake")
	require.NoError(t, err)

	want := `/*!
  @defgroup Plain Plain

  Generated from Plain.cmake
 */
/*! @addtogroup Plain
  @{
*/
/// @def foo(a b)
#define foo(a b)

/*! @} */
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_VariablesBeforeCallables(t *testing.T) {
	content := "# Fn.\nfunction(first)\n\n# Var.\nset(SECOND 1)\n"
	got, _, err := New().AssembleString(content, "Order.cmake")
	require.NoError(t, err)

	varPos := strings.Index(got, "#define SECOND")
	fnPos := strings.Index(got, "#define first()")
	require.NotEqual(t, -1, varPos)
	require.NotEqual(t, -1, fnPos)
	assert.Less(t, varPos, fnPos)
}

func TestAssemble_EmptyFileName(t *testing.T) {
	_, _, err := New().AssembleString("", "")
	assert.ErrorIs(t, err, types.ErrEmptyFileName)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestAssemble_WriteError(t *testing.T) {
	_, err := New().Assemble(failingWriter{}, "# Enable X\nset(ENABLE_X NO)\n", "X.cmake")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestGroupID(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"FindWidgets.cmake", "FindWidgets"},
		{"Helpers.cmake", "Helpers"},
		{"CMakeLists.txt", "CMakeLists"},
		{"toolchain.arm.cmake", "toolchain.arm"},
		{"NoExtension", "NoExtension"},
		{".cmake-format", ".cmake-format"},
		{"dir/Sub.cmake", "Sub"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupID(tt.fileName))
		})
	}
}

func TestIsPackageGroup(t *testing.T) {
	assert.True(t, IsPackageGroup("FindWidgets"))
	assert.True(t, IsPackageGroup("Find"))
	assert.False(t, IsPackageGroup("findWidgets"))
	assert.False(t, IsPackageGroup("Widgets"))
	assert.False(t, IsPackageGroup("UseFind"))
}
