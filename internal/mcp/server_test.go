package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetsScript = `# Locate the Widgets library.

# Where Widgets was found
set(Widgets_DIR "")

macro(widgets_check VAR)
endmacro()
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	return out
}

func requireMCPError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, code, mcpErr.Code)
}

func TestNewServer(t *testing.T) {
	dir := t.TempDir()
	s, err := NewServer(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.mcp)
	assert.NotNil(t, s.converter)
	assert.NotNil(t, s.cache)
	assert.FileExists(t, filepath.Join(dir, manifestFile))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandHome("~/.cmakedox")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cmakedox"), got)

	got, err = expandHome("/var/lib/cmakedox")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/cmakedox", got)
}

func TestHandleConvertScript(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	req := callRequest("convert_script", map[string]interface{}{
		"content":   widgetsScript,
		"file_name": "FindWidgets.cmake",
	})

	result, err := s.handleConvertScript(ctx, req)
	require.NoError(t, err)
	text := resultText(t, result)

	assert.Contains(t, text, "/*! @addtogroup Packages\n  @{\n */\n")
	assert.Contains(t, text, "  @defgroup FindWidgets FindWidgets\n")
	assert.Contains(t, text, "/// @def Widgets_DIR\n/// Where Widgets was found\n#define Widgets_DIR\n")
	assert.Contains(t, text, "/// @def widgets_check(VAR)\n#define widgets_check(VAR)\n")
	assert.Equal(t, 1, s.cache.size())

	t.Run("cached result is identical", func(t *testing.T) {
		again, err := s.handleConvertScript(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, text, resultText(t, again))
		assert.Equal(t, 1, s.cache.size())
	})

	t.Run("file name is part of the cache key", func(t *testing.T) {
		other, err := s.handleConvertScript(ctx, callRequest("convert_script", map[string]interface{}{
			"content":   widgetsScript,
			"file_name": "Widgets.cmake",
		}))
		require.NoError(t, err)
		assert.NotContains(t, resultText(t, other), "@addtogroup Packages")
		assert.Equal(t, 2, s.cache.size())
	})
}

func TestHandleConvertScript_InvalidParams(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing content", map[string]interface{}{"file_name": "X.cmake"}},
		{"missing file name", map[string]interface{}{"content": "set(X 1)"}},
		{"empty file name", map[string]interface{}{"content": "", "file_name": ""}},
		{"wrong type", map[string]interface{}{"content": 42, "file_name": "X.cmake"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleConvertScript(context.Background(), callRequest("convert_script", tt.args))
			requireMCPError(t, err, ErrorCodeInvalidParams)
		})
	}
}

func TestHandleConvertPaths(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "FindWidgets.cmake"), []byte(widgetsScript), 0644))
	out := filepath.Join(t.TempDir(), "docs")

	req := callRequest("convert_paths", map[string]interface{}{
		"paths":      []interface{}{src},
		"output_dir": out,
	})

	result, err := s.handleConvertPaths(ctx, req)
	require.NoError(t, err)
	response := resultJSON(t, result)

	assert.Equal(t, float64(1), response["files_converted"])
	assert.Equal(t, float64(0), response["files_skipped"])
	assert.Equal(t, float64(1), response["variables"])
	assert.Equal(t, float64(1), response["callables"])
	assert.Equal(t, []interface{}{filepath.Join(out, "FindWidgets.cmake.h")}, response["outputs"])
	assert.FileExists(t, filepath.Join(out, "FindWidgets.cmake.h"))

	t.Run("second run is incremental", func(t *testing.T) {
		result, err := s.handleConvertPaths(ctx, req)
		require.NoError(t, err)
		response := resultJSON(t, result)
		assert.Equal(t, float64(0), response["files_converted"])
		assert.Equal(t, float64(1), response["files_skipped"])
	})

	t.Run("force", func(t *testing.T) {
		result, err := s.handleConvertPaths(ctx, callRequest("convert_paths", map[string]interface{}{
			"paths":      []interface{}{src},
			"output_dir": out,
			"force":      true,
		}))
		require.NoError(t, err)
		assert.Equal(t, float64(1), resultJSON(t, result)["files_converted"])
	})

	t.Run("status reflects the manifest", func(t *testing.T) {
		result, err := s.handleGetStatus(ctx, callRequest("get_status", nil))
		require.NoError(t, err)
		response := resultJSON(t, result)

		assert.Equal(t, true, response["converted"])
		stats := response["statistics"].(map[string]interface{})
		assert.Equal(t, float64(1), stats["files_count"])
		assert.Equal(t, float64(1), stats["packages_count"])
		assert.NotEmpty(t, response["last_converted_at"])
	})
}

func TestHandleConvertPaths_InvalidParams(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing paths", map[string]interface{}{}},
		{"empty paths", map[string]interface{}{"paths": []interface{}{}}},
		{"relative path", map[string]interface{}{"paths": []interface{}{"cmake/Helpers.cmake"}}},
		{"non-string path", map[string]interface{}{"paths": []interface{}{7}}},
		{"relative output dir", map[string]interface{}{"paths": []interface{}{"/tmp"}, "output_dir": "out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleConvertPaths(context.Background(), callRequest("convert_paths", tt.args))
			requireMCPError(t, err, ErrorCodeInvalidParams)
		})
	}
}

func TestHandleConvertPaths_NoInputs(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleConvertPaths(context.Background(), callRequest("convert_paths", map[string]interface{}{
		"paths": []interface{}{filepath.Join(t.TempDir(), "*.cmake")},
	}))
	requireMCPError(t, err, ErrorCodeNoInputs)
}

func TestHandleConvertPaths_InProgress(t *testing.T) {
	s := newTestServer(t)
	out := t.TempDir()

	require.True(t, s.locks.TryAcquire(out))
	defer s.locks.Release(out)

	_, err := s.handleConvertPaths(context.Background(), callRequest("convert_paths", map[string]interface{}{
		"paths":      []interface{}{t.TempDir()},
		"output_dir": out,
	}))
	requireMCPError(t, err, ErrorCodeConversionInProgress)
}

func TestHandleGetStatus_Empty(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGetStatus(context.Background(), callRequest("get_status", map[string]interface{}{}))
	require.NoError(t, err)
	response := resultJSON(t, result)

	assert.Equal(t, false, response["converted"])
	assert.Equal(t, "", response["last_converted_at"])
	assert.Equal(t, "1.1.0", response["schema_version"])
}

func TestToolDefinitions(t *testing.T) {
	tools := []mcp.Tool{convertScriptTool(), convertPathsTool(), getStatusTool()}
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type)
	}
	assert.Equal(t, []string{"convert_script", "convert_paths", "get_status"}, names)
	assert.Equal(t, []string{"content", "file_name"}, convertScriptTool().InputSchema.Required)
}
