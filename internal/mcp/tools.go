package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/cmakedox/internal/converter"
)

// MCP error codes
const (
	ErrorCodeInvalidParams        = -32602 // Invalid method parameters
	ErrorCodeInternalError        = -32603 // Internal JSON-RPC error
	ErrorCodeNoInputs             = -32001 // No script matched the given paths
	ErrorCodeConversionInProgress = -32002 // Another conversion writes to the same destination
)

// handleConvertScript handles the convert_script tool invocation
func (s *Server) handleConvertScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Extract and validate parameters
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	// Empty content is valid and yields an empty group
	content, ok := args["content"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "content parameter is required", map[string]interface{}{
			"param":  "content",
			"reason": "missing or not a string",
		})
	}

	fileName, ok := args["file_name"].(string)
	if !ok || fileName == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "file_name parameter is required", map[string]interface{}{
			"param":  "file_name",
			"reason": "missing or empty",
		})
	}

	key := cacheKey(fileName, content)
	if cached, ok := s.cache.get(key); ok {
		s.logger.Debug("conversion cache hit", "file_name", fileName, "records", cached.result.Records())
		return mcp.NewToolResultText(cached.text), nil
	}

	text, result, err := s.converter.ConvertText(content, fileName)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "conversion failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	s.cache.add(key, &cachedConversion{text: text, result: *result})

	return mcp.NewToolResultText(text), nil
}

// handleConvertPaths handles the convert_paths tool invocation
func (s *Server) handleConvertPaths(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	paths, err := getStringSlice(args, "paths")
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid paths", map[string]interface{}{
			"param":  "paths",
			"reason": err.Error(),
		})
	}

	outputDir := getStringDefault(args, "output_dir", "")
	if outputDir != "" {
		if err := validatePath(outputDir); err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid output_dir", map[string]interface{}{
				"param":  "output_dir",
				"reason": err.Error(),
			})
		}
	}

	// An empty destination locks in-place runs against each other
	if !s.locks.TryAcquire(outputDir) {
		return nil, newMCPError(ErrorCodeConversionInProgress, "conversion already in progress", map[string]interface{}{
			"output_dir": outputDir,
		})
	}
	defer s.locks.Release(outputDir)

	stats, err := s.converter.ConvertAll(ctx, paths, &converter.Config{
		OutputDir: outputDir,
		Force:     getBoolDefault(args, "force", false),
	})
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "conversion failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if len(stats.Results) == 0 {
		return nil, newMCPError(ErrorCodeNoInputs, converter.ErrNoInputs.Error(), map[string]interface{}{
			"paths": paths,
		})
	}

	outputs := make([]string, 0, len(stats.Results))
	for _, r := range stats.Results {
		outputs = append(outputs, r.OutputPath)
	}

	response := map[string]interface{}{
		"files_converted": stats.FilesConverted,
		"files_skipped":   stats.FilesSkipped,
		"variables":       stats.Variables,
		"callables":       stats.Callables,
		"outputs":         outputs,
		"duration_ms":     stats.Duration.Milliseconds(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.storage.GetStatus(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	lastConverted := ""
	if !status.LastConvertedAt.IsZero() {
		lastConverted = status.LastConvertedAt.Format(time.RFC3339)
	}

	response := map[string]interface{}{
		"converted": status.FilesCount > 0,
		"statistics": map[string]interface{}{
			"files_count":     status.FilesCount,
			"packages_count":  status.PackagesCount,
			"variables_count": status.VariablesCount,
			"callables_count": status.CallablesCount,
		},
		"last_converted_at": lastConverted,
		"schema_version":    status.SchemaVersion,
		"cached_scripts":    s.cache.size(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks that a client supplied path is absolute. Existence is
// not required: paths may be glob patterns.
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}
	return nil
}

// getStringSlice extracts a non-empty list of absolute paths
func getStringSlice(args map[string]interface{}, key string) ([]string, error) {
	raw, ok := args[key].([]interface{})
	if !ok {
		if typed, ok := args[key].([]string); ok {
			raw = make([]interface{}, len(typed))
			for i, v := range typed {
				raw[i] = v
			}
		} else {
			return nil, ErrPathRequired
		}
	}
	if len(raw) == 0 {
		return nil, ErrPathRequired
	}

	paths := make([]string, 0, len(raw))
	for _, item := range raw {
		path, ok := item.(string)
		if !ok {
			return nil, ErrPathNotString
		}
		if err := validatePath(path); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotString   = errors.New("path must be a string")
)
