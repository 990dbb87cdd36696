package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// convertScriptTool returns the tool definition for convert_script
func convertScriptTool() mcp.Tool {
	return mcp.Tool{
		Name:        "convert_script",
		Description: "Convert the comments of a CMake script into a Doxygen C header stub",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Full text of the CMake script",
				},
				"file_name": map[string]interface{}{
					"type":        "string",
					"description": "Script file name, e.g. 'FindWidgets.cmake' (sets the Doxygen group)",
				},
			},
			Required: []string{"content", "file_name"},
		},
	}
}

// convertPathsTool returns the tool definition for convert_paths
func convertPathsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "convert_paths",
		Description: "Convert CMake scripts on disk and write one header stub per script",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"description": "Absolute file paths, directories or glob patterns",
					"items": map[string]interface{}{
						"type": "string",
					},
					"minItems": 1,
				},
				"output_dir": map[string]interface{}{
					"type":        "string",
					"description": "Absolute output directory (default: next to each script)",
				},
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, convert every script even when unchanged since the last run",
					"default":     false,
				},
			},
			Required: []string{"paths"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report what the conversion manifest knows about previous runs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
