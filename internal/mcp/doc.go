// Package mcp implements the Model Context Protocol (MCP) server for cmakedox.
//
// The MCP server exposes three tools to AI coding assistants:
//   - convert_script: Convert script text sent by the client
//   - convert_paths: Convert scripts on disk and write header stubs
//   - get_status: Report manifest statistics from previous runs
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server is started via the serve command:
//
//	cmakedox serve
//
// It then listens on stdin for MCP protocol messages and writes responses
// to stdout. Logs go to stderr.
//
// # Tool: convert_script
//
//	Request:
//	{
//	  "name": "convert_script",
//	  "arguments": {
//	    "content": "# Enables X\nset(ENABLE_X ON)\n",
//	    "file_name": "Helpers.cmake"
//	  }
//	}
//
// The response is the Doxygen text. Conversions are cached in memory by file
// name and content.
//
// # Tool: convert_paths
//
//	Request:
//	{
//	  "name": "convert_paths",
//	  "arguments": {
//	    "paths": ["/src/cmake", "/src/cmake/modules/Find*.cmake"],
//	    "output_dir": "/src/build/doxygen",
//	    "force": false
//	  }
//	}
//
//	Response:
//	{
//	  "files_converted": 12,
//	  "files_skipped": 3,
//	  "variables": 40,
//	  "callables": 57,
//	  "outputs": ["/src/build/doxygen/Helpers.cmake.h", ...],
//	  "duration_ms": 31
//	}
//
// Paths must be absolute. Scripts unchanged since the last run are skipped
// unless force is set. Two runs writing to the same output directory are
// rejected with ErrorCodeConversionInProgress.
//
// # Tool: get_status
//
//	Response:
//	{
//	  "converted": true,
//	  "statistics": {"files_count": 15, "packages_count": 4, ...},
//	  "last_converted_at": "2025-01-10T14:02:11Z",
//	  "schema_version": "1.1.0",
//	  "cached_scripts": 2
//	}
//
// # Error Handling
//
// Handlers return *MCPError values carrying JSON-RPC style codes:
//   - -32602: Invalid parameters
//   - -32603: Internal error
//   - -32001: No script matched the given paths
//   - -32002: Conversion already in progress for the destination
package mcp
