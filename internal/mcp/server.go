package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/cmakedox/internal/converter"
	"github.com/dshills/cmakedox/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "cmakedox"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default directory for the manifest database
	DefaultDBPath = "~/.cmakedox"
	// manifestFile is the database file inside the manifest directory
	manifestFile = "manifest.db"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	storage   storage.Storage
	converter *converter.Converter
	cache     *conversionCache
	locks     *converter.RunLocks
	logger    *log.Logger
}

// expandHome resolves a leading '~' to the user's home directory
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// NewServer creates a new MCP server instance. dbPath is the directory
// holding the manifest database; empty means DefaultDBPath.
func NewServer(dbPath string, logger *log.Logger) (*Server, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	dir, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	store, err := storage.NewSQLiteStorage(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:       mcpServer,
		storage:   store,
		converter: converter.New(store, logger),
		cache:     newConversionCache(DefaultCacheSize),
		locks:     converter.NewRunLocks(),
		logger:    logger,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	s.logger.Info("serving on stdio", "name", ServerName, "version", ServerVersion)
	return server.ServeStdio(s.mcp)
}

// Close releases the manifest database
func (s *Server) Close() error {
	return s.storage.Close()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(convertScriptTool(), s.handleConvertScript)
	s.mcp.AddTool(convertPathsTool(), s.handleConvertPaths)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
