package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/cmakedox/internal/mcp"
	"github.com/dshills/cmakedox/internal/storage"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the
convert_script, convert_paths and get_status tools.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// Log startup info to stderr (stdout reserved for MCP protocol)
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			logger.Info("starting", "version", version, "build_mode", storage.BuildMode, "driver", storage.DriverName)

			server, err := mcp.NewServer(cfg.DBDir, logger)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			if err := server.Serve(cmd.Context()); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().String("db-dir", mcp.DefaultDBPath, "directory of the conversion manifest")
	return cmd
}
