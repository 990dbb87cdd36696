// Package config loads cmakedox settings.
//
// Values come from, in increasing order of precedence: built-in defaults, a
// config file (.cmakedox.yaml, .cmakedox.toml, ... in the working directory,
// or the file passed with --config), CMAKEDOX_* environment variables
// (a .env file is loaded first) and command line flags.
//
//	CMAKEDOX_OUTPUT_DIR   output directory
//	CMAKEDOX_SUFFIX       output suffix (default ".h")
//	CMAKEDOX_WORKERS      concurrent conversions (default: number of CPUs)
//	CMAKEDOX_MANIFEST     SQLite manifest for incremental runs
//	CMAKEDOX_DOXYGEN      doxygen executable (default "doxygen")
//	CMAKEDOX_DOXYFILE     run doxygen with this Doxyfile after converting
//	CMAKEDOX_DB_DIR       manifest directory of the MCP server
//	CMAKEDOX_VERBOSE      debug logging
package config
