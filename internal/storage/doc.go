// Package storage provides the SQLite manifest used for incremental
// conversion.
//
// Every converted script is recorded with the SHA-256 hash of its content
// and the output it produced. On the next run the converter compares hashes
// and skips scripts that did not change.
//
// # Database Schema
//
// Tables:
//   - schema_version: Applied migrations
//   - conversions: One row per script (input path, output path, group,
//     content hash, record counts, conversion time)
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStorage(".cmakedox/manifest.db")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	conv, err := store.GetConversion(ctx, "/src/cmake/Helpers.cmake")
//	if errors.Is(err, storage.ErrNotFound) {
//	    // never converted
//	}
//
// # Transactions
//
// The converter records a whole batch atomically:
//
//	tx, err := store.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer func() { _ = tx.Rollback() }()
//
//	for _, conv := range converted {
//	    if err := tx.UpsertConversion(ctx, conv); err != nil {
//	        return err
//	    }
//	}
//	return tx.Commit()
//
// # Build Modes
//
// The pure Go driver (modernc.org/sqlite) is the default. Build with
// -tags sqlite_cgo to use github.com/mattn/go-sqlite3 instead.
//
// # Migrations
//
// Migrations are ordered by semantic version and applied when the storage
// is opened. RollbackMigration reverts the most recent one.
package storage
