package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Conversion operations

const conversionColumns = `id, input_path, output_path, group_id, content_hash, is_package,
		       variables, callables, converted_at, created_at, updated_at`

// upsertConversionWithQuerier is the internal implementation that uses a querier
func upsertConversionWithQuerier(ctx context.Context, q querier, conv *Conversion) error {
	query := `
		INSERT INTO conversions (input_path, output_path, group_id, content_hash, is_package,
		                         variables, callables, converted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(input_path) DO UPDATE SET
			output_path = excluded.output_path,
			group_id = excluded.group_id,
			content_hash = excluded.content_hash,
			is_package = excluded.is_package,
			variables = excluded.variables,
			callables = excluded.callables,
			converted_at = excluded.converted_at,
			updated_at = excluded.updated_at
		RETURNING id
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query,
		conv.InputPath, conv.OutputPath, conv.GroupID, conv.ContentHash[:], conv.IsPackage,
		conv.Variables, conv.Callables, now, now, now).Scan(&conv.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert conversion: %w", err)
	}

	conv.ConvertedAt = now
	conv.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpsertConversion(ctx context.Context, conv *Conversion) error {
	return upsertConversionWithQuerier(ctx, s.querier(), conv)
}

// scanner is implemented by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanConversion(row scanner) (*Conversion, error) {
	var conv Conversion
	var hash []byte
	err := row.Scan(
		&conv.ID, &conv.InputPath, &conv.OutputPath, &conv.GroupID, &hash, &conv.IsPackage,
		&conv.Variables, &conv.Callables, &conv.ConvertedAt, &conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	copy(conv.ContentHash[:], hash)
	return &conv, nil
}

// getConversionWithQuerier is the internal implementation that uses a querier
func getConversionWithQuerier(ctx context.Context, q querier, inputPath string) (*Conversion, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions WHERE input_path = ?`
	conv, err := scanConversion(q.QueryRowContext(ctx, query, inputPath))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *SQLiteStorage) GetConversion(ctx context.Context, inputPath string) (*Conversion, error) {
	return getConversionWithQuerier(ctx, s.querier(), inputPath)
}

// listConversionsWithQuerier is the internal implementation that uses a querier
func listConversionsWithQuerier(ctx context.Context, q querier) ([]*Conversion, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions ORDER BY input_path`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var convs []*Conversion
	for rows.Next() {
		conv, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

func (s *SQLiteStorage) ListConversions(ctx context.Context) ([]*Conversion, error) {
	return listConversionsWithQuerier(ctx, s.querier())
}

// deleteConversionWithQuerier is the internal implementation that uses a querier
func deleteConversionWithQuerier(ctx context.Context, q querier, inputPath string) error {
	result, err := q.ExecContext(ctx, "DELETE FROM conversions WHERE input_path = ?", inputPath)
	if err != nil {
		return fmt.Errorf("failed to delete conversion: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) DeleteConversion(ctx context.Context, inputPath string) error {
	return deleteConversionWithQuerier(ctx, s.querier(), inputPath)
}

// Status operations

// getStatusWithQuerier is the internal implementation that uses a querier
func getStatusWithQuerier(ctx context.Context, q querier) (*Status, error) {
	status := &Status{}

	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(is_package), 0),
		       COALESCE(SUM(variables), 0),
		       COALESCE(SUM(callables), 0)
		FROM conversions
	`).Scan(&status.FilesCount, &status.PackagesCount, &status.VariablesCount, &status.CallablesCount)
	if err != nil {
		return nil, err
	}

	// Select the column itself so the driver keeps its TIMESTAMP type
	var last sql.NullTime
	err = q.QueryRowContext(ctx, "SELECT converted_at FROM conversions ORDER BY converted_at DESC LIMIT 1").Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if last.Valid {
		status.LastConvertedAt = last.Time
	}

	err = q.QueryRowContext(ctx, "SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&status.SchemaVersion)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	return status, nil
}

func (s *SQLiteStorage) GetStatus(ctx context.Context) (*Status, error) {
	return getStatusWithQuerier(ctx, s.querier())
}

// Transaction operations

func (t *sqliteTx) UpsertConversion(ctx context.Context, conv *Conversion) error {
	return upsertConversionWithQuerier(ctx, t.querier(), conv)
}

func (t *sqliteTx) GetConversion(ctx context.Context, inputPath string) (*Conversion, error) {
	return getConversionWithQuerier(ctx, t.querier(), inputPath)
}

func (t *sqliteTx) ListConversions(ctx context.Context) ([]*Conversion, error) {
	return listConversionsWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) DeleteConversion(ctx context.Context, inputPath string) error {
	return deleteConversionWithQuerier(ctx, t.querier(), inputPath)
}

func (t *sqliteTx) GetStatus(ctx context.Context) (*Status, error) {
	return getStatusWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the underlying connection
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	// SQLite does not support true nested transactions
	return nil, errors.New("nested transactions not supported")
}
