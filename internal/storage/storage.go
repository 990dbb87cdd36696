package storage

import (
	"context"
	"time"

	"github.com/dshills/cmakedox/pkg/types"
)

// Storage defines the interface for the conversion manifest
type Storage interface {
	// Conversion operations
	UpsertConversion(ctx context.Context, conv *Conversion) error
	GetConversion(ctx context.Context, inputPath string) (*Conversion, error)
	ListConversions(ctx context.Context) ([]*Conversion, error)
	DeleteConversion(ctx context.Context, inputPath string) error

	// Status operations
	GetStatus(ctx context.Context) (*Status, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Conversion records the last conversion of one script
type Conversion struct {
	ID          int64
	InputPath   string // Absolute path of the script
	OutputPath  string
	GroupID     string
	ContentHash [32]byte
	IsPackage   bool
	Variables   int
	Callables   int
	ConvertedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status contains statistics about the manifest
type Status struct {
	FilesCount      int
	PackagesCount   int
	VariablesCount  int
	CallablesCount  int
	SchemaVersion   string
	LastConvertedAt time.Time
}

// FromConversionResult builds a manifest entry for a converted file
func FromConversionResult(r *types.ConversionResult, hash [32]byte) *Conversion {
	return &Conversion{
		InputPath:   r.InputPath,
		OutputPath:  r.OutputPath,
		GroupID:     r.GroupID,
		ContentHash: hash,
		IsPackage:   r.IsPackage,
		Variables:   r.Variables,
		Callables:   r.Callables,
	}
}

// ToConversionResult converts a manifest entry back to a skipped result
func (c *Conversion) ToConversionResult() *types.ConversionResult {
	return &types.ConversionResult{
		InputPath:  c.InputPath,
		OutputPath: c.OutputPath,
		GroupID:    c.GroupID,
		IsPackage:  c.IsPackage,
		Variables:  c.Variables,
		Callables:  c.Callables,
		Skipped:    true,
	}
}
