package parser

import (
	"fmt"
	"os"

	"github.com/dshills/cmakedox/pkg/types"
)

// Parser extracts documentation from CMake scripts
type Parser struct{}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{}
}

// Parse extracts the header block, the documented variables and all
// callables from a script's content
func (p *Parser) Parse(text string) *types.ParseResult {
	return &types.ParseResult{
		Header:    leadingComments(text),
		Variables: BuildRecords(ScanDeclarations(text, Variables)),
		Callables: BuildRecords(ScanDeclarations(text, Callables)),
	}
}

// ParseFile reads and parses a script file
func (p *Parser) ParseFile(filePath string) (*types.ParseResult, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.Parse(string(content)), nil
}
