package types

// ParseResult is everything extracted from one script
type ParseResult struct {
	// Header is the leading comment block, one extracted line per entry
	Header []string

	// Records in scan order
	Variables []OutputRecord
	Callables []OutputRecord
}

// HasHeader returns true if the script starts with a comment block
func (pr *ParseResult) HasHeader() bool {
	return len(pr.Header) > 0
}
