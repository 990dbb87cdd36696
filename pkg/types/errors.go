package types

import "errors"

// Domain errors for conversion
var (
	ErrEmptyFileName = errors.New("file name is required")
)
