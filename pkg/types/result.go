package types

// ConversionResult describes the conversion of one script file
type ConversionResult struct {
	InputPath  string
	OutputPath string
	GroupID    string
	IsPackage  bool // Group nested in the Packages group

	Variables int
	Callables int

	// Skipped is set when an unchanged input was not converted again
	Skipped bool
}

// Records returns the total number of emitted records
func (r *ConversionResult) Records() int {
	return r.Variables + r.Callables
}
