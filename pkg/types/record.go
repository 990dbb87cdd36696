package types

// OutputRecord is the Doxygen form of a single declaration
type OutputRecord struct {
	Kind      DeclarationKind
	Name      string
	Signature string   // name(params) for callables, NAME for variables
	DocLines  []string // Documentation lines without the '///' marker
	Stub      string   // '#define <Signature>'
}

// IsEmpty reports whether the record was dropped during building
func (r *OutputRecord) IsEmpty() bool {
	return r.Signature == ""
}

// Tag returns the Doxygen tag line body
func (r *OutputRecord) Tag() string {
	return "@def " + r.Signature
}
