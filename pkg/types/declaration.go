package types

import "errors"

// DeclarationKind is the keyword that introduced a declaration
type DeclarationKind string

const (
	KindFunction   DeclarationKind = "function"
	KindMacro      DeclarationKind = "macro"
	KindSet        DeclarationKind = "set"
	KindOption     DeclarationKind = "option"
	KindMakeOption DeclarationKind = "make_option"
)

// IsCallable returns true for function and macro declarations
func (k DeclarationKind) IsCallable() bool {
	return k == KindFunction || k == KindMacro
}

// IsVariable returns true for set, option and make_option declarations
func (k DeclarationKind) IsVariable() bool {
	return k == KindSet || k == KindOption || k == KindMakeOption
}

// DocPrefix is the tag placed in front of the first documentation line
func (k DeclarationKind) DocPrefix() string {
	switch k {
	case KindFunction:
		return "function: "
	case KindMacro:
		return "macro: "
	case KindOption, KindMakeOption:
		return "option: "
	default:
		return ""
	}
}

// Validate checks that the kind is one of the known keywords
func (k DeclarationKind) Validate() error {
	if k.IsCallable() || k.IsVariable() {
		return nil
	}
	return errors.New("invalid declaration kind")
}

// Declaration is a recognized declaration line
type Declaration struct {
	Kind   DeclarationKind
	Name   string
	Params string // Raw parameter text, callables only
	Line   string // The declaration line as found in the source
}

// Signature returns the name used for the documentation tag and stub
func (d *Declaration) Signature() string {
	if d.Kind.IsCallable() {
		return d.Name + "(" + d.Params + ")"
	}
	return d.Name
}

// Validate performs basic validation of the declaration
func (d *Declaration) Validate() error {
	if d.Name == "" {
		return errors.New("declaration name is required")
	}
	if err := d.Kind.Validate(); err != nil {
		return err
	}
	if !d.Kind.IsCallable() && d.Params != "" {
		return errors.New("only callables carry parameters")
	}
	return nil
}

// DeclarationMatch is a run of comment lines immediately followed by one
// declaration line
type DeclarationMatch struct {
	Comments    []CommentLine
	Declaration Declaration
	LineNumber  int // 1-based line of the declaration
}

// Documented reports whether at least one comment line precedes the declaration
func (m *DeclarationMatch) Documented() bool {
	return len(m.Comments) > 0
}
