package types

// LineKind classifies a single line of a CMake script
type LineKind int

const (
	// LineBlank is an empty or whitespace-only line
	LineBlank LineKind = iota
	// LineComment is a '#' comment carrying text
	LineComment
	// LineDecorative is a separator comment such as '#-----' or an empty '#'
	LineDecorative
	// LineOther is anything else, including declarations
	LineOther
)

// String returns a readable name for the kind
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineDecorative:
		return "decorative"
	default:
		return "other"
	}
}

// IsComment reports whether the line starts with a comment marker,
// decorative or not
func (k LineKind) IsComment() bool {
	return k == LineComment || k == LineDecorative
}

// Line is one physical line of a script
type Line struct {
	Number int    // 1-based
	Text   string // Line content without the line terminator
	Kind   LineKind
}

// CommentLine is a comment attached to a declaration
type CommentLine struct {
	Raw        string // Original line
	Text       string // Content with marker and one following whitespace removed
	Decorative bool
}
