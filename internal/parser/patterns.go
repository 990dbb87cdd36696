package parser

import (
	"strings"
	"unicode"

	"github.com/dshills/cmakedox/pkg/types"
)

// Pattern recognizes one shape of declaration line
type Pattern interface {
	// Match parses a declaration line
	Match(line string) (types.Declaration, bool)

	// RequiresComments reports whether undocumented declarations are ignored
	RequiresComments() bool
}

var (
	// Callables matches function() and macro() headers, documented or not
	Callables Pattern = callablePattern{}

	// Variables matches documented, unindented set(), option() and
	// make_option() statements
	Variables Pattern = variablePattern{}
)

// PatternFor returns the pattern that recognizes declarations of kind
func PatternFor(kind types.DeclarationKind) (Pattern, bool) {
	switch {
	case kind.IsCallable():
		return Callables, true
	case kind.IsVariable():
		return Variables, true
	default:
		return nil, false
	}
}

type callablePattern struct{}

func (callablePattern) RequiresComments() bool { return false }

// Match accepts '[ \t]*function|macro[ \t]*([ \t]*NAME[ \t]*PARAMS)'.
// PARAMS runs to the last ')' on the line. Block closers such as
// endfunction() and endmacro() are rejected.
func (callablePattern) Match(line string) (types.Declaration, bool) {
	s := strings.TrimLeft(line, " \t")
	if hasFoldPrefix(s, "end") {
		return types.Declaration{}, false
	}

	kind, args, ok := cutCall(s, types.KindFunction, types.KindMacro)
	if !ok {
		return types.Declaration{}, false
	}

	end := strings.LastIndexByte(args, ')')
	if end < 0 {
		return types.Declaration{}, false
	}
	body := strings.TrimLeft(args[:end], " \t")

	name := body
	if i := strings.IndexFunc(body, unicode.IsSpace); i >= 0 {
		name = body[:i]
	}
	if name == "" {
		return types.Declaration{}, false
	}

	return types.Declaration{
		Kind:   kind,
		Name:   name,
		Params: strings.TrimLeft(body[len(name):], " \t"),
		Line:   line,
	}, true
}

type variablePattern struct{}

func (variablePattern) RequiresComments() bool { return true }

// Match accepts 'set|option|make_option[ \t]*([ \t]*IDENT ...)' starting at
// column zero. Indented statements belong to function bodies and are skipped.
func (variablePattern) Match(line string) (types.Declaration, bool) {
	kind, args, ok := cutCall(line, types.KindMakeOption, types.KindOption, types.KindSet)
	if !ok {
		return types.Declaration{}, false
	}

	args = strings.TrimLeft(args, " \t")
	n := identifierLen(args)
	if n == 0 {
		return types.Declaration{}, false
	}
	if !strings.Contains(args[n:], ")") {
		return types.Declaration{}, false
	}

	return types.Declaration{
		Kind: kind,
		Name: args[:n],
		Line: line,
	}, true
}

// cutCall matches one of the keywords (ignoring case) followed by optional
// blanks and '('. It returns the text after the parenthesis.
func cutCall(s string, keywords ...types.DeclarationKind) (types.DeclarationKind, string, bool) {
	for _, kw := range keywords {
		if !hasFoldPrefix(s, string(kw)) {
			continue
		}
		rest := strings.TrimLeft(s[len(kw):], " \t")
		if strings.HasPrefix(rest, "(") {
			return kw, rest[1:], true
		}
	}
	return "", "", false
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// identifierLen returns the length of the [_a-zA-Z][_a-zA-Z0-9]* prefix of s
func identifierLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return i
		}
	}
	return len(s)
}
