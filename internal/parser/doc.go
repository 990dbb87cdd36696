// Package parser extracts documentation comments from CMake scripts.
//
// The parser does not understand CMake. It classifies every line once
// (blank, comment, decorative comment, other) and recognizes declarations by
// their surface shape, pairing each one with the unbroken run of comment
// lines directly above it.
//
// # Basic Usage
//
//	p := parser.New()
//	result := p.Parse(content)
//
//	for _, rec := range result.Callables {
//	    fmt.Println(rec.Tag())
//	}
//
// # Declarations
//
// Two patterns are scanned independently:
//
//	parser.Callables  // function(NAME ARGS...) and macro(NAME ARGS...), any indentation
//	parser.Variables  // set(NAME ...), option(NAME ...), make_option(NAME ...) at column 0
//
// Keywords are matched without regard to case. Callables are reported even
// without comments; variables only when at least one comment line precedes
// them.
//
// # Comment Association
//
// A declaration owns the comment lines immediately above it. A blank line or
// any other statement breaks the run:
//
//	# Not attached.
//
//	# Attached.
//	function(do_thing x)
//
// Decorative separators ('#----', '#====', '####', a bare '#') keep the run
// going but never appear in the documentation:
//
//	#=====
//	# Does a thing.
//	#=====
//	function(do_thing x)   // -> "function: Does a thing."
//
// # Records
//
// BuildRecord turns a match into a types.OutputRecord. The first
// documentation line carries the kind prefix ("function: ", "macro: ",
// "option: "); set() variables carry none.
package parser
