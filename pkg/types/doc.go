// Package types provides shared type definitions for cmakedox.
//
// This package defines the domain types passed between the parser, the
// assembler, the converter and the MCP server.
//
// # Core Types
//
// Line is one classified line of a CMake script. Lines are classified once
// and the scanners work on the classification:
//
//	types.LineBlank       // empty or whitespace only
//	types.LineComment     // '# text'
//	types.LineDecorative  // '#-----', '#=====', '#####', '#'
//	types.LineOther       // anything else
//
// DeclarationMatch couples a Declaration with the unbroken run of comment
// lines directly above it:
//
//	match := types.DeclarationMatch{
//	    Comments:    []types.CommentLine{{Raw: "# Enable X", Text: "Enable X"}},
//	    Declaration: types.Declaration{Kind: types.KindSet, Name: "ENABLE_X"},
//	}
//
// OutputRecord is the Doxygen form of a match:
//
//	/// @def ENABLE_X
//	/// Enable X
//	#define ENABLE_X
//
// ConversionResult summarizes one converted file.
package types
