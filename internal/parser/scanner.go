package parser

import (
	"github.com/dshills/cmakedox/pkg/types"
)

// ScanDeclarations finds every declaration recognized by pattern together
// with the unbroken run of comment lines directly above it.
//
// Comment lines, decorative ones included, extend the pending run. Blank
// and unrelated lines clear it. Matches are returned in file order.
func ScanDeclarations(text string, pattern Pattern) []types.DeclarationMatch {
	matches := make([]types.DeclarationMatch, 0)
	var pending []types.CommentLine

	for _, line := range ClassifyLines(text) {
		if line.Kind.IsComment() {
			pending = append(pending, toCommentLine(line))
			continue
		}

		if line.Kind == types.LineOther {
			decl, ok := pattern.Match(line.Text)
			if ok && (len(pending) > 0 || !pattern.RequiresComments()) {
				matches = append(matches, types.DeclarationMatch{
					Comments:    pending,
					Declaration: decl,
					LineNumber:  line.Number,
				})
			}
		}

		pending = nil
	}

	return matches
}
