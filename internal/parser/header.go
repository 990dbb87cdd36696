package parser

import (
	"strings"

	"github.com/dshills/cmakedox/pkg/types"
)

// ExtractLeadingComments returns the comment block at the top of the file
// with comment markers removed, one line per comment, or "" when the file
// does not start with comments.
func ExtractLeadingComments(text string) string {
	return strings.Join(leadingComments(text), "\n")
}

// leadingComments collects the header block. Blank lines are allowed only
// before the first real comment; decorative lines never end the block.
func leadingComments(text string) []string {
	var block []string
	started := false

	for _, line := range ClassifyLines(text) {
		switch line.Kind {
		case types.LineBlank:
			if started {
				return block
			}
		case types.LineDecorative:
			continue
		case types.LineComment:
			started = true
			block = append(block, ExtractCommentText(line.Text))
		default:
			return block
		}
	}

	return block
}
