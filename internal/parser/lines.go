package parser

import (
	"strings"

	"github.com/dshills/cmakedox/pkg/types"
)

// ClassifyLines splits text into lines and classifies each one
func ClassifyLines(text string) []types.Line {
	raw := strings.Split(text, "\n")
	lines := make([]types.Line, 0, len(raw))
	for i, s := range raw {
		s = strings.TrimSuffix(s, "\r")
		lines = append(lines, types.Line{
			Number: i + 1,
			Text:   s,
			Kind:   classifyLine(s),
		})
	}
	return lines
}

func classifyLine(line string) types.LineKind {
	if strings.TrimSpace(line) == "" {
		return types.LineBlank
	}
	content, ok := commentContent(line)
	if !ok {
		return types.LineOther
	}
	if isDecorativeContent(content) {
		return types.LineDecorative
	}
	return types.LineComment
}

// commentContent returns what follows the '#' marker and at most one space
// or tab. ok is false when the line is not a comment.
func commentContent(line string) (string, bool) {
	s := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	s = s[1:]
	if s != "" && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	return s, true
}

// isDecorativeContent matches separator content: nothing, or only '#', '-'
// and '=' characters followed by optional trailing blanks
func isDecorativeContent(content string) bool {
	content = strings.TrimRight(content, " \t")
	for _, r := range content {
		if r != '#' && r != '-' && r != '=' {
			return false
		}
	}
	return true
}

// IsDecorative reports whether line is a separator comment such as
// '#-----', '# =====', '#####' or an empty '#'
func IsDecorative(line string) bool {
	return classifyLine(line) == types.LineDecorative
}

// ExtractCommentText strips the comment marker and one following space or
// tab. Non-comment lines yield an empty string.
func ExtractCommentText(line string) string {
	content, _ := commentContent(strings.TrimSuffix(line, "\r"))
	return content
}

func toCommentLine(line types.Line) types.CommentLine {
	return types.CommentLine{
		Raw:        line.Text,
		Text:       ExtractCommentText(line.Text),
		Decorative: line.Kind == types.LineDecorative,
	}
}
