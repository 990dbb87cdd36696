package assembler

import (
	"bufio"
	"io"
	"strings"

	"github.com/dshills/cmakedox/internal/parser"
	"github.com/dshills/cmakedox/pkg/types"
)

// Assembler writes the Doxygen form of CMake scripts
type Assembler struct {
	parser *parser.Parser
}

// New creates a new Assembler instance
func New() *Assembler {
	return &Assembler{
		parser: parser.New(),
	}
}

// Assemble converts a script's content to a Doxygen-commented C header and
// writes it to w. fileName is the script's base name; it names the group and
// the provenance line.
func (a *Assembler) Assemble(w io.Writer, text, fileName string) (*types.ConversionResult, error) {
	if fileName == "" {
		return nil, types.ErrEmptyFileName
	}

	groupID := GroupID(fileName)
	result := &types.ConversionResult{
		GroupID:   groupID,
		IsPackage: IsPackageGroup(groupID),
	}

	parsed := a.parser.Parse(text)
	result.Variables = len(parsed.Variables)
	result.Callables = len(parsed.Callables)

	out := &groupWriter{w: bufio.NewWriter(w)}

	if result.IsPackage {
		out.openAddToGroup(PackagesGroup, " */")
	}

	out.line("/*!")
	out.line("  @defgroup " + groupID + " " + groupID)
	for _, line := range parsed.Header {
		out.line(line)
	}
	out.line("")
	out.line("  Generated from " + fileName)
	out.line(" */")

	out.openAddToGroup(groupID, "*/")

	for i := range parsed.Variables {
		out.record(&parsed.Variables[i])
	}
	for i := range parsed.Callables {
		out.record(&parsed.Callables[i])
	}

	out.closeGroup()
	if result.IsPackage {
		out.closeGroup()
	}

	if err := out.flush(); err != nil {
		return nil, err
	}
	return result, nil
}

// AssembleString is Assemble into a string
func (a *Assembler) AssembleString(text, fileName string) (string, *types.ConversionResult, error) {
	var sb strings.Builder
	result, err := a.Assemble(&sb, text, fileName)
	if err != nil {
		return "", nil, err
	}
	return sb.String(), result, nil
}

// groupWriter keeps the first write error and ignores later writes
type groupWriter struct {
	w   *bufio.Writer
	err error
}

func (g *groupWriter) line(s string) {
	if g.err != nil {
		return
	}
	if _, err := g.w.WriteString(s); err != nil {
		g.err = err
		return
	}
	g.err = g.w.WriteByte('\n')
}

func (g *groupWriter) openAddToGroup(name, closer string) {
	g.line("/*! @addtogroup " + name)
	g.line("  @{")
	g.line(closer)
}

func (g *groupWriter) closeGroup() {
	g.line("/*! @} */")
}

func (g *groupWriter) record(rec *types.OutputRecord) {
	g.line("/// " + rec.Tag())
	for _, doc := range rec.DocLines {
		g.line("/// " + doc)
	}
	g.line(rec.Stub)
	g.line("")
}

func (g *groupWriter) flush() error {
	if g.err != nil {
		return g.err
	}
	return g.w.Flush()
}
