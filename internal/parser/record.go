package parser

import (
	"github.com/dshills/cmakedox/pkg/types"
)

// BuildRecord converts a scanner match into its Doxygen record. A
// declaration line that no longer parses yields an empty record.
func BuildRecord(match types.DeclarationMatch) types.OutputRecord {
	pattern, ok := PatternFor(match.Declaration.Kind)
	if !ok {
		return types.OutputRecord{}
	}
	decl, ok := pattern.Match(match.Declaration.Line)
	if !ok || decl.Kind != match.Declaration.Kind {
		return types.OutputRecord{}
	}

	record := types.OutputRecord{
		Kind:      decl.Kind,
		Name:      decl.Name,
		Signature: decl.Signature(),
		DocLines:  make([]string, 0, len(match.Comments)),
	}
	record.Stub = "#define " + record.Signature

	prefix := decl.Kind.DocPrefix()
	for _, comment := range match.Comments {
		if comment.Decorative {
			continue
		}
		record.DocLines = append(record.DocLines, prefix+comment.Text)
		prefix = ""
	}

	return record
}

// BuildRecords builds a record for every match, dropping empty ones
func BuildRecords(matches []types.DeclarationMatch) []types.OutputRecord {
	records := make([]types.OutputRecord, 0, len(matches))
	for _, m := range matches {
		record := BuildRecord(m)
		if record.IsEmpty() {
			continue
		}
		records = append(records, record)
	}
	return records
}
