package converter

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandInputs resolves input arguments into script files. An input is a
// file, a directory (its immediate children, hidden entries excluded) or a
// glob pattern. Inputs that match nothing, directories and other non-regular
// entries are skipped silently. Order follows the inputs; duplicates are
// dropped.
func ExpandInputs(inputs []string) []string {
	var files []string
	seen := make(map[string]bool)

	for _, input := range inputs {
		for _, candidate := range expandInput(input) {
			if seen[candidate] || !isRegularFile(candidate) {
				continue
			}
			seen[candidate] = true
			files = append(files, candidate)
		}
	}

	return files
}

func expandInput(input string) []string {
	info, err := os.Stat(input)
	if err == nil {
		if info.IsDir() {
			return listDir(input)
		}
		return []string{input}
	}

	// Not an existing path: treat as a glob. Malformed patterns match nothing.
	matches, err := filepath.Glob(input)
	if err != nil {
		return nil
	}

	// Wildcards do not match hidden names unless the pattern itself starts
	// with a dot
	if isHidden(input) {
		return matches
	}
	visible := matches[:0]
	for _, m := range matches {
		if !isHidden(m) {
			visible = append(visible, m)
		}
	}
	return visible
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// listDir returns the non-hidden entries of dir in name order
func listDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if isHidden(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
