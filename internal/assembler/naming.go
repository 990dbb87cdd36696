package assembler

import (
	"path/filepath"
	"strings"
)

// PackagesGroup is the Doxygen group that collects find-package modules
const PackagesGroup = "Packages"

// findModulePrefix marks CMake find-package scripts (FindZLIB.cmake, ...)
const findModulePrefix = "Find"

// GroupID derives the Doxygen group identifier from a script's file name by
// dropping its last extension. Leading dots do not start an extension, so
// ".cmake-format" stays as is.
func GroupID(fileName string) string {
	base := filepath.Base(fileName)
	stem := strings.TrimLeft(base, ".")
	ext := filepath.Ext(stem)
	return base[:len(base)-len(ext)]
}

// IsPackageGroup reports whether a group belongs under the Packages group.
// The match is case-sensitive: "findHelpers" is an ordinary script.
func IsPackageGroup(groupID string) bool {
	return strings.HasPrefix(groupID, findModulePrefix)
}
