package util

import (
	"path/filepath"
	"strings"
)

// fileNameEscaper rewrites the characters that can't appear in a file name on any supported platform.
var fileNameEscaper = strings.NewReplacer("\x00", "%00", "\\", "%5C")

// EscapeFileName turns a Jenkins job name into a relative file path. The name is split on "/" (Jenkins
// folder separators) and each folder becomes a directory. Segments are kept as they are, except that
// "." and ".." are encoded so the path can't leave its parent directory, and NUL and backslash are
// percent-encoded. Empty segments are dropped.
func EscapeFileName(path string) string {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		switch part {
		case "":
			continue
		case ".", "..":
			part = strings.ReplaceAll(part, ".", "%2E")
		default:
			part = fileNameEscaper.Replace(part)
		}
		parts = append(parts, part)
	}
	return filepath.Join(parts...)
}
