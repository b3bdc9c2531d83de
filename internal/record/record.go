// Package record defines the line and file conventions shared by the
// filtering and splitting passes: protocol normalization, the output line
// transform, and derivation of output file paths from the source path.
package record

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// ProtocolHTTP prefixes output lines with "http://".
	ProtocolHTTP = "http"
	// ProtocolHTTPS prefixes output lines with "https://".
	ProtocolHTTPS = "https"
)

// NormalizeProtocol coerces user input to a supported protocol.
// Anything other than "http" or "https" (case-insensitive) falls back
// to "https".
func NormalizeProtocol(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ProtocolHTTP:
		return ProtocolHTTP
	case ProtocolHTTPS:
		return ProtocolHTTPS
	default:
		return ProtocolHTTPS
	}
}

// Transform produces the output form of a source line: surrounding
// whitespace is trimmed and the protocol prefix applied. The trailing
// newline is added by the writer, not here.
func Transform(protocol, line string) string {
	return fmt.Sprintf("%s://%s", protocol, strings.TrimSpace(line))
}

// splitPath splits a path into stem and extension, so that
// stem + ext == path.
func splitPath(path string) (stem, ext string) {
	ext = filepath.Ext(path)
	return path[:len(path)-len(ext)], ext
}

// InfinityPath derives the auxiliary capture file path from the source
// path: "<stem>_infinity<ext>".
func InfinityPath(sourcePath string) string {
	stem, ext := splitPath(sourcePath)
	return stem + "_infinity" + ext
}

// SplitPath derives the nth split output file path from the source path:
// "<stem>_split_<n><ext>". Indices start at 1.
func SplitPath(sourcePath string, n int) string {
	stem, ext := splitPath(sourcePath)
	return fmt.Sprintf("%s_split_%d%s", stem, n, ext)
}
