// Package locator finds the resume point in a record file. A marker is
// the exact trimmed text of the last non-blank line a previous run wrote;
// scanning forward past it lets a new run continue where the old one
// stopped.
package locator

import (
	"bufio"
	"strings"

	"github.com/f4ah6o/domainsplit-go/internal/textio"
)

// FindAndSkip advances sc past the first line whose trimmed text equals
// the trimmed marker. It returns true with the scanner positioned just
// after the matched line, which is consumed and excluded from further
// processing. An empty marker means no skipping was requested and the
// scanner is not moved. If the stream ends without a match it returns
// false with the stream fully consumed; callers must treat that as "no
// lines processed" and end the pass cleanly.
func FindAndSkip(sc *bufio.Scanner, marker string) bool {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return true
	}
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == marker {
			return true
		}
	}
	return false
}

// LastNonBlankLine returns the trimmed text of the last non-blank line of
// the file at path. The second return is false when the file does not
// exist, cannot be read, or contains only blank lines.
func LastNonBlankLine(path string) (string, bool) {
	src, err := textio.Open(path)
	if err != nil {
		return "", false
	}
	defer src.Close()

	var last string
	var found bool
	for src.Scan() {
		if text := strings.TrimSpace(src.Text()); text != "" {
			last = text
			found = true
		}
	}
	return last, found
}
