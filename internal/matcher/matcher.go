// Package matcher implements the keyword filter applied to every source
// line. An empty keyword set matches everything; otherwise a line matches
// when it contains at least one keyword, case-insensitively.
package matcher

import "strings"

// KeywordSet is an ordered list of case-insensitive substrings to search
// for in each line. The zero value (empty set) matches every line.
type KeywordSet struct {
	keywords []string
}

// Parse builds a KeywordSet from a comma-separated list. Blank entries
// are dropped; a blank input yields the empty set (no filtering).
func Parse(s string) KeywordSet {
	var keywords []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			keywords = append(keywords, strings.ToLower(trimmed))
		}
	}
	return KeywordSet{keywords: keywords}
}

// New builds a KeywordSet from already-separated keywords. Blank entries
// are dropped.
func New(keywords []string) KeywordSet {
	var kws []string
	for _, kw := range keywords {
		trimmed := strings.TrimSpace(kw)
		if trimmed != "" {
			kws = append(kws, strings.ToLower(trimmed))
		}
	}
	return KeywordSet{keywords: kws}
}

// Empty reports whether the set contains no keywords.
func (k KeywordSet) Empty() bool {
	return len(k.keywords) == 0
}

// Len returns the number of keywords in the set.
func (k KeywordSet) Len() int {
	return len(k.keywords)
}

// Keywords returns the normalized (lowercased, trimmed) keywords in order.
func (k KeywordSet) Keywords() []string {
	return append([]string(nil), k.keywords...)
}

// Matches reports whether line passes the filter: true when the set is
// empty, otherwise true iff the lowercased line contains at least one
// keyword.
func (k KeywordSet) Matches(line string) bool {
	if len(k.keywords) == 0 {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range k.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
