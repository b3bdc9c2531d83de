// Package config loads a TOML job file describing one run: source file,
// resume point, split count, protocol, keywords, and infinity cap. A job
// file replaces the tool's command line flags for repeatable runs; flags
// still override individual values.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Job represents the structure of a job TOML file. Numeric-ish fields are
// kept as strings so that malformed input coerces to a default instead of
// failing the decode.
type Job struct {
	// Source is the record file to process.
	Source string `toml:"source"`
	// PreviousOutput is a prior output file whose last non-blank line
	// becomes the resume marker.
	PreviousOutput string `toml:"previous_output"`
	// Marker is an explicit resume marker; it takes precedence over
	// PreviousOutput.
	Marker string `toml:"marker"`
	// Files is the split file count; blank, zero, or malformed selects
	// single-pass filtering.
	Files string `toml:"files"`
	// Protocol is "http" or "https"; anything else falls back to https.
	Protocol string `toml:"protocol"`
	// Keywords filter lines; empty means no filtering.
	Keywords []string `toml:"keywords"`
	// Infinity is the capture cap: a positive integer, "i" for
	// unlimited, or blank/zero to disable.
	Infinity string `toml:"infinity"`
}

// Load decodes the job file at path.
func Load(path string) (Job, error) {
	var job Job
	if _, err := toml.DecodeFile(path, &job); err != nil {
		return Job{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return job, nil
}

// ParseFileCount coerces user input to a split file count. Blank, zero,
// negative, or non-numeric input yields 0, which selects single-pass
// mode. User-facing numbers are never hard-validated.
func ParseFileCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
