// Package report formats the end-of-run summary: a colored console
// report, JSON for scripting, and an optional YAML report file.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const (
	// ModeFilter names a single-pass filtering run.
	ModeFilter = "filter"
	// ModeSplit names a two-pass splitting run.
	ModeSplit = "split"
)

var (
	// ANSI colors for terminal output
	colorHeader  = color.New(color.FgHiMagenta, color.Bold)
	colorBold    = color.New(color.Bold)
	colorWarning = color.New(color.FgYellow)
)

// Summary is the machine-readable outcome of one run.
type Summary struct {
	Mode        string   `yaml:"mode" json:"mode"`
	Source      string   `yaml:"source" json:"source"`
	Marker      string   `yaml:"marker,omitempty" json:"marker,omitempty"`
	MarkerFound bool     `yaml:"marker_found" json:"marker_found"`
	Matched     int      `yaml:"matched" json:"matched"`
	Created     []string `yaml:"created,omitempty" json:"created,omitempty"`
	CapturePath string   `yaml:"capture_file,omitempty" json:"capture_file,omitempty"`
	Collected   int      `yaml:"collected" json:"collected"`
	Unlimited   bool     `yaml:"unlimited,omitempty" json:"unlimited,omitempty"`
}

// Print writes a human-readable summary to stdout.
func Print(s Summary) {
	switch s.Mode {
	case ModeSplit:
		colorHeader.Println("\n--- Splitting Complete ---")
	default:
		colorHeader.Println("\n--- Single-Pass Filtering Complete ---")
	}

	if !s.MarkerFound {
		colorWarning.Println("Marker not found. No lines processed.")
		return
	}

	fmt.Printf("Total matching lines: ")
	colorBold.Printf("%d\n", s.Matched)

	for _, path := range s.Created {
		fmt.Printf("Created: %s\n", path)
	}

	if s.CapturePath != "" {
		if s.Unlimited {
			fmt.Printf("Infinity file created: %s (unlimited mode: %d lines)\n", s.CapturePath, s.Collected)
		} else if s.Collected > 0 {
			fmt.Printf("Infinity file created: %s (collected %d lines)\n", s.CapturePath, s.Collected)
		}
	}
}

// WriteJSON encodes the summary to w with indentation.
func WriteJSON(w io.Writer, s Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

// WriteYAML writes the summary to a YAML file at path.
func WriteYAML(path string, s Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
