// Package filter implements the single-pass mode: one sequential scan of
// the source file that counts keyword matches and optionally mirrors them
// into a capped capture file. No primary filtered file is written in this
// mode; the run produces statistics and, when requested, the capture file
// only.
package filter

import (
	"fmt"
	"log"
	"strings"

	"github.com/f4ah6o/domainsplit-go/internal/capture"
	"github.com/f4ah6o/domainsplit-go/internal/locator"
	"github.com/f4ah6o/domainsplit-go/internal/matcher"
	"github.com/f4ah6o/domainsplit-go/internal/record"
	"github.com/f4ah6o/domainsplit-go/internal/textio"
)

// Options configures one single-pass run.
type Options struct {
	// SourcePath is the record file to scan.
	SourcePath string
	// Marker resumes the scan just after this line; blank scans from the top.
	Marker string
	// Protocol is prepended to every surviving line ("http" or "https").
	Protocol string
	// Keywords filters lines; the empty set keeps everything.
	Keywords matcher.KeywordSet
	// Cap bounds the capture file.
	Cap capture.Cap
}

// Stats reports the outcome of a single-pass run.
type Stats struct {
	// Matched counts lines that passed the keyword filter.
	Matched int
	// MarkerFound is false when the resume marker was never seen; in that
	// case no lines were processed.
	MarkerFound bool
	// Collected counts lines written to the capture file.
	Collected int
	// CapturePath is the capture file path, or "" when the capture was
	// disabled.
	CapturePath string
}

// Run executes the single-pass scan. A marker that is never found is a
// clean no-op, not an error: Stats.MarkerFound is false and every opened
// file has been closed.
func Run(opts Options) (Stats, error) {
	stats := Stats{MarkerFound: true}
	protocol := record.NormalizeProtocol(opts.Protocol)

	col, err := capture.Open(record.InfinityPath(opts.SourcePath), opts.Cap)
	if err != nil {
		return stats, err
	}
	defer col.Close()
	stats.CapturePath = col.Path()

	src, err := textio.Open(opts.SourcePath)
	if err != nil {
		return stats, err
	}
	defer src.Close()

	if strings.TrimSpace(opts.Marker) != "" {
		log.Printf("Skipping lines until marker: %s", opts.Marker)
	}
	if !locator.FindAndSkip(src.Scanner, opts.Marker) {
		log.Printf("Marker not found in source file. No lines processed.")
		stats.MarkerFound = false
		return stats, nil
	}

	for src.Scan() {
		line := src.Text()
		if !opts.Keywords.Matches(line) {
			continue
		}
		stats.Matched++
		if err := col.Write(record.Transform(protocol, line)); err != nil {
			return stats, err
		}
	}
	if err := src.Err(); err != nil {
		return stats, fmt.Errorf("failed to read source file: %w", err)
	}

	stats.Collected = col.Collected()
	return stats, nil
}
