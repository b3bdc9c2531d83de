// Package splitter implements the two-pass mode: a counting pass over the
// source file determines how many lines match, then a writing pass
// distributes the transformed matches evenly across a fixed number of
// split output files, with the optional capture file fed from the same
// stream.
package splitter

import (
	"fmt"
	"log"
	"os"

	"github.com/f4ah6o/domainsplit-go/internal/capture"
	"github.com/f4ah6o/domainsplit-go/internal/locator"
	"github.com/f4ah6o/domainsplit-go/internal/matcher"
	"github.com/f4ah6o/domainsplit-go/internal/record"
	"github.com/f4ah6o/domainsplit-go/internal/textio"
)

// Plan is the per-file line allocation for a split: the first Remainder
// files hold Base+1 lines, the rest Base lines, so the capacities sum to
// Total exactly.
type Plan struct {
	// Total is the number of matched lines to distribute.
	Total int
	// Files is the number of output files.
	Files int
}

// Base returns the minimum number of lines per file, or 0 for a plan
// with no files.
func (p Plan) Base() int {
	if p.Files < 1 {
		return 0
	}
	return p.Total / p.Files
}

// Remainder returns how many files receive one extra line, or 0 for a
// plan with no files.
func (p Plan) Remainder() int {
	if p.Files < 1 {
		return 0
	}
	return p.Total % p.Files
}

// Capacity returns the planned line count of the i-th file (0-based),
// assigned strictly by file creation order.
func (p Plan) Capacity(i int) int {
	if i < p.Remainder() {
		return p.Base() + 1
	}
	return p.Base()
}

// Options configures one two-pass run.
type Options struct {
	// SourcePath is the record file to scan.
	SourcePath string
	// Marker resumes both passes just after this line; blank scans from
	// the top.
	Marker string
	// NumFiles is the number of split output files, at least 1.
	NumFiles int
	// Protocol is prepended to every surviving line ("http" or "https").
	Protocol string
	// Keywords filters lines; the empty set keeps everything.
	Keywords matcher.KeywordSet
	// Cap bounds the capture file.
	Cap capture.Cap
}

// Stats reports the outcome of a two-pass run.
type Stats struct {
	// Matched is the total matching line count from the first pass.
	Matched int
	// MarkerFound is false when the resume marker was never seen; in that
	// case no output files were written.
	MarkerFound bool
	// Created lists the split files that exist after the run, in index
	// order. File existence is the source of truth, so trailing empty
	// files appear here too.
	Created []string
	// Collected counts lines written to the capture file.
	Collected int
	// CapturePath is the capture file path, or "" when the capture was
	// disabled.
	CapturePath string
}

// Run executes both passes. A marker that is never found, or a counting
// pass with zero matches, is a clean no-op: no split files are created
// and no error is returned.
func Run(opts Options) (Stats, error) {
	stats := Stats{MarkerFound: true}
	if opts.NumFiles < 1 {
		return stats, fmt.Errorf("number of split files must be at least 1, got %d", opts.NumFiles)
	}
	protocol := record.NormalizeProtocol(opts.Protocol)

	log.Printf("First pass: counting matching lines...")
	total, found, err := countMatches(opts)
	if err != nil {
		return stats, err
	}
	if !found {
		log.Printf("Marker not found in source file. No lines processed.")
		stats.MarkerFound = false
		return stats, nil
	}
	if total == 0 {
		log.Printf("No matching lines found. Nothing to split.")
		return stats, nil
	}
	stats.Matched = total

	plan := Plan{Total: total, Files: opts.NumFiles}
	log.Printf("Found %d matching lines.", total)
	log.Printf("Splitting into %d file(s): %d lines each, +1 in the first %d file(s).",
		opts.NumFiles, plan.Base(), plan.Remainder())

	if err := writePass(opts, plan, protocol, &stats); err != nil {
		return stats, err
	}
	if !stats.MarkerFound {
		return stats, nil
	}

	// Report what is actually on disk rather than what the loop believes
	// it wrote.
	for i := 1; i <= opts.NumFiles; i++ {
		path := record.SplitPath(opts.SourcePath, i)
		if _, err := os.Stat(path); err == nil {
			stats.Created = append(stats.Created, path)
		}
	}
	return stats, nil
}

// countMatches is the first pass: locate the marker, then count lines
// passing the keyword filter. The decode and skip semantics are identical
// to the writing pass, so both passes see the same line sequence.
func countMatches(opts Options) (total int, markerFound bool, err error) {
	src, err := textio.Open(opts.SourcePath)
	if err != nil {
		return 0, false, err
	}
	defer src.Close()

	if !locator.FindAndSkip(src.Scanner, opts.Marker) {
		return 0, false, nil
	}
	for src.Scan() {
		if opts.Keywords.Matches(src.Text()) {
			total++
		}
	}
	if err := src.Err(); err != nil {
		return 0, true, fmt.Errorf("failed to read source file: %w", err)
	}
	return total, true, nil
}

// writePass is the second pass: re-locate the marker on a fresh stream
// and distribute transformed matches across the split files per the plan,
// mirroring each one into the capture file as it goes.
func writePass(opts Options, plan Plan, protocol string, stats *Stats) error {
	col, err := capture.Open(record.InfinityPath(opts.SourcePath), opts.Cap)
	if err != nil {
		return err
	}
	defer col.Close()
	stats.CapturePath = col.Path()

	src, err := textio.Open(opts.SourcePath)
	if err != nil {
		return err
	}
	defer src.Close()

	idx := 1
	written := 0
	out, err := os.Create(record.SplitPath(opts.SourcePath, idx))
	if err != nil {
		return fmt.Errorf("failed to create split file: %w", err)
	}
	defer func() {
		if out != nil {
			out.Close()
		}
	}()

	if !locator.FindAndSkip(src.Scanner, opts.Marker) {
		// The marker was present in the first pass; a fresh scan not
		// finding it means the file changed under us.
		log.Printf("Marker not found during second pass. No lines written.")
		stats.MarkerFound = false
		return nil
	}

	for src.Scan() {
		line := src.Text()
		if !opts.Keywords.Matches(line) {
			continue
		}
		if out == nil {
			// All planned capacity is spent; under the plan invariant
			// this line cannot exist, but never write it anywhere.
			break
		}

		processed := record.Transform(protocol, line)
		if _, err := out.WriteString(processed + "\n"); err != nil {
			return fmt.Errorf("failed to write split file: %w", err)
		}
		written++
		if err := col.Write(processed); err != nil {
			return err
		}

		// Advance past every file whose planned capacity is spent. A
		// zero-capacity trailing file is created and closed empty here.
		for out != nil && written >= plan.Capacity(idx-1) {
			if err := out.Close(); err != nil {
				out = nil
				return fmt.Errorf("failed to close split file: %w", err)
			}
			out = nil
			idx++
			if idx > opts.NumFiles {
				break
			}
			out, err = os.Create(record.SplitPath(opts.SourcePath, idx))
			if err != nil {
				return fmt.Errorf("failed to create split file: %w", err)
			}
			written = 0
		}
	}
	if err := src.Err(); err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	if out != nil {
		if err := out.Close(); err != nil {
			out = nil
			return fmt.Errorf("failed to close split file: %w", err)
		}
		out = nil
	}
	stats.Collected = col.Collected()
	return nil
}
