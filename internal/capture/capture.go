// Package capture implements the auxiliary "infinity" collection: a
// secondary copy of the filtered output stream, written alongside the
// primary outputs and independently bounded by its own cap.
package capture

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Mode selects how the collection is bounded.
type Mode int

const (
	// ModeDisabled writes nothing and creates no file.
	ModeDisabled Mode = iota
	// ModeLimited writes up to a fixed number of lines.
	ModeLimited
	// ModeUnlimited mirrors the whole filtered stream.
	ModeUnlimited
)

// Cap is the collection bound for one run: disabled, limited to N lines,
// or unlimited.
type Cap struct {
	mode  Mode
	limit int
}

// Disabled returns a cap that turns the collection off.
func Disabled() Cap {
	return Cap{mode: ModeDisabled}
}

// Limited returns a cap of n lines. Non-positive n disables the
// collection.
func Limited(n int) Cap {
	if n <= 0 {
		return Disabled()
	}
	return Cap{mode: ModeLimited, limit: n}
}

// Unlimited returns a cap that never bounds the collection.
func Unlimited() Cap {
	return Cap{mode: ModeUnlimited}
}

// ParseCap interprets user input: "i" means unlimited, a positive integer
// means a limited collection, and anything else (blank, zero, negative,
// non-numeric) disables it. Input is never rejected.
func ParseCap(s string) Cap {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "i" {
		return Unlimited()
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Disabled()
	}
	return Limited(n)
}

// Mode returns the cap's mode.
func (c Cap) Mode() Mode {
	return c.mode
}

// Limit returns the line bound for a limited cap, 0 otherwise.
func (c Cap) Limit() int {
	if c.mode == ModeLimited {
		return c.limit
	}
	return 0
}

// Enabled reports whether the collection should be written at all.
func (c Cap) Enabled() bool {
	return c.mode != ModeDisabled
}

// Collector owns the capture output file for one run and enforces the
// cap. A disabled collector creates no file and ignores writes.
type Collector struct {
	cap       Cap
	path      string
	f         *os.File
	collected int
}

// Open prepares a collector writing to path, truncating any existing
// file. With a disabled cap no file is created and the returned
// collector is inert.
func Open(path string, c Cap) (*Collector, error) {
	col := &Collector{cap: c}
	if !c.Enabled() {
		return col, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create capture file: %w", err)
	}
	col.path = path
	col.f = f
	return col, nil
}

// Write appends one transformed line (newline added here) unless the
// collection is disabled or a limited cap has been reached. The
// collected count moves only when a line is actually written.
func (col *Collector) Write(line string) error {
	if col.f == nil {
		return nil
	}
	if col.cap.mode == ModeLimited && col.collected >= col.cap.limit {
		return nil
	}
	if _, err := col.f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write capture file: %w", err)
	}
	col.collected++
	return nil
}

// Collected returns the number of lines written so far.
func (col *Collector) Collected() int {
	return col.collected
}

// Path returns the capture file path, or "" when disabled.
func (col *Collector) Path() string {
	return col.path
}

// Unlimited reports whether the collector mirrors the whole stream.
func (col *Collector) Unlimited() bool {
	return col.cap.mode == ModeUnlimited
}

// Close releases the capture file handle if one was opened.
func (col *Collector) Close() error {
	if col.f == nil {
		return nil
	}
	return col.f.Close()
}
