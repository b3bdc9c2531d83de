package filter

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f4ah6o/domainsplit-go/internal/capture"
	"github.com/f4ah6o/domainsplit-go/internal/matcher"
)

func writeSource(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "domains.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCountsMatches(t *testing.T) {
	source := writeSource(t, "a.com", "b.net", "a.org", "skip", "a.io")

	stats, err := Run(Options{
		SourcePath: source,
		Protocol:   "https",
		Keywords:   matcher.Parse("a"),
		Cap:        capture.Disabled(),
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if stats.Matched != 3 {
		t.Errorf("Matched = %d, want 3", stats.Matched)
	}
	if !stats.MarkerFound {
		t.Error("MarkerFound = false, want true")
	}

	// Single-pass mode writes no primary output: the source directory
	// must hold the source file and nothing else.
	entries, err := os.ReadDir(filepath.Dir(source))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d files, want only the source", len(entries))
	}
}

func TestRunCapEnforcement(t *testing.T) {
	source := writeSource(t, "a.com", "a.net", "a.org", "a.io")

	stats, err := Run(Options{
		SourcePath: source,
		Protocol:   "https",
		Keywords:   matcher.KeywordSet{},
		Cap:        capture.Limited(2),
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if stats.Matched != 4 {
		t.Errorf("Matched = %d, want 4", stats.Matched)
	}
	if stats.Collected != 2 {
		t.Errorf("Collected = %d, want 2", stats.Collected)
	}

	data, err := os.ReadFile(stats.CapturePath)
	if err != nil {
		t.Fatal(err)
	}
	want := "https://a.com\nhttps://a.net\n"
	if string(data) != want {
		t.Errorf("capture file = %q, want %q", data, want)
	}
}

func TestRunUnlimitedCaptureMirrorsAllMatches(t *testing.T) {
	source := writeSource(t, "a.com", "b.net", "a.org")

	stats, err := Run(Options{
		SourcePath: source,
		Protocol:   "http",
		Keywords:   matcher.Parse("a"),
		Cap:        capture.Unlimited(),
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if stats.Collected != stats.Matched {
		t.Errorf("Collected = %d, want Matched = %d", stats.Collected, stats.Matched)
	}
	data, err := os.ReadFile(stats.CapturePath)
	if err != nil {
		t.Fatal(err)
	}
	want := "http://a.com\nhttp://a.org\n"
	if string(data) != want {
		t.Errorf("capture file = %q, want %q", data, want)
	}
}

func TestRunMarkerResume(t *testing.T) {
	source := writeSource(t, "a.com", "b.net", "a.org", "a.io")

	stats, err := Run(Options{
		SourcePath: source,
		Marker:     "b.net",
		Protocol:   "https",
		Keywords:   matcher.Parse("a"),
		Cap:        capture.Disabled(),
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// Lines before and including the marker are excluded.
	if stats.Matched != 2 {
		t.Errorf("Matched = %d, want 2", stats.Matched)
	}
}

// A whitespace-only marker is the same as no marker: the scan starts at
// the top and no skip is announced.
func TestRunWhitespaceMarker(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	source := writeSource(t, "a.com", "b.net")

	stats, err := Run(Options{
		SourcePath: source,
		Marker:     "   ",
		Protocol:   "https",
		Keywords:   matcher.KeywordSet{},
		Cap:        capture.Disabled(),
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if stats.Matched != 2 {
		t.Errorf("Matched = %d, want 2 (no lines skipped)", stats.Matched)
	}
	if !stats.MarkerFound {
		t.Error("MarkerFound = false, want true")
	}
	if strings.Contains(buf.String(), "Skipping lines") {
		t.Errorf("skip announced for a blank marker: %q", buf.String())
	}
}

func TestRunMarkerNotFound(t *testing.T) {
	source := writeSource(t, "a.com", "b.net")

	stats, err := Run(Options{
		SourcePath: source,
		Marker:     "never.seen",
		Protocol:   "https",
		Keywords:   matcher.KeywordSet{},
		Cap:        capture.Limited(5),
	})
	if err != nil {
		t.Fatalf("Run() error: %v (marker not found is a no-op, not an error)", err)
	}

	if stats.MarkerFound {
		t.Error("MarkerFound = true, want false")
	}
	if stats.Matched != 0 {
		t.Errorf("Matched = %d, want 0", stats.Matched)
	}
	// The capture file is opened before locating and left empty.
	data, err := os.ReadFile(stats.CapturePath)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("capture file holds %d bytes, want 0", len(data))
	}
}

func TestRunMissingSource(t *testing.T) {
	_, err := Run(Options{
		SourcePath: filepath.Join(t.TempDir(), "nope.txt"),
		Protocol:   "https",
		Keywords:   matcher.KeywordSet{},
		Cap:        capture.Disabled(),
	})
	if err == nil {
		t.Error("Run() on a missing source should return an error")
	}
}
