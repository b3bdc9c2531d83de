package locator

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindAndSkip(t *testing.T) {
	const input = "a.com\nb.net\nc.org\n"

	tests := []struct {
		name      string
		marker    string
		wantFound bool
		wantNext  string
	}{
		{"empty marker skips nothing", "", true, "a.com"},
		{"marker in the middle", "b.net", true, "c.org"},
		{"marker is last line", "c.org", true, ""},
		{"marker not present", "missing.io", false, ""},
		{"marker compared trimmed", "  b.net  ", true, "c.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := bufio.NewScanner(strings.NewReader(input))
			found := FindAndSkip(sc, tt.marker)
			if found != tt.wantFound {
				t.Fatalf("FindAndSkip(%q) = %v, want %v", tt.marker, found, tt.wantFound)
			}

			next := ""
			if sc.Scan() {
				next = sc.Text()
			}
			if next != tt.wantNext {
				t.Errorf("next line after FindAndSkip(%q) = %q, want %q", tt.marker, next, tt.wantNext)
			}
		})
	}
}

// A fresh stream and the same marker must always consume the same number
// of lines; the two-pass splitter depends on this.
func TestFindAndSkipIdempotent(t *testing.T) {
	const input = "a.com\nb.net\nb.net\nc.org\n"

	countRemaining := func() int {
		sc := bufio.NewScanner(strings.NewReader(input))
		if !FindAndSkip(sc, "b.net") {
			t.Fatal("FindAndSkip() = false, want true")
		}
		n := 0
		for sc.Scan() {
			n++
		}
		return n
	}

	first := countRemaining()
	for i := 0; i < 3; i++ {
		if got := countRemaining(); got != first {
			t.Errorf("run %d left %d lines, first run left %d", i+2, got, first)
		}
	}
	// First duplicate marker line is the one consumed.
	if first != 2 {
		t.Errorf("lines remaining after marker = %d, want 2", first)
	}
}

func TestLastNonBlankLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{"simple file", "a.com\nb.net\n", "b.net", true},
		{"trailing blank lines", "a.com\nb.net\n\n\n", "b.net", true},
		{"line needs trimming", "a.com\n  b.net  \n", "b.net", true},
		{"all blank", "\n\n  \n", "", false},
		{"empty file", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prev.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			got, ok := LastNonBlankLine(path)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("LastNonBlankLine() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLastNonBlankLineMissingFile(t *testing.T) {
	if _, ok := LastNonBlankLine(filepath.Join(t.TempDir(), "nope.txt")); ok {
		t.Error("LastNonBlankLine() = true for a missing file, want false")
	}
}
