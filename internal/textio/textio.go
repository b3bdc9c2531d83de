// Package textio provides permissive reading of line-delimited text files.
// Invalid UTF-8 byte sequences in the source are dropped during decoding
// rather than surfaced as errors, so a corrupt byte in a large record file
// never aborts a scan.
package textio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// dropInvalid is a transform.Transformer that removes bytes which do not
// form valid UTF-8 sequences and passes everything else through unchanged.
type dropInvalid struct {
	transform.NopResetter
}

func (dropInvalid) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				// Might be a valid rune split across reads.
				err = transform.ErrShortSrc
				return
			}
			nSrc++
			continue
		}
		if nDst+size > len(dst) {
			err = transform.ErrShortDst
			return
		}
		copy(dst[nDst:], src[nSrc:nSrc+size])
		nDst += size
		nSrc += size
	}
	return
}

// NewReader wraps r so that invalid UTF-8 bytes are silently dropped.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, dropInvalid{})
}

// Source is an open record file positioned for sequential line reading
// with permissive decoding applied.
type Source struct {
	*bufio.Scanner
	f *os.File
}

// Open opens the record file at path for reading. The returned Source
// must be closed by the caller. Reopening the same path yields a
// byte-for-byte identical line sequence, which the two-pass splitter
// relies on.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	sc := bufio.NewScanner(NewReader(f))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Source{Scanner: sc, f: f}, nil
}

// Close releases the underlying file handle.
func (s *Source) Close() error {
	return s.f.Close()
}
