// Package document loads and normalizes the byte buffers the matchers
// operate on. Matching itself never touches the filesystem; both documents
// are fully resident before any scan starts.
package document

import (
	"fmt"
	"os"
)

// Load reads the entire file at path into memory.
func Load(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return buf, nil
}

// Normalize canonicalizes a document for matching: upper-case letters are
// lowered, every run of interior whitespace collapses to a single space,
// and leading/trailing whitespace is dropped. The input slice is rewritten
// in place and the normalized prefix returned.
func Normalize(buf []byte) []byte {
	j := 0
	pending := false // a space is owed before the next non-space byte
	for _, c := range buf {
		switch {
		case isSpace(c):
			if j > 0 {
				pending = true
			}
		case c >= 'A' && c <= 'Z':
			j = emit(buf, j, &pending, c+'a'-'A')
		default:
			j = emit(buf, j, &pending, c)
		}
	}
	return buf[:j]
}

func emit(buf []byte, j int, pending *bool, c byte) int {
	if *pending {
		buf[j] = ' '
		j++
		*pending = false
	}
	buf[j] = c
	return j + 1
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
