// Package matcher implements the four document matching strategies: exact
// whole-document comparison, naive substring search, Rabin-Karp single-chunk
// search with byte verification, and probabilistic batch matching of all
// query chunks against the target through a Bloom filter.
package matcher

import (
	"errors"
	"fmt"

	"rkmatch/pkg/bloom"
	"rkmatch/pkg/rollhash"
)

var (
	ErrAlgorithm = errors.New("matcher: algorithm must be 0 (exact), 1 (naive), 2 (single) or 3 (batch)")
	ErrChunkSize = errors.New("matcher: chunk size must be positive and no larger than either document")
)

// Algorithm selects a matching strategy. The numeric values are the
// command-line selector values.
type Algorithm int

const (
	Exact Algorithm = iota
	Naive
	Single
	Batch
)

// ParseAlgorithm maps a selector value to an Algorithm.
func ParseAlgorithm(n int) (Algorithm, error) {
	if n < int(Exact) || n > int(Batch) {
		return 0, ErrAlgorithm
	}
	return Algorithm(n), nil
}

// ExactMatch reports whether q and t are byte-identical. Any length
// difference is a mismatch.
func ExactMatch(q, t []byte) bool {
	if len(q) != len(t) {
		return false
	}
	for i := range q {
		if q[i] != t[i] {
			return false
		}
	}
	return true
}

// NaiveSubstring reports whether chunk occurs in t, by comparing chunk
// against every alignment of t. O(len(t)*len(chunk)) worst case.
func NaiveSubstring(chunk, t []byte) bool {
	if len(chunk) == 0 || len(chunk) > len(t) {
		return false
	}
	for i := 0; i+len(chunk) <= len(t); i++ {
		j := 0
		for j < len(chunk) && t[i+j] == chunk[j] {
			j++
		}
		if j == len(chunk) {
			return true
		}
	}
	return false
}

// SingleChunk reports whether the k-byte chunk occurs in t, rolling the
// target window hash across t and verifying every hash equality with a
// direct byte comparison, so a false match is impossible. It also returns
// the first few target window hashes for diagnostic output.
func SingleChunk(h *rollhash.Hash, chunk, t []byte) (bool, []uint64) {
	k := h.K()
	if len(chunk) < k || len(t) < k {
		return false, nil
	}

	want := h.Sum(chunk)
	cur := h.Sum(t[:k])

	var first []uint64
	found := false
	for i := 0; ; i++ {
		if len(first) < printHashCount {
			first = append(first, cur)
		}
		if !found && cur == want && bytesEqual(chunk[:k], t[i:i+k]) {
			found = true
		}
		if i+k >= len(t) {
			break
		}
		cur = h.Roll(cur, t[i], t[i+k])
	}
	return found, first
}

func bytesEqual(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BatchMatch tests all non-overlapping k-byte chunks of q against t in one
// pass. Every chunk hash is inserted into a Bloom filter sized at
// bitsPerChunk bits per chunk; every overlapping k-byte window of t is then
// probed against the filter. The returned count is the number of target
// windows with a positive probe: an approximate upper-bound indicator of
// overlap, not an exact count, because windows overlap, probes are not
// re-verified against chunk bytes, and the filter admits false positives.
func BatchMatch(h *rollhash.Hash, q, t []byte, bitsPerChunk int) (Result, *bloom.Filter, error) {
	k := h.K()
	if k > len(q) || k > len(t) {
		return Result{}, nil, ErrChunkSize
	}
	if bitsPerChunk <= 0 {
		bitsPerChunk = bloom.DefaultBitsPerKey
	}

	total := len(q) / k
	f, err := bloom.New(bloom.SizeForKeys(total, bitsPerChunk))
	if err != nil {
		return Result{}, nil, fmt.Errorf("size filter: %w", err)
	}
	for i := 0; i+k <= len(q); i += k {
		f.Add(h.Sum(q[i : i+k]))
	}

	matched := 0
	cur := h.Sum(t[:k])
	for i := 0; ; i++ {
		if f.Query(cur) {
			matched++
		}
		if i+k >= len(t) {
			break
		}
		cur = h.Roll(cur, t[i], t[i+k])
	}
	return Result{Matched: matched, Total: total}, f, nil
}
