// Package bloom implements a bit-packed probabilistic set for uint64 keys.
// Each inserted key sets hashNum derived bits; a query reports "maybe
// present" only when all of its derived bits are set. There are no false
// negatives. False positives occur with a probability governed by the bit
// count, hashNum and the number of distinct keys inserted.
package bloom

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// hashNum is the number of derived bit positions per key.
	hashNum = 10

	// Auxiliary moduli decorrelating the hashNum derived indices.
	h1Prime = 4189793
	h2Prime = 3296731

	// DefaultBitsPerKey sizes a filter at roughly 10 bits of capacity per
	// inserted key, matched to hashNum to keep the false-positive rate low.
	// A policy choice, not a derived optimum.
	DefaultBitsPerKey = 10
)

var ErrBitCount = errors.New("bloom: bit count must be a positive multiple of 8")

// Filter is a fixed-size bit array. Bits only ever transition from 0 to 1
// over the lifetime of a filter; there is no removal. A filter must not be
// reused across unrelated key populations.
type Filter struct {
	bits     []byte
	bitCount int
}

// New returns a filter of bitCount zero bits. bitCount must be a positive
// multiple of 8.
func New(bitCount int) (*Filter, error) {
	if bitCount <= 0 || bitCount%8 != 0 {
		return nil, ErrBitCount
	}
	return &Filter{
		bits:     make([]byte, bitCount/8),
		bitCount: bitCount,
	}, nil
}

// SizeForKeys returns the heuristic bit count for a filter expected to hold
// keyCount keys at bitsPerKey bits each: bitsPerKey*keyCount rounded down
// to a multiple of 8, with a one-byte floor so the result is always valid
// for New.
func SizeForKeys(keyCount, bitsPerKey int) int {
	n := (keyCount * bitsPerKey) &^ 7
	if n < 8 {
		n = 8
	}
	return n
}

// BitCount returns the filter width in bits.
func (f *Filter) BitCount() int { return f.bitCount }

// Add sets the hashNum derived bits for key. Adding a key already present
// leaves the bit pattern unchanged.
func (f *Filter) Add(key uint64) {
	for i := 0; i < hashNum; i++ {
		f.setBit(f.indexFor(i, key))
	}
}

// Query reports whether key is possibly in the set. A true result may be a
// false positive; a false result is definite.
func (f *Filter) Query(key uint64) bool {
	for i := 0; i < hashNum; i++ {
		if !f.bit(f.indexFor(i, key)) {
			return false
		}
	}
	return true
}

// indexFor derives the i-th bit index for key. The final reduction modulo
// the bit count keeps the index in range for keys of any magnitude.
func (f *Filter) indexFor(i int, key uint64) int {
	u := uint64(i)
	idx := key%h1Prime + u*(key%h2Prime) + 1 + u*u
	return int(idx % uint64(f.bitCount))
}

// Bit addressing is big-endian within each byte: bit 0 is the
// most-significant bit of byte 0.

func (f *Filter) setBit(idx int) {
	f.bits[idx>>3] |= 1 << (7 - uint(idx&7))
}

func (f *Filter) bit(idx int) bool {
	return f.bits[idx>>3]&(1<<(7-uint(idx&7))) != 0
}

// Dump renders the first countBits bits as space-separated hex byte pairs,
// for diagnostic output. countBits must be a positive multiple of 8; it is
// clamped to the filter width.
func (f *Filter) Dump(countBits int) (string, error) {
	if countBits <= 0 || countBits%8 != 0 {
		return "", ErrBitCount
	}
	if countBits > f.bitCount {
		countBits = f.bitCount
	}
	var b strings.Builder
	for i := 0; i < countBits/8; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", f.bits[i])
	}
	return b.String(), nil
}
