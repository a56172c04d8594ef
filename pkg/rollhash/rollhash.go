// Package rollhash implements a Rabin-Karp polynomial rolling hash over a
// fixed-width byte window. The hash of a k-byte window is
//
//	sum(window[i] * base^(k-1-i)) mod modulus
//
// and can be updated in O(1) as the window slides by one byte. Equal hashes
// are candidate matches only; callers that need exactness must verify the
// window bytes directly, since the hash space is far smaller than the space
// of k-byte sequences.
package rollhash

import (
	"errors"
	"math"
	"math/bits"
)

const (
	// DefaultBase treats each byte as one digit of a base-256 number.
	DefaultBase = 256

	// DefaultModulus is a large prime chosen so that DefaultModulus*DefaultBase
	// fits in a uint64.
	DefaultModulus = 5003943032159437
)

var (
	ErrChunkSize = errors.New("rollhash: chunk size must be positive")
	ErrModulus   = errors.New("rollhash: modulus*base must fit in 64 bits")
)

// Config carries the hash parameters. A zero value selects the defaults.
type Config struct {
	Base    uint64
	Modulus uint64
}

func (c Config) withDefaults() Config {
	if c.Base == 0 {
		c.Base = DefaultBase
	}
	if c.Modulus == 0 {
		c.Modulus = DefaultModulus
	}
	return c
}

// Hash computes window hashes for one fixed window width k. It is created
// per (document, k) pair and is not safe for concurrent use.
type Hash struct {
	base    uint64
	modulus uint64
	k       int
	pow     uint64 // base^(k-1) mod modulus
}

// New validates cfg and precomputes base^(k-1) mod modulus for window
// width k. The modulus must leave headroom for one multiplication by base
// per Horner step; configurations without that headroom are rejected
// rather than detected at runtime.
func New(cfg Config, k int) (*Hash, error) {
	cfg = cfg.withDefaults()
	if k <= 0 {
		return nil, ErrChunkSize
	}
	if cfg.Modulus > math.MaxUint64/cfg.Base {
		return nil, ErrModulus
	}

	h := &Hash{base: cfg.Base, modulus: cfg.Modulus, k: k}
	h.pow = 1 % cfg.Modulus
	for i := 0; i < k-1; i++ {
		h.pow = h.mmul(h.pow, h.base)
	}
	return h, nil
}

// K returns the window width the hash was created for.
func (h *Hash) K() int { return h.k }

// Modulus returns the modulus bounding all hash values.
func (h *Hash) Modulus() uint64 { return h.modulus }

// Sum evaluates the window polynomial from scratch via Horner's rule.
// Only the first k bytes of window are hashed.
func (h *Hash) Sum(window []byte) uint64 {
	var v uint64
	for i := 0; i < h.k && i < len(window); i++ {
		v = h.madd(v*h.base%h.modulus, uint64(window[i])%h.modulus)
	}
	return v
}

// Roll returns the hash of the window shifted right by one byte: out is the
// byte leaving on the left, in the byte entering on the right, value the
// hash of the current window.
func (h *Hash) Roll(value uint64, out, in byte) uint64 {
	v := h.msub(value, h.mmul(uint64(out), h.pow))
	v = v * h.base % h.modulus
	return h.madd(v, uint64(in)%h.modulus)
}

// madd returns (a+b) mod modulus for a, b already in [0, modulus).
func (h *Hash) madd(a, b uint64) uint64 {
	s := a + b
	if s >= h.modulus {
		s -= h.modulus
	}
	return s
}

// msub returns (a-b) mod modulus for a, b in [0, modulus), adding the
// modulus back instead of relying on uint64 wraparound.
func (h *Hash) msub(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + h.modulus - b
}

// mmul returns (a*b) mod modulus through a 128-bit intermediate, so the
// product is exact for any modulus New accepts.
func (h *Hash) mmul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, h.modulus)
	return rem
}
