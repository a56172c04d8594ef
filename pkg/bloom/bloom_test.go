package bloom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadBitCount(t *testing.T) {
	for _, n := range []int{0, -8, 3, 12} {
		_, err := New(n)
		require.ErrorIs(t, err, ErrBitCount, "bitCount=%d", n)
	}

	f, err := New(8)
	require.NoError(t, err)
	require.Equal(t, 8, f.BitCount())
}

func TestSizeForKeys(t *testing.T) {
	require.Equal(t, 16, SizeForKeys(2, 10))
	require.Equal(t, 80, SizeForKeys(8, 10))
	require.Equal(t, 10000, SizeForKeys(1000, 10))

	// floor keeps the result valid for New even with no keys
	require.Equal(t, 8, SizeForKeys(0, 10))
}

func TestNoFalseNegatives(t *testing.T) {
	f, err := New(SizeForKeys(200, DefaultBitsPerKey))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	keys := make([]uint64, 200)
	for i := range keys {
		keys[i] = rng.Uint64()
		f.Add(keys[i])
	}

	// Every inserted key queries true, regardless of later insertions.
	for _, k := range keys {
		require.True(t, f.Query(k))
	}
	for i := 0; i < 100; i++ {
		f.Add(rng.Uint64())
	}
	for _, k := range keys {
		require.True(t, f.Query(k))
	}
}

func TestAddIsIdempotent(t *testing.T) {
	a, err := New(160)
	require.NoError(t, err)
	b, err := New(160)
	require.NoError(t, err)

	a.Add(12345)
	b.Add(12345)
	b.Add(12345)

	da, err := a.Dump(160)
	require.NoError(t, err)
	db, err := b.Dump(160)
	require.NoError(t, err)
	require.Equal(t, da, db)
}

// Bit index 0 must land on the most-significant bit of byte 0. Key 0
// derives the indices (1 + i*i) mod 160 for i in [0,10): 1, 2, 5, 10, 17,
// 26, 37, 50, 65, 82.
func TestBigEndianBitPacking(t *testing.T) {
	f, err := New(160)
	require.NoError(t, err)
	f.Add(0)

	dump, err := f.Dump(160)
	require.NoError(t, err)
	require.Equal(t,
		"64 20 40 20 04 00 20 00 40 00 20 00 00 00 00 00 00 00 00 00",
		dump)
}

func TestDump(t *testing.T) {
	f, err := New(32)
	require.NoError(t, err)

	dump, err := f.Dump(16)
	require.NoError(t, err)
	require.Equal(t, "00 00", dump)

	// clamped to the filter width
	dump, err = f.Dump(160)
	require.NoError(t, err)
	require.Equal(t, "00 00 00 00", dump)

	_, err = f.Dump(0)
	require.ErrorIs(t, err, ErrBitCount)
	_, err = f.Dump(12)
	require.ErrorIs(t, err, ErrBitCount)
}

// With bitCount = 10*c and 10 derived bits per key, the theoretical
// false-positive probability is (1 - e^{-10c/bitCount})^10 ~ 1%. Allow a
// generous constant factor over that.
func TestFalsePositiveRate(t *testing.T) {
	const c = 1000
	f, err := New(SizeForKeys(c, DefaultBitsPerKey))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	inserted := make(map[uint64]bool, c)
	for len(inserted) < c {
		k := rng.Uint64()
		if inserted[k] {
			continue
		}
		inserted[k] = true
		f.Add(k)
	}

	probes, hits := 0, 0
	for probes < 20000 {
		k := rng.Uint64()
		if inserted[k] {
			continue
		}
		probes++
		if f.Query(k) {
			hits++
		}
	}

	bound := math.Pow(1-math.Exp(-10*float64(c)/float64(f.BitCount())), 10)
	rate := float64(hits) / float64(probes)
	require.Less(t, rate, 5*bound+0.001, "rate=%f bound=%f", rate, bound)
}
