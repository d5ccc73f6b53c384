// Package fingerprint computes a 128-bit structural hash (signature) of a
// genome's active subtree and provides a bounded, direct-mapped cache
// keyed by that signature.
//
// The hash is a Go port of MurmurHash3 x64-128 as found in
// original_source/src/kernel/cache_hash.h (Austin Appleby's algorithm,
// https://github.com/aappleby/smhasher) — ported rather than pulled from a
// third-party hash library because the signature byte layout and the
// collision semantics of the cache are spec'd precisely (spec.md §4.3),
// and the corpus itself has no hashing dependency to imitate (see
// DESIGN.md).
package fingerprint

// Signature is a 128-bit structural hash of a genome's active subtree.
type Signature struct {
	Lo, Hi uint64
}

// Zero is the empty signature, used to mean "not yet computed".
var Zero = Signature{}

// IsZero reports whether s is the empty signature.
func (s Signature) IsZero() bool { return s.Lo == 0 && s.Hi == 0 }

// Combine mixes another signature into s using simple prime multiplication
// (the same approach as Apache Commons' HashCodeBuilder, per cache_hash.h),
// in place of XOR, which is a poor combinator due to its commutativity.
func (s Signature) Combine(o Signature) Signature {
	return Signature{
		Lo: s.Lo*37 + o.Lo,
		Hi: s.Hi*37 + o.Hi,
	}
}

const defaultSeed uint32 = 1973

const (
	c1 uint64 = 0x87c37b91114253d5
	c2 uint64 = 0x4cf5ad432745937f
)

func rotl64(x uint64, r uint) uint64 {
	return (x << r) | (x >> (64 - r))
}

func fmix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// Hash128 computes the MurmurHash3 x64-128 signature of data using the
// engine's default seed (1973, the value original_source hardcodes).
func Hash128(data []byte) Signature {
	return hash128Seeded(data, defaultSeed)
}

func hash128Seeded(data []byte, seed uint32) Signature {
	length := len(data)
	nBlocks := length / 16

	h0, h1 := uint64(seed), uint64(seed)

	for i := 0; i < nBlocks; i++ {
		off := i * 16
		k1 := leUint64(data[off : off+8])
		k2 := leUint64(data[off+8 : off+16])

		k1 *= c1
		k1 = rotl64(k1, 31)
		k1 *= c2
		h0 ^= k1

		h0 = rotl64(h0, 27)
		h0 += h1
		h0 = h0*5 + 0x52dce729

		k2 *= c2
		k2 = rotl64(k2, 33)
		k2 *= c1
		h1 ^= k2

		h1 = rotl64(h1, 31)
		h1 += h0
		h1 = h1*5 + 0x38495ab5
	}

	tail := data[nBlocks*16:]
	var k1, k2 uint64

	switch length & 15 {
	case 15:
		k2 ^= uint64(tail[14]) << 48
		fallthrough
	case 14:
		k2 ^= uint64(tail[13]) << 40
		fallthrough
	case 13:
		k2 ^= uint64(tail[12]) << 32
		fallthrough
	case 12:
		k2 ^= uint64(tail[11]) << 24
		fallthrough
	case 11:
		k2 ^= uint64(tail[10]) << 16
		fallthrough
	case 10:
		k2 ^= uint64(tail[9]) << 8
		fallthrough
	case 9:
		k2 ^= uint64(tail[8])
		k2 *= c2
		k2 = rotl64(k2, 33)
		k2 *= c1
		h1 ^= k2
		fallthrough
	case 8:
		k1 ^= uint64(tail[7]) << 56
		fallthrough
	case 7:
		k1 ^= uint64(tail[6]) << 48
		fallthrough
	case 6:
		k1 ^= uint64(tail[5]) << 40
		fallthrough
	case 5:
		k1 ^= uint64(tail[4]) << 32
		fallthrough
	case 4:
		k1 ^= uint64(tail[3]) << 24
		fallthrough
	case 3:
		k1 ^= uint64(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint64(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint64(tail[0])
		k1 *= c1
		k1 = rotl64(k1, 31)
		k1 *= c2
		h0 ^= k1
	}

	h0 ^= uint64(length)
	h1 ^= uint64(length)

	h0 += h1
	h1 += h0

	h0 = fmix64(h0)
	h1 = fmix64(h1)

	h0 += h1
	h1 += h0

	return Signature{Lo: h0, Hi: h1}
}

func leUint64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
