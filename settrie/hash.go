package settrie

import "encoding/binary"

// murmurSeed is the fixed seed used by the element hash function. It has no
// significance beyond being a 5-digit prime, matching the reference
// implementation.
const murmurSeed = 76493

// murmurMultiplier and murmurShift are MurmurHash64A's tuning constants, by
// Austin Appleby (public domain). They are fixed by spec, not tunable: a
// different multiplier or shift produces a wire-incompatible hash.
const (
	murmurMultiplier uint64 = 0xC6A4A7935BD1E995
	murmurShift             = 47
)

// ElementHash computes the 64-bit, non-cryptographic hash used both for
// identifying elements at runtime and for framing snapshot sections. It must
// remain byte-for-byte identical to the reference MurmurHash64A variant
// (fixed seed, fixed multiplier, fixed shift) for snapshots to round-trip
// across implementations; see hash_test.go for known-answer vectors.
func ElementHash(data []byte) uint64 {
	h := murmurSeed ^ (uint64(len(data)) * murmurMultiplier)

	n := len(data) &^ 7 // largest multiple of 8 not exceeding len(data)
	for i := 0; i < n; i += 8 {
		k := binary.LittleEndian.Uint64(data[i : i+8])
		k *= murmurMultiplier
		k ^= k >> murmurShift
		k *= murmurMultiplier

		h ^= k
		h *= murmurMultiplier
	}

	tail := data[n:]
	if len(tail) > 0 {
		for i := len(tail) - 1; i >= 0; i-- {
			h ^= uint64(tail[i]) << (8 * i)
		}
		h *= murmurMultiplier
	}

	h ^= h >> murmurShift
	h *= murmurMultiplier
	h ^= h >> murmurShift

	return h
}

// sectionTagHash is ElementHash applied to the ASCII bytes of a snapshot
// section tag ("tree", "name", "id", "end"). It doubles as the framing
// checksum a loader must verify before consuming a section.
func sectionTagHash(tag string) uint64 {
	return ElementHash([]byte(tag))
}
