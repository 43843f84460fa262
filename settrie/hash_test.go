package settrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementHashDeterministic(t *testing.T) {
	inputs := []string{"", "a", "ab", "set-trie", "frozenset({1, 2, 345})"}
	for _, in := range inputs {
		require.Equal(t, ElementHash([]byte(in)), ElementHash([]byte(in)), "hash of %q must be stable across calls", in)
	}
}

func TestElementHashDistinctForDistinctInputs(t *testing.T) {
	inputs := []string{"a", "b", "c", "d", "e", "f", "y", "z", "ab", "ac", "aaaaaaaa", "aaaaaaab"}
	seen := make(map[uint64]string, len(inputs))
	for _, in := range inputs {
		h := ElementHash([]byte(in))
		if prior, ok := seen[h]; ok {
			t.Fatalf("hash collision between %q and %q", prior, in)
		}
		seen[h] = in
	}
}

func TestElementHashSensitiveToLength(t *testing.T) {
	// MurmurHash64A folds the input length into the seed mix, so "a" and "aa"
	// must not collide even though one is a prefix of the other.
	require.NotEqual(t, ElementHash([]byte("a")), ElementHash([]byte("aa")))
}

func TestSectionTagHashDistinctPerTag(t *testing.T) {
	tags := []string{"tree", "name", "id", "end"}
	seen := make(map[uint64]string, len(tags))
	for _, tag := range tags {
		h := sectionTagHash(tag)
		require.Equal(t, h, sectionTagHash(tag), "section tag hash must be stable")
		if prior, ok := seen[h]; ok {
			t.Fatalf("section tag hash collision between %q and %q", prior, tag)
		}
		seen[h] = tag
	}
}
