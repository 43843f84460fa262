package settrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func findNode(t *testing.T, ix *Index, id string) int {
	t.Helper()
	for n, got := range ix.ids {
		if got == id {
			return n
		}
	}
	t.Fatalf("no node tagged %q", id)
	return -1
}

// TestChainRemovalDemotesBeforeUnlinking is boundary scenario 4 from
// spec.md §8: a chain {b} ⊂ {b,c} ⊂ {b,c,a} ⊂ {b,c,a,d}, removing the two
// inner terminals must demote them (no GARBAGE, no dirty count) since other
// sets still depend on their path, while removing the outer terminals and
// purging must collapse the tree back to just the sentinel root. The
// elements are added in ascending ElementHash order (b < c < a < d), so
// each set's trie path extends the previous one's.
func TestChainRemovalDemotesBeforeUnlinking(t *testing.T) {
	ix := New()
	ix.Insert([]string{"b"}, "b")
	ix.Insert([]string{"b", "c"}, "bc")
	ix.Insert([]string{"b", "c", "a"}, "bca")
	ix.Insert([]string{"b", "c", "a", "d"}, "bcad")

	bcNode := findNode(t, ix, "bc")
	bcaNode := findNode(t, ix, "bca")

	require.NoError(t, ix.Remove(bcNode))
	require.NoError(t, ix.Remove(bcaNode))

	_, ok := ix.Find([]string{"b"})
	require.True(t, ok)
	_, ok = ix.Find([]string{"b", "c", "a", "d"})
	require.True(t, ok)
	_, ok = ix.Find([]string{"b", "c"})
	require.False(t, ok)
	_, ok = ix.Find([]string{"b", "c", "a"})
	require.False(t, ok)

	require.Equal(t, 0, ix.DirtyCount(), "demoted terminals must not be GARBAGE")

	bNode := findNode(t, ix, "b")
	bcadNode := findNode(t, ix, "bcad")
	require.NoError(t, ix.Remove(bNode))
	require.NoError(t, ix.Remove(bcadNode))

	require.Greater(t, ix.DirtyCount(), 0)
	require.NoError(t, ix.Purge())

	live, dirty, interned := ix.Stats()
	require.Equal(t, 1, live, "purging a fully-removed chain must collapse the tree to the sentinel root")
	require.Equal(t, 0, dirty)
	require.Equal(t, 0, interned)
}

func TestRemoveBadIndex(t *testing.T) {
	ix := New()
	ix.Insert([]string{"a"}, "a")

	require.ErrorIs(t, ix.Remove(-1), ErrBadIndex)
	require.ErrorIs(t, ix.Remove(999), ErrBadIndex)

	aNode := findNode(t, ix, "a")
	require.NoError(t, ix.Remove(aNode))
	require.ErrorIs(t, ix.Remove(aNode), ErrBadIndex, "removing an already-removed node must fail")
}

func TestPurgeOnCleanIndexReturnsNothingToPurge(t *testing.T) {
	ix := New()
	ix.Insert([]string{"a"}, "a")
	require.ErrorIs(t, ix.Purge(), ErrNothingToPurge)
}

func TestReinsertIsIdempotent(t *testing.T) {
	ix := New()
	ix.Insert([]string{"a", "b"}, "first")
	ix.Insert([]string{"a", "b"}, "second")

	id, ok := ix.Find([]string{"a", "b"})
	require.True(t, ok)
	require.Equal(t, "second", id)

	live, _, _ := ix.Stats()
	require.Equal(t, 3, live, "re-inserting the same set must not allocate new nodes")
}
