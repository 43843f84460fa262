package settrie

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

// TestSupersetsLiteralScenario is boundary scenario 1 from spec.md §8.
func TestSupersetsLiteralScenario(t *testing.T) {
	ix := New()
	ix.Insert([]string{"a", "b"}, "sup01")
	ix.Insert([]string{"a", "c", "e"}, "sup03")
	ix.Insert([]string{"c", "e"}, "sup07")
	ix.Insert([]string{"c", "d", "e", "f", "y", "z"}, "sup12")

	got := sortedCopy(ix.Supersets([]string{"c", "e"}))
	require.Equal(t, []string{"sup03", "sup07", "sup12"}, got)
}

// TestSupersetsLargeSharedElementFanOut is boundary scenario 3 from
// spec.md §8: 8192 distinct sets {monster, knotK, nodeK²}, each tagged
// documentK, all share the "monster" element, so supersets({monster}) must
// enumerate all 8192 of them.
func TestSupersetsLargeSharedElementFanOut(t *testing.T) {
	const n = 8192
	ix := New()
	for k := 0; k < n; k++ {
		set := []string{"monster", fmt.Sprintf("knot%d", k), fmt.Sprintf("node%d", k*k)}
		ix.Insert(set, fmt.Sprintf("document%d", k))
	}

	got := ix.Supersets([]string{"monster"})
	require.Len(t, got, n)

	want := make(map[string]bool, n)
	for k := 0; k < n; k++ {
		want[fmt.Sprintf("document%d", k)] = true
	}
	for _, id := range got {
		require.True(t, want[id], "unexpected id %q in supersets(monster)", id)
		delete(want, id)
	}
	require.Empty(t, want, "every documentK id must appear exactly once")
}

// TestEmptySetBoundaryScenario is boundary scenario 2 from spec.md §8: the
// empty set is a subset of everything and a superset of nothing but itself.
func TestEmptySetBoundaryScenario(t *testing.T) {
	ix := New()
	ix.Insert(nil, "void")
	ix.Insert([]string{"a"}, "only-a")

	id, ok := ix.Find(nil)
	require.True(t, ok)
	require.Equal(t, "void", id)

	require.Contains(t, ix.Subsets([]string{"a"}), "void")
	require.Contains(t, ix.Supersets(nil), "void")
	require.Contains(t, ix.Supersets(nil), "only-a")
}

// TestSupersetsEmptyQueryReturnsEverything is the algebraic law from
// spec.md §8: supersets(∅) returns exactly every stored identifier,
// per the corrected post-2024 semantics (spec.md §4.4).
func TestSupersetsEmptyQueryReturnsEverything(t *testing.T) {
	ix := New()
	ix.Insert([]string{"a", "b"}, "sup01")
	ix.Insert([]string{"c", "e"}, "sup07")

	require.ElementsMatch(t, []string{"sup01", "sup07"}, ix.Supersets(nil))
}

// TestSubsetsEmptyQuery is the algebraic law from spec.md §8: subsets(∅)
// returns just the empty set's id if stored, else nothing.
func TestSubsetsEmptyQuery(t *testing.T) {
	ix := New()
	ix.Insert([]string{"a", "b"}, "sup01")
	require.Nil(t, ix.Subsets(nil))

	ix.Insert(nil, "void")
	require.Equal(t, []string{"void"}, ix.Subsets(nil))
}

// TestSupersetsSubsetsDuality exhaustively checks the superset side of the
// duality law from spec.md §8 over a small alphabet: for every query Q with
// at most 4 elements and every stored set S, S is in supersets(Q) iff Q is a
// subset of S. Subsets membership is not checked here.
func TestSupersetsSubsetsDuality(t *testing.T) {
	alphabet := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	stored := [][]string{
		{"a", "b"},
		{"a", "c", "e"},
		{"c", "e"},
		{"b", "d"},
		{"a", "b", "c", "d"},
	}

	ix := New()
	for i, s := range stored {
		ix.Insert(s, stored[i][0]+"#"+string(rune('0'+i)))
	}
	names := make([]string, len(stored))
	for i := range stored {
		names[i], _ = ix.Find(stored[i])
	}

	isSubset := func(a, b []string) bool {
		set := make(map[string]bool, len(b))
		for _, e := range b {
			set[e] = true
		}
		for _, e := range a {
			if !set[e] {
				return false
			}
		}
		return true
	}

	for qi := 0; qi < 1<<len(alphabet); qi++ {
		var q []string
		if popcount(qi) > 4 {
			continue
		}
		for bit, e := range alphabet {
			if qi&(1<<bit) != 0 {
				q = append(q, e)
			}
		}

		supersets := ix.Supersets(q)
		for i, s := range stored {
			want := isSubset(q, s)
			got := contains(supersets, names[i])
			require.Equal(t, want, got, "supersets(%v) membership of %v", q, s)
		}
	}
}

func popcount(n int) int {
	c := 0
	for n != 0 {
		c += n & 1
		n >>= 1
	}
	return c
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
