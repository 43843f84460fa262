package settrie

import "sort"

// Index is a set-trie: an in-memory index over finite sets of opaque byte
// strings, each tagged with a caller-supplied identifier. It is the single
// entry point for this package; its operations live in mutate.go, search.go,
// purge.go, snapshot.go and this file, with the delimited-text wrappers in
// settrie.go.
//
// Index is not safe for concurrent use; per spec.md §5 every operation runs
// to completion on the caller's goroutine and there is no internal locking,
// matching the teacher's own Trie type ("not safe for concurrent use").
type Index struct {
	nodes    []Node
	elements *dict
	ids      map[int]string
	dirty    int // count of stateGarbage slots in nodes
}

// New creates an empty set-trie index: just the sentinel root.
func New() *Index {
	return &Index{
		nodes:    []Node{rootNode()},
		elements: newDict(),
		ids:      make(map[int]string),
	}
}

// DirtyCount returns the number of GARBAGE node slots currently held by the
// store without reclaiming them: the non-mutating peek at what a Purge
// would do, matching the "dry_run" branch of spec.md §6's host-facing
// purge(id, dry_run) operation.
func (ix *Index) DirtyCount() int {
	return ix.dirty
}

// Stats reports the live node count, the dirty (GARBAGE) node count, and the
// number of currently-interned elements: the three counters spec.md §8's
// universal invariants 1 and 4 are phrased in terms of.
func (ix *Index) Stats() (liveNodes, dirtyNodes, internedElements int) {
	return len(ix.nodes) - ix.dirty, ix.dirty, ix.elements.size()
}

// NumSets returns the number of sets currently stored, matching spec.md §6's
// host-facing num_sets(id): a plain count of the identifier map, not
// registry plumbing, so it belongs on Index itself.
func (ix *Index) NumSets() int {
	return len(ix.ids)
}

// SetID returns the identifier stored at node index i, and true, or
// ("", false) if i does not name a live HAS_SET_ID node: the Index-side
// counterpart to spec.md §6's host-facing set_name(id, node_index).
func (ix *Index) SetID(i int) (string, bool) {
	if i < 0 || i >= len(ix.nodes) || ix.nodes[i].State != stateHasSetID {
		return "", false
	}
	id, ok := ix.ids[i]
	return id, ok
}

// binarySet hashes each element, sorts ascending, and removes duplicates,
// producing the ordered hash sequence spec.md §3 calls a "binary set". It
// also returns the hash->name mapping needed to intern every element on a
// later insert, since by the time Insert knows which hashes survived
// dedup it no longer has the original strings at hand.
func binarySet(elems []string) (hashes []uint64, names map[uint64]string) {
	hashes = make([]uint64, 0, len(elems))
	names = make(map[uint64]string, len(elems))
	for _, e := range elems {
		h := ElementHash([]byte(e))
		names[h] = e
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	hashes = dedupeSorted(hashes)
	return hashes, names
}

func dedupeSorted(s []uint64) []uint64 {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// alloc appends a new node to the arena and returns its index.
func (ix *Index) alloc(value uint64, parent int) int {
	ix.nodes = append(ix.nodes, Node{
		Value:  value,
		Next:   noLink,
		Child:  noLink,
		Parent: parent,
		State:  stateInUse,
	})
	return len(ix.nodes) - 1
}

// childWithValue walks the sibling chain rooted at the Child of parent
// looking for a node whose Value equals value. It returns the found node's
// index, or (insertAfter, false) where insertAfter is the index after which
// a new sibling carrying value must be spliced to keep the chain in strict
// ascending order (0 meaning "splice as the new head of the chain"). This
// is the ordered-insertion-position search spec.md §9 requires in place of
// the reference implementation's append-at-tail.
func (ix *Index) childWithValue(parent int, value uint64) (idx int, found bool, insertAfter int) {
	cur := ix.nodes[parent].Child
	prev := noLink
	for cur != noLink {
		v := ix.nodes[cur].Value
		if v == value {
			return cur, true, noLink
		}
		if v > value {
			return 0, false, prev
		}
		prev = cur
		cur = ix.nodes[cur].Next
	}
	return 0, false, prev
}
