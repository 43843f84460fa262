package settrie

// Purge reclaims every GARBAGE node slot, renumbering the store densely and
// rewriting the identifier map to match. It returns ErrNothingToPurge (not
// a fatal error; see spec.md §7) if there is nothing to reclaim.
//
// Grounded on original_source/.../settrie.cpp's SetTrie::purge: build an
// old-index -> new-index permutation over the live (non-GARBAGE) nodes that
// preserves their relative order, with the root always mapping to itself,
// then rewrite every live node's links and the identifier map through it.
func (ix *Index) Purge() error {
	if ix.dirty == 0 {
		return ErrNothingToPurge
	}

	oldToNew := make(map[int]int, len(ix.nodes)-ix.dirty)
	newToOld := make([]int, 0, len(ix.nodes)-ix.dirty)
	for old, n := range ix.nodes {
		if n.State != stateGarbage {
			oldToNew[old] = len(newToOld)
			newToOld = append(newToOld, old)
		}
	}

	remap := func(idx int) int {
		if idx == noLink {
			return noLink
		}
		return oldToNew[idx]
	}

	compacted := make([]Node, len(newToOld))
	for newIdx, oldIdx := range newToOld {
		n := ix.nodes[oldIdx]
		n.Next = remap(n.Next)
		n.Child = remap(n.Child)
		// The root's parent is the fixed sentinel -1 and is never remapped;
		// every other live node's parent is itself live (a GARBAGE node's
		// children are always unlinked and marked GARBAGE in the same pass
		// that removes it; see mutate.go Remove), so it is always present
		// in oldToNew.
		if n.Parent != noParent {
			n.Parent = remap(n.Parent)
		}
		compacted[newIdx] = n
	}

	newIDs := make(map[int]string, len(ix.ids))
	for old, id := range ix.ids {
		newIDs[oldToNew[old]] = id
	}

	ix.nodes = compacted
	ix.ids = newIDs
	ix.dirty = 0
	return nil
}
