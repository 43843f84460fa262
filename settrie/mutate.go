package settrie

// Insert stores set under id, overwriting any existing identifier if the
// same set (after hashing, sorting, and deduplication) is already present.
// Re-inserting an existing set is idempotent at the structure level: no new
// nodes are created, only the identifier map entry is overwritten, matching
// spec.md §3's lifecycle summary.
func (ix *Index) Insert(set []string, id string) {
	hashes, names := binarySet(set)

	if len(hashes) == 0 {
		if ix.nodes[0].State != stateHasSetID {
			ix.elements.intern(0, "")
		}
		ix.nodes[0].State = stateHasSetID
		ix.ids[0] = id
		return
	}

	node := 0
	for _, h := range hashes {
		next, created := ix.descendOrCreate(node, h)
		if created {
			// Only a freshly-created node interns its element: the
			// dictionary's refcount must track live node occupancy
			// exactly (spec.md §8 invariant 1), so re-inserting a set
			// that already shares this path must not inflate the count
			// for a hash no new node is using.
			ix.elements.intern(h, names[h])
		}
		node = next
	}
	ix.nodes[node].State = stateHasSetID
	ix.ids[node] = id
}

// descendOrCreate returns the child of parent carrying value and whether it
// had to be created, splicing a new node into the sibling chain at the
// position that preserves strict ascending order (spec.md §4.2, corrected
// per the §9 design note) if no such child exists yet.
func (ix *Index) descendOrCreate(parent int, value uint64) (idx int, created bool) {
	if idx, found, insertAfter := ix.childWithValue(parent, value); found {
		return idx, false
	} else {
		return ix.spliceChild(parent, value, insertAfter), true
	}
}

// spliceChild creates a new child of parent carrying value and links it
// into the sibling chain immediately after the node at index after (0
// meaning "as the new head of the chain").
func (ix *Index) spliceChild(parent int, value uint64, after int) int {
	idx := ix.alloc(value, parent)
	if after == noLink {
		ix.nodes[idx].Next = ix.nodes[parent].Child
		ix.nodes[parent].Child = idx
	} else {
		ix.nodes[idx].Next = ix.nodes[after].Next
		ix.nodes[after].Next = idx
	}
	return idx
}

// Remove deletes the stored set whose terminal node is at index i. It
// returns ErrBadIndex if i is out of range or not currently HAS_SET_ID, and
// ErrMissingID if the identifier map is inconsistent with the node state
// (an internal-consistency failure that should never occur).
//
// Per spec.md §4.7: a terminal with children is only demoted back to
// IN_USE (the path is kept because other sets depend on it); a childless
// terminal is unlinked from its parent and marked GARBAGE, and the
// cascade continues upward as long as each newly-childless ancestor is
// itself a plain, non-terminal, non-root node.
func (ix *Index) Remove(i int) error {
	if i < 0 || i >= len(ix.nodes) || ix.nodes[i].State != stateHasSetID {
		return ErrBadIndex
	}
	if _, ok := ix.ids[i]; !ok {
		return ErrMissingID
	}
	delete(ix.ids, i)

	if i == 0 {
		ix.nodes[0].State = stateInUse
		ix.elements.release(0)
		return nil
	}

	if ix.nodes[i].Child != noLink {
		ix.nodes[i].State = stateInUse
		return nil
	}

	idx := i
	for {
		parent := ix.nodes[idx].Parent
		if ix.nodes[parent].Child == idx {
			ix.nodes[parent].Child = ix.nodes[idx].Next
		} else {
			prev := ix.nodes[parent].Child
			for ix.nodes[prev].Next != idx {
				prev = ix.nodes[prev].Next
			}
			ix.nodes[prev].Next = ix.nodes[idx].Next
		}
		parentHasChild := ix.nodes[parent].Child != noLink
		parentIsTerminal := ix.nodes[parent].State == stateHasSetID

		// Only a node that actually leaves the tree releases its element,
		// mirroring Insert's intern-on-create: a demoted terminal keeps its
		// whole path, so the refcounts along it stay as they are.
		ix.elements.release(ix.nodes[idx].Value)
		ix.nodes[idx] = Node{Value: garbageValue, Next: noParent, Child: noParent, Parent: noParent, State: stateGarbage}
		ix.dirty++

		if parentHasChild || parentIsTerminal || parent == 0 {
			break
		}
		idx = parent
	}
	return nil
}
