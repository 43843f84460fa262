package settrie

// Find returns the identifier of the stored set equal to set, and true, or
// ("", false) if no stored set matches. Per spec.md §4.3, a query element
// absent from the element dictionary lets the whole lookup fail fast: no
// stored set can contain an element nothing has ever been interned under.
func (ix *Index) Find(set []string) (string, bool) {
	hashes, _ := binarySet(set)
	if len(hashes) == 0 {
		if ix.nodes[0].State == stateHasSetID {
			return ix.ids[0], true
		}
		return "", false
	}

	node := 0
	for _, h := range hashes {
		if !ix.elements.has(h) {
			return "", false
		}
		next, found, _ := ix.childWithValue(node, h)
		if !found {
			return "", false
		}
		node = next
	}
	if ix.nodes[node].State != stateHasSetID {
		return "", false
	}
	return ix.ids[node], true
}

// Elements returns the stored set whose terminal node is at index i, in
// trie path order (root to leaf), which is ascending element-hash order,
// not the order the elements were passed to Insert. It returns an empty, nil slice if i is 0
// (the empty set has no elements), or if i does not name a live HAS_SET_ID
// node.
func (ix *Index) Elements(i int) []string {
	if i <= 0 || i >= len(ix.nodes) || ix.nodes[i].State != stateHasSetID {
		return nil
	}
	var rev []string
	for n := i; n > 0; n = ix.nodes[n].Parent {
		if name, ok := ix.elements.lookup(ix.nodes[n].Value); ok {
			rev = append(rev, name)
		}
	}
	out := make([]string, len(rev))
	for i, e := range rev {
		out[len(rev)-1-i] = e
	}
	return out
}

// Supersets enumerates the identifiers of every stored set S with Q ⊆ S,
// where Q is the query set. An empty query matches every stored set (∅ is a
// subset of everything), the corrected post-2024 semantics spec.md §4.4
// calls out, not the older "only the empty set itself" behavior.
func (ix *Index) Supersets(query []string) []string {
	if len(query) == 0 {
		out := make([]string, 0, len(ix.ids))
		for _, id := range ix.ids {
			out = append(out, id)
		}
		return out
	}

	q, _ := binarySet(query)
	for _, h := range q {
		if !ix.elements.has(h) {
			return nil
		}
	}

	var result []int
	ix.supersets(ix.nodes[0].Child, q, 0, &result)

	return ix.idsFor(result)
}

// supersets is the recursive superset-enumeration traversal described in
// spec.md §4.4, translated from the reference implementation's
// supersets(t_idx, s_idx)/all_supersets(t_idx) pair.
func (ix *Index) supersets(node int, q []uint64, qi int, result *[]int) {
	for node != noLink {
		n := ix.nodes[node]
		tv, qv := n.Value, q[qi]

		matched := false
		if tv == qv {
			if qi == len(q)-1 {
				if n.State == stateHasSetID {
					*result = append(*result, node)
				}
				ix.allSupersets(n.Child, result)
			} else {
				matched = true
				qv = q[qi+1]
			}
		}

		if tv < qv && n.Child != noLink {
			nextQi := qi
			if matched {
				nextQi = qi + 1
			}
			ix.supersets(n.Child, q, nextQi, result)
		}

		node = n.Next
	}
}

// allSupersets collects every flagged descendant once the whole query has
// already been matched along the path leading here.
func (ix *Index) allSupersets(node int, result *[]int) {
	for node != noLink {
		n := ix.nodes[node]
		if n.State == stateHasSetID {
			*result = append(*result, node)
		}
		if n.Child != noLink {
			ix.allSupersets(n.Child, result)
		}
		node = n.Next
	}
}

// Subsets enumerates the identifiers of every stored set S with S ⊆ Q,
// where Q is the query set. Per spec.md §4.5, query elements absent from the
// element dictionary are discarded first (they cannot equal any stored
// hash), and the empty set's identifier, if stored, is always included,
// since ∅ is a subset of every set.
func (ix *Index) Subsets(query []string) []string {
	var out []string
	if ix.nodes[0].State == stateHasSetID {
		out = append(out, ix.ids[0])
	}

	raw, _ := binarySet(query)
	q := raw[:0:0]
	for _, h := range raw {
		if ix.elements.has(h) {
			q = append(q, h)
		}
	}
	if len(q) == 0 {
		return out
	}

	var result []int
	ix.subsets(ix.nodes[0].Child, q, 0, &result)

	return append(out, ix.idsFor(result)...)
}

// subsets is the recursive subset-enumeration traversal described in
// spec.md §4.5, translated from the reference implementation's
// subsets(t_idx, s_idx).
func (ix *Index) subsets(node int, q []uint64, qi int, result *[]int) {
	last := len(q) - 1
	for node != noLink {
		n := ix.nodes[node]
		if n.Value >= q[qi] {
			nsi := qi
			for nsi < last && q[nsi] < n.Value {
				nsi++
			}
			if q[nsi] == n.Value {
				if n.State == stateHasSetID {
					*result = append(*result, node)
				}
				if n.Child != noLink {
					nsi++
					if nsi <= last {
						ix.subsets(n.Child, q, nsi, result)
					}
				}
			}
		}
		node = n.Next
	}
}

// idsFor maps a slice of terminal node indices to their stored identifiers.
func (ix *Index) idsFor(nodes []int) []string {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = ix.ids[n]
	}
	return out
}
