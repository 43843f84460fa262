// Package settrie implements a set-trie: an in-memory index over finite
// sets of strings that supports exact lookup, superset enumeration, subset
// enumeration, deletion, and binary snapshot persistence.
//
// A set-trie stores each set as a path through a shared prefix tree, with
// the elements of a set sorted into a canonical order before insertion so
// that sets sharing a common prefix of elements share the corresponding
// path. This makes superset and subset queries a bounded tree walk instead
// of a scan over every stored set.
//
// Use New to create an index. An Index is not safe for concurrent use:
// callers owning multiple goroutines must serialize their own access.
package settrie

import "strings"

// InsertText is the delimited-string convenience form of Insert: it splits
// text on sep and stores the resulting set under id. An empty text is the
// empty set, not a one-element set containing "".
func (ix *Index) InsertText(text string, sep byte, id string) {
	ix.Insert(splitText(text, sep), id)
}

// FindText is the delimited-string convenience form of Find. It returns
// ErrNotFound, rather than a bool, when no stored set matches; callers
// that want the exact-match boolean should call Find directly.
func (ix *Index) FindText(text string, sep byte) (string, error) {
	id, ok := ix.Find(splitText(text, sep))
	if !ok {
		return "", ErrNotFound
	}
	return id, nil
}

// SupersetsText is the delimited-string convenience form of Supersets.
func (ix *Index) SupersetsText(text string, sep byte) []string {
	return ix.Supersets(splitText(text, sep))
}

// SubsetsText is the delimited-string convenience form of Subsets.
func (ix *Index) SubsetsText(text string, sep byte) []string {
	return ix.Subsets(splitText(text, sep))
}

// splitText turns a delimited string into the []string form every other
// operation in this package takes, treating "" as the empty set rather
// than as a single empty-string element.
//
// This mirrors original_source/.../settrie.cpp's std::getline(ss, elem,
// split) loop, not a plain strings.Split: getline never produces a token
// for a trailing separator, since the getline call positioned right after
// it hits EOF with zero characters extracted and fails outright, rather
// than returning an empty string. So "a,b," splits to {"a","b"}, not
// {"a","b",""}; internal empty fields (e.g. "a,,b") are unaffected, since
// those getline calls still extract zero characters before a delimiter,
// which succeeds.
func splitText(text string, sep byte) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, string([]byte{sep}))
	if text[len(text)-1] == sep {
		parts = parts[:len(parts)-1]
	}
	return parts
}
