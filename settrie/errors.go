package settrie

import "errors"

// Sentinel errors covering the closed taxonomy in spec.md §7. Each call
// site wraps one of these with github.com/pkg/errors when it has useful
// context to attach (section name, node index, byte offset); callers
// should match with errors.Is against these sentinels rather than parsing
// error strings.
var (
	// ErrNotFound is returned by FindText when no stored set equals the
	// query (Find itself reports a miss with a false second result).
	ErrNotFound = errors.New("settrie: set not found")

	// ErrBadIndex is returned by Remove when given a node index that is out
	// of range or not in state HAS_SET_ID.
	ErrBadIndex = errors.New("settrie: bad node index")

	// ErrMissingID is an internal-consistency failure: a node is flagged
	// HAS_SET_ID but has no entry in the identifier map. It should never
	// occur unless an invariant has been violated.
	ErrMissingID = errors.New("settrie: node has no identifier")

	// ErrNothingToPurge is returned by Purge when the store has no
	// GARBAGE nodes to reclaim. Not fatal: callers may ignore it.
	ErrNothingToPurge = errors.New("settrie: nothing to purge")

	// ErrCorruptSnapshot covers every framing failure Load can detect
	// (section-tag mismatch, string length overflow, block-number gaps, or
	// loading into a non-empty index) and bad base64 reported by DecodeBlock.
	ErrCorruptSnapshot = errors.New("settrie: corrupt snapshot")
)
