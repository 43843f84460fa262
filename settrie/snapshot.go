package settrie

import (
	"sort"

	"github.com/pkg/errors"
)

// maxSnapshotStringLen is the loader sanity cap on any single element or
// identifier string read from a snapshot (spec.md §9: "Dynamic-size limit
// of 8191 bytes"). A length at or above this is treated as CorruptSnapshot
// rather than trusted and allocated.
const maxSnapshotStringLen = 8192

// Save serializes the index into the section-framed, block-chunked wire
// format described in spec.md §4.9: a "tree" section (one record per node),
// a "name" section (the element dictionary), an "id" section (the
// identifier map), and a trailing "end" marker, each preceded by a section
// tag hash a loader must verify before trusting the section.
//
// Grounded on original_source/.../settrie.cpp's SetTrie::save.
func (ix *Index) Save() []Block {
	w := &blockWriter{}

	w.writeSection("tree")
	w.writeInt32(int32(len(ix.nodes)))
	for _, n := range ix.nodes {
		w.writeUint64(n.Value)
		w.writeInt32(int32(n.Next))
		w.writeInt32(int32(n.Child))
		w.writeInt32(int32(n.Parent))
		w.writeInt32(int32(n.State))
	}

	w.writeSection("name")
	hashes := make([]uint64, 0, len(ix.elements.entries))
	for h := range ix.elements.entries {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	w.writeInt32(int32(len(hashes)))
	for _, h := range hashes {
		e := ix.elements.entries[h]
		w.writeUint64(h)
		w.writeInt32(int32(e.count))
		w.writeString(e.name)
	}

	w.writeSection("id")
	indices := make([]int, 0, len(ix.ids))
	for i := range ix.ids {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	w.writeInt32(int32(len(indices)))
	for _, i := range indices {
		w.writeInt32(int32(i))
		w.writeString(ix.ids[i])
	}

	w.writeSection("end")

	return w.blocks
}

// Load replaces ix's contents with the index encoded in blocks. ix must be
// freshly constructed (via New): per spec.md §4.9's load contract, loading
// into a non-empty index is itself a CorruptSnapshot condition. On any
// framing failure ix is left untouched and the caller should discard it,
// per spec.md §7.
func (ix *Index) Load(blocks []Block) error {
	if len(ix.nodes) != 1 || ix.elements.size() != 0 || len(ix.ids) != 0 {
		return errors.Wrap(ErrCorruptSnapshot, "load into non-empty index")
	}

	r, err := newBlockReader(blocks)
	if err != nil {
		return err
	}

	if err := r.expectSection("tree"); err != nil {
		return err
	}
	treeCount, err := r.readInt32()
	if err != nil {
		return err
	}
	nodes := make([]Node, 0, treeCount)
	for i := int32(0); i < treeCount; i++ {
		value, err := r.readUint64()
		if err != nil {
			return err
		}
		next, err := r.readInt32()
		if err != nil {
			return err
		}
		child, err := r.readInt32()
		if err != nil {
			return err
		}
		parent, err := r.readInt32()
		if err != nil {
			return err
		}
		state, err := r.readInt32()
		if err != nil {
			return err
		}
		nodes = append(nodes, Node{
			Value:  value,
			Next:   int(next),
			Child:  int(child),
			Parent: int(parent),
			State:  nodeState(state),
		})
	}
	if len(nodes) == 0 {
		return errors.Wrap(ErrCorruptSnapshot, "tree section has no root")
	}

	if err := r.expectSection("name"); err != nil {
		return err
	}
	nameCount, err := r.readInt32()
	if err != nil {
		return err
	}
	elements := newDict()
	for i := int32(0); i < nameCount; i++ {
		hash, err := r.readUint64()
		if err != nil {
			return err
		}
		count, err := r.readInt32()
		if err != nil {
			return err
		}
		name, err := r.readString()
		if err != nil {
			return err
		}
		elements.entries[hash] = &dictEntry{name: name, count: int(count)}
	}

	if err := r.expectSection("id"); err != nil {
		return err
	}
	idCount, err := r.readInt32()
	if err != nil {
		return err
	}
	ids := make(map[int]string, idCount)
	for i := int32(0); i < idCount; i++ {
		node, err := r.readInt32()
		if err != nil {
			return err
		}
		name, err := r.readString()
		if err != nil {
			return err
		}
		ids[int(node)] = name
	}

	if err := r.expectSection("end"); err != nil {
		return err
	}

	dirty := 0
	for _, n := range nodes {
		if n.State == stateGarbage {
			dirty++
		}
	}

	ix.nodes = nodes
	ix.elements = elements
	ix.ids = ids
	ix.dirty = dirty
	return nil
}

// blockWriter accumulates a byte stream into fixed-size Blocks, chunking at
// blockPayloadSize the way the reference image_put does.
type blockWriter struct {
	blocks []Block
}

func (w *blockWriter) write(p []byte) {
	for len(p) > 0 {
		if len(w.blocks) == 0 || w.blocks[len(w.blocks)-1].Size == blockPayloadSize {
			w.blocks = append(w.blocks, Block{BlockNum: int32(len(w.blocks) + 1)})
		}
		cur := &w.blocks[len(w.blocks)-1]
		n := copy(cur.Payload[cur.Size:], p)
		cur.Size += int32(n)
		p = p[n:]
	}
}

func (w *blockWriter) writeUint64(v uint64) {
	var buf [8]byte
	putUint64(buf[:], v)
	w.write(buf[:])
}

func (w *blockWriter) writeInt32(v int32) {
	var buf [4]byte
	putInt32(buf[:], v)
	w.write(buf[:])
}

func (w *blockWriter) writeString(s string) {
	w.writeInt32(int32(len(s)))
	w.write([]byte(s))
}

func (w *blockWriter) writeSection(tag string) {
	w.writeUint64(sectionTagHash(tag))
}

// blockReader consumes a byte stream out of a sequence of Blocks, the way
// the reference image_get does, enforcing the strict block_num sequence
// spec.md §4.9 requires.
type blockReader struct {
	blocks []Block
	idx    int
	offset int32
}

func newBlockReader(blocks []Block) (*blockReader, error) {
	for i, b := range blocks {
		if b.BlockNum != int32(i+1) {
			return nil, errors.Wrapf(ErrCorruptSnapshot, "block number gap: want %d, got %d", i+1, b.BlockNum)
		}
		if b.Size < 0 || b.Size > blockPayloadSize {
			return nil, errors.Wrapf(ErrCorruptSnapshot, "block %d has invalid size %d", b.BlockNum, b.Size)
		}
	}
	return &blockReader{blocks: blocks}, nil
}

func (r *blockReader) read(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for n > 0 {
		if r.idx >= len(r.blocks) {
			return nil, errors.Wrap(ErrCorruptSnapshot, "unexpected end of block stream")
		}
		cur := r.blocks[r.idx]
		avail := cur.Size - r.offset
		if avail <= 0 {
			r.idx++
			r.offset = 0
			continue
		}
		take := int32(n)
		if take > avail {
			take = avail
		}
		out = append(out, cur.Payload[r.offset:r.offset+take]...)
		r.offset += take
		n -= int(take)
	}
	return out, nil
}

func (r *blockReader) readUint64() (uint64, error) {
	b, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return getUint64(b), nil
}

func (r *blockReader) readInt32() (int32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return getInt32(b), nil
}

func (r *blockReader) readString() (string, error) {
	l, err := r.readInt32()
	if err != nil {
		return "", err
	}
	if l < 0 || l >= maxSnapshotStringLen {
		return "", errors.Wrapf(ErrCorruptSnapshot, "string length %d out of range", l)
	}
	if l == 0 {
		return "", nil
	}
	b, err := r.read(int(l))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *blockReader) expectSection(tag string) error {
	got, err := r.readUint64()
	if err != nil {
		return err
	}
	if got != sectionTagHash(tag) {
		return errors.Wrapf(ErrCorruptSnapshot, "section tag mismatch: expected %q", tag)
	}
	return nil
}
