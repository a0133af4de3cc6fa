package paper

import "github.com/dshills/paper/internal/engine/block"

// GroupRange returns the half-open range [start, end) of the group rooted at
// index: the block itself followed by every immediately following block whose
// indent is strictly greater than the root's. An index outside the sequence
// yields an empty range.
func GroupRange(seq block.Sequence, index int) (start, end int) {
	if index < 0 || index >= len(seq) {
		return 0, 0
	}
	root := seq[index].Indent
	end = index + 1
	for end < len(seq) && seq[end].Indent > root {
		end++
	}
	return index, end
}

// Group returns the group rooted at id in sequence order, or nil when id is
// not in the sequence. The returned blocks share storage with seq.
func Group(seq block.Sequence, id block.ID) block.Sequence {
	start, end := GroupRange(seq, seq.IndexOf(id))
	if start == end {
		return nil
	}
	return seq[start:end]
}

// InGroup reports whether member belongs to the group rooted at root.
// A block is a member of its own group.
func InGroup(seq block.Sequence, root, member block.ID) bool {
	for _, b := range Group(seq, root) {
		if b.ID == member {
			return true
		}
	}
	return false
}

// Parent returns the index of the nearest preceding block with a smaller
// indent, or -1 for top-level blocks.
func Parent(seq block.Sequence, index int) int {
	if index <= 0 || index >= len(seq) {
		return -1
	}
	indent := seq[index].Indent
	for i := index - 1; i >= 0; i-- {
		if seq[i].Indent < indent {
			return i
		}
	}
	return -1
}
