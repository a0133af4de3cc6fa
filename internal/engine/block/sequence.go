package block

// Sequence is an ordered list of blocks.
type Sequence []Block

// Clone returns a deep copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	for i, b := range s {
		out[i] = b.Clone()
	}
	return out
}

// IndexOf returns the position of the block with the given ID, or -1.
func (s Sequence) IndexOf(id ID) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}

// IDs returns the block IDs in sequence order.
func (s Sequence) IDs() []ID {
	ids := make([]ID, len(s))
	for i, b := range s {
		ids[i] = b.ID
	}
	return ids
}

// Validate reports the first duplicated ID in the sequence.
func (s Sequence) Validate() (ID, bool) {
	seen := make(map[ID]struct{}, len(s))
	for _, b := range s {
		if _, ok := seen[b.ID]; ok {
			return b.ID, false
		}
		seen[b.ID] = struct{}{}
	}
	return "", true
}

// Normalize clamps every indent and assigns IDs to blocks that lack one.
func (s Sequence) Normalize() Sequence {
	for i := range s {
		s[i].Indent = ClampIndent(s[i].Indent)
		if s[i].ID.IsZero() {
			s[i].ID = NewID()
		}
	}
	return s
}

// Diff returns the IDs of blocks that differ between before and after:
// blocks of after whose content or position changed or that are new, in
// after's order, followed by blocks removed from before.
func Diff(before, after Sequence) []ID {
	index := make(map[ID]int, len(before))
	for i, b := range before {
		index[b.ID] = i
	}
	var out []ID
	seen := make(map[ID]struct{}, len(after))
	for i, b := range after {
		seen[b.ID] = struct{}{}
		j, ok := index[b.ID]
		if !ok || j != i || !before[j].Equal(b) {
			out = append(out, b.ID)
		}
	}
	for _, b := range before {
		if _, ok := seen[b.ID]; !ok {
			out = append(out, b.ID)
		}
	}
	return out
}
