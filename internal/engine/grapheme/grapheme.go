// Package grapheme converts between user-perceived character offsets and
// byte offsets in block text.
//
// Selection offsets reported by the adapter count grapheme clusters, so a
// caret never lands inside a combining sequence or an emoji ZWJ sequence.
package grapheme

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// ByteOffset returns the byte offset of the given cluster offset.
// Offsets past the end are clamped to len(text); negative offsets to 0.
func ByteOffset(text string, offset int) int {
	if offset <= 0 || text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	for g.Next() {
		if idx == offset {
			start, _ := g.Positions()
			return start
		}
		idx++
	}
	return len(text)
}

// SplitAt splits text at the cluster offsets lo and hi (lo <= hi). It
// returns the text before lo, the text between lo and hi, and the text
// after hi. Offsets are clamped to the text.
func SplitAt(text string, lo, hi int) (head, middle, tail string) {
	if hi < lo {
		lo, hi = hi, lo
	}
	l := ByteOffset(text, lo)
	h := ByteOffset(text, hi)
	return text[:l], text[l:h], text[h:]
}

// Slice returns the clusters in [start, end).
func Slice(text string, start, end int) string {
	if text == "" || end <= start {
		return ""
	}
	_, mid, _ := SplitAt(text, start, end)
	return mid
}

// Split returns the grapheme clusters of text.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Width returns the monospace display width of text.
func Width(text string) int {
	return uniseg.StringWidth(text)
}

// Insert inserts s at the cluster offset and returns the new text.
func Insert(text string, offset int, s string) string {
	b := ByteOffset(text, offset)
	var sb strings.Builder
	sb.Grow(len(text) + len(s))
	sb.WriteString(text[:b])
	sb.WriteString(s)
	sb.WriteString(text[b:])
	return sb.String()
}

// DeleteBefore removes the cluster just before offset. It returns the new
// text and the new caret offset. At offset 0 the text is unchanged.
func DeleteBefore(text string, offset int) (string, int) {
	if offset <= 0 {
		return text, 0
	}
	if n := Count(text); offset > n {
		offset = n
	}
	head, _, tail := SplitAt(text, offset-1, offset)
	return head + tail, offset - 1
}
