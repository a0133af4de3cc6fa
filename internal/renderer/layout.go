package renderer

import (
	"strconv"
	"strings"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/grapheme"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/renderer/core"
)

// handleText is drawn in the handle column of a block's first row.
const handleText = "⠿"

// handleWidth is the handle column plus its gap.
const handleWidth = 2

// row is one screen row of a laid out block.
type row struct {
	block block.ID
	index int // position of the block in the sequence
	first bool
	last  bool
	// structural rows carry no text and no caret range.
	structural bool

	// Offsets [start, end) of the clusters on this row.
	start, end int

	indentX int // column of the marker
	textX   int // column of the first cluster
	marker  []core.Cell
	text    []core.Cell
	// offsets[i] is the cluster offset of text[i]; continuation cells
	// repeat their cluster's offset.
	offsets []int
}

// blockRows is the row range of one block.
type blockRows struct {
	start, end int
}

// layout is the row model of a sequence at a width.
type layout struct {
	rows    []row
	byBlock map[block.ID]blockRows
	width   int
}

func (l *layout) rowsOf(id block.ID) (blockRows, bool) {
	r, ok := l.byBlock[id]
	return r, ok
}

// markerFor returns the prefix drawn before a block.
func markerFor(def *schema.Definition, b block.Block) string {
	if def == nil {
		return ""
	}
	switch def.Type {
	case schema.TypeTodo:
		if checked, _ := b.Attr("checked"); checked == true {
			return "☑"
		}
	case schema.TypeHeading:
		if level, ok := b.Attr("level"); ok {
			if n, err := strconv.Atoi(toString(level)); err == nil && n > 1 {
				return strings.Repeat(def.Marker, min(n, 6))
			}
		}
	}
	return def.Marker
}

func toString(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.Itoa(int(n))
	case string:
		return n
	}
	return ""
}

// styleFor returns the text style of a block type.
func styleFor(th Theme, t block.Type) core.Style {
	switch t {
	case schema.TypeHeading:
		return th.Heading
	case schema.TypeBlockquote:
		return th.Quote
	case schema.TypeCode:
		return th.Code
	}
	return th.Text
}

// buildLayout lays out seq at width. Every block gets at least one row;
// text wraps at cluster boundaries.
func buildLayout(seq block.Sequence, reg *schema.Registry, opts Options, width int) *layout {
	l := &layout{
		byBlock: make(map[block.ID]blockRows, len(seq)),
		width:   width,
	}

	for i, b := range seq {
		var def *schema.Definition
		if reg != nil {
			def, _ = reg.Find(b.Type)
		}

		x := 0
		if opts.ShowHandles {
			x = handleWidth
		}
		x += b.Indent * opts.IndentWidth
		indentX := x

		var marker []core.Cell
		if m := markerFor(def, b); m != "" {
			marker = core.CellsFromString(m+" ", opts.Theme.Marker)
		}
		textX := indentX + len(marker)
		avail := max(width-textX, 1)

		start := len(l.rows)
		style := styleFor(opts.Theme, b.Type)
		clusters := grapheme.Split(b.TextValue())

		cur := row{block: b.ID, index: i, first: true, indentX: indentX, textX: textX, marker: marker}
		col := 0
		for off, cluster := range clusters {
			w := core.ClusterWidth(cluster)
			if col+w > avail && col > 0 {
				cur.end = off
				l.rows = append(l.rows, cur)
				cur = row{block: b.ID, index: i, start: off, indentX: indentX, textX: textX}
				col = 0
			}
			cells := core.CellsFromString(cluster, style)
			for range cells {
				cur.offsets = append(cur.offsets, off)
			}
			cur.text = append(cur.text, cells...)
			col += w
		}
		cur.end = len(clusters)
		cur.last = true
		cur.structural = !b.HasText()
		l.rows = append(l.rows, cur)

		l.byBlock[b.ID] = blockRows{start: start, end: len(l.rows)}
	}
	return l
}

// caretRow returns the row index and column holding the caret at offset
// inside id. An offset on a wrap boundary belongs to the later row.
func (l *layout) caretRow(id block.ID, offset int) (int, int, bool) {
	br, ok := l.rowsOf(id)
	if !ok {
		return 0, 0, false
	}
	for i := br.start; i < br.end; i++ {
		r := l.rows[i]
		if offset >= r.end && !r.last {
			continue
		}
		x := r.textX
		for j, off := range r.offsets {
			if off >= offset {
				break
			}
			x += r.text[j].Width
		}
		return i, x, true
	}
	return 0, 0, false
}

// offsetAt returns the caret offset for a click at column x on row i.
// Clicks right of a cluster's middle land after it.
func (l *layout) offsetAt(i, x int) int {
	r := l.rows[i]
	if x <= r.textX {
		return r.start
	}
	col := r.textX
	for j := 0; j < len(r.text); {
		off := r.offsets[j]
		w := 0
		for k := j; k < len(r.text) && r.offsets[k] == off; k++ {
			w++
			j = k + 1
		}
		if x < col+w {
			if x-col >= (w+1)/2 && w > 1 {
				return off + 1
			}
			return off
		}
		col += w
	}
	return r.end
}
