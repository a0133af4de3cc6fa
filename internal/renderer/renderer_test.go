package renderer

import (
	"testing"

	"github.com/dshills/paper/internal/config"
	"github.com/dshills/paper/internal/dispatcher/handlers/editor"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/input"
	"github.com/dshills/paper/internal/input/mouse"
	"github.com/dshills/paper/internal/renderer/backend"
)

func mk(id string, t block.Type, indent int, text string) block.Block {
	b := block.New(t, text, indent)
	b.ID = block.ID(id)
	return b
}

func outline() block.Sequence {
	todo := mk("C", schema.TypeTodo, 0, "done")
	todo.Attrs = block.Attrs{"checked": true}
	divider := block.NewStructural(schema.TypeDivider, 0)
	divider.ID = "D"
	return block.Sequence{
		mk("A", schema.TypeParagraph, 0, "hello"),
		mk("B", schema.TypeList, 1, "item"),
		todo,
		divider,
	}
}

func setup(t *testing.T, w, h int, seq block.Sequence) (*Renderer, *backend.Memory, *cursor.Tracker) {
	t.Helper()
	be := backend.NewMemory(w, h)
	tr := cursor.NewTracker()
	tr.Sync(seq)
	r := New(be, schema.Builtin(), tr, DefaultOptions())
	r.SetBlocks(seq)
	return r, be, tr
}

func TestRenderOutline(t *testing.T) {
	r, be, tr := setup(t, 20, 6, outline())
	tr.Focus("A", 2)
	r.Render()

	want := []string{
		"⠿ hello",
		"⠿   • item",
		"⠿ ☑ done",
		"⠿ ──────────────────",
		"",
	}
	for y, line := range want {
		if got := be.Row(y); got != line {
			t.Errorf("row %d: expected %q, got %q", y, line, got)
		}
	}
	if x, y, ok := be.Cursor(); !ok || x != 4 || y != 0 {
		t.Errorf("expected caret at 4,0, got %d,%d %v", x, y, ok)
	}
	if be.Shows() != 1 || r.Frames() != 1 {
		t.Errorf("expected one frame, got %d shows %d frames", be.Shows(), r.Frames())
	}
}

func TestRenderWithoutHandles(t *testing.T) {
	be := backend.NewMemory(20, 3)
	opts := DefaultOptions()
	opts.ShowHandles = false
	opts.IndentWidth = 4
	r := New(be, schema.Builtin(), nil, opts)
	r.SetBlocks(block.Sequence{mk("A", schema.TypeList, 1, "x")})
	r.Render()

	if got := be.Row(0); got != "    • x" {
		t.Errorf("expected indented list without handle, got %q", got)
	}
	if _, _, ok := be.Cursor(); ok {
		t.Error("expected hidden caret without a cursor")
	}
}

func TestStatusLineShowsFocusedType(t *testing.T) {
	r, be, tr := setup(t, 30, 4, outline())
	tr.Focus("B", 0)
	r.SetMessage("moved", false)
	r.Render()

	if got := be.Row(3); got != " LIST  moved              2/4" {
		t.Errorf("unexpected status line %q", got)
	}
}

func TestWrapAndCaret(t *testing.T) {
	seq := block.Sequence{mk("A", schema.TypeParagraph, 0, "abcdefghijkl")}
	r, be, tr := setup(t, 10, 4, seq)

	tests := []struct {
		offset int
		x, y   int
	}{
		{0, 2, 0},
		{7, 9, 0},
		{8, 2, 1},
		{12, 6, 1},
	}
	for _, tt := range tests {
		tr.Focus("A", tt.offset)
		r.Render()
		if x, y, ok := be.Cursor(); !ok || x != tt.x || y != tt.y {
			t.Errorf("offset %d: expected caret at %d,%d, got %d,%d %v", tt.offset, tt.x, tt.y, x, y, ok)
		}
	}
	if got := be.Row(1); got != "  ijkl" {
		t.Errorf("expected wrapped row, got %q", got)
	}
}

func TestWideClusters(t *testing.T) {
	seq := block.Sequence{mk("A", schema.TypeParagraph, 0, "日本👍🏽x")}
	r, be, tr := setup(t, 20, 3, seq)
	tr.Focus("A", 3)
	r.Render()

	if x, _, _ := be.Cursor(); x != 8 {
		t.Errorf("expected caret after three wide clusters at 8, got %d", x)
	}
	hit, ok := r.HitTest(mouse.Position{X: 5, Y: 0})
	if !ok || hit.Offset != 2 {
		t.Errorf("expected second half of 本 to land after it, got %+v %v", hit, ok)
	}
}

func TestHitTest(t *testing.T) {
	seq := block.Sequence{
		mk("A", schema.TypeParagraph, 0, "abcdefghijkl"),
		mk("B", schema.TypeList, 0, "xy"),
	}
	r, _, _ := setup(t, 10, 5, seq)
	r.Render()

	tests := []struct {
		name   string
		pos    mouse.Position
		block  block.ID
		region mouse.Region
		offset int
		ok     bool
	}{
		{"handle", mouse.Position{X: 0, Y: 0}, "A", mouse.RegionHandle, 0, true},
		{"text", mouse.Position{X: 4, Y: 0}, "A", mouse.RegionText, 2, true},
		{"wrapped", mouse.Position{X: 5, Y: 1}, "A", mouse.RegionText, 11, true},
		{"past end", mouse.Position{X: 9, Y: 1}, "A", mouse.RegionText, 12, true},
		{"marker", mouse.Position{X: 2, Y: 2}, "B", mouse.RegionText, 0, true},
		{"below content", mouse.Position{X: 3, Y: 3}, "", mouse.RegionNone, 0, false},
		{"status line", mouse.Position{X: 3, Y: 4}, "", mouse.RegionNone, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := r.HitTest(tt.pos)
			if ok != tt.ok {
				t.Fatalf("expected ok %v, got %v", tt.ok, ok)
			}
			if hit.Block != tt.block || hit.Region != tt.region || hit.Offset != tt.offset {
				t.Errorf("expected %s/%d@%d, got %s/%d@%d", tt.block, tt.region, tt.offset, hit.Block, hit.Region, hit.Offset)
			}
		})
	}
}

func TestRevealAndScroll(t *testing.T) {
	var seq block.Sequence
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		seq = append(seq, mk(id, schema.TypeParagraph, 0, id))
	}
	r, be, _ := setup(t, 10, 3, seq)
	if r.PageHeight() != 2 {
		t.Fatalf("expected page height 2, got %d", r.PageHeight())
	}

	r.Reveal("E")
	r.Render()
	if r.Top() != 3 || be.Row(1) != "⠿ E" {
		t.Errorf("expected E on the last row, top %d row %q", r.Top(), be.Row(1))
	}

	r.ScrollBy(-2)
	r.Render()
	if got := be.Row(0); got != "⠿ B" {
		t.Errorf("expected B on top after scrolling up, got %q", got)
	}

	r.ScrollBy(-10)
	if r.Top() != 0 {
		t.Errorf("expected scroll clamped at 0, got %d", r.Top())
	}
}

func TestSelectionHighlight(t *testing.T) {
	r, be, tr := setup(t, 20, 3, outline()[:1])
	tr.Set(cursor.At("A", 1).Extend(3))
	r.Render()

	th := DefaultTheme()
	for x, want := range map[int]bool{2: false, 3: true, 4: true, 5: false} {
		got := be.GetCell(x, 0).Style == th.Selection
		if got != want {
			t.Errorf("column %d: expected selected %v, got %v", x, want, got)
		}
	}
}

type fakeDrops struct {
	ind editor.DropIndicator
}

func (f fakeDrops) Indicator() (editor.DropIndicator, bool) { return f.ind, true }

func TestDropIndicator(t *testing.T) {
	tests := []struct {
		name    string
		ind     editor.DropIndicator
		row     int
		glyph   string
		allowed bool
	}{
		{"after", editor.DropIndicator{Source: "A", Over: "C", Placement: command.After, Allowed: true}, 2, "▼", true},
		{"before", editor.DropIndicator{Source: "C", Over: "A", Placement: command.Before, Allowed: true}, 0, "▲", true},
		{"refused", editor.DropIndicator{Source: "A", Over: "B", Placement: command.After, Allowed: false}, 1, "▼", false},
	}

	th := DefaultTheme()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, be, _ := setup(t, 20, 6, outline())
			r.SetDropSource(fakeDrops{ind: tt.ind})
			r.Render()

			c := be.GetCell(0, tt.row)
			if c.Text != tt.glyph {
				t.Errorf("expected %s on row %d, got %q", tt.glyph, tt.row, c.Text)
			}
			want := th.Drop
			if !tt.allowed {
				want = th.Refused
			}
			if c.Style != want {
				t.Errorf("expected indicator style %+v, got %+v", want, c.Style)
			}
		})
	}
}

func TestPromptTakesCaret(t *testing.T) {
	r, be, tr := setup(t, 30, 4, outline())
	tr.Focus("A", 0)

	h := input.NewHandler(nil)
	h.OpenPrompt("Turn into", "block.turnInto")
	r.SetPromptSource(h)
	r.Render()

	if got := be.Row(3); got != "Turn into:" {
		t.Errorf("expected prompt line, got %q", got)
	}
	if x, y, _ := be.Cursor(); x != 11 || y != 3 {
		t.Errorf("expected caret in the prompt at 11,3, got %d,%d", x, y)
	}
}

func TestHeadingLevelMarker(t *testing.T) {
	h := mk("H", schema.TypeHeading, 0, "Title")
	h.Attrs = block.Attrs{"level": 2}
	r, be, _ := setup(t, 20, 3, block.Sequence{h})
	r.Render()

	if got := be.Row(0); got != "⠿ ## Title" {
		t.Errorf("expected level 2 heading, got %q", got)
	}
}

func TestThemeFromConfigRejectsBadColour(t *testing.T) {
	tc := config.Default().Theme
	if _, err := ThemeFromConfig(tc); err != nil {
		t.Fatalf("expected default theme to parse, got %v", err)
	}

	tc.Accent = "teal"
	if _, err := ThemeFromConfig(tc); err == nil {
		t.Error("expected error for a non-hex colour")
	}
}
