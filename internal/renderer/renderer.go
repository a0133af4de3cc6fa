package renderer

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/paper/internal/config"
	"github.com/dshills/paper/internal/dispatcher/handlers/editor"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/input"
	"github.com/dshills/paper/internal/input/mouse"
	"github.com/dshills/paper/internal/renderer/backend"
	"github.com/dshills/paper/internal/renderer/core"
	"github.com/dshills/paper/internal/renderer/statusline"
	"github.com/dshills/paper/internal/renderer/viewport"
)

// CursorSource provides the caret to draw.
type CursorSource interface {
	Get() cursor.Cursor
}

// DropSource provides the drag in progress.
type DropSource interface {
	Indicator() (editor.DropIndicator, bool)
}

// PromptSource provides the open prompt, if any.
type PromptSource interface {
	Prompt() *input.Prompt
}

// Options configures the renderer.
type Options struct {
	// IndentWidth is the number of columns per indent level.
	IndentWidth int

	// ShowHandles draws the drag handle column.
	ShowHandles bool

	// ScrollMargin is the number of rows kept visible around a revealed
	// block.
	ScrollMargin int

	Theme Theme
}

// DefaultOptions returns the default renderer options.
func DefaultOptions() Options {
	return Options{
		IndentWidth:  2,
		ShowHandles:  true,
		ScrollMargin: 1,
		Theme:        DefaultTheme(),
	}
}

// OptionsFromConfig builds options from the editor and theme sections.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	th, err := ThemeFromConfig(cfg.Theme)
	if err != nil {
		return Options{}, err
	}
	opts := DefaultOptions()
	opts.IndentWidth = max(cfg.Editor.IndentWidth, 1)
	opts.ShowHandles = cfg.Editor.ShowHandles
	opts.Theme = th
	return opts, nil
}

// Renderer draws committed snapshots of a paper.
type Renderer struct {
	mu sync.Mutex

	backend backend.Backend
	schema  *schema.Registry
	cursor  CursorSource
	drops   DropSource
	prompt  PromptSource
	opts    Options
	logger  zerolog.Logger

	blocks block.Sequence
	layout *layout
	stale  bool

	view   *viewport.Viewport
	status *statusline.StatusLine

	width, height int
	reveal        block.ID
	frames        uint64
}

// New creates a renderer drawing on be.
func New(be backend.Backend, reg *schema.Registry, cur CursorSource, opts Options) *Renderer {
	w, h := be.Size()
	r := &Renderer{
		backend: be,
		schema:  reg,
		cursor:  cur,
		opts:    opts,
		logger:  zerolog.Nop(),
		view:    viewport.New(max(h-1, 0)),
		status:  statusline.New(opts.Theme.Status),
		width:   w,
		height:  h,
		stale:   true,
	}
	r.view.SetMargin(opts.ScrollMargin)
	return r
}

// SetLogger sets the logger.
func (r *Renderer) SetLogger(logger zerolog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// SetDropSource sets where drop indicators come from.
func (r *Renderer) SetDropSource(src DropSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drops = src
}

// SetPromptSource sets where the prompt comes from.
func (r *Renderer) SetPromptSource(src PromptSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompt = src
}

// SetSchema replaces the schema registry, as a config reload does.
func (r *Renderer) SetSchema(reg *schema.Registry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schema = reg
	r.stale = true
}

// SetOptions replaces the options.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
	r.status.SetStyles(opts.Theme.Status)
	r.view.SetMargin(opts.ScrollMargin)
	r.stale = true
}

// SetBlocks replaces the sequence to draw.
func (r *Renderer) SetBlocks(seq block.Sequence) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = seq
	r.stale = true
}

// OnChange is a paper listener.
func (r *Renderer) OnChange(change paper.Change) {
	r.SetBlocks(change.Blocks)
}

// SetMessage shows a message on the status line. An empty message clears
// it.
func (r *Renderer) SetMessage(msg string, isError bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case msg == "":
		r.status.ClearMessage()
	case isError:
		r.status.SetMessage(msg, statusline.MessageError)
	default:
		r.status.SetMessage(msg, statusline.MessageInfo)
	}
}

// Message returns the status line message.
func (r *Renderer) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status.Message()
}

// Redraw marks the view for a full redraw.
func (r *Renderer) Redraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale = true
}

// ScrollBy scrolls the view by lines, negative is up.
func (r *Renderer) ScrollBy(lines int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLayout()
	r.view.ScrollBy(lines)
}

// Reveal scrolls until the block is visible. The block may not be laid
// out yet, so the scroll happens on the next Render.
func (r *Renderer) Reveal(id block.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reveal = id
}

// PageHeight returns the number of document rows on screen.
func (r *Renderer) PageHeight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view.Height()
}

// Top returns the first visible layout row.
func (r *Renderer) Top() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view.Top()
}

// Frames returns the number of frames rendered.
func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// HitTest maps a screen position to a block.
func (r *Renderer) HitTest(pos mouse.Position) (mouse.Hit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLayout()

	if pos.Y < 0 || pos.Y >= r.view.Height() {
		return mouse.Hit{}, false
	}
	i := r.view.FromScreen(pos.Y)
	if i >= len(r.layout.rows) {
		return mouse.Hit{}, false
	}
	row := r.layout.rows[i]

	if r.opts.ShowHandles && pos.X < handleWidth {
		return mouse.Hit{Block: row.block, Region: mouse.RegionHandle}, true
	}
	return mouse.Hit{Block: row.block, Region: mouse.RegionText, Offset: r.layout.offsetAt(i, pos.X)}, true
}

func (r *Renderer) ensureLayout() {
	w, h := r.backend.Size()
	if w != r.width || h != r.height {
		r.logger.Debug().Int("width", w).Int("height", h).Msg("resize")
		r.width, r.height = w, h
		r.view.Resize(max(h-1, 0))
		r.stale = true
	}
	if !r.stale && r.layout != nil {
		return
	}
	r.layout = buildLayout(r.blocks, r.schema, r.opts, r.width)
	r.view.SetRows(len(r.layout.rows))
	r.stale = false
}

// Render draws a frame.
func (r *Renderer) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureLayout()
	if !r.reveal.IsZero() {
		if br, ok := r.layout.rowsOf(r.reveal); ok {
			r.view.EnsureVisible(br.start, br.end)
		}
		r.reveal = ""
	}

	r.backend.Clear()

	var cur cursor.Cursor
	if r.cursor != nil {
		cur = r.cursor.Get()
	}

	for y := 0; y < r.view.Height(); y++ {
		i := r.view.FromScreen(y)
		if i >= len(r.layout.rows) {
			break
		}
		r.drawRow(y, r.layout.rows[i], cur)
	}
	r.drawDrop()

	caretPlaced := r.drawStatus(cur)
	if !caretPlaced {
		r.placeCaret(cur)
	}

	r.backend.Show()
	r.frames++
}

func (r *Renderer) drawRow(y int, row row, cur cursor.Cursor) {
	th := r.opts.Theme
	if r.opts.ShowHandles && row.first {
		r.backend.SetCell(0, y, core.NewCell(handleText, th.Handle))
	}

	x := row.indentX
	if row.first {
		for _, c := range row.marker {
			r.putCell(&x, y, c)
		}
	}
	if row.structural {
		// Dividers run to the right edge.
		if strings.HasSuffix(core.StringFromCells(row.marker), "─ ") {
			fill := core.NewCell("─", th.Marker)
			for x--; x < r.width; x++ {
				r.backend.SetCell(x, y, fill)
			}
		}
		return
	}

	x = row.textX
	var lo, hi int
	selected := cur.Block == row.block && !cur.Collapsed()
	if selected {
		lo, hi = cur.Selection.Min(), cur.Selection.Max()
	}
	for j, c := range row.text {
		if selected && row.offsets[j] >= lo && row.offsets[j] < hi {
			c.Style = th.Selection
		}
		r.putCell(&x, y, c)
	}
}

func (r *Renderer) putCell(x *int, y int, c core.Cell) {
	if *x < r.width {
		r.backend.SetCell(*x, y, c)
	}
	*x++
}

func (r *Renderer) drawDrop() {
	if r.drops == nil {
		return
	}
	ind, ok := r.drops.Indicator()
	if !ok {
		return
	}
	th := r.opts.Theme

	if br, ok := r.layout.rowsOf(ind.Source); ok {
		if y, visible := r.view.ToScreen(br.start); visible {
			r.backend.SetCell(0, y, core.NewCell(handleText, th.Drop))
		}
	}
	if ind.Over.IsZero() {
		return
	}
	br, ok := r.layout.rowsOf(ind.Over)
	if !ok {
		return
	}

	style := th.Drop
	if !ind.Allowed {
		style = th.Refused
	}
	i, glyph := br.start, "▲"
	if ind.Placement == command.After {
		i, glyph = br.end-1, "▼"
	}
	if y, visible := r.view.ToScreen(i); visible {
		r.backend.SetCell(0, y, core.NewCell(glyph, style))
	}
}

// drawStatus draws the status line and reports whether it placed the
// caret.
func (r *Renderer) drawStatus(cur cursor.Cursor) bool {
	if r.height < 1 {
		return false
	}

	label, position := "", 0
	if i := r.blocks.IndexOf(cur.Block); i >= 0 {
		position = i + 1
		label = string(r.blocks[i].Type)
		if r.schema != nil {
			if def, err := r.schema.Find(r.blocks[i].Type); err == nil {
				label = def.DisplayLabel()
			}
		}
	}
	r.status.SetBlock(label, position, len(r.blocks))

	r.status.ClearPrompt()
	if r.prompt != nil {
		if p := r.prompt.Prompt(); p != nil {
			r.status.SetPrompt(p.Label, p.Buffer(), p.CursorPos())
		}
	}
	return r.status.Render(r.backend, r.height-1, r.width)
}

func (r *Renderer) placeCaret(cur cursor.Cursor) {
	if cur.IsZero() {
		r.backend.HideCursor()
		return
	}
	i, x, ok := r.layout.caretRow(cur.Block, cur.Offset())
	if !ok || x >= r.width {
		r.backend.HideCursor()
		return
	}
	y, visible := r.view.ToScreen(i)
	if !visible {
		r.backend.HideCursor()
		return
	}
	r.backend.ShowCursor(x, y)
}
