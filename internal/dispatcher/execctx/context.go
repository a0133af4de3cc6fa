// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/input"
)

// CursorInterface abstracts the caret for handlers.
type CursorInterface interface {
	Get() cursor.Cursor
	Set(c cursor.Cursor)
}

// LoopInterface abstracts the task loop for handlers.
type LoopInterface interface {
	// Post enqueues fn to run on the loop goroutine.
	Post(fn func()) error

	// AfterRender runs fn once the next commit has been rendered.
	AfterRender(fn func(paper.Change))
}

// RendererInterface abstracts view operations for handlers.
type RendererInterface interface {
	// Redraw marks the whole view dirty.
	Redraw()

	// ScrollBy scrolls the view by lines, negative is up.
	ScrollBy(lines int)

	// Reveal scrolls the view until the block is visible.
	Reveal(id block.ID)
}

// ExecutionContext provides context for action execution.
// It contains references to every subsystem a handler may touch.
type ExecutionContext struct {
	// Paper holds the document being edited.
	Paper *paper.Paper

	// Schema resolves block types.
	Schema *schema.Registry

	// Cursor provides the caret.
	Cursor CursorInterface

	// Loop runs deferred work after render.
	Loop LoopInterface

	// Renderer provides view operations.
	Renderer RendererInterface

	// Block is the target of the action. Zero when nothing is focused.
	Block block.ID

	// Selection is the selection inside Block.
	Selection command.Selection

	// Source is where the action came from.
	Source input.ActionSource

	// Count is the repeat count (1 if not specified).
	Count int

	// Data holds handler-specific context data.
	Data map[string]any
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Count: 1,
		Data:  make(map[string]any),
	}
}

// WithPaper returns the context with the paper set.
func (ctx *ExecutionContext) WithPaper(p *paper.Paper) *ExecutionContext {
	ctx.Paper = p
	return ctx
}

// WithSchema returns the context with the schema registry set.
func (ctx *ExecutionContext) WithSchema(reg *schema.Registry) *ExecutionContext {
	ctx.Schema = reg
	return ctx
}

// WithCursor returns the context with the caret set.
func (ctx *ExecutionContext) WithCursor(c CursorInterface) *ExecutionContext {
	ctx.Cursor = c
	return ctx
}

// WithLoop returns the context with the loop set.
func (ctx *ExecutionContext) WithLoop(l LoopInterface) *ExecutionContext {
	ctx.Loop = l
	return ctx
}

// WithRenderer returns the context with the renderer set.
func (ctx *ExecutionContext) WithRenderer(r RendererInterface) *ExecutionContext {
	ctx.Renderer = r
	return ctx
}

// WithTarget returns the context targeting id with sel.
func (ctx *ExecutionContext) WithTarget(id block.ID, sel command.Selection) *ExecutionContext {
	ctx.Block = id
	ctx.Selection = sel
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Current returns the target block as the paper currently holds it.
func (ctx *ExecutionContext) Current() (block.Block, bool) {
	if ctx.Paper == nil || ctx.Block.IsZero() {
		return block.Block{}, false
	}
	return ctx.Paper.Find(ctx.Block)
}

// Command returns a command context for the target and selection.
func (ctx *ExecutionContext) Command() command.Context {
	return command.NewContext(ctx.Paper, ctx.Schema, ctx.Block, ctx.Selection)
}

// IsDefaultType reports whether b has the registry's default type.
func (ctx *ExecutionContext) IsDefaultType(b block.Block) bool {
	if ctx.Schema == nil {
		return false
	}
	def := ctx.Schema.DefaultSchema()
	return def != nil && def.Type == b.Type
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (ctx *ExecutionContext) GetDataString(key string) string {
	if v, ok := ctx.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetDataBool retrieves a bool value from context data.
func (ctx *ExecutionContext) GetDataBool(key string) bool {
	if v, ok := ctx.GetData(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Paper == nil {
		return ErrMissingPaper
	}
	return nil
}

// ValidateForEdit checks that the context can run commands.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Schema == nil {
		return ErrMissingSchema
	}
	return nil
}
