// Package dispatcher routes actions to handlers and coordinates execution.
package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/dispatcher/hook"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/input"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	router   *Router

	// Editor subsystems
	paper    *paper.Paper
	schema   *schema.Registry
	cursor   execctx.CursorInterface
	loop     execctx.LoopInterface
	renderer execctx.RendererInterface

	config  Config
	logger  zerolog.Logger
	metrics *Metrics

	preHooks    []PreDispatchHook
	postHooks   []PostDispatchHook
	hookManager *hook.Manager

	// Async dispatch
	actionChan chan input.Action
	resultChan chan handler.Result
	done       chan struct{}
	stopOnce   sync.Once
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger.With().Str("component", "dispatcher").Logger()
	}
}

// New creates a new dispatcher with the given configuration.
func New(config Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		config:   config,
		logger:   zerolog.Nop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}

	if config.AsyncDispatch {
		size := config.ActionBufferSize
		if size <= 0 {
			size = 64
		}
		d.actionChan = make(chan input.Action, size)
		d.resultChan = make(chan handler.Result, size)
	}

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetPaper sets the document.
func (d *Dispatcher) SetPaper(p *paper.Paper) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.paper = p
}

// SetSchema sets the schema registry. A config reload may swap it.
func (d *Dispatcher) SetSchema(reg *schema.Registry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.schema = reg
}

// SetCursor sets the caret.
func (d *Dispatcher) SetCursor(c execctx.CursorInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursor = c
}

// SetLoop sets the task loop used for deferred focus and async dispatch.
func (d *Dispatcher) SetLoop(l execctx.LoopInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loop = l
}

// SetRenderer sets the renderer.
func (d *Dispatcher) SetRenderer(r execctx.RendererInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renderer = r
}

// Paper returns the document.
func (d *Dispatcher) Paper() *paper.Paper {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.paper
}

// Schema returns the schema registry.
func (d *Dispatcher) Schema() *schema.Registry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.schema
}

// Cursor returns the caret.
func (d *Dispatcher) Cursor() execctx.CursorInterface {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursor
}

// Dispatch executes an action synchronously. It must run on the goroutine
// that owns the paper.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	start := time.Now()

	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	ctx := d.buildContext(action)

	if name, ok := d.runPreHooks(&action, ctx); !ok {
		r := handler.CancelledWithMessage("cancelled by hook " + name)
		r.Error = fmt.Errorf("%w: %s", ErrActionCancelled, name)
		d.record(action.Name, start, r.Status)
		return r
	}

	h := d.router.Route(action.Name)
	if h == nil {
		h = d.registry.Get(action.Name)
	}
	if h == nil {
		r := handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
		d.record(action.Name, start, r.Status)
		return r
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	d.processResult(result, ctx)
	d.runPostHooks(&action, ctx, &result)
	d.record(action.Name, start, result.Status)

	return result
}

func (d *Dispatcher) record(name string, start time.Time, status handler.ResultStatus) {
	if d.metrics != nil {
		d.metrics.RecordDispatch(name, time.Since(start), status)
	}
}

// executeWithRecovery executes a handler and turns a panic into an error
// result. Writes staged by the panicking handler are discarded by the
// paper's transaction.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			d.logger.Error().
				Str("action", action.Name).
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", stack[:n]).
				Msg("handler panicked")

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext resolves the action's target. An action naming a block
// targets it with a caret at its offset, or a selection when an "anchor"
// argument is present; otherwise the action targets the
// caret's block and selection.
func (d *Dispatcher) buildContext(action input.Action) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := execctx.New().
		WithPaper(d.paper).
		WithSchema(d.schema).
		WithCursor(d.cursor).
		WithLoop(d.loop).
		WithRenderer(d.renderer).
		WithCount(action.Count)
	ctx.Source = action.Source

	if d.cursor != nil {
		cur := d.cursor.Get()
		ctx.Block = cur.Block
		ctx.Selection = cur.Selection
	}
	if !action.Args.Block.IsZero() && action.Args.Block != ctx.Block {
		ctx.Block = action.Args.Block
		ctx.Selection = command.Caret(0)
	}
	if action.Args.Offset >= 0 && !action.Args.Block.IsZero() {
		ctx.Selection = command.Caret(action.Args.Offset)
		if _, ok := action.Args.Get("anchor"); ok {
			ctx.Selection.AnchorOffset = action.Args.GetInt("anchor")
		}
	}
	return ctx
}

// processResult applies the caret and view requests of a result. Failed
// and cancelled results leave the caret alone.
func (d *Dispatcher) processResult(result handler.Result, ctx *execctx.ExecutionContext) {
	applied := result.Status == handler.StatusOK || result.Status == handler.StatusNoOp
	if f := result.Focus; f != nil && applied && ctx.Cursor != nil {
		focus := *f
		switch {
		case focus.AfterRender && ctx.Loop != nil:
			cur := ctx.Cursor
			ctx.Loop.AfterRender(func(change paper.Change) {
				if c, ok := focus.Resolve(change.Blocks); ok {
					cur.Set(c)
				}
			})
		case ctx.Paper != nil:
			if c, ok := focus.Resolve(ctx.Paper.Blocks()); ok {
				ctx.Cursor.Set(c)
			}
		}
	}

	if ctx.Renderer == nil {
		return
	}
	vu := result.ViewUpdate
	if vu.ScrollBy != 0 {
		ctx.Renderer.ScrollBy(vu.ScrollBy)
	}
	if !vu.Reveal.IsZero() {
		ctx.Renderer.Reveal(vu.Reveal)
	} else if result.Focus != nil && !result.Focus.AfterRender {
		ctx.Renderer.Reveal(result.Focus.Block)
	}
	if vu.Redraw {
		ctx.Renderer.Redraw()
	}
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn handler.Func) {
	d.registry.Register(actionName, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.RegisterNamespace(namespace, h)
}

// UnregisterHandler removes a handler for an action name.
func (d *Dispatcher) UnregisterHandler(actionName string) {
	d.registry.Unregister(actionName)
}

// CanDispatch reports whether some handler accepts actionName.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	return d.router.CanRoute(actionName) || d.registry.Has(actionName)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(h PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, h)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(h PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, h)
}

// runPreHooks runs the hook manager, then the simple hooks. It returns
// false and the cancelling hook's name when a hook cancels.
func (d *Dispatcher) runPreHooks(action *input.Action, ctx *execctx.ExecutionContext) (string, bool) {
	d.mu.RLock()
	manager := d.hookManager
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	if manager != nil {
		if name := manager.RunPreDispatch(action, ctx); name != "" {
			return name, false
		}
	}
	for i, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return fmt.Sprintf("#%d", i), false
		}
	}
	return "", true
}

// runPostHooks runs the simple hooks, then the hook manager.
func (d *Dispatcher) runPostHooks(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	manager := d.hookManager
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
	if manager != nil {
		manager.RunPostDispatch(action, ctx, result)
	}
}

// Start starts the async dispatch loop (if enabled). Queued actions are
// posted to the task loop so that they run on the paper's goroutine.
func (d *Dispatcher) Start() {
	if !d.config.AsyncDispatch {
		return
	}
	go d.dispatchLoop()
}

// Stop stops the async dispatch loop. It is safe to call more than once.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
}

// Enqueue queues an action for async dispatch without blocking.
func (d *Dispatcher) Enqueue(action input.Action) error {
	if d.actionChan == nil {
		return ErrAsyncNotEnabled
	}
	select {
	case <-d.done:
		return ErrDispatcherStopped
	default:
	}
	select {
	case d.actionChan <- action:
		return nil
	default:
		return fmt.Errorf("%w: queue full", ErrDispatcherBusy)
	}
}

func (d *Dispatcher) dispatchLoop() {
	for {
		select {
		case action := <-d.actionChan:
			d.mu.RLock()
			l := d.loop
			d.mu.RUnlock()

			run := func() { d.publish(d.Dispatch(action)) }
			if l == nil {
				run()
				continue
			}
			if err := l.Post(run); err != nil {
				d.publish(handler.Error(fmt.Errorf("%w: %w", ErrDispatcherStopped, err)))
			}
		case <-d.done:
			return
		}
	}
}

func (d *Dispatcher) publish(r handler.Result) {
	select {
	case d.resultChan <- r:
	default:
		d.logger.Warn().Str("status", r.Status.String()).Msg("result channel full, dropping result")
	}
}

// Results returns the result channel for async dispatch, or nil when async
// dispatch is disabled.
func (d *Dispatcher) Results() <-chan handler.Result {
	return d.resultChan
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Router returns the action router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// SetHookManager sets the hook manager.
func (d *Dispatcher) SetHookManager(manager *hook.Manager) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hookManager = manager
}
