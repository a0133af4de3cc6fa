package script

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/paper/internal/config"
	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/input"
)

// Namespace is the action namespace of script-registered actions.
const Namespace = "script"

// Dispatcher runs actions and accepts namespace handlers. The dispatcher
// System satisfies it.
type Dispatcher interface {
	Dispatch(action input.Action) handler.Result
	RegisterNamespace(namespace string, h handler.NamespaceHandler)
}

// Engine owns the Lua state and the "script" action namespace.
type Engine struct {
	state      *State
	paper      *paper.Paper
	dispatcher Dispatcher
	actions    *handler.BaseNamespaceHandler
	funcs      map[string]*lua.LFunction
	logger     zerolog.Logger
	timeout    time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCallTimeout bounds each script call. Zero or less disables the limit.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// OptionsFromConfig maps the scripts section onto engine options.
func OptionsFromConfig(cfg config.ScriptsConfig) []Option {
	return []Option{WithCallTimeout(time.Duration(cfg.TimeoutMS) * time.Millisecond)}
}

// New creates an engine editing p through d and registers the "script"
// namespace with d.
func New(p *paper.Paper, d Dispatcher, opts ...Option) *Engine {
	e := &Engine{
		paper:      p,
		dispatcher: d,
		actions:    handler.NewBaseNamespaceHandler(Namespace),
		funcs:      make(map[string]*lua.LFunction),
		logger:     zerolog.Nop(),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.state = NewState(WithTimeout(e.timeout), WithStateLogger(e.logger))
	e.state.RegisterModule("paper", e.api())
	d.RegisterNamespace(Namespace, e.actions)
	return e
}

// LoadFile runs a script file.
func (e *Engine) LoadFile(path string) error {
	if err := e.state.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	e.logger.Info().Str("path", path).Msg("script loaded")
	return nil
}

// LoadString runs Lua source.
func (e *Engine) LoadString(source string) error {
	return e.state.DoString(source)
}

// LoadAll runs every file in order. A failing file is logged and skipped;
// the joined errors are returned.
func (e *Engine) LoadAll(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := e.LoadFile(path); err != nil {
			e.logger.Error().Err(err).Msg("script failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Actions returns the registered action names, sorted.
func (e *Engine) Actions() []string {
	return e.actions.Actions()
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.state.Close()
}

// register binds a Lua function to "script.<name>". Registering a name
// again replaces the function.
func (e *Engine) register(name string, fn *lua.LFunction) error {
	if !validName(name) {
		return fmt.Errorf("invalid action name %q", name)
	}
	e.funcs[name] = fn
	e.actions.Register(Namespace+"."+name, e.runAction(name))
	e.logger.Debug().Str("action", Namespace+"."+name).Msg("script action registered")
	return nil
}

// runAction calls the Lua function behind a script action. The function
// receives {block, offset, count, text}; a string result becomes the
// status message.
func (e *Engine) runAction(name string) handler.Func {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		fn, ok := e.funcs[name]
		if !ok {
			return handler.Error(fmt.Errorf("%w: %s", ErrNoFunction, name))
		}

		before := e.paper.Blocks()
		ret, err := e.state.Call(fn, map[string]any{
			"block":  string(ctx.Block),
			"offset": ctx.Selection.FocusOffset,
			"count":  ctx.GetCount(),
			"text":   action.Args.Text,
		})
		if err != nil {
			e.logger.Error().Err(err).Str("action", action.Name).Msg("script action failed")
			return handler.Error(fmt.Errorf("%s: %w", action.Name, err))
		}

		var result handler.Result
		if changed := block.Diff(before, e.paper.Blocks()); len(changed) > 0 {
			result = handler.Success().WithChanged(changed...).WithRedraw()
		} else {
			result = handler.NoOp()
		}
		if msg, ok := ret.(string); ok {
			result = result.WithMessage(msg)
		}
		return result
	}
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
