package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds one script call when no timeout is configured.
const DefaultTimeout = time.Second

// unsafeGlobals are removed from every state. They load code from disk or
// from strings, which would bypass the sandbox.
var unsafeGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// State is a sandboxed Lua state.
//
// gopher-lua's LState is not goroutine-safe. State serializes Go callers,
// but Lua callbacks run on the calling goroutine and must not call back
// into State.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	logger  zerolog.Logger
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the limit of one call. Zero or less disables it.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithStateLogger routes print output and errors to logger.
func WithStateLogger(logger zerolog.Logger) StateOption {
	return func(s *State) {
		s.logger = logger
	}
}

// NewState creates a sandboxed state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	for _, name := range unsafeGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(s.print))
	return s
}

// openSafeLibraries opens the libraries that cannot reach the host.
// io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// print logs its arguments instead of writing to stdout, which belongs
// to the terminal UI.
func (s *State) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	s.logger.Info().Msg(strings.Join(parts, "\t"))
	return 0
}

// DoFile runs a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(func(L *lua.LState) error {
		fn, err := L.LoadFile(path)
		if err != nil {
			return err
		}
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
	})
}

// DoString runs a chunk of Lua source.
func (s *State) DoString(source string) error {
	return s.run(func(L *lua.LState) error {
		fn, err := L.LoadString(source)
		if err != nil {
			return err
		}
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
	})
}

// Call calls fn with args converted to Lua values and returns its first
// result converted back to Go, or nil when it returns nothing.
func (s *State) Call(fn *lua.LFunction, args ...any) (any, error) {
	var ret any
	err := s.run(func(L *lua.LState) error {
		largs := make([]lua.LValue, len(args))
		for i, a := range args {
			largs[i] = toLua(L, a)
		}
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, largs...); err != nil {
			return err
		}
		ret = fromLua(L.Get(-1))
		return nil
	})
	return ret, err
}

// run executes fn under the lock with the time limit installed. Panics
// raised by Go callbacks are turned into errors.
func (s *State) run(fn func(L *lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer func() {
			s.L.RemoveContext()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && err != nil {
				err = fmt.Errorf("%w after %s: %v", ErrTimeout, s.timeout, err)
			}
		}()
	}

	top := s.L.GetTop()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		s.L.SetTop(top)
	}()
	return fn(s.L)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// GetGlobal returns a global variable.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// RegisterModule installs a global table of functions.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.L.SetGlobal(name, s.L.SetFuncs(s.L.NewTable(), funcs))
}

// Close releases the state. Later calls return ErrStateClosed.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
