// Package loop provides the single-threaded task queue that drives a paper.
//
// Work from other goroutines (terminal input, config reloads) is posted to
// the loop and run by the owning goroutine in Drain. Callbacks registered
// with AfterRender wait for the next commit of the paper and then run with
// the committed snapshot, after every listener of that commit.
package loop

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dshills/paper/internal/engine/paper"
)

// PanicHandler is called when a task panics.
type PanicHandler func(r any, stack []byte)

// Loop is a FIFO task queue bound to one paper.
type Loop struct {
	mu          sync.Mutex
	queue       []func()
	afterRender []func(paper.Change)
	wake        chan struct{}
	closed      bool

	panicHandler PanicHandler
	logger       zerolog.Logger

	// Stats
	posted   atomic.Uint64
	ran      atomic.Uint64
	panicked atomic.Uint64
}

// Option configures a Loop.
type Option func(*Loop)

// WithPanicHandler sets the handler for panicking tasks. The default logs
// the panic and keeps draining.
func WithPanicHandler(h PanicHandler) Option {
	return func(l *Loop) {
		if h != nil {
			l.panicHandler = h
		}
	}
}

// WithLogger sets the loop's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger.With().Str("component", "loop").Logger()
	}
}

// New creates a loop and hooks it into p's commits.
func New(p *paper.Paper, opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.panicHandler == nil {
		l.panicHandler = func(r any, stack []byte) {
			l.logger.Error().Str("panic", fmt.Sprint(r)).Bytes("stack", stack).Msg("task panicked")
		}
	}
	if p != nil {
		p.AfterCommit(l.onCommit)
	}
	return l
}

// Post enqueues fn. It is safe to call from any goroutine.
func (l *Loop) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	l.posted.Add(1)
	l.signal()
	return nil
}

// AfterRender schedules fn to run after the next commit has been delivered
// to every listener. fn receives that commit's snapshot. It must be called
// from the goroutine that drives the paper.
func (l *Loop) AfterRender(fn func(paper.Change)) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.afterRender = append(l.afterRender, fn)
}

// onCommit moves the waiting AfterRender callbacks into the queue, bound to
// the committed snapshot.
func (l *Loop) onCommit(change paper.Change) {
	l.mu.Lock()
	pending := l.afterRender
	l.afterRender = nil
	if l.closed {
		l.mu.Unlock()
		return
	}
	for _, fn := range pending {
		l.queue = append(l.queue, func() { fn(change) })
	}
	l.mu.Unlock()

	if len(pending) > 0 {
		l.posted.Add(uint64(len(pending)))
		l.signal()
	}
}

// Drain runs queued tasks until the queue is empty, including tasks queued
// by the tasks themselves. It returns the number of tasks run.
func (l *Loop) Drain() int {
	n := 0
	for {
		fn, ok := l.pop()
		if !ok {
			return n
		}
		l.run(fn)
		n++
	}
}

func (l *Loop) pop() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.panicked.Add(1)
			l.panicHandler(r, debug.Stack())
		}
	}()
	fn()
	l.ran.Add(1)
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Wake returns a channel that receives a value whenever tasks are queued.
// Hosts select on it alongside their input source and call Drain.
func (l *Loop) Wake() <-chan struct{} {
	return l.wake
}

// Pending returns the number of queued tasks and the number of callbacks
// waiting for a commit.
func (l *Loop) Pending() (queued, waiting int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue), len(l.afterRender)
}

// Close drops every queued task and rejects new ones.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.queue = nil
	l.afterRender = nil
}

// Stats reports loop counters.
type Stats struct {
	Posted   uint64
	Ran      uint64
	Panicked uint64
}

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Posted:   l.posted.Load(),
		Ran:      l.ran.Load(),
		Panicked: l.panicked.Load(),
	}
}
