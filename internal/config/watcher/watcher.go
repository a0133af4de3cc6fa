// Package watcher reports changes to a single configuration file.
//
// Editors usually save by writing a temporary file and renaming it over
// the original, which removes the inode fsnotify was watching. The
// watcher therefore watches the file's directory and filters events by
// name. Bursts of events are debounced into one.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Op describes what happened to the file.
type Op uint8

const (
	OpWrite Op = 1 << iota
	OpCreate
	OpRemove
	OpRename
)

// String returns the operations as a "|"-separated list.
func (o Op) String() string {
	var s string
	for _, p := range []struct {
		op   Op
		name string
	}{{OpWrite, "write"}, {OpCreate, "create"}, {OpRemove, "remove"}, {OpRename, "rename"}} {
		if o&p.op != 0 {
			if s != "" {
				s += "|"
			}
			s += p.name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

// Event is a debounced change to the watched file.
type Event struct {
	Path string
	// Op combines every operation seen during the debounce window.
	Op   Op
	Time time.Time
}

// Config configures a watcher.
type Config struct {
	// Debounce is how long the file must be quiet before an event fires.
	Debounce time.Duration
	// BufferSize is the capacity of the event channel.
	BufferSize int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Debounce:   100 * time.Millisecond,
		BufferSize: 16,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.Debounce = d
	}
}

// Stats holds watcher statistics.
type Stats struct {
	Raw       int64
	Delivered int64
	Errors    int64
}

// Watcher watches one file.
type Watcher struct {
	path   string
	config Config
	fsw    *fsnotify.Watcher

	mu      sync.Mutex
	pending Op
	timer   *time.Timer
	closed  bool

	events  chan Event
	errors  chan error
	closeCh chan struct{}
	wg      sync.WaitGroup

	raw, delivered, errCount atomic.Int64
}

// New starts watching path. The file need not exist yet but its
// directory must.
func New(path string, opts ...Option) (*Watcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 1
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		config:  config,
		fsw:     fsw,
		events:  make(chan Event, config.BufferSize),
		errors:  make(chan error, config.BufferSize),
		closeCh: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stats returns watcher statistics.
func (w *Watcher) Stats() Stats {
	return Stats{
		Raw:       w.raw.Load(),
		Delivered: w.delivered.Load(),
		Errors:    w.errCount.Load(),
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.errCount.Add(1)
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}
	w.raw.Add(1)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending |= op
	if w.timer == nil {
		w.timer = time.AfterFunc(w.config.Debounce, w.fire)
	} else {
		w.timer.Reset(w.config.Debounce)
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed || w.pending == 0 {
		w.mu.Unlock()
		return
	}
	ev := Event{Path: w.path, Op: w.pending, Time: time.Now()}
	w.pending = 0
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	select {
	case w.events <- ev:
		w.delivered.Add(1)
	case <-w.closeCh:
	}
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
