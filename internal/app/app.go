// Package app wires the outline editor together and runs its event loop.
//
// Startup order is config, logger, schema, paper, cursor, task loop,
// dispatcher, scripts. The renderer is created when Run initializes the
// terminal backend. Every handled event ends with one commit, after which
// the caret is synced, deferred focus callbacks are drained and the frame
// is rendered.
package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dshills/paper/internal/config"
	"github.com/dshills/paper/internal/dispatcher"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/engine/loop"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/input"
	"github.com/dshills/paper/internal/input/keymap"
	"github.com/dshills/paper/internal/input/mouse"
	"github.com/dshills/paper/internal/logging"
	"github.com/dshills/paper/internal/renderer"
	"github.com/dshills/paper/internal/renderer/backend"
	"github.com/dshills/paper/internal/script"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses the per-user
	// default location; a missing default file is not an error.
	ConfigPath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogWriter receives log output in addition to the configured file.
	LogWriter io.Writer

	// Environ replaces the process environment for configuration, for
	// tests. Nil uses the real environment.
	Environ map[string]string
}

// Application is the central coordinator of the editor's components.
type Application struct {
	mu sync.RWMutex

	opts Options

	configs *config.Manager
	log     *logging.Logger
	logger  zerolog.Logger

	schema  *schema.Registry
	paper   *paper.Paper
	cursor  *cursor.Tracker
	loop    *loop.Loop
	system  *dispatcher.System
	keymaps *keymap.Registry
	input   *input.Handler
	mouse   *mouse.Handler
	decoder mouse.Decoder
	scripts *script.Engine

	backend  backend.Backend
	renderer *renderer.Renderer

	// rejected collects the sections the current reload could not apply.
	rejected []error

	done    chan struct{}
	running atomic.Bool
	stop    sync.Once
}

// New creates an application and initializes every component that does
// not need the terminal.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		logger: zerolog.Nop(),
		done:   make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// SetBackend sets the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Shutdown asks a running event loop to return. It is safe to call from
// any goroutine and more than once.
func (app *Application) Shutdown() {
	app.stop.Do(func() { close(app.done) })
}

// Close releases resources in reverse initialization order. Call it once
// Run has returned.
func (app *Application) Close() {
	if app.scripts != nil {
		app.scripts.Close()
	}
	if app.system != nil {
		app.system.Stop()
	}
	if app.loop != nil {
		app.loop.Close()
	}
	if app.paper != nil {
		app.paper.Close()
	}
	if app.configs != nil {
		if err := app.configs.Close(); err != nil {
			app.logger.Warn().Err(err).Msg("config close failed")
		}
	}
	app.logger.Info().Msg("shutdown complete")
	if app.log != nil {
		_ = app.log.Close()
	}
}

// IsRunning reports whether the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the current configuration.
func (app *Application) Config() *config.Config {
	return app.configs.Config()
}

// Paper returns the document.
func (app *Application) Paper() *paper.Paper {
	return app.paper
}

// Cursor returns the caret tracker.
func (app *Application) Cursor() *cursor.Tracker {
	return app.cursor
}

// Schema returns the current schema registry.
func (app *Application) Schema() *schema.Registry {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.schema
}

// System returns the dispatcher system.
func (app *Application) System() *dispatcher.System {
	return app.system
}

// Input returns the key handler.
func (app *Application) Input() *input.Handler {
	return app.input
}

// Scripts returns the script engine, nil when scripting is disabled.
func (app *Application) Scripts() *script.Engine {
	return app.scripts
}

// Renderer returns the renderer, nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}

// Logger returns the application logger.
func (app *Application) Logger() zerolog.Logger {
	return app.logger
}
