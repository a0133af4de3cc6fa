package app

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/dispatcher/handlers/editor"
	"github.com/dshills/paper/internal/input"
	"github.com/dshills/paper/internal/input/key"
	"github.com/dshills/paper/internal/input/mouse"
	"github.com/dshills/paper/internal/logging"
	"github.com/dshills/paper/internal/renderer"
	"github.com/dshills/paper/internal/renderer/backend"
)

// Run initializes the backend and runs the event loop until the user
// quits, Shutdown is called or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	be := app.backend
	app.mu.RUnlock()
	if be == nil {
		return ErrNoBackend
	}

	if err := be.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer be.Shutdown()
	if err := app.attach(be); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.system.Start()
	defer app.system.Stop()
	if err := app.configs.Watch(ctx, app.requestReload); err != nil {
		app.logger.Warn().Err(err).Msg("config watch unavailable")
	}

	events := make(chan tcell.Event, 16)
	go poll(ctx, be, events)

	app.frame()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.HandleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		case <-app.loop.Wake():
			if app.loop.Drain() > 0 {
				app.frame()
			}
		case r := <-app.system.Results():
			// Queued actions ran on the task loop; only their outcome is left.
			if errors.Is(app.apply("queued", r), ErrQuit) {
				return nil
			}
			app.frame()
		}
	}
}

// poll forwards backend events until the backend shuts down.
func poll(ctx context.Context, be backend.Backend, out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := be.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// attach creates the renderer for be and connects it to the dispatcher,
// the paper and the mouse.
func (app *Application) attach(be backend.Backend) error {
	cfg := app.configs.Config()
	opts, err := renderer.OptionsFromConfig(cfg)
	if err != nil {
		return &InitError{Component: "renderer", Err: err}
	}

	r := renderer.New(be, app.Schema(), app.cursor, opts)
	r.SetLogger(logging.Component(app.logger, "renderer"))
	r.SetDropSource(app.system.Drag())
	r.SetPromptSource(app.input)
	r.SetBlocks(app.paper.Committed())
	app.paper.Subscribe(r.OnChange)
	app.system.SetRenderer(r)

	app.mu.Lock()
	app.backend = be
	app.renderer = r
	app.mouse = mouse.NewHandler(mouse.DefaultConfig(), r)
	app.mu.Unlock()

	if cfg.Editor.Mouse {
		be.EnableMouse()
	}
	return nil
}

// HandleEvent processes one terminal event and renders the resulting
// frame. It returns ErrQuit when the user asked to quit.
func (app *Application) HandleEvent(ev tcell.Event) error {
	var err error
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if a := app.input.HandleKey(key.FromTcell(ev)); a != nil {
			err = app.dispatch(*a)
		}
	case *tcell.EventMouse:
		if app.mouse != nil && app.configs.Config().Editor.Mouse {
			if a := app.mouse.Handle(app.decoder.Decode(ev)); a != nil {
				err = app.dispatch(*a)
			}
		}
	case *tcell.EventResize:
		if app.renderer != nil {
			app.renderer.Redraw()
		}
	}
	app.frame()
	return err
}

// Dispatch runs an action as if it came from input and renders the frame.
func (app *Application) Dispatch(a input.Action) error {
	err := app.dispatch(a)
	app.frame()
	return err
}

// dispatch runs an action and applies the parts of its result the
// dispatcher leaves to the host: prompts, status messages and quitting.
func (app *Application) dispatch(a input.Action) error {
	return app.apply(a.Name, app.system.Dispatch(a))
}

// apply handles the result of the named action.
func (app *Application) apply(name string, r handler.Result) error {
	if r.GetDataBool(dataQuit) {
		return ErrQuit
	}
	if label := r.GetDataString(editor.DataPrompt); label != "" {
		app.input.OpenPrompt(label, r.GetDataString(editor.DataPromptAction))
	}
	app.report(name, r)
	return nil
}

// report shows a result's message, or its error, on the status line.
func (app *Application) report(name string, r handler.Result) {
	switch {
	case r.Status == handler.StatusError:
		app.logger.Debug().Err(r.Error).Str("action", name).Msg("action failed")
		if app.renderer != nil && r.Error != nil {
			app.renderer.SetMessage(r.Error.Error(), true)
		}
	case r.Message != "":
		if app.renderer != nil {
			app.renderer.SetMessage(r.Message, false)
		}
	}
}

// frame commits the staged writes, syncs the caret against the committed
// snapshot, runs deferred focus callbacks and renders.
func (app *Application) frame() {
	app.paper.Commit()
	app.cursor.Sync(app.paper.Committed())
	app.loop.Drain()
	if app.renderer != nil {
		app.renderer.Render()
	}
}
