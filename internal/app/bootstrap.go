package app

import (
	"github.com/dshills/paper/internal/config"
	"github.com/dshills/paper/internal/dispatcher"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/engine/loop"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/input"
	"github.com/dshills/paper/internal/input/keymap"
	"github.com/dshills/paper/internal/logging"
	"github.com/dshills/paper/internal/script"
)

// bootstrap initializes the components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration
	path := app.opts.ConfigPath
	var loadOpts []config.Option
	if path == "" {
		path = config.DefaultPath()
		loadOpts = append(loadOpts, config.Optional())
	}
	if app.opts.Environ != nil {
		loadOpts = append(loadOpts, config.WithEnvironment(app.opts.Environ))
	}
	configs, err := config.NewManager(path, config.WithLoadOptions(loadOpts...))
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.configs = configs
	cfg := configs.Config()

	// 2. Logger
	if err := app.initLogger(cfg); err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	configs.SetLogger(app.logger)
	app.logger.Info().Str("config", cfg.Source).Msg("starting")

	// 3. Schema
	reg, err := cfg.Registry()
	if err != nil {
		return &InitError{Component: "schema", Err: err}
	}
	app.schema = reg

	// 4. Paper, seeded from the config or the welcome outline
	seq, err := cfg.Sequence(reg)
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	if len(seq) == 0 {
		seq = welcomeOutline(reg)
	}
	app.paper, err = paper.New(seq, paper.WithLogger(logging.Component(app.logger, "paper")))
	if err != nil {
		return &InitError{Component: "paper", Err: err}
	}

	// 5. Caret and task loop
	app.cursor = cursor.NewTracker()
	app.cursor.Sync(app.paper.Committed())
	app.loop = loop.New(app.paper, loop.WithLogger(logging.Component(app.logger, "loop")))

	// 6. Dispatcher. The renderer joins in Run.
	sc := dispatcher.DefaultSystemConfig()
	sc.Logger = logging.Component(app.logger, "dispatcher")
	sc.DispatcherConfig = sc.DispatcherConfig.WithAsyncDispatch(8)
	app.system = dispatcher.NewSystem(sc)
	app.system.SetSubsystems(app.paper, reg, app.cursor, app.loop, nil)
	app.registerHandlers()

	// 7. Input
	app.keymaps = keymap.NewRegistry()
	if err := cfg.ApplyKeymap(app.keymaps); err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	app.input = input.NewHandler(app.keymaps)

	// 8. Scripts
	if cfg.Scripts.Enabled {
		opts := append(script.OptionsFromConfig(cfg.Scripts),
			script.WithLogger(logging.Component(app.logger, "script")))
		app.scripts = script.New(app.paper, app.system, opts...)
		paths := append(append([]string(nil), cfg.Scripts.Paths...), cfg.Editor.StartupScript)
		if err := app.scripts.LoadAll(paths...); err != nil {
			// A broken script must not keep the editor from starting.
			app.logger.Warn().Err(err).Msg("scripts failed to load")
		}
	}

	app.subscribe()
	return nil
}

// initLogger builds the logger from the logging section. The -log-level
// flag wins over the file.
func (app *Application) initLogger(cfg *config.Config) error {
	lc := cfg.Logging.Logging()
	if app.opts.LogLevel != "" {
		lc.Level = app.opts.LogLevel
	}
	b := logging.New(lc)
	if app.opts.LogWriter != nil {
		b.ToWriter(app.opts.LogWriter)
	}
	l, err := b.Make()
	if err != nil {
		return err
	}
	app.log = l
	app.logger = l.Logger
	return nil
}
