package app

import (
	"errors"
	"fmt"

	"github.com/dshills/paper/internal/config"
	"github.com/dshills/paper/internal/config/notify"
	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/input"
	"github.com/dshills/paper/internal/renderer"
)

// subscribe registers the observers that apply a reloaded configuration.
// Reloads run on the event loop goroutine, so observers may touch every
// component directly.
func (app *Application) subscribe() {
	app.configs.SubscribeSection(config.SectionSchema, app.onSchemaChange)
	app.configs.SubscribeSection(config.SectionEditor, app.onSchemaChange)
	app.configs.SubscribeSection(config.SectionEditor, app.onViewChange)
	app.configs.SubscribeSection(config.SectionTheme, app.onViewChange)
	app.configs.SubscribeSection(config.SectionKeymap, app.onKeymapChange)
	app.configs.SubscribeSection(config.SectionLogging, app.onRestartRequired)
	app.configs.SubscribeSection(config.SectionScripts, app.onRestartRequired)
	app.configs.SubscribeSection(config.SectionDocument, app.onRestartRequired)
}

// requestReload queues an app.reload action. It is called from the
// watcher goroutine; the dispatcher posts the action to the task loop.
func (app *Application) requestReload() {
	if err := app.system.Enqueue(input.NewAction(ActionReload, input.SourceAPI)); err != nil {
		app.logger.Debug().Err(err).Msg("reload not queued")
	}
}

// reload re-reads the configuration file. A broken file keeps the current
// configuration; a rejected section keeps its previous value.
func (app *Application) reload(input.Action, *execctx.ExecutionContext) handler.Result {
	app.rejected = nil
	changed, err := app.configs.Reload()
	if err != nil {
		return handler.Error(fmt.Errorf("config: %w", err))
	}
	if len(app.rejected) > 0 {
		return handler.Error(errors.Join(app.rejected...))
	}
	if len(changed) == 0 {
		return handler.NoOp()
	}
	return handler.Success().WithMessage("configuration reloaded").WithRedraw()
}

func (app *Application) onSchemaChange(notify.Change) {
	reg, err := app.configs.Config().Registry()
	if err != nil {
		app.fail("schema", err)
		return
	}
	app.mu.Lock()
	app.schema = reg
	app.mu.Unlock()

	app.system.SetSchema(reg)
	if app.renderer != nil {
		app.renderer.SetSchema(reg)
	}
}

func (app *Application) onViewChange(notify.Change) {
	if app.renderer == nil {
		return
	}
	cfg := app.configs.Config()
	opts, err := renderer.OptionsFromConfig(cfg)
	if err != nil {
		app.fail("theme", err)
		return
	}
	app.renderer.SetOptions(opts)
	if app.backend != nil {
		if cfg.Editor.Mouse {
			app.backend.EnableMouse()
		} else {
			app.backend.DisableMouse()
		}
	}
}

func (app *Application) onKeymapChange(notify.Change) {
	if err := app.configs.Config().ApplyKeymap(app.keymaps); err != nil {
		app.fail("keymap", err)
	}
}

func (app *Application) onRestartRequired(c notify.Change) {
	app.logger.Info().Str("section", c.Section).Msg("config section changed, applies on restart")
}

// fail records a section the running reload could not apply.
func (app *Application) fail(component string, err error) {
	app.logger.Warn().Err(err).Str("component", component).Msg("config change rejected")
	app.rejected = append(app.rejected, fmt.Errorf("%s: %w", component, err))
}
