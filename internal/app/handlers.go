package app

import (
	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/dispatcher/handlers/editor"
	"github.com/dshills/paper/internal/input"
)

// Application action names.
const (
	ActionQuit   = "app.quit"
	ActionReload = "app.reload"
	ActionCancel = input.ActionCancel
)

// dataQuit marks a result that ends the event loop.
const dataQuit = "quit"

// registerHandlers registers the actions the application itself owns.
func (app *Application) registerHandlers() {
	app.system.RegisterHandlerFunc(ActionQuit, func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithData(dataQuit, true)
	})
	app.system.RegisterHandlerFunc(ActionReload, app.reload)
	app.system.RegisterHandlerFunc(ActionCancel, app.cancel)
}

// cancel closes an open prompt and abandons a drag in progress.
func (app *Application) cancel(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	cancelled := false
	if app.input.Prompt() != nil {
		app.input.ClosePrompt()
		cancelled = true
	}
	if app.mouse != nil {
		app.mouse.CancelDrag()
	}
	if _, active := app.system.Drag().Indicator(); active {
		app.system.Dispatch(input.NewAction(editor.ActionDragCancel, ctx.Source))
		cancelled = true
	}
	if !cancelled {
		return handler.NoOp()
	}
	return handler.Success().WithRedraw()
}
