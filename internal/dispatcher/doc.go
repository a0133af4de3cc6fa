// Package dispatcher routes input actions to handlers and coordinates
// their execution against the paper.
//
// # Routing
//
// Actions are routed in two tiers:
//
//  1. The Router maps a namespace prefix to a NamespaceHandler, so
//     "block.indent" reaches the "block" handler.
//  2. The Registry maps exact action names to handlers, sorted by
//     priority. It is consulted when no namespace accepts the action.
//
// # Execution
//
// Dispatch resolves the action's target block (the action's own block,
// else the caret's), runs pre-dispatch hooks, executes the handler and
// then applies the result: the caret moves to the result's Focus, either
// at once or after the next render, and the renderer receives the
// result's ViewUpdate. Post-dispatch hooks and metrics run last.
//
// Dispatch does not commit. The host commits once per input event, so
// every action dispatched for that event reaches listeners as a single
// change.
//
// # Usage
//
//	sys := dispatcher.NewSystemWithDefaults()
//	sys.SetSubsystems(p, schemas, tracker, lp, view)
//
//	result := sys.Dispatch(input.NewAction("block.indent"))
//	p.Commit()
//
// # Hooks
//
// Pre-dispatch hooks can rewrite or cancel an action:
//
//	d.RegisterPreHook(dispatcher.PreDispatchFunc(func(a *input.Action, ctx *execctx.ExecutionContext) bool {
//	    return a.Name != "block.moveTo"
//	}))
//
// Named hooks with priorities are managed by the hook package.
package dispatcher
