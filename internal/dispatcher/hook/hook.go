package hook

import (
	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/input"
)

// Hook is implemented by every dispatch hook.
type Hook interface {
	// Name identifies the hook. Registering a second hook with the same
	// name replaces the first.
	Name() string

	// Priority orders hooks; see the Priority constants.
	Priority() int
}

// PreDispatchHook runs before an action reaches its handler.
type PreDispatchHook interface {
	Hook

	// PreDispatch may rewrite the action or retarget the context.
	// Returning false cancels the dispatch.
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook runs after the handler returned.
type PostDispatchHook interface {
	Hook

	// PostDispatch may inspect or modify the result.
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}
