package hook

import (
	"slices"
	"sync"

	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/input"
)

// Manager holds the pre and post hooks of a dispatcher in priority order.
type Manager struct {
	mu   sync.RWMutex
	pre  []PreDispatchHook
	post []PostDispatchHook
}

// NewManager creates an empty hook manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds h to the pre list, the post list or both, depending on
// the interfaces it implements.
func (m *Manager) Register(h Hook) {
	if pre, ok := h.(PreDispatchHook); ok {
		m.RegisterPre(pre)
	}
	if post, ok := h.(PostDispatchHook); ok {
		m.RegisterPost(post)
	}
}

// RegisterPre adds a pre-dispatch hook. Higher priorities run first.
func (m *Manager) RegisterPre(h PreDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pre = insert(m.pre, h, func(a, b PreDispatchHook) bool { return a.Priority() > b.Priority() })
}

// RegisterPost adds a post-dispatch hook. Higher priorities run last, so
// they see the final result.
func (m *Manager) RegisterPost(h PostDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.post = insert(m.post, h, func(a, b PostDispatchHook) bool { return a.Priority() < b.Priority() })
}

// insert replaces the hook named like h, or adds it, and keeps hooks
// ordered by before. Hooks of equal priority keep registration order.
func insert[H Hook](hooks []H, h H, before func(a, b H) bool) []H {
	hooks = slices.DeleteFunc(hooks, func(e H) bool { return e.Name() == h.Name() })
	i := len(hooks)
	for j, e := range hooks {
		if before(h, e) {
			i = j
			break
		}
	}
	return slices.Insert(hooks, i, h)
}

// RunPreDispatch runs the pre hooks and stops at the first that cancels.
// It returns that hook's name, or "" when the action may proceed.
func (m *Manager) RunPreDispatch(action *input.Action, ctx *execctx.ExecutionContext) string {
	m.mu.RLock()
	hooks := slices.Clone(m.pre)
	m.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return h.Name()
		}
	}
	return ""
}

// RunPostDispatch runs every post hook.
func (m *Manager) RunPostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	m.mu.RLock()
	hooks := slices.Clone(m.post)
	m.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}
