package dispatcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/paper/internal/dispatcher/handler"
)

// Router routes actions to handlers by namespace prefix, so that
// "block.indent" reaches the "block" handler.
type Router struct {
	mu sync.RWMutex

	namespaces map[string]handler.NamespaceHandler

	// fallback handles actions no namespace accepts
	fallback handler.Handler
}

// NewRouter creates a new action router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// RegisterNamespace registers a handler for all actions in a namespace.
// Registering the same namespace again replaces the handler.
func (r *Router) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// SetFallback sets the fallback handler for unmatched actions.
func (r *Router) SetFallback(h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Route finds the handler for an action, or nil.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h := r.lookup(actionName); h != nil {
		return handler.NewNamespaceAdapter(h)
	}
	return r.fallback
}

// CanRoute reports whether Route would return a handler.
func (r *Router) CanRoute(actionName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(actionName) != nil || r.fallback != nil
}

func (r *Router) lookup(actionName string) handler.NamespaceHandler {
	namespace := ExtractNamespace(actionName)
	if namespace == "" {
		return nil
	}
	h, ok := r.namespaces[namespace]
	if !ok || !h.CanHandle(actionName) {
		return nil
	}
	return h
}

// GetNamespaceHandler returns the handler for a namespace, or nil.
func (r *Router) GetNamespaceHandler(namespace string) handler.NamespaceHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namespaces[namespace]
}

// HasNamespace reports whether a handler is registered for the namespace.
func (r *Router) HasNamespace(namespace string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.namespaces[namespace]
	return ok
}

// Namespaces returns the registered namespace names in sorted order.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtractNamespace returns the part of "namespace.action" before the
// first dot, or "" when there is none.
func ExtractNamespace(actionName string) string {
	idx := strings.IndexByte(actionName, '.')
	if idx < 0 {
		return ""
	}
	return actionName[:idx]
}

// ExtractActionName returns the action name without its namespace.
func ExtractActionName(fullName string) string {
	idx := strings.IndexByte(fullName, '.')
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}

// BuildActionName joins a namespace and an action name.
func BuildActionName(namespace, action string) string {
	if namespace == "" {
		return action
	}
	return namespace + "." + action
}
