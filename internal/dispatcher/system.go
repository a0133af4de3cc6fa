package dispatcher

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/dispatcher/handlers/blocks"
	"github.com/dshills/paper/internal/dispatcher/handlers/editor"
	"github.com/dshills/paper/internal/dispatcher/handlers/view"
	"github.com/dshills/paper/internal/dispatcher/hook"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/input"
)

// System wires the dispatcher with the paper's handlers and hooks.
type System struct {
	mu sync.RWMutex

	dispatcher *Dispatcher

	hookManager *hook.Manager
	changeLog   *hook.ChangeLogHook

	blockHandler  *blocks.Handler
	editorHandler *editor.CombinedHandler
	viewHandler   *view.Handler

	config  SystemConfig
	started bool
}

// SystemConfig holds configuration for the dispatcher system.
type SystemConfig struct {
	// DispatcherConfig is the underlying dispatcher configuration.
	DispatcherConfig Config

	// ChangeLogSize limits the change log. Zero disables it.
	ChangeLogSize int

	// Logger receives dispatch audit records.
	Logger zerolog.Logger
}

// DefaultSystemConfig returns a configuration with sensible defaults.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		DispatcherConfig: DefaultConfig().WithMetrics(),
		ChangeLogSize:    1000,
		Logger:           zerolog.Nop(),
	}
}

// NewSystem creates a new dispatcher system with the given configuration.
func NewSystem(config SystemConfig) *System {
	s := &System{
		config:        config,
		dispatcher:    New(config.DispatcherConfig, WithLogger(config.Logger)),
		blockHandler:  blocks.NewHandler(),
		editorHandler: editor.NewCombinedHandler(),
		viewHandler:   view.NewHandler(),
	}

	router := s.dispatcher.Router()
	router.RegisterNamespace(blocks.Namespace, s.blockHandler)
	router.RegisterNamespace(editor.Namespace, s.editorHandler)
	router.RegisterNamespace(s.viewHandler.Namespace(), s.viewHandler)

	s.initializeHooks(config)
	return s
}

// NewSystemWithDefaults creates a system with default configuration.
func NewSystemWithDefaults() *System {
	return NewSystem(DefaultSystemConfig())
}

func (s *System) initializeHooks(config SystemConfig) {
	s.hookManager = hook.NewManager()
	s.dispatcher.SetHookManager(s.hookManager)

	s.hookManager.Register(hook.NewAuditHook(config.Logger))
	if n := config.DispatcherConfig.MaxRepeatCount; n > 0 {
		s.hookManager.RegisterPre(hook.NewCountLimitHook(n))
	}
	// Block commands name their target explicitly; a stale id is refused
	// before the command runs.
	s.hookManager.RegisterPre(hook.NewTargetHook(blocks.Namespace))

	if config.ChangeLogSize > 0 {
		s.changeLog = hook.NewChangeLogHook(config.ChangeLogSize)
		s.hookManager.RegisterPost(s.changeLog)
	}
}

// SetSubsystems connects the system to the editor's subsystems.
func (s *System) SetSubsystems(
	p *paper.Paper,
	reg *schema.Registry,
	cur execctx.CursorInterface,
	loop execctx.LoopInterface,
	renderer execctx.RendererInterface,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dispatcher.SetPaper(p)
	s.dispatcher.SetSchema(reg)
	s.dispatcher.SetCursor(cur)
	s.dispatcher.SetLoop(loop)
	s.dispatcher.SetRenderer(renderer)
}

// SetSchema replaces the schema registry, as a config reload does.
func (s *System) SetSchema(reg *schema.Registry) {
	s.dispatcher.SetSchema(reg)
}

// SetRenderer sets the renderer.
func (s *System) SetRenderer(renderer execctx.RendererInterface) {
	s.dispatcher.SetRenderer(renderer)
}

// Dispatch dispatches an action synchronously.
func (s *System) Dispatch(action input.Action) handler.Result {
	return s.dispatcher.Dispatch(action)
}

// DispatchBatch dispatches actions in order. With stopOnError the batch
// ends at the first failing action.
func (s *System) DispatchBatch(actions []input.Action, stopOnError bool) []handler.Result {
	results := make([]handler.Result, 0, len(actions))
	for _, action := range actions {
		result := s.Dispatch(action)
		results = append(results, result)
		if stopOnError && result.Status == handler.StatusError {
			break
		}
	}
	return results
}

// Start starts async dispatch if enabled.
func (s *System) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.dispatcher.Start()
	s.started = true
}

// Stop stops async dispatch.
func (s *System) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.dispatcher.Stop()
	s.started = false
}

// Enqueue queues an action for async dispatch.
func (s *System) Enqueue(action input.Action) error {
	return s.dispatcher.Enqueue(action)
}

// Results returns the async result channel.
func (s *System) Results() <-chan handler.Result {
	return s.dispatcher.Results()
}

// Dispatcher returns the underlying dispatcher.
func (s *System) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// ChangeLog returns the change log, or nil when disabled.
func (s *System) ChangeLog() *hook.ChangeLogHook {
	return s.changeLog
}

// Drag returns the drag handler, for drawing drop indicators.
func (s *System) Drag() *editor.DragHandler {
	return s.editorHandler.Drag()
}

// Metrics returns the dispatch metrics, or nil when disabled.
func (s *System) Metrics() *Metrics {
	return s.dispatcher.Metrics()
}

// RegisterHandler registers a handler for an exact action name.
func (s *System) RegisterHandler(actionName string, h handler.Handler) {
	s.dispatcher.RegisterHandler(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (s *System) RegisterHandlerFunc(actionName string, fn handler.Func) {
	s.dispatcher.RegisterHandlerFunc(actionName, fn)
}

// RegisterNamespace registers a namespace handler.
func (s *System) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	s.dispatcher.RegisterNamespace(namespace, h)
}
