package hook

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/input"
)

// Priorities of the built-in hooks. The audit hook sees every action
// first and the final result last.
const (
	PriorityAudit      = 1000
	PriorityCountLimit = 900
	PriorityTarget     = 800
	PriorityChangeLog  = 500
)

// AuditHook logs every dispatched action.
type AuditHook struct {
	logger zerolog.Logger
}

// NewAuditHook creates an audit hook writing to logger.
func NewAuditHook(logger zerolog.Logger) *AuditHook {
	return &AuditHook{logger: logger.With().Str("component", "dispatch").Logger()}
}

// Name implements Hook.
func (h *AuditHook) Name() string { return "audit" }

// Priority implements Hook.
func (h *AuditHook) Priority() int { return PriorityAudit }

// PreDispatch logs the action being dispatched.
func (h *AuditHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	h.logger.Debug().
		Str("action", action.Name).
		Str("source", action.Source.String()).
		Str("block", ctx.Block.String()).
		Int("count", ctx.Count).
		Msg("dispatch start")
	return true
}

// PostDispatch logs the dispatch result.
func (h *AuditHook) PostDispatch(action *input.Action, _ *execctx.ExecutionContext, result *handler.Result) {
	if result.Status == handler.StatusError {
		h.logger.Error().Err(result.Error).Str("action", action.Name).Msg("dispatch failed")
		return
	}
	h.logger.Debug().
		Str("action", action.Name).
		Str("status", result.Status.String()).
		Str("message", result.Message).
		Msg("dispatch complete")
}

// ChangeRecord is one action that wrote to the paper.
type ChangeRecord struct {
	Timestamp time.Time
	Action    string
	Source    input.ActionSource
	Blocks    []block.ID
}

// ChangeLogHook keeps the most recent actions that changed blocks.
type ChangeLogHook struct {
	mu       sync.RWMutex
	changes  []ChangeRecord
	maxSize  int
	callback func(record ChangeRecord)
}

// NewChangeLogHook creates a change log. maxSize limits the number of
// records retained; zero keeps everything.
func NewChangeLogHook(maxSize int) *ChangeLogHook {
	return &ChangeLogHook{maxSize: maxSize}
}

// Name implements Hook.
func (h *ChangeLogHook) Name() string { return "change-log" }

// Priority implements Hook.
func (h *ChangeLogHook) Priority() int { return PriorityChangeLog }

// PostDispatch records successful actions that report changed blocks.
func (h *ChangeLogHook) PostDispatch(action *input.Action, _ *execctx.ExecutionContext, result *handler.Result) {
	if result.Status != handler.StatusOK || len(result.Changed) == 0 {
		return
	}

	record := ChangeRecord{
		Timestamp: time.Now(),
		Action:    action.Name,
		Source:    action.Source,
		Blocks:    append([]block.ID(nil), result.Changed...),
	}

	h.mu.Lock()
	h.changes = append(h.changes, record)
	if h.maxSize > 0 && len(h.changes) > h.maxSize {
		h.changes = h.changes[len(h.changes)-h.maxSize:]
	}
	callback := h.callback
	h.mu.Unlock()

	if callback != nil {
		callback(record)
	}
}

// Changes returns a copy of all recorded changes, oldest first.
func (h *ChangeLogHook) Changes() []ChangeRecord {
	return h.Recent(-1)
}

// Recent returns the most recent n changes. A negative n returns all.
func (h *ChangeLogHook) Recent(n int) []ChangeRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n < 0 || n > len(h.changes) {
		n = len(h.changes)
	}
	out := make([]ChangeRecord, n)
	copy(out, h.changes[len(h.changes)-n:])
	return out
}

// SetCallback sets a function called for each recorded change.
func (h *ChangeLogHook) SetCallback(fn func(record ChangeRecord)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callback = fn
}

// Clear removes all recorded changes.
func (h *ChangeLogHook) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.changes = nil
}

// CountLimitHook caps the repeat count.
type CountLimitHook struct {
	maxCount int
}

// NewCountLimitHook creates a count limit hook.
func NewCountLimitHook(maxCount int) *CountLimitHook {
	return &CountLimitHook{maxCount: maxCount}
}

// Name implements Hook.
func (h *CountLimitHook) Name() string { return "count-limit" }

// Priority implements Hook.
func (h *CountLimitHook) Priority() int { return PriorityCountLimit }

// PreDispatch limits the repeat count.
func (h *CountLimitHook) PreDispatch(_ *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.maxCount > 0 && ctx.Count > h.maxCount {
		ctx.Count = h.maxCount
	}
	return true
}

// TargetHook cancels block edits that have nothing to act on. Actions in
// the listed namespaces need a focused block that exists in the paper.
type TargetHook struct {
	namespaces []string
}

// NewTargetHook creates a target hook for the given namespaces.
func NewTargetHook(namespaces ...string) *TargetHook {
	return &TargetHook{namespaces: namespaces}
}

// Name implements Hook.
func (h *TargetHook) Name() string { return "target" }

// Priority implements Hook.
func (h *TargetHook) Priority() int { return PriorityTarget }

// PreDispatch cancels when the target block is missing.
func (h *TargetHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	ns := action.Namespace()
	for _, want := range h.namespaces {
		if ns == want {
			_, ok := ctx.Current()
			return ok
		}
	}
	return true
}
