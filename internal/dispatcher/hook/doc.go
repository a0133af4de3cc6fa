// Package hook provides prioritized pre and post dispatch hooks.
//
// A PreDispatchHook runs before an action reaches its handler and may
// rewrite the action, retarget the execution context or cancel the
// dispatch. A PostDispatchHook runs afterwards and may inspect or modify
// the result. Hooks are identified by name; registering a hook with an
// existing name replaces it.
//
// Pre-hooks run from the highest priority down. Post-hooks run from the
// lowest priority up, so the highest priority hook sees the final result.
//
// Built-in hooks:
//
//   - AuditHook logs every dispatch through zerolog.
//   - ChangeLogHook remembers the actions that wrote to the paper.
//   - CountLimitHook caps the repeat count.
//   - TargetHook cancels block edits without a focused block.
//
// Typical setup:
//
//	m := hook.NewManager()
//	m.Register(hook.NewAuditHook(logger))
//	m.RegisterPre(hook.NewCountLimitHook(100))
//	m.RegisterPost(hook.NewChangeLogHook(256))
//
// Manager is safe for concurrent use.
package hook
