package nativetask

// HookPos defines the enum of the positions at which a hook can trigger
// during dispatch.
type HookPos struct {
	Name string
}

// HookPosPhaseStart triggers before the first task of a phase runs.
var HookPosPhaseStart = &HookPos{Name: "PhaseStart"}

// HookPosPhaseEnd triggers after the last task of a phase has returned.
var HookPosPhaseEnd = &HookPos{Name: "PhaseEnd"}

// HookPosBeforeTask triggers right before a task callback is invoked.
var HookPosBeforeTask = &HookPos{Name: "BeforeTask"}

// HookPosAfterTask triggers right after a task callback has returned.
var HookPosAfterTask = &HookPos{Name: "AfterTask"}

// HookCtx carries the information about the site that triggered a hook.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Phase  Phase
	Task   Task
}

// A Hook is a short piece of program that a registry invokes at hook
// positions while dispatching. Hooks observe dispatch; they cannot alter
// the task schedule.
type Hook interface {
	Func(ctx HookCtx)
}

// Hookable is an object that accepts hooks.
type Hookable interface {
	AcceptHook(hook Hook)
}

// A HookableBase provides the hook bookkeeping for types that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the registered hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
