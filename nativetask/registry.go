// Package nativetask provides the staged task mechanism of the native
// simulated target: any package can register a callback to run at a
// particular moment of the executable's lifecycle, and the boot sequencer
// dispatches all the callbacks of a phase in priority order.
//
// Registration is decentralized. A package that wants a boot or exit hook
// calls Register from its own init function; no central list needs to be
// edited. All registration completes before main starts, and the registry
// freezes itself on the first dispatch.
package nativetask

import (
	"fmt"
	"sort"
	"sync"
)

// A Registry holds the per-phase task collections and dispatches them. The
// zero value is not usable; create one with NewRegistry or use the
// package-level default.
type Registry struct {
	HookableBase

	mu     sync.Mutex
	phases [NumPhases][]Task
	frozen bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a task to the collection of its phase. It panics if the
// task has no callback, an undefined phase, or a negative priority, and if
// the registry is already frozen. Tasks with equal priority within a phase
// run in registration order.
func (r *Registry) Register(t Task) {
	if t.Func == nil {
		panic("registering a task without a callback")
	}

	if !ValidPhase(t.Phase) {
		panic(fmt.Sprintf("registering a task for undefined phase %d",
			int(t.Phase)))
	}

	if t.Priority < 0 {
		panic(fmt.Sprintf("task %s has negative priority %d",
			t.Name, t.Priority))
	}

	if t.Name == "" {
		t.Name = funcName(t.Func)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		panic(fmt.Sprintf(
			"registering task %s after the registry is frozen", t.Name))
	}

	r.phases[t.Phase] = append(r.phases[t.Phase], t)
}

// Freeze seals the registry: the per-phase collections are sorted by
// priority once and no task can be registered afterward. Freeze is
// idempotent. The first call to RunPhase freezes the registry implicitly.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return
	}

	r.frozen = true

	for p := range r.phases {
		tasks := r.phases[p]
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority < tasks[j].Priority
		})
	}
}

// RunPhase invokes every task registered for phase p exactly once, in
// ascending priority order, and returns after the last callback has
// returned. Dispatch is synchronous and sequential. RunPhase keeps no
// state between calls; dispatching the same phase again replays the same
// tasks in the same order. It panics if p is not a defined phase.
//
// RunPhase does not recover from a panicking callback. A task that fails
// terminally takes the rest of the boot schedule down with it.
func (r *Registry) RunPhase(p Phase) {
	if !ValidPhase(p) {
		panic(fmt.Sprintf("dispatching undefined phase %d", int(p)))
	}

	r.Freeze()

	ctx := HookCtx{Domain: r, Pos: HookPosPhaseStart, Phase: p}
	r.InvokeHook(ctx)

	for _, t := range r.phases[p] {
		ctx.Pos = HookPosBeforeTask
		ctx.Task = t
		r.InvokeHook(ctx)

		t.Func()

		ctx.Pos = HookPosAfterTask
		r.InvokeHook(ctx)
	}

	ctx.Pos = HookPosPhaseEnd
	ctx.Task = Task{}
	r.InvokeHook(ctx)
}

// Tasks returns the tasks registered for phase p in dispatch order. It
// freezes the registry. The returned slice is a copy.
func (r *Registry) Tasks(p Phase) []Task {
	if !ValidPhase(p) {
		panic(fmt.Sprintf("listing tasks of undefined phase %d", int(p)))
	}

	r.Freeze()

	tasks := make([]Task, len(r.phases[p]))
	copy(tasks, r.phases[p])

	return tasks
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that the package-level
// Register and RunPhase operate on.
func Default() *Registry {
	return defaultRegistry
}

// Register adds fn to the default registry at the given phase and
// priority. It is meant to be called from init functions.
func Register(fn func(), phase Phase, priority int) {
	defaultRegistry.Register(Task{Func: fn, Phase: phase, Priority: priority})
}

// RegisterNamed is Register with an explicit task name.
func RegisterNamed(name string, fn func(), phase Phase, priority int) {
	defaultRegistry.Register(Task{
		Name:     name,
		Func:     fn,
		Phase:    phase,
		Priority: priority,
	})
}

// RunPhase dispatches a phase of the default registry.
func RunPhase(p Phase) {
	defaultRegistry.RunPhase(p)
}
