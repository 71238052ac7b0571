package nativetask

import (
	"reflect"
	"runtime"
)

// A Task is one registered (callback, phase, priority) triple. Tasks are
// immutable once registered: there is no way to remove, replace, or reorder
// a task after it has been handed to a registry.
type Task struct {
	// Name identifies the task in logs and traces. When left empty, the
	// registry derives it from the callback's function name.
	Name string

	// Func is the callback. It takes no argument and returns nothing.
	Func func()

	// Phase is the lifecycle moment at which Func runs.
	Phase Phase

	// Priority orders tasks within the same phase, lowest first. It must
	// not be negative. Priorities need not be contiguous or unique.
	Priority int
}

// funcName resolves the symbol name of a callback for use as a default task
// name.
func funcName(fn func()) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "unknown"
	}

	return f.Name()
}
