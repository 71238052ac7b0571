package tasktrace

import (
	"time"

	"github.com/ppryga-nordic/nativesim/nativetask"
)

// A Hook observes a task registry and feeds every dispatched task into a
// Recorder. Attach it with registry.AcceptHook. Dispatch is sequential,
// so a single start timestamp is enough state.
type Hook struct {
	recorder *Recorder
	start    time.Time
}

// NewHook creates a Hook writing into the given recorder.
func NewHook(recorder *Recorder) *Hook {
	return &Hook{recorder: recorder}
}

// Func records the task on its AfterTask trigger.
func (h *Hook) Func(ctx nativetask.HookCtx) {
	switch ctx.Pos {
	case nativetask.HookPosBeforeTask:
		h.start = time.Now()
	case nativetask.HookPosAfterTask:
		h.recorder.record(TaskRecord{
			Phase:    ctx.Phase.String(),
			Task:     ctx.Task.Name,
			Priority: ctx.Task.Priority,
			StartNs:  h.start.UnixNano(),
			EndNs:    time.Now().UnixNano(),
		})
	}
}
