package nativetask

import "log"

// TaskLogger is a hook that writes a line to a logger for every task
// dispatched.
type TaskLogger struct {
	*log.Logger
}

// NewTaskLogger returns a TaskLogger that writes into the given logger.
func NewTaskLogger(logger *log.Logger) *TaskLogger {
	return &TaskLogger{Logger: logger}
}

// Func writes the dispatch information into the logger.
func (l *TaskLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosPhaseStart:
		l.Printf("%s: dispatching", ctx.Phase)
	case HookPosBeforeTask:
		l.Printf("%s: task %s, priority %d",
			ctx.Phase, ctx.Task.Name, ctx.Task.Priority)
	}
}
