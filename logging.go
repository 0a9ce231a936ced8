package bindings

import "time"

// BindingLogEvent describes a resolution or apply attempt for logging.
type BindingLogEvent struct {
	NodeID   string
	Node     string
	KeyPath  string
	Stage    string
	Duration time.Duration
	Err      error
}

// BindingLogger records binding events.
type BindingLogger interface {
	LogBinding(BindingLogEvent)
}

// BindingLoggerFunc adapts a function to BindingLogger.
type BindingLoggerFunc func(BindingLogEvent)

// LogBinding implements BindingLogger.
func (f BindingLoggerFunc) LogBinding(event BindingLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopBindingLogger struct{}

func (noopBindingLogger) LogBinding(BindingLogEvent) {}

const (
	stageResolve = "resolve"
	stageApply   = "apply"
	stageRefresh = "refresh"
)
