package errors

import (
	"os"

	"github.com/charmbracelet/log"
)

// LogHandler is an ErrorHandler that writes reports to a structured logger.
type LogHandler struct {
	// Logger receives the reports. Nil uses a stderr logger.
	Logger *log.Logger
	// Verbose adds stack traces to the output.
	Verbose bool
}

// NewLogHandler returns a LogHandler writing to logger, or to stderr when
// logger is nil.
func NewLogHandler(logger *log.Logger) *LogHandler {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "clockface"})
	}
	return &LogHandler{Logger: logger}
}

// HandleError logs a ClockError at error level.
func (h *LogHandler) HandleError(err *ClockError) {
	if err == nil {
		return
	}
	kv := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger().Error("clock error", kv...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	kv := []any{"op", err.Op, "value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger().Error("recovered panic", kv...)
}

func (h *LogHandler) logger() *log.Logger {
	if h.Logger == nil {
		h.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "clockface"})
	}
	return h.Logger
}
