package xlcalc

import (
	"context"
	"log/slog"
)

// CallListener is notified around every function call an Evaluator makes.
// Implement it for tracing, metrics or debugging output; it cannot change
// the result.
type CallListener interface {
	// BeforeCall is called after the function is resolved and before it runs.
	BeforeCall(name string, args []Value, ctx *Context)

	// AfterCall is called with the call's result.
	AfterCall(name string, args []Value, result Value, ctx *Context)
}

// LogListener writes one structured debug record per completed call.
type LogListener struct {
	logger *slog.Logger
}

// NewLogListener creates a LogListener. A nil logger uses slog.Default().
func NewLogListener(logger *slog.Logger) *LogListener {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogListener{logger: logger}
}

func (l *LogListener) BeforeCall(string, []Value, *Context) {}

func (l *LogListener) AfterCall(name string, args []Value, result Value, ctx *Context) {
	if !l.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = FormatValue(a)
	}
	attrs := []slog.Attr{
		slog.String("function", name),
		slog.Any("args", rendered),
		slog.String("result", FormatValue(result)),
		slog.Int("row", ctx.Row),
		slog.Int("col", ctx.Col),
	}
	if e, ok := result.(ErrorValue); ok {
		attrs = append(attrs, slog.String("error", e.Code.String()))
	}
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "formula call", attrs...)
}
