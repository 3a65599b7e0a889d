package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"minipy/interpreter-go/pkg/ast"
)

// TraceFormat selects how trace events are rendered.
type TraceFormat string

const (
	TraceConsole TraceFormat = "console"
	TraceJSON    TraceFormat = "json"
)

// ParseTraceFormat accepts "console" or "json"; empty means console.
func ParseTraceFormat(raw string) (TraceFormat, error) {
	switch TraceFormat(raw) {
	case "", TraceConsole:
		return TraceConsole, nil
	case TraceJSON:
		return TraceJSON, nil
	default:
		return "", fmt.Errorf("unknown trace format %q (expected console or json)", raw)
	}
}

// Tracer emits one trace-level event per executed statement. A nil *Tracer
// is valid and disabled.
type Tracer struct {
	logger zerolog.Logger
	runID  string
}

// NewTracer writes events to w. Console output is coloured only when w is a
// terminal.
func NewTracer(w io.Writer, format TraceFormat) *Tracer {
	runID := uuid.NewString()
	out := w
	if format != TraceJSON {
		out = zerolog.ConsoleWriter{
			Out:          w,
			NoColor:      !isTerminal(w),
			PartsExclude: []string{zerolog.TimestampFieldName},
		}
	}
	logger := zerolog.New(out).Level(zerolog.TraceLevel).With().Str("run", runID).Logger()
	return &Tracer{logger: logger, runID: runID}
}

func (t *Tracer) Enabled() bool {
	return t != nil
}

// RunID tags every event of one run.
func (t *Tracer) RunID() string {
	if t == nil {
		return ""
	}
	return t.runID
}

// Logger exposes the underlying logger for run summaries.
func (t *Tracer) Logger() zerolog.Logger {
	if t == nil {
		return zerolog.Nop()
	}
	return t.logger
}

// Statement records stmt just before it executes.
func (t *Tracer) Statement(stmt ast.Statement, depth int) {
	if t == nil {
		return
	}
	span := stmt.Span()
	t.logger.Trace().
		Str("node", string(stmt.NodeType())).
		Int("line", span.Start.Line).
		Int("depth", depth).
		Msg(ast.Describe(stmt))
}

// Call records entry into a user function or class construction.
func (t *Tracer) Call(name string, argc int, depth int) {
	if t == nil {
		return
	}
	t.logger.Trace().Str("callee", name).Int("args", argc).Int("depth", depth).Msg("call")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
