package interpreter

import (
	"context"
	"io"
	"os"

	"minipy/interpreter-go/pkg/ast"
	"minipy/interpreter-go/pkg/runtime"
)

// Stats counts work done by the interpreter since it was created or reset.
type Stats struct {
	Statements uint64
	Calls      uint64
}

// Interpreter drives evaluation of minipy modules. It is not safe for
// concurrent Run calls.
type Interpreter struct {
	env        *runtime.Environment
	stdout     io.Writer
	tracer     *Tracer
	sourcePath string
	ctx        context.Context
	stats      Stats
	callDepth  int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout redirects print output.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.stdout = w
		}
	}
}

// WithTracer enables per-statement tracing.
func WithTracer(t *Tracer) Option {
	return func(i *Interpreter) {
		i.tracer = t
	}
}

// WithSourcePath names the file being run in diagnostics.
func WithSourcePath(path string) Option {
	return func(i *Interpreter) {
		i.sourcePath = path
	}
}

// New returns an interpreter with an empty global frame writing to stdout.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		env:    runtime.NewEnvironment(),
		stdout: os.Stdout,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GlobalEnvironment exposes the environment for inspection.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.env
}

// Stats reports the counters accumulated so far.
func (i *Interpreter) Stats() Stats {
	return i.stats
}

// Tracer returns the configured tracer (nil when tracing is off).
func (i *Interpreter) Tracer() *Tracer {
	return i.tracer
}

// SetSourcePath changes the path reported in diagnostics.
func (i *Interpreter) SetSourcePath(path string) {
	i.sourcePath = path
}

// Reset discards every global binding and counter.
func (i *Interpreter) Reset() {
	i.env = runtime.NewEnvironment()
	i.stats = Stats{}
	i.callDepth = 0
}

// EvaluateModule runs module without a cancellation context.
func (i *Interpreter) EvaluateModule(module *ast.Module) error {
	return i.Run(context.Background(), module)
}

// Run executes the module's statements in order against the global frame.
// Bindings persist across calls, so a REPL can feed modules one at a time.
// The first error aborts the run.
func (i *Interpreter) Run(ctx context.Context, module *ast.Module) error {
	if module == nil {
		return newRuntimeError(InternalInvariantViolation, "module is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	prev := i.ctx
	i.ctx = ctx
	defer func() { i.ctx = prev }()

	for _, stmt := range module.Body {
		if err := i.evaluateStatement(stmt, nil); err != nil {
			return escapedSignalError(err, stmt)
		}
	}
	return nil
}
