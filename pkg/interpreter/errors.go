package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"minipy/interpreter-go/pkg/ast"
	"minipy/interpreter-go/pkg/runtime"
)

// ErrorKind classifies every failure that aborts a run.
type ErrorKind int

const (
	UnknownSymbol ErrorKind = iota + 1
	UnknownAttribute
	UnknownMethod
	NotCallable
	UnsupportedOperand
	AssertionFailed
	NotImplemented
	InvalidTarget
	InternalInvariantViolation
	TypeError
	ArityMismatch
	ZeroDivision
	ControlFlow
	Cancelled
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownSymbol:
		return "UnknownSymbol"
	case UnknownAttribute:
		return "UnknownAttribute"
	case UnknownMethod:
		return "UnknownMethod"
	case NotCallable:
		return "NotCallable"
	case UnsupportedOperand:
		return "UnsupportedOperand"
	case AssertionFailed:
		return "AssertionFailed"
	case NotImplemented:
		return "NotImplemented"
	case InvalidTarget:
		return "InvalidTarget"
	case InternalInvariantViolation:
		return "InternalInvariantViolation"
	case TypeError:
		return "TypeError"
	case ArityMismatch:
		return "ArityMismatch"
	case ZeroDivision:
		return "ZeroDivision"
	case ControlFlow:
		return "ControlFlow"
	case Cancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// RuntimeError is the single error type surfaced by evaluation. Node is the
// innermost tree node the failure was attributed to, when known.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Node    ast.Node
	Err     error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Is matches another *RuntimeError of the same kind, so callers can test
// errors.Is(err, &RuntimeError{Kind: UnknownAttribute}).
func (e *RuntimeError) Is(target error) bool {
	other, ok := target.(*RuntimeError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func newRuntimeError(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of a runtime error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return rtErr.Kind, true
	}
	return 0, false
}

// classifyValueError lifts failures from the value layer into runtime errors.
func classifyValueError(err error) error {
	if err == nil {
		return nil
	}
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return err
	}
	kind := InternalInvariantViolation
	switch {
	case errors.Is(err, runtime.ErrUnknownSymbol):
		kind = UnknownSymbol
	case errors.Is(err, runtime.ErrNotAttributable):
		kind = TypeError
	}
	return &RuntimeError{Kind: kind, Message: valueErrorMessage(err), Err: err}
}

// valueErrorMessage drops the sentinel prefix from a wrapped value error.
func valueErrorMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{runtime.ErrUnknownSymbol, runtime.ErrNotAttributable, runtime.ErrMalformedObject} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

// attachRuntimeContext records node on the first runtime error that passes
// through it. Control-flow signals are returned untouched.
func attachRuntimeContext(err error, node ast.Node) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case returnSignal, breakSignal, continueSignal:
		return err
	}
	classified := classifyValueError(err)
	var rtErr *RuntimeError
	if errors.As(classified, &rtErr) && rtErr.Node == nil && node != nil {
		rtErr.Node = node
	}
	return classified
}
