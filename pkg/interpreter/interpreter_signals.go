package interpreter

import (
	"fmt"

	"minipy/interpreter-go/pkg/runtime"
)

// loopTarget identifies one break or continue destination. Targets compare
// by pointer, so each needs its own allocation.
type loopTarget struct {
	kind string
}

// loopContext is the flow-control context of the innermost enclosing loop
// iteration; nil outside loops.
type loopContext struct {
	breakTarget    *loopTarget
	continueTarget *loopTarget
}

type breakSignal struct {
	target *loopTarget
}

func (b breakSignal) Error() string {
	return "break"
}

type continueSignal struct {
	target *loopTarget
}

func (c continueSignal) Error() string {
	return "continue"
}

type returnSignal struct {
	exit  *runtime.ReturnExit
	value runtime.Value
}

func (r returnSignal) Error() string {
	if r.exit != nil {
		return fmt.Sprintf("return from %s", r.exit.Function)
	}
	return "return"
}
