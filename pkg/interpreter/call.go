package interpreter

import (
	"fmt"

	"minipy/interpreter-go/pkg/ast"
	"minipy/interpreter-go/pkg/runtime"
)

// printBuiltin is recognised by name at the call site; it is never bound in
// any frame.
const printBuiltin = "print"

const initMethod = "__init__"

// maxCallDepth bounds nested user calls so runaway recursion fails as an
// error instead of exhausting the Go stack.
const maxCallDepth = 2000

func (i *Interpreter) evaluateCallExpression(call *ast.CallExpression) (runtime.Value, error) {
	switch callee := call.Callee.(type) {
	case *ast.Identifier:
		if callee.Name == printBuiltin {
			return i.evaluatePrint(call)
		}
	case *ast.AttributeExpression:
		return i.evaluateMethodCall(callee, call.Arguments)
	}
	callee, err := i.evaluateExpression(call.Callee)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateArguments(call.Arguments)
	if err != nil {
		return nil, err
	}
	return i.callValue(callee, args)
}

// evaluatePrint reduces only the first argument and writes its string form
// followed by a newline.
func (i *Interpreter) evaluatePrint(call *ast.CallExpression) (runtime.Value, error) {
	if len(call.Arguments) == 0 {
		if _, err := fmt.Fprintln(i.stdout); err != nil {
			return nil, newRuntimeError(InternalInvariantViolation, "print: %v", err)
		}
		return runtime.None, nil
	}
	val, err := i.evaluateExpression(call.Arguments[0])
	if err != nil {
		return nil, err
	}
	text, err := runtime.ToString(val)
	if err != nil {
		return nil, classifyValueError(err)
	}
	if _, err := fmt.Fprintln(i.stdout, text); err != nil {
		return nil, newRuntimeError(InternalInvariantViolation, "print: %v", err)
	}
	return runtime.None, nil
}

// evaluateMethodCall reduces the receiver, then the arguments, then resolves
// the method on the receiver's class and calls it with the receiver first.
func (i *Interpreter) evaluateMethodCall(member *ast.AttributeExpression, argExprs []ast.Expression) (runtime.Value, error) {
	receiver, err := i.evaluateExpression(member.Object)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateArguments(argExprs)
	if err != nil {
		return nil, err
	}
	method, err := i.lookupMethod(receiver, memberName(member))
	if err != nil {
		return nil, attachRuntimeContext(err, member)
	}
	callArgs := make([]runtime.Value, 0, len(args)+1)
	callArgs = append(callArgs, receiver)
	callArgs = append(callArgs, args...)
	return i.callValue(method, callArgs)
}

// callValue applies a reduced callee to reduced arguments.
func (i *Interpreter) callValue(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args)
	case *runtime.ClassValue:
		return i.constructObject(fn, args)
	default:
		return nil, newRuntimeError(NotCallable, "'%s' object is not callable", kindName(callee))
	}
}

// constructObject creates an instance and runs __init__ from the class's own
// map, discarding its result. Without __init__ the arguments are ignored.
func (i *Interpreter) constructObject(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	obj := runtime.NewObject(class)
	initFn, ok := class.Attrs.Get(initMethod)
	if !ok {
		return obj, nil
	}
	initArgs := make([]runtime.Value, 0, len(args)+1)
	initArgs = append(initArgs, obj)
	initArgs = append(initArgs, args...)
	if _, err := i.callValue(initFn, initArgs); err != nil {
		return nil, err
	}
	return obj, nil
}

// invokeFunction runs fn's body against its parameters overlaid on the
// global frame. The caller's frames and return exit are restored on every
// exit path.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, newRuntimeError(ArityMismatch, "%s() takes %d positional arguments but %d were given", fn.Name, len(fn.Params), len(args))
	}
	if i.callDepth >= maxCallDepth {
		return nil, newRuntimeError(ControlFlow, "maximum recursion depth exceeded in %s()", fn.Name)
	}
	i.callDepth++
	defer func() { i.callDepth-- }()
	i.stats.Calls++
	if i.tracer.Enabled() {
		i.tracer.Call(fn.Name, len(args), i.env.Depth())
	}

	frame := runtime.NewOverlayFrame(i.env.Global())
	for idx, param := range fn.Params {
		frame.Define(param, args[idx])
	}
	exit := &runtime.ReturnExit{Function: fn.Name}
	saved := i.env.EnterCall(frame, exit)
	defer i.env.Restore(saved)

	if err := i.evaluateBlock(fn.Body, nil); err != nil {
		if sig, ok := err.(returnSignal); ok && sig.exit == exit {
			return sig.value, nil
		}
		return nil, escapedSignalError(err, nil)
	}
	return runtime.None, nil
}
