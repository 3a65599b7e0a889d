package interpreter

import (
	"minipy/interpreter-go/pkg/ast"
	"minipy/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateBlock(body []ast.Statement, flow *loopContext) error {
	for _, stmt := range body {
		if err := i.evaluateStatement(stmt, flow); err != nil {
			return err
		}
	}
	return nil
}

// evaluateStatement runs one statement. flow is the innermost loop
// iteration, or nil when break/continue are not allowed.
func (i *Interpreter) evaluateStatement(stmt ast.Statement, flow *loopContext) error {
	if err := i.ctx.Err(); err != nil {
		return &RuntimeError{Kind: Cancelled, Message: "run cancelled: " + err.Error(), Node: stmt, Err: err}
	}
	i.stats.Statements++
	if i.tracer.Enabled() {
		i.tracer.Statement(stmt, i.env.Depth())
	}
	return attachRuntimeContext(i.execStatement(stmt, flow), stmt)
}

func (i *Interpreter) execStatement(stmt ast.Statement, flow *loopContext) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(s.Expression)
		return err
	case *ast.AssignmentStatement:
		return i.evaluateAssignment(s)
	case *ast.AugmentedAssignment:
		return i.evaluateAugmentedAssignment(s)
	case *ast.IfStatement:
		return i.evaluateIfStatement(s, flow)
	case *ast.WhileStatement:
		return i.evaluateWhileStatement(s, flow)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(s)
	case *ast.BreakStatement:
		if flow == nil {
			return newRuntimeError(ControlFlow, "'break' outside loop")
		}
		return breakSignal{target: flow.breakTarget}
	case *ast.ContinueStatement:
		if flow == nil {
			return newRuntimeError(ControlFlow, "'continue' not properly in loop")
		}
		return continueSignal{target: flow.continueTarget}
	case *ast.PassStatement:
		return nil
	case *ast.FunctionDefinition:
		return i.evaluateFunctionDefinition(s)
	case *ast.ClassDefinition:
		return i.evaluateClassDefinition(s, flow)
	case *ast.AssertStatement:
		return i.evaluateAssertStatement(s)
	case *ast.DeleteStatement:
		return newRuntimeError(NotImplemented, "del is not supported")
	case nil:
		return newRuntimeError(InternalInvariantViolation, "nil statement")
	default:
		return newRuntimeError(NotImplemented, "unsupported statement %s", stmt.NodeType())
	}
}

func (i *Interpreter) evaluateAssignment(assign *ast.AssignmentStatement) error {
	switch target := assign.Target.(type) {
	case *ast.Identifier:
		value, err := i.evaluateExpression(assign.Value)
		if err != nil {
			return err
		}
		i.env.Update(target.Name, value)
		return nil
	case *ast.AttributeExpression:
		value, err := i.evaluateExpression(assign.Value)
		if err != nil {
			return err
		}
		receiver, err := i.evaluateExpression(target.Object)
		if err != nil {
			return err
		}
		return i.setAttribute(receiver, target, value)
	default:
		return invalidTarget(assign.Target)
	}
}

// evaluateAugmentedAssignment reads the target, combines it with the value
// and writes it back. An attribute receiver is reduced once.
func (i *Interpreter) evaluateAugmentedAssignment(assign *ast.AugmentedAssignment) error {
	switch target := assign.Target.(type) {
	case *ast.Identifier:
		current, err := i.env.Lookup(target.Name)
		if err != nil {
			return attachRuntimeContext(err, target)
		}
		value, err := i.evaluateExpression(assign.Value)
		if err != nil {
			return err
		}
		result, err := applyBinaryOperator(assign.Operator, current, value)
		if err != nil {
			return err
		}
		i.env.Update(target.Name, result)
		return nil
	case *ast.AttributeExpression:
		receiver, err := i.evaluateExpression(target.Object)
		if err != nil {
			return err
		}
		current, err := i.getAttribute(receiver, target)
		if err != nil {
			return err
		}
		value, err := i.evaluateExpression(assign.Value)
		if err != nil {
			return err
		}
		result, err := applyBinaryOperator(assign.Operator, current, value)
		if err != nil {
			return err
		}
		return i.setAttribute(receiver, target, result)
	default:
		return invalidTarget(assign.Target)
	}
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, flow *loopContext) error {
	for _, clause := range stmt.Clauses {
		cond, err := i.evaluateExpression(clause.Condition)
		if err != nil {
			return err
		}
		if runtime.Truthy(cond) {
			return i.evaluateBlock(clause.Body, flow)
		}
	}
	return i.evaluateBlock(stmt.Else, flow)
}

// evaluateWhileStatement keeps one break target for the whole loop and a
// fresh continue target per iteration. The else body runs only when the
// condition turns false, in the enclosing loop's context.
func (i *Interpreter) evaluateWhileStatement(loop *ast.WhileStatement, flow *loopContext) error {
	breakTarget := &loopTarget{kind: "break"}
	for {
		cond, err := i.evaluateExpression(loop.Condition)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return i.evaluateBlock(loop.Else, flow)
		}
		iteration := &loopContext{
			breakTarget:    breakTarget,
			continueTarget: &loopTarget{kind: "continue"},
		}
		if err := i.evaluateBlock(loop.Body, iteration); err != nil {
			switch sig := err.(type) {
			case breakSignal:
				if sig.target == breakTarget {
					return nil
				}
				return err
			case continueSignal:
				if sig.target == iteration.continueTarget {
					continue
				}
				return err
			default:
				return err
			}
		}
	}
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement) error {
	exit, ok := i.env.ReturnExit()
	if !ok {
		return newRuntimeError(ControlFlow, "'return' outside function")
	}
	var value runtime.Value = runtime.None
	if stmt.Argument != nil {
		val, err := i.evaluateExpression(stmt.Argument)
		if err != nil {
			return err
		}
		value = val
	}
	return returnSignal{exit: exit, value: value}
}

func (i *Interpreter) evaluateFunctionDefinition(def *ast.FunctionDefinition) error {
	if def.ID == nil {
		return newRuntimeError(InternalInvariantViolation, "function definition without a name")
	}
	params := make([]string, 0, len(def.Params))
	for _, param := range def.Params {
		params = append(params, param.Name)
	}
	i.env.Update(def.ID.Name, runtime.NewFunction(def.ID.Name, params, def.Body))
	return nil
}

// evaluateClassDefinition runs the body in a fresh frame and turns that
// frame's bindings into the class attribute map. Base expressions are not
// evaluated. The frame is popped on every exit path.
func (i *Interpreter) evaluateClassDefinition(def *ast.ClassDefinition, flow *loopContext) error {
	if def.ID == nil {
		return newRuntimeError(InternalInvariantViolation, "class definition without a name")
	}
	i.env.PushFrame()
	if err := i.evaluateBlock(def.Body, flow); err != nil {
		if _, popErr := i.env.PopFrame(); popErr != nil {
			return popErr
		}
		return err
	}
	attrs, err := i.env.PopFrame()
	if err != nil {
		return err
	}
	i.env.Update(def.ID.Name, runtime.NewClass(def.ID.Name, attrs))
	return nil
}

// evaluateAssertStatement never reduces the message expression.
func (i *Interpreter) evaluateAssertStatement(stmt *ast.AssertStatement) error {
	test, err := i.evaluateExpression(stmt.Test)
	if err != nil {
		return err
	}
	if !runtime.Truthy(test) {
		return newRuntimeError(AssertionFailed, "assertion failed")
	}
	return nil
}

func invalidTarget(target ast.Expression) error {
	if target == nil {
		return newRuntimeError(InvalidTarget, "missing assignment target")
	}
	return &RuntimeError{
		Kind:    InvalidTarget,
		Message: "cannot assign to " + ast.Describe(target),
		Node:    target,
	}
}

// escapedSignalError turns a control-flow signal that reached a boundary
// it may not cross into a ControlFlow error.
func escapedSignalError(err error, node ast.Node) error {
	switch err.(type) {
	case returnSignal:
		return &RuntimeError{Kind: ControlFlow, Message: "'return' outside function", Node: node}
	case breakSignal:
		return &RuntimeError{Kind: ControlFlow, Message: "'break' outside loop", Node: node}
	case continueSignal:
		return &RuntimeError{Kind: ControlFlow, Message: "'continue' not properly in loop", Node: node}
	default:
		return err
	}
}
