package interpreter

import (
	"math/big"

	"minipy/interpreter-go/pkg/ast"
	"minipy/interpreter-go/pkg/runtime"
)

// evaluateExpression reduces expr to a value. Failures are attributed to the
// innermost expression that produced them.
func (i *Interpreter) evaluateExpression(expr ast.Expression) (runtime.Value, error) {
	val, err := i.evalExpression(expr)
	if err != nil {
		return nil, attachRuntimeContext(err, expr)
	}
	return val, nil
}

func (i *Interpreter) evalExpression(expr ast.Expression) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.Identifier:
		return i.env.Lookup(n.Name)
	case *ast.IntegerLiteral:
		if n.Value == nil {
			return runtime.NewInt(0), nil
		}
		return runtime.IntValue{Val: new(big.Int).Set(n.Value)}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.ImaginaryLiteral:
		return runtime.ImaginaryValue{Val: complex(0, n.Value)}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NoneLiteral:
		return runtime.None, nil
	case *ast.TupleExpression:
		return i.evaluateTupleExpression(n)
	case *ast.UnaryExpression:
		operand, err := i.evaluateExpression(n.Operand)
		if err != nil {
			return nil, err
		}
		return applyUnaryOperator(n.Operator, operand)
	case *ast.BinaryExpression:
		left, err := i.evaluateExpression(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateExpression(n.Right)
		if err != nil {
			return nil, err
		}
		return applyBinaryOperator(n.Operator, left, right)
	case *ast.AttributeExpression:
		receiver, err := i.evaluateExpression(n.Object)
		if err != nil {
			return nil, err
		}
		return i.getAttribute(receiver, n)
	case *ast.CallExpression:
		return i.evaluateCallExpression(n)
	case nil:
		return nil, newRuntimeError(InternalInvariantViolation, "nil expression")
	default:
		return nil, newRuntimeError(NotImplemented, "unsupported expression %s", expr.NodeType())
	}
}

func (i *Interpreter) evaluateTupleExpression(tuple *ast.TupleExpression) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(tuple.Elements))
	for _, el := range tuple.Elements {
		val, err := i.evaluateExpression(el)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return runtime.TupleValue{Elements: elements}, nil
}

func (i *Interpreter) evaluateArguments(args []ast.Expression) ([]runtime.Value, error) {
	values := make([]runtime.Value, 0, len(args))
	for _, arg := range args {
		val, err := i.evaluateExpression(arg)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}
