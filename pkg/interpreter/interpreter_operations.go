package interpreter

import (
	"math"
	"math/big"
	"strings"

	"minipy/interpreter-go/pkg/runtime"
)

func applyUnaryOperator(op string, operand runtime.Value) (runtime.Value, error) {
	switch op {
	case "not":
		if b, ok := operand.(runtime.BoolValue); ok {
			return runtime.BoolValue{Val: !b.Val}, nil
		}
	case "+":
		switch v := operand.(type) {
		case runtime.IntValue:
			return v, nil
		case runtime.FloatValue:
			return v, nil
		}
	case "-":
		switch v := operand.(type) {
		case runtime.IntValue:
			return runtime.IntValue{Val: new(big.Int).Neg(v.Val)}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -v.Val}, nil
		}
	case "~":
		if v, ok := operand.(runtime.IntValue); ok {
			return runtime.IntValue{Val: new(big.Int).Not(v.Val)}, nil
		}
	default:
		return nil, newRuntimeError(UnsupportedOperand, "unsupported unary operator %s", op)
	}
	return nil, newRuntimeError(UnsupportedOperand, "bad operand type for unary %s: '%s'", op, kindName(operand))
}

func applyBinaryOperator(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "==":
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	case "<", "<=", ">", ">=":
		return evaluateComparison(op, left, right)
	case "&", "|", "^", "<<", ">>":
		return evaluateBitwise(op, left, right)
	case "+", "-", "*", "/", "%", "//", "**":
		return evaluateArithmetic(op, left, right)
	default:
		return nil, unsupportedOperands(op, left, right)
	}
}

func evaluateArithmetic(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	if lv, ok := left.(runtime.IntValue); ok {
		if rv, ok := right.(runtime.IntValue); ok {
			return evaluateIntArithmetic(op, lv.Val, rv.Val)
		}
	}
	if isNumericValue(left) && isNumericValue(right) {
		lf, _ := numericToFloat(left)
		rf, _ := numericToFloat(right)
		return evaluateFloatArithmetic(op, lf, rf)
	}
	switch op {
	case "+":
		if ls, ok := left.(runtime.StringValue); ok {
			if rs, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: ls.Val + rs.Val}, nil
			}
		}
	case "*":
		if count, ok := left.(runtime.IntValue); ok {
			if s, ok := right.(runtime.StringValue); ok {
				return repeatString(s.Val, count.Val)
			}
		}
		if s, ok := left.(runtime.StringValue); ok {
			if count, ok := right.(runtime.IntValue); ok {
				return repeatString(s.Val, count.Val)
			}
		}
	}
	return nil, unsupportedOperands(op, left, right)
}

func evaluateIntArithmetic(op string, left, right *big.Int) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.IntValue{Val: new(big.Int).Add(left, right)}, nil
	case "-":
		return runtime.IntValue{Val: new(big.Int).Sub(left, right)}, nil
	case "*":
		return runtime.IntValue{Val: new(big.Int).Mul(left, right)}, nil
	case "/":
		if right.Sign() == 0 {
			return nil, newRuntimeError(ZeroDivision, "division by zero")
		}
		return runtime.FloatValue{Val: divideIntExact(left, right)}, nil
	case "%":
		if right.Sign() == 0 {
			return nil, newRuntimeError(ZeroDivision, "integer modulo by zero")
		}
		return runtime.IntValue{Val: floorModInt(left, right)}, nil
	case "//":
		if right.Sign() == 0 {
			return nil, newRuntimeError(ZeroDivision, "integer division by zero")
		}
		return runtime.IntValue{Val: floorDivInt(left, right)}, nil
	case "**":
		if right.Sign() >= 0 {
			return runtime.IntValue{Val: new(big.Int).Exp(left, right, nil)}, nil
		}
		return evaluateFloatArithmetic(op, bigIntToFloat(left), bigIntToFloat(right))
	}
	return nil, newRuntimeError(UnsupportedOperand, "unsupported operand type(s) for %s: 'int' and 'int'", op)
}

func evaluateFloatArithmetic(op string, left, right float64) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.FloatValue{Val: left + right}, nil
	case "-":
		return runtime.FloatValue{Val: left - right}, nil
	case "*":
		return runtime.FloatValue{Val: left * right}, nil
	case "/":
		if right == 0 {
			return nil, newRuntimeError(ZeroDivision, "float division by zero")
		}
		return runtime.FloatValue{Val: left / right}, nil
	case "%":
		if right == 0 {
			return nil, newRuntimeError(ZeroDivision, "float modulo by zero")
		}
		return runtime.FloatValue{Val: floorModFloat(left, right)}, nil
	case "//":
		if right == 0 {
			return nil, newRuntimeError(ZeroDivision, "float floor division by zero")
		}
		return runtime.FloatValue{Val: math.Floor(left / right)}, nil
	case "**":
		if left == 0 && right < 0 {
			return nil, newRuntimeError(ZeroDivision, "zero cannot be raised to a negative power")
		}
		return runtime.FloatValue{Val: math.Pow(left, right)}, nil
	}
	return nil, newRuntimeError(UnsupportedOperand, "unsupported operand type(s) for %s: 'float' and 'float'", op)
}

func evaluateBitwise(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	lv, ok := left.(runtime.IntValue)
	if !ok {
		return nil, unsupportedOperands(op, left, right)
	}
	rv, ok := right.(runtime.IntValue)
	if !ok {
		return nil, unsupportedOperands(op, left, right)
	}
	switch op {
	case "&":
		return runtime.IntValue{Val: new(big.Int).And(lv.Val, rv.Val)}, nil
	case "|":
		return runtime.IntValue{Val: new(big.Int).Or(lv.Val, rv.Val)}, nil
	case "^":
		return runtime.IntValue{Val: new(big.Int).Xor(lv.Val, rv.Val)}, nil
	}
	if rv.Val.Sign() < 0 {
		return nil, newRuntimeError(UnsupportedOperand, "negative shift count")
	}
	if !rv.Val.IsInt64() || rv.Val.Int64() > math.MaxInt32 {
		return nil, newRuntimeError(UnsupportedOperand, "shift count too large")
	}
	count := uint(rv.Val.Int64())
	if op == "<<" {
		return runtime.IntValue{Val: new(big.Int).Lsh(lv.Val, count)}, nil
	}
	return runtime.IntValue{Val: new(big.Int).Rsh(lv.Val, count)}, nil
}

func evaluateComparison(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	var cmp int
	if lv, ok := left.(runtime.IntValue); ok {
		if rv, ok := right.(runtime.IntValue); ok {
			cmp = lv.Val.Cmp(rv.Val)
			return runtime.BoolValue{Val: compareResult(op, cmp)}, nil
		}
	}
	if !isNumericValue(left) || !isNumericValue(right) {
		return nil, newRuntimeError(UnsupportedOperand, "'%s' not supported between instances of '%s' and '%s'", op, kindName(left), kindName(right))
	}
	lf, _ := numericToFloat(left)
	rf, _ := numericToFloat(right)
	switch op {
	case "<":
		return runtime.BoolValue{Val: lf < rf}, nil
	case "<=":
		return runtime.BoolValue{Val: lf <= rf}, nil
	case ">":
		return runtime.BoolValue{Val: lf > rf}, nil
	default:
		return runtime.BoolValue{Val: lf >= rf}, nil
	}
}

func compareResult(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	default:
		return cmp >= 0
	}
}

// valuesEqual is structural equality for plain values and identity for
// functions, classes and objects.
func valuesEqual(left runtime.Value, right runtime.Value) bool {
	switch lv := left.(type) {
	case runtime.NoneValue:
		_, ok := right.(runtime.NoneValue)
		return ok
	case runtime.BoolValue:
		rv, ok := right.(runtime.BoolValue)
		return ok && lv.Val == rv.Val
	case runtime.IntValue:
		switch rv := right.(type) {
		case runtime.IntValue:
			return lv.Val.Cmp(rv.Val) == 0
		case runtime.FloatValue:
			return bigIntToFloat(lv.Val) == rv.Val
		}
		return false
	case runtime.FloatValue:
		switch rv := right.(type) {
		case runtime.FloatValue:
			return lv.Val == rv.Val
		case runtime.IntValue:
			return lv.Val == bigIntToFloat(rv.Val)
		}
		return false
	case runtime.ImaginaryValue:
		rv, ok := right.(runtime.ImaginaryValue)
		return ok && lv.Val == rv.Val
	case runtime.StringValue:
		rv, ok := right.(runtime.StringValue)
		return ok && lv.Val == rv.Val
	case runtime.TupleValue:
		rv, ok := right.(runtime.TupleValue)
		if !ok || len(lv.Elements) != len(rv.Elements) {
			return false
		}
		for idx := range lv.Elements {
			if !valuesEqual(lv.Elements[idx], rv.Elements[idx]) {
				return false
			}
		}
		return true
	case *runtime.FunctionValue:
		rv, ok := right.(*runtime.FunctionValue)
		return ok && lv == rv
	case *runtime.ClassValue:
		rv, ok := right.(*runtime.ClassValue)
		return ok && lv == rv
	case *runtime.ObjectValue:
		rv, ok := right.(*runtime.ObjectValue)
		return ok && lv == rv
	default:
		return false
	}
}

func repeatString(s string, count *big.Int) (runtime.Value, error) {
	if count.Sign() <= 0 || s == "" {
		return runtime.StringValue{Val: ""}, nil
	}
	if !count.IsInt64() || count.Int64() > int64(maxStringRepeat/len(s)) {
		return nil, newRuntimeError(UnsupportedOperand, "repeated string is too long")
	}
	return runtime.StringValue{Val: strings.Repeat(s, int(count.Int64()))}, nil
}

func unsupportedOperands(op string, left runtime.Value, right runtime.Value) error {
	return newRuntimeError(UnsupportedOperand, "unsupported operand type(s) for %s: '%s' and '%s'", op, kindName(left), kindName(right))
}

func kindName(v runtime.Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.Kind().String()
}
