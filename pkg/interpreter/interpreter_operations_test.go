package interpreter

import (
	"math/big"
	"strings"
	"testing"

	"minipy/interpreter-go/pkg/runtime"
)

func intVal(v int64) runtime.Value     { return runtime.NewInt(v) }
func floatVal(v float64) runtime.Value { return runtime.FloatValue{Val: v} }
func strVal(v string) runtime.Value    { return runtime.NewString(v) }
func boolVal(v bool) runtime.Value     { return runtime.NewBool(v) }

func TestBinaryOperatorResults(t *testing.T) {
	cases := []struct {
		op          string
		left, right runtime.Value
		want        string
		kind        runtime.Kind
	}{
		{"+", intVal(2), intVal(3), "5", runtime.KindInt},
		{"-", intVal(2), intVal(3), "-1", runtime.KindInt},
		{"*", intVal(4), floatVal(0.5), "2.0", runtime.KindFloat},
		{"/", intVal(7), intVal(2), "3.5", runtime.KindFloat},
		{"/", intVal(4), intVal(2), "2.0", runtime.KindFloat},
		{"%", intVal(7), intVal(-3), "-2", runtime.KindInt},
		{"%", intVal(-7), intVal(3), "2", runtime.KindInt},
		{"//", intVal(7), intVal(-3), "-3", runtime.KindInt},
		{"//", intVal(-7), intVal(2), "-4", runtime.KindInt},
		{"%", floatVal(-7), intVal(3), "2.0", runtime.KindFloat},
		{"//", floatVal(7.5), intVal(2), "3.0", runtime.KindFloat},
		{"**", intVal(2), intVal(10), "1024", runtime.KindInt},
		{"**", intVal(2), intVal(-1), "0.5", runtime.KindFloat},
		{"**", floatVal(4), floatVal(0.5), "2.0", runtime.KindFloat},
		{"&", intVal(6), intVal(3), "2", runtime.KindInt},
		{"|", intVal(6), intVal(3), "7", runtime.KindInt},
		{"^", intVal(6), intVal(3), "5", runtime.KindInt},
		{"<<", intVal(1), intVal(70), "1180591620717411303424", runtime.KindInt},
		{">>", intVal(-9), intVal(1), "-5", runtime.KindInt},
		{"+", strVal("ab"), strVal("cd"), "abcd", runtime.KindString},
		{"*", strVal("ab"), intVal(3), "ababab", runtime.KindString},
		{"*", intVal(2), strVal("ab"), "abab", runtime.KindString},
		{"*", intVal(-1), strVal("ab"), "", runtime.KindString},
		{"<", intVal(1), floatVal(1.5), "True", runtime.KindBool},
		{">=", floatVal(2), intVal(2), "True", runtime.KindBool},
		{">", intVal(1), intVal(2), "False", runtime.KindBool},
		{"==", intVal(1), floatVal(1), "True", runtime.KindBool},
		{"==", intVal(1), boolVal(true), "False", runtime.KindBool},
		{"==", strVal("a"), strVal("a"), "True", runtime.KindBool},
		{"!=", runtime.None, intVal(0), "True", runtime.KindBool},
		{"==", runtime.NewTuple(intVal(1), strVal("a")), runtime.NewTuple(floatVal(1), strVal("a")), "True", runtime.KindBool},
		{"==", runtime.NewTuple(intVal(1)), runtime.NewTuple(intVal(1), intVal(2)), "False", runtime.KindBool},
	}
	for _, tc := range cases {
		got, err := applyBinaryOperator(tc.op, tc.left, tc.right)
		if err != nil {
			t.Fatalf("%v %s %v: unexpected error %v", tc.left, tc.op, tc.right, err)
		}
		if got.Kind() != tc.kind {
			t.Fatalf("%v %s %v: expected %s, got %s", tc.left, tc.op, tc.right, tc.kind, got.Kind())
		}
		text, err := runtime.ToString(got)
		if err != nil {
			t.Fatalf("ToString: %v", err)
		}
		if text != tc.want {
			t.Fatalf("%v %s %v: expected %s, got %s", tc.left, tc.op, tc.right, tc.want, text)
		}
	}
}

func TestFloorDivisionBeyondFloatRange(t *testing.T) {
	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(400), nil)
	cases := []struct {
		left, right *big.Int
		want        *big.Int
	}{
		{huge, big.NewInt(3), new(big.Int).Quo(huge, big.NewInt(3))},
		{new(big.Int).Neg(huge), big.NewInt(3), new(big.Int).Sub(new(big.Int).Quo(new(big.Int).Neg(huge), big.NewInt(3)), big.NewInt(1))},
		{huge, huge, big.NewInt(1)},
	}
	for _, tc := range cases {
		got, err := applyBinaryOperator("//", runtime.IntValue{Val: tc.left}, runtime.IntValue{Val: tc.right})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.(runtime.IntValue).Val.Cmp(tc.want) != 0 {
			t.Fatalf("expected %s, got %s", tc.want, got.(runtime.IntValue).Val)
		}
	}
}

func TestFloorDivisionAndModuloAgree(t *testing.T) {
	for _, a := range []int64{-7, -1, 0, 5, 13} {
		for _, b := range []int64{-3, -1, 2, 4} {
			q, err := applyBinaryOperator("//", intVal(a), intVal(b))
			if err != nil {
				t.Fatalf("%d // %d: %v", a, b, err)
			}
			r, err := applyBinaryOperator("%", intVal(a), intVal(b))
			if err != nil {
				t.Fatalf("%d %% %d: %v", a, b, err)
			}
			qv := q.(runtime.IntValue).Val
			rv := r.(runtime.IntValue).Val
			recombined := new(big.Int).Add(new(big.Int).Mul(qv, big.NewInt(b)), rv)
			if recombined.Int64() != a {
				t.Fatalf("%d != (%d // %d) * %d + %d %% %d", a, a, b, b, a, b)
			}
			if rv.Sign() != 0 && rv.Sign() != big.NewInt(b).Sign() {
				t.Fatalf("%d %% %d = %s should take the divisor's sign", a, b, rv)
			}
		}
	}
}

func TestBinaryOperatorErrors(t *testing.T) {
	cases := []struct {
		op          string
		left, right runtime.Value
		kind        ErrorKind
		message     string
	}{
		{"/", intVal(1), intVal(0), ZeroDivision, "division by zero"},
		{"%", intVal(1), intVal(0), ZeroDivision, "modulo by zero"},
		{"//", floatVal(1), intVal(0), ZeroDivision, "floor division by zero"},
		{"**", intVal(0), intVal(-1), ZeroDivision, "negative power"},
		{"+", intVal(1), strVal("a"), UnsupportedOperand, "unsupported operand type(s) for +: 'int' and 'str'"},
		{"-", strVal("a"), strVal("b"), UnsupportedOperand, "for -: 'str' and 'str'"},
		{"+", boolVal(true), intVal(1), UnsupportedOperand, "'bool' and 'int'"},
		{"&", floatVal(1), intVal(1), UnsupportedOperand, "for &: 'float' and 'int'"},
		{"<<", intVal(1), intVal(-1), UnsupportedOperand, "negative shift count"},
		{"<", strVal("a"), strVal("b"), UnsupportedOperand, "'<' not supported between instances of 'str' and 'str'"},
		{"+", runtime.NewTuple(), runtime.NewTuple(), UnsupportedOperand, "'tuple' and 'tuple'"},
	}
	for _, tc := range cases {
		_, err := applyBinaryOperator(tc.op, tc.left, tc.right)
		if err == nil {
			t.Fatalf("%v %s %v: expected error", tc.left, tc.op, tc.right)
		}
		kind, _ := KindOf(err)
		if kind != tc.kind {
			t.Fatalf("%v %s %v: expected %s, got %s (%v)", tc.left, tc.op, tc.right, tc.kind, kind, err)
		}
		if !strings.Contains(err.Error(), tc.message) {
			t.Fatalf("%v %s %v: expected message containing %q, got %q", tc.left, tc.op, tc.right, tc.message, err.Error())
		}
	}
}

func TestStringRepeatLimit(t *testing.T) {
	_, err := applyBinaryOperator("*", strVal("ab"), intVal(maxStringRepeat))
	if kind, _ := KindOf(err); kind != UnsupportedOperand {
		t.Fatalf("expected UnsupportedOperand for oversized repeat, got %v", err)
	}
}

func TestUnaryOperators(t *testing.T) {
	cases := []struct {
		op      string
		operand runtime.Value
		want    string
	}{
		{"-", intVal(3), "-3"},
		{"+", floatVal(2.5), "2.5"},
		{"-", floatVal(0), "-0.0"},
		{"~", intVal(5), "-6"},
		{"not", boolVal(true), "False"},
	}
	for _, tc := range cases {
		got, err := applyUnaryOperator(tc.op, tc.operand)
		if err != nil {
			t.Fatalf("%s%v: unexpected error %v", tc.op, tc.operand, err)
		}
		text, _ := runtime.ToString(got)
		if text != tc.want {
			t.Fatalf("%s%v: expected %s, got %s", tc.op, tc.operand, tc.want, text)
		}
	}

	for _, bad := range []struct {
		op      string
		operand runtime.Value
	}{
		{"not", intVal(0)},
		{"-", strVal("a")},
		{"~", floatVal(1)},
		{"+", boolVal(true)},
	} {
		_, err := applyUnaryOperator(bad.op, bad.operand)
		if kind, _ := KindOf(err); kind != UnsupportedOperand {
			t.Fatalf("%s%v: expected UnsupportedOperand, got %v", bad.op, bad.operand, err)
		}
	}
}

func TestValuesEqualUsesIdentityForReferences(t *testing.T) {
	class := runtime.NewClass("C", runtime.NewAttributeStore())
	a := runtime.NewObject(class)
	b := runtime.NewObject(class)
	if !valuesEqual(a, a) || valuesEqual(a, b) {
		t.Fatalf("objects should compare by identity")
	}
	f := runtime.NewFunction("f", nil, nil)
	g := runtime.NewFunction("f", nil, nil)
	if !valuesEqual(f, f) || valuesEqual(f, g) {
		t.Fatalf("functions should compare by identity")
	}
}
