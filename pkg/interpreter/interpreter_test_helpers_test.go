package interpreter

import (
	"bytes"
	"math/big"
	"testing"

	"minipy/interpreter-go/pkg/ast"
	"minipy/interpreter-go/pkg/runtime"
)

func bigInt(v int64) *big.Int {
	return big.NewInt(v)
}

// runModule evaluates module in a fresh interpreter and returns what it
// printed.
func runModule(t *testing.T, module *ast.Module) (*Interpreter, string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(WithStdout(&out))
	err := interp.EvaluateModule(module)
	return interp, out.String(), err
}

func mustRunModule(t *testing.T, module *ast.Module) (*Interpreter, string) {
	t.Helper()
	interp, out, err := runModule(t, module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return interp, out
}

func expectKind(t *testing.T, err error, want ErrorKind) *RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	got, ok := KindOf(err)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if got != want {
		t.Fatalf("expected %s error, got %s: %v", want, got, err)
	}
	rtErr, _ := err.(*RuntimeError)
	return rtErr
}

func globalValue(t *testing.T, interp *Interpreter, name string) runtime.Value {
	t.Helper()
	val, ok := interp.GlobalEnvironment().Global().Get(name)
	if !ok {
		t.Fatalf("expected global %q to be bound", name)
	}
	return val
}

func expectInt(t *testing.T, val runtime.Value, want int64) {
	t.Helper()
	iv, ok := val.(runtime.IntValue)
	if !ok || iv.Val.Cmp(bigInt(want)) != 0 {
		t.Fatalf("expected int %d, got %#v", want, val)
	}
}
