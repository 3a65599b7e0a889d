package runtime

import (
	"errors"
	"testing"
)

func TestEnvironmentUpdateAndLookup(t *testing.T) {
	env := NewEnvironment()
	env.Update("greeting", StringValue{Val: "hello"})

	got, err := env.Lookup("greeting")
	if err != nil {
		t.Fatalf("expected to retrieve binding: %v", err)
	}
	if gv, ok := got.(StringValue); !ok || gv.Val != "hello" {
		t.Fatalf("unexpected value returned: %#v", got)
	}
}

func TestEnvironmentLookupUnknownFails(t *testing.T) {
	env := NewEnvironment()
	_, err := env.Lookup("missing")
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
	if err.Error() != "unknown symbol: name 'missing' is not defined" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestPushedFrameHidesOuterBindings(t *testing.T) {
	env := NewEnvironment()
	env.Update("x", NewInt(1))
	env.PushFrame()
	if _, err := env.Lookup("x"); !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected pushed frame to hide globals, got %v", err)
	}
	env.Update("y", NewInt(2))
	store, err := env.PopFrame()
	if err != nil {
		t.Fatalf("PopFrame: %v", err)
	}
	if keys := store.Keys(); len(keys) != 1 || keys[0] != "y" {
		t.Fatalf("unexpected collapsed bindings %v", keys)
	}
	if _, err := env.Lookup("y"); !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("class-body binding leaked into global frame: %v", err)
	}
}

func TestPopGlobalFrameFails(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.PopFrame(); !errors.Is(err, ErrFrameStackUnderflow) {
		t.Fatalf("expected underflow, got %v", err)
	}
}

func TestOverlayFrameScoping(t *testing.T) {
	env := NewEnvironment()
	env.Update("counter", NewInt(1))
	env.Update("shared", NewInt(10))

	frame := NewOverlayFrame(env.Global())
	frame.Define("counter", NewInt(100))
	saved := env.EnterCall(frame, &ReturnExit{Function: "f"})

	got, err := env.Lookup("shared")
	if err != nil {
		t.Fatalf("overlay should see globals: %v", err)
	}
	if iv := got.(IntValue); iv.Val.Int64() != 10 {
		t.Fatalf("unexpected shared value %s", iv.Val)
	}

	// parameter shadows the global of the same name
	env.Update("counter", NewInt(200))
	// existing global is rebound
	env.Update("shared", NewInt(11))
	// unknown name becomes a local
	env.Update("local", NewInt(5))

	env.Restore(saved)

	if got, _ := env.Lookup("counter"); got.(IntValue).Val.Int64() != 1 {
		t.Fatalf("parameter assignment escaped the call: %s", got.(IntValue).Val)
	}
	if got, _ := env.Lookup("shared"); got.(IntValue).Val.Int64() != 11 {
		t.Fatalf("global rebind lost: %s", got.(IntValue).Val)
	}
	if _, err := env.Lookup("local"); !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("call local leaked into global frame: %v", err)
	}
}

func TestEnterCallRestoresExactState(t *testing.T) {
	env := NewEnvironment()
	if _, ok := env.ReturnExit(); ok {
		t.Fatalf("top level should have no return exit")
	}
	env.PushFrame()
	depth := env.Depth()

	outer := &ReturnExit{Function: "outer"}
	saved := env.EnterCall(NewOverlayFrame(env.Global()), outer)
	inner := &ReturnExit{Function: "inner"}
	nested := env.EnterCall(NewOverlayFrame(env.Global()), inner)
	if exit, ok := env.ReturnExit(); !ok || exit != inner {
		t.Fatalf("expected inner exit, got %#v", exit)
	}
	env.Restore(nested)
	if exit, ok := env.ReturnExit(); !ok || exit != outer {
		t.Fatalf("expected outer exit after restore, got %#v", exit)
	}
	env.Restore(saved)
	if env.Depth() != depth {
		t.Fatalf("depth mismatch: got %d, want %d", env.Depth(), depth)
	}
	if _, ok := env.ReturnExit(); ok {
		t.Fatalf("return exit should be cleared after restore")
	}
}
