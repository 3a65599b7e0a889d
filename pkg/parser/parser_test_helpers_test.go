package parser

import (
	"encoding/json"
	"reflect"
	"testing"

	"minipy/interpreter-go/pkg/ast"
)

func newTestParser(t testing.TB) *ModuleParser {
	t.Helper()
	mp, err := NewModuleParser()
	if err != nil {
		t.Fatalf("NewModuleParser: %v", err)
	}
	t.Cleanup(func() { mp.Close() })
	return mp
}

func mustParse(t testing.TB, source string) *ast.Module {
	t.Helper()
	mod, err := newTestParser(t).ParseModule([]byte(source))
	if err != nil {
		t.Fatalf("ParseModule(%q) returned error: %v", source, err)
	}
	if mod == nil {
		t.Fatalf("ParseModule(%q) returned nil module", source)
	}
	return mod
}

func checkSpan(t testing.TB, label string, span ast.Span, startLine, startCol, endLine, endCol int) {
	t.Helper()
	if span.Start.Line != startLine || span.Start.Column != startCol {
		t.Fatalf("%s start span mismatch: got (%d,%d), want (%d,%d)", label, span.Start.Line, span.Start.Column, startLine, startCol)
	}
	if span.End.Line != endLine || span.End.Column != endCol {
		t.Fatalf("%s end span mismatch: got (%d,%d), want (%d,%d)", label, span.End.Line, span.End.Column, endLine, endCol)
	}
}

// assertModulesEqual compares modules structurally. Spans are not part of
// the JSON form, so parsed modules compare equal to DSL-built ones.
func assertModulesEqual(t testing.TB, expected interface{}, actual interface{}) {
	t.Helper()
	if reflect.DeepEqual(expected, actual) {
		return
	}
	wantJSON, _ := json.Marshal(expected)
	gotJSON, _ := json.Marshal(actual)
	var wantAny interface{}
	var gotAny interface{}
	_ = json.Unmarshal(wantJSON, &wantAny)
	_ = json.Unmarshal(gotJSON, &gotAny)
	if reflect.DeepEqual(collapseEmpty(wantAny), collapseEmpty(gotAny)) {
		return
	}
	wantPretty, _ := json.MarshalIndent(wantAny, "", "  ")
	gotPretty, _ := json.MarshalIndent(gotAny, "", "  ")
	t.Fatalf("module mismatch\nexpected: %s\n   actual: %s", wantPretty, gotPretty)
}

// collapseEmpty treats empty lists and null alike.
func collapseEmpty(v interface{}) interface{} {
	switch val := v.(type) {
	case []interface{}:
		if len(val) == 0 {
			return nil
		}
		for i := range val {
			val[i] = collapseEmpty(val[i])
		}
		return val
	case map[string]interface{}:
		for k := range val {
			val[k] = collapseEmpty(val[k])
		}
		return val
	default:
		return v
	}
}
