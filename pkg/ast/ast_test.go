package ast

import "testing"

func TestDescribeExpressions(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want string
	}{
		{"identifier", ID("x"), "x"},
		{"int", Int(42), "42"},
		{"float", Flt(0.5), "0.5"},
		{"imaginary", Imag(2), "2j"},
		{"string", Str("hi"), `"hi"`},
		{"bool", Bool(true), "True"},
		{"none", None(), "None"},
		{"single tuple", Tuple(Int(1)), "(1,)"},
		{"pair tuple", Tuple(Int(1), Int(2)), "(1, 2)"},
		{"not", Not(ID("flag")), "not flag"},
		{"nested binary", Bin("*", Bin("+", Int(1), Int(2)), Int(3)), "(1 + 2) * 3"},
		{"attribute", Attr(ID("self"), "x"), "self.x"},
		{"method call", CallMethod(ID("c"), "get", Int(1)), "c.get(1)"},
	}
	for _, tc := range cases {
		if got := Describe(tc.node); got != tc.want {
			t.Fatalf("%s: Describe = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDescribeStatements(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want string
	}{
		{"assign", Assign("x", Int(1)), "x = 1"},
		{"attr assign", AssignAttr(ID("self"), "x", Int(5)), "self.x = 5"},
		{"augmented", AugAssign("+", "i", Int(1)), "i += 1"},
		{"if chain", IfChain([]*IfClause{Elif(ID("a"), Pass()), Elif(ID("b"), Pass())}, Pass()), "if a elif b else"},
		{"while", While(Bin("<", ID("i"), Int(3)), Pass()), "while i < 3"},
		{"bare return", Ret(nil), "return"},
		{"return", Ret(Int(3)), "return 3"},
		{"def", Def("f", []string{"a", "b"}, Pass()), "def f(a, b)"},
		{"class", Class("C", []Expression{ID("Base")}, Pass()), "class C(Base)"},
		{"assert", Assert(Bin("==", Int(1), Int(2)), Str("never shown")), "assert 1 == 2"},
		{"del", Del(ID("x")), "del x"},
		{"module", Mod(Pass(), Pass()), "module (2 statements)"},
	}
	for _, tc := range cases {
		if got := Describe(tc.node); got != tc.want {
			t.Fatalf("%s: Describe = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSetSpanAnnotatesNode(t *testing.T) {
	stmt := Assign("x", Int(1))
	if !stmt.Span().IsZero() {
		t.Fatalf("expected zero span before annotation, got %+v", stmt.Span())
	}
	span := Span{Start: Position{Line: 2, Column: 1}, End: Position{Line: 2, Column: 6}}
	SetSpan(stmt, span)
	if got := stmt.Span(); got != span {
		t.Fatalf("span mismatch: got %+v, want %+v", got, span)
	}
	if stmt.NodeType() != NodeAssignmentStatement {
		t.Fatalf("unexpected node type %s", stmt.NodeType())
	}
}
