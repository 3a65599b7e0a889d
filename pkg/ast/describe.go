package ast

import (
	"strconv"
	"strings"
)

// Describe renders a one-line structural form of a node. Expressions are
// printed in source-like notation; compound statements print their header
// only, since each nested statement is described when it runs.
func Describe(node Node) string {
	var b strings.Builder
	describeNode(&b, node)
	return b.String()
}

func describeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Module:
		b.WriteString("module (")
		b.WriteString(strconv.Itoa(len(n.Body)))
		b.WriteString(" statements)")
	case *AssignmentStatement:
		describeNode(b, n.Target)
		b.WriteString(" = ")
		describeNode(b, n.Value)
	case *AugmentedAssignment:
		describeNode(b, n.Target)
		b.WriteString(" ")
		b.WriteString(n.Operator)
		b.WriteString("= ")
		describeNode(b, n.Value)
	case *ExpressionStatement:
		describeNode(b, n.Expression)
	case *IfStatement:
		for idx, clause := range n.Clauses {
			if idx == 0 {
				b.WriteString("if ")
			} else {
				b.WriteString(" elif ")
			}
			describeNode(b, clause.Condition)
		}
		if n.Else != nil {
			b.WriteString(" else")
		}
	case *IfClause:
		b.WriteString("if ")
		describeNode(b, n.Condition)
	case *WhileStatement:
		b.WriteString("while ")
		describeNode(b, n.Condition)
		if n.Else != nil {
			b.WriteString(" else")
		}
	case *ReturnStatement:
		b.WriteString("return")
		if n.Argument != nil {
			b.WriteString(" ")
			describeNode(b, n.Argument)
		}
	case *BreakStatement:
		b.WriteString("break")
	case *ContinueStatement:
		b.WriteString("continue")
	case *PassStatement:
		b.WriteString("pass")
	case *DeleteStatement:
		b.WriteString("del ")
		describeList(b, n.Targets)
	case *AssertStatement:
		b.WriteString("assert ")
		describeNode(b, n.Test)
	case *FunctionDefinition:
		b.WriteString("def ")
		b.WriteString(identifierName(n.ID))
		b.WriteString("(")
		for idx, param := range n.Params {
			if idx > 0 {
				b.WriteString(", ")
			}
			b.WriteString(identifierName(param))
		}
		b.WriteString(")")
	case *ClassDefinition:
		b.WriteString("class ")
		b.WriteString(identifierName(n.ID))
		if len(n.Bases) > 0 {
			b.WriteString("(")
			describeList(b, n.Bases)
			b.WriteString(")")
		}
	case *Identifier:
		b.WriteString(n.Name)
	case *IntegerLiteral:
		if n.Value == nil {
			b.WriteString("0")
		} else {
			b.WriteString(n.Value.String())
		}
	case *FloatLiteral:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *ImaginaryLiteral:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
		b.WriteString("j")
	case *StringLiteral:
		b.WriteString(strconv.Quote(n.Value))
	case *BooleanLiteral:
		if n.Value {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case *NoneLiteral:
		b.WriteString("None")
	case *TupleExpression:
		b.WriteString("(")
		describeList(b, n.Elements)
		if len(n.Elements) == 1 {
			b.WriteString(",")
		}
		b.WriteString(")")
	case *UnaryExpression:
		b.WriteString(n.Operator)
		if n.Operator == "not" {
			b.WriteString(" ")
		}
		describeOperand(b, n.Operand)
	case *BinaryExpression:
		describeOperand(b, n.Left)
		b.WriteString(" ")
		b.WriteString(n.Operator)
		b.WriteString(" ")
		describeOperand(b, n.Right)
	case *AttributeExpression:
		describeOperand(b, n.Object)
		b.WriteString(".")
		b.WriteString(identifierName(n.Attribute))
	case *CallExpression:
		describeOperand(b, n.Callee)
		b.WriteString("(")
		describeList(b, n.Arguments)
		b.WriteString(")")
	default:
		b.WriteString(string(node.NodeType()))
	}
}

func describeList(b *strings.Builder, exprs []Expression) {
	for idx, expr := range exprs {
		if idx > 0 {
			b.WriteString(", ")
		}
		describeNode(b, expr)
	}
}

// describeOperand parenthesizes nested operator expressions so precedence
// stays visible without tracking it.
func describeOperand(b *strings.Builder, expr Expression) {
	switch expr.(type) {
	case *BinaryExpression, *UnaryExpression:
		b.WriteString("(")
		describeNode(b, expr)
		b.WriteString(")")
	default:
		describeNode(b, expr)
	}
}

func identifierName(id *Identifier) string {
	if id == nil {
		return "<anonymous>"
	}
	return id.Name
}
