package ast

import "math/big"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(big.NewInt(value))
}

func IntBig(value *big.Int) *IntegerLiteral {
	return NewIntegerLiteral(new(big.Int).Set(value))
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Imag(value float64) *ImaginaryLiteral {
	return NewImaginaryLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func None() *NoneLiteral {
	return NewNoneLiteral()
}

// Expression helpers.

func Tuple(elements ...Expression) *TupleExpression {
	return NewTupleExpression(elements)
}

func Un(operator string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression("not", operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Attr(object Expression, attribute interface{}) *AttributeExpression {
	return NewAttributeExpression(object, identifierPtr(attribute))
}

func CallExpr(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func Call(name string, args ...Expression) *CallExpression {
	return CallExpr(ID(name), args...)
}

// CallMethod builds `object.method(args...)`.
func CallMethod(object Expression, method string, args ...Expression) *CallExpression {
	return CallExpr(Attr(object, method), args...)
}

func Print(arg Expression) *ExpressionStatement {
	return Expr(Call("print", arg))
}

// Statement helpers.

func Assign(target interface{}, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(targetExpression(target), value)
}

func AssignAttr(object Expression, attribute interface{}, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(Attr(object, attribute), value)
}

func AugAssign(operator string, target interface{}, value Expression) *AugmentedAssignment {
	return NewAugmentedAssignment(operator, targetExpression(target), value)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Block(statements ...Statement) []Statement {
	return statements
}

func If(condition Expression, body ...Statement) *IfStatement {
	return NewIfStatement([]*IfClause{NewIfClause(condition, body)}, nil)
}

func IfElse(condition Expression, body []Statement, elseBody []Statement) *IfStatement {
	return NewIfStatement([]*IfClause{NewIfClause(condition, body)}, elseBody)
}

func Elif(condition Expression, body ...Statement) *IfClause {
	return NewIfClause(condition, body)
}

func IfChain(clauses []*IfClause, elseBody ...Statement) *IfStatement {
	return NewIfStatement(clauses, elseBody)
}

func While(condition Expression, body ...Statement) *WhileStatement {
	return NewWhileStatement(condition, body, nil)
}

func WhileElse(condition Expression, body []Statement, elseBody []Statement) *WhileStatement {
	return NewWhileStatement(condition, body, elseBody)
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Pass() *PassStatement {
	return NewPassStatement()
}

func Del(targets ...Expression) *DeleteStatement {
	return NewDeleteStatement(targets)
}

func Assert(test Expression, message Expression) *AssertStatement {
	return NewAssertStatement(test, message)
}

func Def(name string, params []string, body ...Statement) *FunctionDefinition {
	ids := make([]*Identifier, 0, len(params))
	for _, param := range params {
		ids = append(ids, ID(param))
	}
	return NewFunctionDefinition(ID(name), ids, body)
}

func Class(name string, bases []Expression, body ...Statement) *ClassDefinition {
	return NewClassDefinition(ID(name), bases, body)
}

func Mod(body ...Statement) *Module {
	return NewModule(body)
}

// Internal helper utilities.

func identifierPtr(value interface{}) *Identifier {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case string:
		return ID(v)
	case *Identifier:
		return v
	default:
		panic("ast: expected string or *Identifier")
	}
}

func targetExpression(target interface{}) Expression {
	switch v := target.(type) {
	case string:
		return ID(v)
	case Expression:
		return v
	default:
		panic("ast: unsupported assignment target")
	}
}
