package ast

import "math/big"

type NodeType string

const (
	NodeIdentifier            NodeType = "Identifier"
	NodeIntegerLiteral        NodeType = "IntegerLiteral"
	NodeFloatLiteral          NodeType = "FloatLiteral"
	NodeImaginaryLiteral      NodeType = "ImaginaryLiteral"
	NodeStringLiteral         NodeType = "StringLiteral"
	NodeBooleanLiteral        NodeType = "BooleanLiteral"
	NodeNoneLiteral           NodeType = "NoneLiteral"
	NodeTupleExpression       NodeType = "TupleExpression"
	NodeUnaryExpression       NodeType = "UnaryExpression"
	NodeBinaryExpression      NodeType = "BinaryExpression"
	NodeAttributeExpression   NodeType = "AttributeExpression"
	NodeCallExpression        NodeType = "CallExpression"
	NodeAssignmentStatement   NodeType = "AssignmentStatement"
	NodeAugmentedAssignment   NodeType = "AugmentedAssignment"
	NodeExpressionStatement   NodeType = "ExpressionStatement"
	NodeIfStatement           NodeType = "IfStatement"
	NodeIfClause              NodeType = "IfClause"
	NodeWhileStatement        NodeType = "WhileStatement"
	NodeReturnStatement       NodeType = "ReturnStatement"
	NodeBreakStatement        NodeType = "BreakStatement"
	NodeContinueStatement     NodeType = "ContinueStatement"
	NodePassStatement         NodeType = "PassStatement"
	NodeDeleteStatement       NodeType = "DeleteStatement"
	NodeAssertStatement       NodeType = "AssertStatement"
	NodeFunctionDefinition    NodeType = "FunctionDefinition"
	NodeClassDefinition       NodeType = "ClassDefinition"
	NodeModule                NodeType = "Module"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value *big.Int `json:"value"`
}

func NewIntegerLiteral(value *big.Int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

// ImaginaryLiteral holds the imaginary part of a literal such as `2j`.
type ImaginaryLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewImaginaryLiteral(value float64) *ImaginaryLiteral {
	return &ImaginaryLiteral{nodeImpl: newNodeImpl(NodeImaginaryLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NoneLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNoneLiteral() *NoneLiteral {
	return &NoneLiteral{nodeImpl: newNodeImpl(NodeNoneLiteral)}
}

// Expressions

type TupleExpression struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewTupleExpression(elements []Expression) *TupleExpression {
	return &TupleExpression{nodeImpl: newNodeImpl(NodeTupleExpression), Elements: elements}
}

// UnaryExpression operators: "not", "+", "-", "~".
type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type AttributeExpression struct {
	nodeImpl
	expressionMarker

	Object    Expression  `json:"object"`
	Attribute *Identifier `json:"attribute"`
}

func NewAttributeExpression(object Expression, attribute *Identifier) *AttributeExpression {
	return &AttributeExpression{nodeImpl: newNodeImpl(NodeAttributeExpression), Object: object, Attribute: attribute}
}

// CallExpression covers plain calls, method calls (callee is an
// AttributeExpression) and the print builtin (callee is the identifier print).
type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, arguments []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: arguments}
}

// Statements

// AssignmentStatement targets are Identifiers or AttributeExpressions; any
// other expression is rejected when the statement runs.
type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Target Expression `json:"target"`
	Value  Expression `json:"value"`
}

func NewAssignmentStatement(target, value Expression) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement), Target: target, Value: value}
}

// AugmentedAssignment stores the binary operator without the trailing "=".
type AugmentedAssignment struct {
	nodeImpl
	statementMarker

	Operator string     `json:"operator"`
	Target   Expression `json:"target"`
	Value    Expression `json:"value"`
}

func NewAugmentedAssignment(operator string, target, value Expression) *AugmentedAssignment {
	return &AugmentedAssignment{nodeImpl: newNodeImpl(NodeAugmentedAssignment), Operator: operator, Target: target, Value: value}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type IfClause struct {
	nodeImpl

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewIfClause(condition Expression, body []Statement) *IfClause {
	return &IfClause{nodeImpl: newNodeImpl(NodeIfClause), Condition: condition, Body: body}
}

// IfStatement holds the `if` clause followed by any `elif` clauses in order.
type IfStatement struct {
	nodeImpl
	statementMarker

	Clauses []*IfClause `json:"clauses"`
	Else    []Statement `json:"else,omitempty"`
}

func NewIfStatement(clauses []*IfClause, elseBody []Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Clauses: clauses, Else: elseBody}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
	Else      []Statement `json:"else,omitempty"`
}

func NewWhileStatement(condition Expression, body, elseBody []Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body, Else: elseBody}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

type PassStatement struct {
	nodeImpl
	statementMarker
}

func NewPassStatement() *PassStatement {
	return &PassStatement{nodeImpl: newNodeImpl(NodePassStatement)}
}

type DeleteStatement struct {
	nodeImpl
	statementMarker

	Targets []Expression `json:"targets"`
}

func NewDeleteStatement(targets []Expression) *DeleteStatement {
	return &DeleteStatement{nodeImpl: newNodeImpl(NodeDeleteStatement), Targets: targets}
}

// AssertStatement keeps the message expression so the tree round-trips, but
// the evaluator never reduces it.
type AssertStatement struct {
	nodeImpl
	statementMarker

	Test    Expression `json:"test"`
	Message Expression `json:"message,omitempty"`
}

func NewAssertStatement(test, message Expression) *AssertStatement {
	return &AssertStatement{nodeImpl: newNodeImpl(NodeAssertStatement), Test: test, Message: message}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	ID     *Identifier   `json:"id"`
	Params []*Identifier `json:"params"`
	Body   []Statement   `json:"body"`
}

func NewFunctionDefinition(id *Identifier, params []*Identifier, body []Statement) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), ID: id, Params: params, Body: body}
}

type ClassDefinition struct {
	nodeImpl
	statementMarker

	ID    *Identifier  `json:"id"`
	Bases []Expression `json:"bases,omitempty"`
	Body  []Statement  `json:"body"`
}

func NewClassDefinition(id *Identifier, bases []Expression, body []Statement) *ClassDefinition {
	return &ClassDefinition{nodeImpl: newNodeImpl(NodeClassDefinition), ID: id, Bases: bases, Body: body}
}

type Module struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewModule(body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}
