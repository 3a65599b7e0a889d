package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"minipy/interpreter-go/pkg/ast"
)

var binaryOperators = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "//": {}, "%": {}, "**": {},
	"<<": {}, ">>": {}, "&": {}, "|": {}, "^": {},
}

var comparisonOperators = map[string]struct{}{
	"==": {}, "!=": {}, "<": {}, "<=": {}, ">": {}, ">=": {},
}

var unsupportedExpressions = map[string]string{
	"boolean_operator":         "and/or",
	"conditional_expression":   "conditional expression",
	"lambda":                   "lambda",
	"named_expression":         "assignment expression",
	"list":                     "list",
	"list_comprehension":       "list comprehension",
	"dictionary":               "dict",
	"dictionary_comprehension": "dict comprehension",
	"set":                      "set",
	"set_comprehension":        "set comprehension",
	"generator_expression":     "generator expression",
	"subscript":                "subscript",
	"slice":                    "slice",
	"await":                    "await",
	"yield":                    "yield",
	"ellipsis":                 "ellipsis",
	"list_splat":               "unpacking",
	"dictionary_splat":         "unpacking",
	"keyword_argument":         "keyword argument",
	"as_pattern":               "as pattern",
}

func isBinaryOperator(op string) bool {
	_, ok := binaryOperators[op]
	return ok
}

func (ctx *parseContext) parseExpression(node *sitter.Node) (ast.Expression, error) {
	if node == nil {
		return nil, parseErrorAt(node, "missing expression")
	}
	switch node.Kind() {
	case "identifier":
		id, err := ctx.parseIdentifier(node)
		if err != nil {
			return nil, err
		}
		return id, nil
	case "integer":
		return ctx.parseIntegerLiteral(node)
	case "float":
		return ctx.parseFloatLiteral(node)
	case "string":
		return ctx.parseStringLiteral(node)
	case "concatenated_string":
		return ctx.parseConcatenatedString(node)
	case "true":
		return annotateExpression(ast.NewBooleanLiteral(true), node), nil
	case "false":
		return annotateExpression(ast.NewBooleanLiteral(false), node), nil
	case "none":
		return annotateExpression(ast.NewNoneLiteral(), node), nil
	case "parenthesized_expression":
		inner := firstNamedChild(node)
		if inner == nil {
			return nil, parseErrorAt(node, "empty parentheses")
		}
		if inner.Kind() == "yield" {
			return nil, unsupported(inner, "yield")
		}
		return ctx.parseExpression(inner)
	case "tuple", "expression_list", "pattern_list", "tuple_pattern":
		return ctx.parseExpressionList(node, namedChildren(node))
	case "unary_operator":
		return ctx.parseUnaryOperator(node)
	case "not_operator":
		operand, err := ctx.parseExpression(node.ChildByFieldName("argument"))
		if err != nil {
			return nil, err
		}
		return annotateExpression(ast.NewUnaryExpression("not", operand), node), nil
	case "binary_operator":
		return ctx.parseBinaryOperator(node)
	case "comparison_operator":
		return ctx.parseComparison(node)
	case "attribute":
		return ctx.parseAttribute(node)
	case "call":
		return ctx.parseCall(node)
	}
	if what, ok := unsupportedExpressions[node.Kind()]; ok {
		return nil, unsupported(node, what)
	}
	return nil, unsupported(node, strings.ReplaceAll(node.Kind(), "_", " "))
}

// parseExpressionList builds a tuple from elements. The node spans the whole
// list, parenthesized or not.
func (ctx *parseContext) parseExpressionList(node *sitter.Node, elements []*sitter.Node) (ast.Expression, error) {
	exprs := make([]ast.Expression, 0, len(elements))
	for _, el := range elements {
		expr, err := ctx.parseExpression(el)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return annotateExpression(ast.NewTupleExpression(exprs), node), nil
}

func (ctx *parseContext) parseUnaryOperator(node *sitter.Node) (ast.Expression, error) {
	opNode := node.ChildByFieldName("operator")
	if opNode == nil {
		return nil, parseErrorAt(node, "missing unary operator")
	}
	op := opNode.Kind()
	switch op {
	case "-", "+", "~":
	default:
		return nil, unsupported(opNode, "operator "+op)
	}
	operand, err := ctx.parseExpression(node.ChildByFieldName("argument"))
	if err != nil {
		return nil, err
	}
	return annotateExpression(ast.NewUnaryExpression(op, operand), node), nil
}

func (ctx *parseContext) parseBinaryOperator(node *sitter.Node) (ast.Expression, error) {
	opNode := node.ChildByFieldName("operator")
	if opNode == nil {
		return nil, parseErrorAt(node, "missing binary operator")
	}
	op := opNode.Kind()
	if !isBinaryOperator(op) {
		return nil, unsupported(opNode, "operator "+op)
	}
	left, err := ctx.parseExpression(node.ChildByFieldName("left"))
	if err != nil {
		return nil, err
	}
	right, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	return annotateExpression(ast.NewBinaryExpression(op, left, right), node), nil
}

// parseComparison accepts a single comparison; chains like a < b < c and the
// membership and identity operators are rejected.
func (ctx *parseContext) parseComparison(node *sitter.Node) (ast.Expression, error) {
	operands := namedChildren(node)
	operators := childrenByField(node, "operators")
	if len(operands) != 2 || len(operators) != 1 {
		if len(operators) == 0 {
			return nil, parseErrorAt(node, "malformed comparison")
		}
		return nil, unsupported(operators[min(1, len(operators)-1)], "chained comparison")
	}
	op := strings.Join(strings.Fields(ctx.text(operators[0])), " ")
	if _, ok := comparisonOperators[op]; !ok {
		return nil, unsupported(operators[0], "operator "+op)
	}
	left, err := ctx.parseExpression(operands[0])
	if err != nil {
		return nil, err
	}
	right, err := ctx.parseExpression(operands[1])
	if err != nil {
		return nil, err
	}
	return annotateExpression(ast.NewBinaryExpression(op, left, right), node), nil
}

func (ctx *parseContext) parseAttribute(node *sitter.Node) (ast.Expression, error) {
	object, err := ctx.parseExpression(node.ChildByFieldName("object"))
	if err != nil {
		return nil, err
	}
	attr, err := ctx.parseIdentifier(node.ChildByFieldName("attribute"))
	if err != nil {
		return nil, err
	}
	return annotateExpression(ast.NewAttributeExpression(object, attr), node), nil
}

func (ctx *parseContext) parseCall(node *sitter.Node) (ast.Expression, error) {
	callee, err := ctx.parseExpression(node.ChildByFieldName("function"))
	if err != nil {
		return nil, err
	}
	argsNode := node.ChildByFieldName("arguments")
	if argsNode == nil {
		return nil, parseErrorAt(node, "missing call arguments")
	}
	if argsNode.Kind() == "generator_expression" {
		return nil, unsupported(argsNode, "generator expression")
	}
	args, err := ctx.parseArguments(argsNode)
	if err != nil {
		return nil, err
	}
	return annotateExpression(ast.NewCallExpression(callee, args), node), nil
}

// parseArguments reads a positional argument list. Keyword and unpacking
// arguments are rejected.
func (ctx *parseContext) parseArguments(node *sitter.Node) ([]ast.Expression, error) {
	children := namedChildren(node)
	args := make([]ast.Expression, 0, len(children))
	for _, child := range children {
		switch child.Kind() {
		case "keyword_argument":
			return nil, unsupported(child, "keyword argument")
		case "list_splat", "dictionary_splat", "parenthesized_list_splat":
			return nil, unsupported(child, "argument unpacking")
		}
		arg, err := ctx.parseExpression(child)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func hasComma(node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == "," {
			return true
		}
	}
	return false
}
