package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"minipy/interpreter-go/pkg/ast"
)

var unsupportedStatements = map[string]string{
	"for_statement":           "for loop",
	"try_statement":           "try statement",
	"with_statement":          "with statement",
	"match_statement":         "match statement",
	"raise_statement":         "raise statement",
	"import_statement":        "import",
	"import_from_statement":   "import",
	"future_import_statement": "import",
	"global_statement":        "global declaration",
	"nonlocal_statement":      "nonlocal declaration",
	"print_statement":         "print statement",
	"exec_statement":          "exec statement",
	"type_alias_statement":    "type alias",
	"decorated_definition":    "decorator",
}

// parseStatements parses the statements directly under a module or block.
func (ctx *parseContext) parseStatements(node *sitter.Node) ([]ast.Statement, error) {
	children := namedChildren(node)
	body := make([]ast.Statement, 0, len(children))
	for _, child := range children {
		stmt, err := ctx.parseStatement(child)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}

func (ctx *parseContext) parseBlock(node *sitter.Node) ([]ast.Statement, error) {
	if node == nil {
		return nil, parseErrorAt(node, "missing block")
	}
	if node.Kind() != "block" {
		return nil, parseErrorAt(node, "expected block, found %s", node.Kind())
	}
	return ctx.parseStatements(node)
}

func (ctx *parseContext) parseStatement(node *sitter.Node) (ast.Statement, error) {
	switch node.Kind() {
	case "expression_statement":
		return ctx.parseExpressionStatement(node)
	case "if_statement":
		return ctx.parseIfStatement(node)
	case "while_statement":
		return ctx.parseWhileStatement(node)
	case "function_definition":
		return ctx.parseFunctionDefinition(node)
	case "class_definition":
		return ctx.parseClassDefinition(node)
	case "return_statement":
		return ctx.parseReturnStatement(node)
	case "assert_statement":
		return ctx.parseAssertStatement(node)
	case "delete_statement":
		return ctx.parseDeleteStatement(node)
	case "pass_statement":
		return annotateStatement(ast.NewPassStatement(), node), nil
	case "break_statement":
		return annotateStatement(ast.NewBreakStatement(), node), nil
	case "continue_statement":
		return annotateStatement(ast.NewContinueStatement(), node), nil
	}
	if what, ok := unsupportedStatements[node.Kind()]; ok {
		return nil, unsupported(node, what)
	}
	return nil, unsupported(node, strings.ReplaceAll(node.Kind(), "_", " "))
}

func (ctx *parseContext) parseExpressionStatement(node *sitter.Node) (ast.Statement, error) {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil, parseErrorAt(node, "empty expression statement")
	}
	if len(children) == 1 {
		switch children[0].Kind() {
		case "assignment":
			return ctx.parseAssignment(children[0])
		case "augmented_assignment":
			return ctx.parseAugmentedAssignment(children[0])
		case "yield":
			return nil, unsupported(children[0], "yield")
		}
	}
	var (
		expr ast.Expression
		err  error
	)
	if len(children) == 1 && !hasComma(node) {
		expr, err = ctx.parseExpression(children[0])
	} else {
		// `a, b` without parentheses is a tuple.
		expr, err = ctx.parseExpressionList(node, children)
	}
	if err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewExpressionStatement(expr), node), nil
}

func (ctx *parseContext) parseAssignment(node *sitter.Node) (ast.Statement, error) {
	if node.ChildByFieldName("type") != nil {
		return nil, unsupported(node, "annotated assignment")
	}
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if left == nil || right == nil {
		return nil, parseErrorAt(node, "malformed assignment")
	}
	switch right.Kind() {
	case "assignment", "augmented_assignment":
		return nil, unsupported(right, "chained assignment")
	}
	target, err := ctx.parseTarget(left)
	if err != nil {
		return nil, err
	}
	value, err := ctx.parseRightHandSide(right)
	if err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewAssignmentStatement(target, value), node), nil
}

func (ctx *parseContext) parseAugmentedAssignment(node *sitter.Node) (ast.Statement, error) {
	left := node.ChildByFieldName("left")
	opNode := node.ChildByFieldName("operator")
	right := node.ChildByFieldName("right")
	if left == nil || opNode == nil || right == nil {
		return nil, parseErrorAt(node, "malformed augmented assignment")
	}
	op := strings.TrimSuffix(opNode.Kind(), "=")
	if !isBinaryOperator(op) {
		return nil, unsupported(opNode, "operator "+opNode.Kind())
	}
	target, err := ctx.parseTarget(left)
	if err != nil {
		return nil, err
	}
	value, err := ctx.parseRightHandSide(right)
	if err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewAugmentedAssignment(op, target, value), node), nil
}

// parseTarget accepts anything that parses as an expression; targets other
// than names and attributes are rejected when the assignment runs.
func (ctx *parseContext) parseTarget(node *sitter.Node) (ast.Expression, error) {
	switch node.Kind() {
	case "pattern_list", "tuple_pattern":
		return ctx.parseExpressionList(node, namedChildren(node))
	case "list_pattern", "list_splat_pattern":
		return nil, unsupported(node, "list unpacking")
	}
	return ctx.parseExpression(node)
}

func (ctx *parseContext) parseRightHandSide(node *sitter.Node) (ast.Expression, error) {
	switch node.Kind() {
	case "expression_list", "pattern_list":
		return ctx.parseExpressionList(node, namedChildren(node))
	case "yield":
		return nil, unsupported(node, "yield")
	}
	return ctx.parseExpression(node)
}

func (ctx *parseContext) parseIfStatement(node *sitter.Node) (ast.Statement, error) {
	cond, err := ctx.parseExpression(node.ChildByFieldName("condition"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseBlock(node.ChildByFieldName("consequence"))
	if err != nil {
		return nil, err
	}
	first := ast.NewIfClause(cond, body)
	annotateSpan(first, node)
	clauses := []*ast.IfClause{first}

	var elseBody []ast.Statement
	for _, alt := range childrenByField(node, "alternative") {
		switch alt.Kind() {
		case "elif_clause":
			cond, err := ctx.parseExpression(alt.ChildByFieldName("condition"))
			if err != nil {
				return nil, err
			}
			body, err := ctx.parseBlock(alt.ChildByFieldName("consequence"))
			if err != nil {
				return nil, err
			}
			clause := ast.NewIfClause(cond, body)
			annotateSpan(clause, alt)
			clauses = append(clauses, clause)
		case "else_clause":
			body, err := ctx.parseBlock(alt.ChildByFieldName("body"))
			if err != nil {
				return nil, err
			}
			elseBody = body
		default:
			return nil, parseErrorAt(alt, "unexpected %s in if statement", alt.Kind())
		}
	}
	return annotateStatement(ast.NewIfStatement(clauses, elseBody), node), nil
}

func (ctx *parseContext) parseWhileStatement(node *sitter.Node) (ast.Statement, error) {
	cond, err := ctx.parseExpression(node.ChildByFieldName("condition"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseBlock(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	var elseBody []ast.Statement
	if alt := node.ChildByFieldName("alternative"); alt != nil {
		elseBody, err = ctx.parseBlock(alt.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
	}
	return annotateStatement(ast.NewWhileStatement(cond, body, elseBody), node), nil
}

func (ctx *parseContext) parseFunctionDefinition(node *sitter.Node) (ast.Statement, error) {
	if first := node.Child(0); first != nil && first.Kind() == "async" {
		return nil, unsupported(first, "async function")
	}
	if tp := node.ChildByFieldName("type_parameters"); tp != nil {
		return nil, unsupported(tp, "type parameters")
	}
	if rt := node.ChildByFieldName("return_type"); rt != nil {
		return nil, unsupported(rt, "return annotation")
	}
	name, err := ctx.parseIdentifier(node.ChildByFieldName("name"))
	if err != nil {
		return nil, err
	}
	params, err := ctx.parseParameters(node.ChildByFieldName("parameters"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseBlock(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewFunctionDefinition(name, params, body), node), nil
}

func (ctx *parseContext) parseParameters(node *sitter.Node) ([]*ast.Identifier, error) {
	if node == nil {
		return nil, parseErrorAt(node, "missing parameter list")
	}
	children := namedChildren(node)
	params := make([]*ast.Identifier, 0, len(children))
	seen := make(map[string]struct{}, len(children))
	for _, child := range children {
		if child.Kind() != "identifier" {
			return nil, unsupported(child, strings.ReplaceAll(child.Kind(), "_", " "))
		}
		id, err := ctx.parseIdentifier(child)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id.Name]; dup {
			return nil, parseErrorAt(child, "duplicate parameter %q", id.Name)
		}
		seen[id.Name] = struct{}{}
		params = append(params, id)
	}
	return params, nil
}

func (ctx *parseContext) parseClassDefinition(node *sitter.Node) (ast.Statement, error) {
	if tp := node.ChildByFieldName("type_parameters"); tp != nil {
		return nil, unsupported(tp, "type parameters")
	}
	name, err := ctx.parseIdentifier(node.ChildByFieldName("name"))
	if err != nil {
		return nil, err
	}
	var bases []ast.Expression
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		bases, err = ctx.parseArguments(supers)
		if err != nil {
			return nil, err
		}
	}
	body, err := ctx.parseBlock(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewClassDefinition(name, bases, body), node), nil
}

func (ctx *parseContext) parseReturnStatement(node *sitter.Node) (ast.Statement, error) {
	var arg ast.Expression
	if child := firstNamedChild(node); child != nil {
		expr, err := ctx.parseRightHandSide(child)
		if err != nil {
			return nil, err
		}
		arg = expr
	}
	return annotateStatement(ast.NewReturnStatement(arg), node), nil
}

func (ctx *parseContext) parseAssertStatement(node *sitter.Node) (ast.Statement, error) {
	children := namedChildren(node)
	if len(children) == 0 || len(children) > 2 {
		return nil, parseErrorAt(node, "assert expects a condition and an optional message")
	}
	test, err := ctx.parseExpression(children[0])
	if err != nil {
		return nil, err
	}
	var message ast.Expression
	if len(children) == 2 {
		message, err = ctx.parseExpression(children[1])
		if err != nil {
			return nil, err
		}
	}
	return annotateStatement(ast.NewAssertStatement(test, message), node), nil
}

func (ctx *parseContext) parseDeleteStatement(node *sitter.Node) (ast.Statement, error) {
	child := firstNamedChild(node)
	if child == nil {
		return nil, parseErrorAt(node, "del expects a target")
	}
	var targets []ast.Expression
	if child.Kind() == "expression_list" {
		for _, el := range namedChildren(child) {
			expr, err := ctx.parseExpression(el)
			if err != nil {
				return nil, err
			}
			targets = append(targets, expr)
		}
	} else {
		expr, err := ctx.parseExpression(child)
		if err != nil {
			return nil, err
		}
		targets = append(targets, expr)
	}
	return annotateStatement(ast.NewDeleteStatement(targets), node), nil
}
