package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"minipy/interpreter-go/pkg/ast"
)

// parseContext carries the module source so helpers share one view of the
// file without threading it everywhere.
type parseContext struct {
	source []byte
}

func newParseContext(source []byte) *parseContext {
	return &parseContext{source: source}
}

func (ctx *parseContext) text(node *sitter.Node) string {
	return sliceContent(node, ctx.source)
}

func (ctx *parseContext) parseIdentifier(node *sitter.Node) (*ast.Identifier, error) {
	if node == nil || node.Kind() != "identifier" {
		return nil, parseErrorAt(node, "expected identifier")
	}
	id := ast.ID(ctx.text(node))
	annotateSpan(id, node)
	return id, nil
}

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

// namedChildren lists the named children of node, skipping comments.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && !isIgnorableNode(child) {
			return child
		}
	}
	return nil
}

// childrenByField collects every child stored under field, in order.
func childrenByField(node *sitter.Node, field string) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.FieldNameForChild(uint32(i)) != field {
			continue
		}
		if child := node.Child(i); child != nil {
			out = append(out, child)
		}
	}
	return out
}

func isIgnorableNode(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case "comment", "line_continuation":
		return true
	default:
		return false
	}
}
