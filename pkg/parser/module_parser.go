package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"minipy/interpreter-go/pkg/ast"
	"minipy/interpreter-go/pkg/parser/language"
)

// ModuleParser wraps a tree-sitter parser configured for Python sources.
type ModuleParser struct {
	parser *sitter.Parser
}

// NewModuleParser constructs a parser with the Python language loaded.
func NewModuleParser() (*ModuleParser, error) {
	lang := language.Python()
	if lang == nil {
		return nil, fmt.Errorf("parser: python language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &ModuleParser{parser: p}, nil
}

// Close releases parser resources.
func (p *ModuleParser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
	p.parser = nil
}

// ParseModule parses source into a module. Constructs outside the supported
// subset fail with a *ParseError pointing at the offending node.
func (p *ModuleParser) ParseModule(source []byte) (*ast.Module, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "module" {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.HasError() {
		return nil, syntaxError(root)
	}

	ctx := newParseContext(source)
	body, err := ctx.parseStatements(root)
	if err != nil {
		return nil, err
	}
	module := ast.NewModule(body)
	annotateSpan(module, root)
	return module, nil
}
