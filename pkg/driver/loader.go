package driver

import (
	"errors"
	"fmt"
	"os"

	"minipy/interpreter-go/pkg/ast"
	"minipy/interpreter-go/pkg/parser"
)

// Program is one parsed source file ready to run.
type Program struct {
	Path   string
	Source []byte
	Module *ast.Module
}

// Loader reads and parses minipy source files.
type Loader struct {
	parser *parser.ModuleParser
}

// NewLoader constructs a loader backed by a fresh parser.
func NewLoader() (*Loader, error) {
	mp, err := parser.NewModuleParser()
	if err != nil {
		return nil, err
	}
	return &Loader{parser: mp}, nil
}

// Close releases parser resources.
func (l *Loader) Close() {
	if l == nil {
		return
	}
	if l.parser != nil {
		l.parser.Close()
		l.parser = nil
	}
}

// Load reads path from disk and parses it.
func (l *Loader) Load(path string) (*Program, error) {
	if path == "" {
		return nil, fmt.Errorf("loader: empty entry path")
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return l.LoadSource(path, source)
}

// LoadSource parses source that is named path in diagnostics. Syntax errors
// come back as *ParserDiagnosticError.
func (l *Loader) LoadSource(path string, source []byte) (*Program, error) {
	if l == nil || l.parser == nil {
		return nil, fmt.Errorf("loader: closed")
	}
	module, err := l.parser.ParseModule(source)
	if err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			return nil, &ParserDiagnosticError{
				Diagnostic: ParserDiagnostic{
					Severity: SeverityError,
					Message:  parseErr.Message,
					Location: DiagnosticLocation{
						Path:      path,
						Line:      parseErr.Location.Line,
						Column:    parseErr.Location.Column,
						EndLine:   parseErr.Location.EndLine,
						EndColumn: parseErr.Location.EndColumn,
					},
				},
				Err: err,
			}
		}
		return nil, fmt.Errorf("loader: parse %s: %w", path, err)
	}
	return &Program{Path: path, Source: source, Module: module}, nil
}
