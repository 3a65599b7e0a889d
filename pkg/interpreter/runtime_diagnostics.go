package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"minipy/interpreter-go/pkg/driver"
)

type RuntimeDiagnostic struct {
	Severity driver.DiagnosticSeverity
	Kind     ErrorKind
	Message  string
	Location driver.DiagnosticLocation
}

// BuildRuntimeDiagnostic locates err using the node recorded on it and the
// interpreter's source path.
func (i *Interpreter) BuildRuntimeDiagnostic(err error) RuntimeDiagnostic {
	diag := RuntimeDiagnostic{Severity: driver.SeverityError}
	if err == nil {
		return diag
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		diag.Message = err.Error()
		diag.Location.Path = i.sourcePath
		return diag
	}
	diag.Kind = rtErr.Kind
	diag.Message = rtErr.Message
	diag.Location.Path = i.sourcePath
	if rtErr.Node != nil {
		span := rtErr.Node.Span()
		diag.Location.Line = span.Start.Line
		diag.Location.Column = span.Start.Column
		diag.Location.EndLine = span.End.Line
		diag.Location.EndColumn = span.End.Column
	}
	return diag
}

// DescribeRuntimeDiagnostic formats a diagnostic for CLI output, e.g.
// "runtime: main.py:3:1 UnknownSymbol: name 'x' is not defined".
func DescribeRuntimeDiagnostic(diag RuntimeDiagnostic) string {
	message := strings.TrimSpace(diag.Message)
	if diag.Kind != 0 {
		message = fmt.Sprintf("%s: %s", diag.Kind, message)
	}
	if location := driver.FormatDiagnosticLocation(diag.Location); location != "" {
		return fmt.Sprintf("runtime: %s %s", location, message)
	}
	return "runtime: " + message
}
