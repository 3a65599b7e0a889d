package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"minipy/interpreter-go/pkg/driver"
)

func TestRunDirectFileNoManifest(t *testing.T) {
	dir := enterTempDir(t)
	writeFile(t, filepath.Join(dir, "main.py"), `
def add(a, b):
    return a + b

print(add(2, 3))
`)
	out, errOut := captureOutput(t)

	if code := run([]string{"main.py"}); code != 0 {
		t.Fatalf("run returned exit code %d, want 0 (stderr %q)", code, errOut.String())
	}
	if out.String() != "5\n" {
		t.Fatalf("unexpected stdout %q", out.String())
	}
}

func TestRunSubcommandUsesManifestEntry(t *testing.T) {
	dir := enterTempDir(t)
	writeFile(t, filepath.Join(dir, driver.ManifestFileName), `
name: demo
entry: src/app.py
`)
	writeFile(t, filepath.Join(dir, "src", "app.py"), `print("from manifest")`)
	out, errOut := captureOutput(t)

	if code := run([]string{"run"}); code != 0 {
		t.Fatalf("run returned exit code %d, want 0 (stderr %q)", code, errOut.String())
	}
	if out.String() != "from manifest\n" {
		t.Fatalf("unexpected stdout %q", out.String())
	}
}

func TestRunWithoutEntryFails(t *testing.T) {
	enterTempDir(t)
	_, errOut := captureOutput(t)

	if code := run([]string{"run"}); code != 1 {
		t.Fatalf("run returned exit code %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "requires a source file") {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}

func TestRunBrokenManifestFails(t *testing.T) {
	dir := enterTempDir(t)
	writeFile(t, filepath.Join(dir, driver.ManifestFileName), "name: demo\n")
	_, errOut := captureOutput(t)

	if code := run([]string{"run"}); code != 1 {
		t.Fatalf("run returned exit code %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "failed to load manifest") {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}

func TestRunReportsRuntimeErrors(t *testing.T) {
	dir := enterTempDir(t)
	writeFile(t, filepath.Join(dir, "main.py"), "x = 1\nprint(missing)\n")
	out, errOut := captureOutput(t)

	if code := run([]string{"run", "main.py"}); code != 1 {
		t.Fatalf("run returned exit code %d, want 1", code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout, got %q", out.String())
	}
	want := "runtime: main.py:2:7 UnknownSymbol: name 'missing' is not defined"
	if strings.TrimSpace(errOut.String()) != want {
		t.Fatalf("expected %q, got %q", want, errOut.String())
	}
}

func TestRunReportsParseErrors(t *testing.T) {
	dir := enterTempDir(t)
	writeFile(t, filepath.Join(dir, "main.py"), "x = [1, 2]\n")
	_, errOut := captureOutput(t)

	if code := run([]string{"main.py"}); code != 1 {
		t.Fatalf("run returned exit code %d, want 1", code)
	}
	if !strings.HasPrefix(errOut.String(), "parser: main.py:1:5") {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}

func TestRunAssertionFailureHidesMessage(t *testing.T) {
	dir := enterTempDir(t)
	writeFile(t, filepath.Join(dir, "main.py"), `assert 1 == 2, "never shown"`)
	_, errOut := captureOutput(t)

	if code := run([]string{"main.py"}); code != 1 {
		t.Fatalf("run returned exit code %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "AssertionFailed") || strings.Contains(errOut.String(), "never shown") {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}

func TestRunTraceWritesJSONSummary(t *testing.T) {
	dir := enterTempDir(t)
	writeFile(t, filepath.Join(dir, "main.py"), "x = 1\nprint(x)\n")
	out, errOut := captureOutput(t)

	if code := run([]string{"--trace", "--trace-format=json", "main.py"}); code != 0 {
		t.Fatalf("run returned exit code %d, want 0 (stderr %q)", code, errOut.String())
	}
	if out.String() != "1\n" {
		t.Fatalf("tracing must not change program output, got %q", out.String())
	}
	lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected two statement events and a summary, got %q", errOut.String())
	}
	summary := lines[len(lines)-1]
	for _, want := range []string{`"message":"run finished"`, `"statements":"2"`, `"calls":"0"`} {
		if !strings.Contains(summary, want) {
			t.Fatalf("expected %s in summary %q", want, summary)
		}
	}
}

func TestRunTraceEnabledByEnvironment(t *testing.T) {
	dir := enterTempDir(t)
	writeFile(t, filepath.Join(dir, "main.py"), "pass\n")
	t.Setenv(driver.EnvTrace, "1")
	t.Setenv(driver.EnvTraceFormat, "json")
	_, errOut := captureOutput(t)

	if code := run([]string{"main.py"}); code != 0 {
		t.Fatalf("run returned exit code %d, want 0", code)
	}
	if !strings.Contains(errOut.String(), `"message":"pass"`) {
		t.Fatalf("expected traced statement, got %q", errOut.String())
	}

	errOut.Reset()
	if code := run([]string{"--no-trace", "main.py"}); code != 0 {
		t.Fatalf("run returned exit code %d, want 0", code)
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected --no-trace to silence tracing, got %q", errOut.String())
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	enterTempDir(t)
	cases := [][]string{
		{"--trace-format"},
		{"--bogus"},
		{"--trace-format=xml", "main.py"},
		{"run", "a.py", "b.py"},
	}
	for _, args := range cases {
		captureOutput(t)
		if code := run(args); code != 1 {
			t.Fatalf("run(%v) returned exit code %d, want 1", args, code)
		}
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	out, _ := captureOutput(t)
	if code := run([]string{"version"}); code != 0 || strings.TrimSpace(out.String()) != cliToolVersion {
		t.Fatalf("version: code %d, output %q", code, out.String())
	}
	out.Reset()
	if code := run([]string{"--help"}); code != 0 || !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("help: code %d, output %q", code, out.String())
	}
}

func TestRunASTDumpsStatements(t *testing.T) {
	dir := enterTempDir(t)
	writeFile(t, filepath.Join(dir, "main.py"), "x = 1\n")
	out, errOut := captureOutput(t)

	if code := run([]string{"ast", "main.py"}); code != 0 {
		t.Fatalf("ast returned exit code %d (stderr %q)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "AssignmentStatement") {
		t.Fatalf("expected assignment in dump, got %q", out.String())
	}
	if code := run([]string{"ast"}); code != 1 {
		t.Fatalf("ast without a file returned %d, want 1", code)
	}
}

func TestReadInputCollectsBlocks(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		want  string
	}{
		{"single line", []string{"x = 1"}, "x = 1"},
		{"block ends on empty line", []string{"def f():", "    return 1", ""}, "def f():\n    return 1"},
		{"comment after colon", []string{"while x:  # loop", "    x = 0", "  "}, "while x:  # loop\n    x = 0"},
		{"eof closes block", []string{"if x:", "    pass"}, "if x:\n    pass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readInput(scriptedPrompt(tc.lines))
			if err != nil {
				t.Fatalf("readInput returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("readInput = %q, want %q", got, tc.want)
			}
		})
	}

	if _, err := readInput(scriptedPrompt(nil)); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF on empty input, got %v", err)
	}
}

func TestReplSessionKeepsState(t *testing.T) {
	out, errOut := captureOutput(t)
	session, err := newReplSession(driver.Config{TraceFormat: "console"})
	if err != nil {
		t.Fatalf("newReplSession: %v", err)
	}
	defer session.Close()
	ctx := context.Background()

	inputs := []string{
		"def double(n):\n    return n * 2",
		"x = double(21)",
		"print(x)",
		"print(y)",
		":reset",
		"print(x)",
	}
	for _, input := range inputs {
		if !session.handle(ctx, input) {
			t.Fatalf("session ended early on %q", input)
		}
	}
	if !strings.HasPrefix(out.String(), "42\n") || !strings.Contains(out.String(), "environment cleared") {
		t.Fatalf("unexpected stdout %q", out.String())
	}
	diagnostics := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	if len(diagnostics) != 2 || !strings.Contains(diagnostics[1], "name 'x' is not defined") {
		t.Fatalf("expected two UnknownSymbol diagnostics, got %q", errOut.String())
	}
	if session.handle(ctx, ":quit") {
		t.Fatalf(":quit should end the session")
	}
}

func scriptedPrompt(lines []string) func(string) (string, error) {
	return func(string) (string, error) {
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}
}

func enterTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	t.Cleanup(func() {
		if chdirErr := os.Chdir(oldWD); chdirErr != nil {
			t.Fatalf("restore working directory: %v", chdirErr)
		}
	})
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	return dir
}

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() {
		stdout, stderr = prevOut, prevErr
	})
	return &out, &errOut
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
