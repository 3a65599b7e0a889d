package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"minipy/interpreter-go/pkg/driver"
	"minipy/interpreter-go/pkg/interpreter"
)

const (
	replHistoryFile = ".minipy_history"
	replSourceName  = "<repl>"
	promptMain      = ">>> "
	promptCont      = "... "
)

// replSession evaluates REPL input against one persistent interpreter.
type replSession struct {
	loader *driver.Loader
	interp *interpreter.Interpreter
}

func newReplSession(cfg driver.Config) (*replSession, error) {
	loader, err := driver.NewLoader()
	if err != nil {
		return nil, err
	}
	return &replSession{loader: loader, interp: newInterpreter(cfg, replSourceName)}, nil
}

func (s *replSession) Close() {
	s.loader.Close()
}

// handle processes one complete input. It returns false when the session
// should end.
func (s *replSession) handle(ctx context.Context, input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, ":") {
		switch strings.ToLower(trimmed) {
		case ":quit", ":q", ":exit":
			return false
		case ":reset":
			s.interp.Reset()
			fmt.Fprintln(stdout, "environment cleared")
		case ":help":
			printReplHelp(stdout)
		default:
			fmt.Fprintf(stdout, "unknown command %s (type :help)\n", trimmed)
		}
		return true
	}
	if trimmed == "" {
		return true
	}

	program, err := s.loader.LoadSource(replSourceName, []byte(input+"\n"))
	if err != nil {
		reportLoadError(err)
		return true
	}
	if err := s.interp.Run(ctx, program.Module); err != nil {
		fmt.Fprintln(stderr, interpreter.DescribeRuntimeDiagnostic(s.interp.BuildRuntimeDiagnostic(err)))
	}
	return true
}

func printReplHelp(w io.Writer) {
	fmt.Fprintln(w, "Enter statements to run them. A line ending in ':' starts a block;")
	fmt.Fprintln(w, "finish the block with an empty line.")
	fmt.Fprintln(w, "  :reset   forget every definition")
	fmt.Fprintln(w, "  :quit    leave the session")
	fmt.Fprintln(w, "  :help    show this message")
}

// opensBlock reports whether line starts an indented block, which keeps the
// REPL reading until an empty line.
func opensBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	if idx := strings.Index(trimmed, "#"); idx >= 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}
	return strings.HasSuffix(trimmed, ":")
}

// readInput collects one complete input from the prompt.
func readInput(prompt func(string) (string, error)) (string, error) {
	var b strings.Builder
	for {
		p := promptMain
		if b.Len() > 0 {
			p = promptCont
		}
		line, err := prompt(p)
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return b.String(), nil
			}
			return "", err
		}
		if b.Len() == 0 {
			if !opensBlock(line) {
				return line, nil
			}
			b.WriteString(line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			return b.String(), nil
		}
		b.WriteByte('\n')
		b.WriteString(line)
	}
}

func runRepl(args []string, flags globalFlags) int {
	if len(args) > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args, " "))
		return 1
	}
	cfg, err := driver.ResolveConfig(nil, nil, flags.overrides)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}
	session, err := newReplSession(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialise parser: %v\n", err)
		return 1
	}
	defer session.Close()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, replHistoryFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(stdout, "%s (type :help for commands)\n", cliToolVersion)
	ctx := context.Background()
	for {
		input, err := readInput(ln.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(stderr, "read error: %v\n", err)
				return 1
			}
			fmt.Fprintln(stdout)
			return 0
		}
		if strings.TrimSpace(input) != "" {
			ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		}
		if !session.handle(ctx, input) {
			return 0
		}
	}
}
