package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"minipy/interpreter-go/pkg/driver"
	"minipy/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "minipy 0.0.0-dev"

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// globalFlags are the options accepted before the subcommand.
type globalFlags struct {
	overrides driver.Overrides
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, rest, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		printUsage(stderr)
		return 1
	}
	if len(rest) == 0 {
		return runEntry(nil, flags)
	}

	switch rest[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(rest[1:], flags)
	case "repl":
		return runRepl(rest[1:], flags)
	case "ast":
		return runAST(rest[1:])
	default:
		if strings.HasPrefix(rest[0], "-") {
			fmt.Fprintf(stderr, "unknown flag %s\n", rest[0])
			printUsage(stderr)
			return 1
		}
		return runEntry(rest, flags)
	}
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	var flags globalFlags
	idx := 0
	for idx < len(args) {
		arg := args[idx]
		switch {
		case arg == "--trace":
			on := true
			flags.overrides.Trace = &on
		case arg == "--no-trace":
			off := false
			flags.overrides.Trace = &off
		case strings.HasPrefix(arg, "--trace-format="):
			flags.overrides.TraceFormat = strings.TrimPrefix(arg, "--trace-format=")
		case arg == "--trace-format":
			if idx+1 >= len(args) {
				return flags, nil, fmt.Errorf("--trace-format requires a value")
			}
			idx++
			flags.overrides.TraceFormat = args[idx]
		default:
			return flags, args[idx:], nil
		}
		idx++
	}
	return flags, nil, nil
}

func runEntry(args []string, flags globalFlags) int {
	if len(args) > 1 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	searchFrom := "."
	if len(args) == 1 {
		searchFrom = filepath.Dir(args[0])
	}
	manifest, err := loadManifestFrom(searchFrom)
	if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
		if len(args) == 0 {
			fmt.Fprintf(stderr, "failed to load manifest: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "warning: unable to load manifest (%v); falling back to direct file execution\n", err)
		manifest = nil
	}

	cfg, err := driver.ResolveConfig(manifest, nil, flags.overrides)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}
	if len(args) == 1 {
		cfg.Entry = args[0]
	}
	if cfg.Entry == "" {
		fmt.Fprintf(stderr, "run requires a source file (%s not found)\n", driver.ManifestFileName)
		return 1
	}
	return executeEntry(cfg)
}

func executeEntry(cfg driver.Config) int {
	loader, err := driver.NewLoader()
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialise parser: %v\n", err)
		return 1
	}
	defer loader.Close()

	program, err := loader.Load(cfg.Entry)
	if err != nil {
		reportLoadError(err)
		return 1
	}

	interp := newInterpreter(cfg, program.Path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runErr := interp.Run(ctx, program.Module)
	logRunSummary(interp, runErr)
	if runErr != nil {
		fmt.Fprintln(stderr, interpreter.DescribeRuntimeDiagnostic(interp.BuildRuntimeDiagnostic(runErr)))
		return 1
	}
	return 0
}

func newInterpreter(cfg driver.Config, path string) *interpreter.Interpreter {
	opts := []interpreter.Option{
		interpreter.WithStdout(stdout),
		interpreter.WithSourcePath(path),
	}
	if cfg.Trace {
		format, err := interpreter.ParseTraceFormat(cfg.TraceFormat)
		if err != nil {
			format = interpreter.TraceConsole
		}
		opts = append(opts, interpreter.WithTracer(interpreter.NewTracer(stderr, format)))
	}
	return interpreter.New(opts...)
}

// logRunSummary reports the run's counters on the trace channel.
func logRunSummary(interp *interpreter.Interpreter, runErr error) {
	tracer := interp.Tracer()
	if !tracer.Enabled() {
		return
	}
	stats := interp.Stats()
	logger := tracer.Logger()
	event := logger.Info()
	if runErr != nil {
		event = logger.Warn().Err(runErr)
	}
	event.
		Str("statements", humanize.Comma(int64(stats.Statements))).
		Str("calls", humanize.Comma(int64(stats.Calls))).
		Msg("run finished")
}

func reportLoadError(err error) {
	var diagErr *driver.ParserDiagnosticError
	if errors.As(err, &diagErr) {
		fmt.Fprintln(stderr, driver.DescribeParserDiagnostic(diagErr.Diagnostic))
		return
	}
	fmt.Fprintf(stderr, "%v\n", err)
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}
