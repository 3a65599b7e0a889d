package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  minipy [flags] run [file.py]   run a file, or the minipy.yml entry")
	fmt.Fprintln(w, "  minipy [flags] file.py         shorthand for run file.py")
	fmt.Fprintln(w, "  minipy [flags] repl            start an interactive session")
	fmt.Fprintln(w, "  minipy ast file.py             print the parsed syntax tree")
	fmt.Fprintln(w, "  minipy version                 print the tool version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --trace                        log every executed statement to stderr")
	fmt.Fprintln(w, "  --no-trace                     disable tracing enabled by minipy.yml or MINIPY_TRACE")
	fmt.Fprintln(w, "  --trace-format=console|json    trace output format")
}
