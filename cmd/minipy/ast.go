package main

import (
	"fmt"

	"github.com/kr/pretty"

	"minipy/interpreter-go/pkg/driver"
)

func runAST(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "ast requires exactly one source file")
		return 1
	}
	loader, err := driver.NewLoader()
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialise parser: %v\n", err)
		return 1
	}
	defer loader.Close()

	program, err := loader.Load(args[0])
	if err != nil {
		reportLoadError(err)
		return 1
	}
	for _, stmt := range program.Module.Body {
		fmt.Fprintf(stdout, "%# v\n", pretty.Formatter(stmt))
	}
	return 0
}
