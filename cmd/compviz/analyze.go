package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/compviz-xyz/go-compviz/pipeline"
	"github.com/compviz-xyz/go-compviz/render"
	"github.com/compviz-xyz/go-compviz/service"
)

// newService picks the in-process compiler or a remote HTTP service.
func newService(serverURL string) pipeline.Service {
	if serverURL != "" {
		return service.NewClient(serverURL)
	}
	return service.Local{}
}

func analyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	serverURL := fs.String("server", "", "Remote service URL (default: in-process)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: compviz analyze <source> [options]

Run lexical analysis and show tokens, the symbol table, and the
identifiers that need a declared type before compiling.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  compviz analyze "Z = 2 * y + 2.9 * X"
  compviz analyze "x = a + b" --server http://localhost:8080
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("source expression required")
	}
	source := fs.Arg(0)

	c := pipeline.NewController(newService(*serverURL))
	if err := c.Analyze(context.Background(), source); err != nil {
		return err
	}

	fmt.Println("=== Tokens ===")
	fmt.Println(render.TokenView(c.Tokens()))
	fmt.Println()
	fmt.Println("=== Symbol Table ===")
	fmt.Println(render.SymbolView(c.Symbols()))

	if required := c.RequiredInputs(); len(required) > 0 {
		fmt.Println()
		fmt.Printf("Variables needing a declared type: %s\n", strings.Join(required, ", "))
	}
	return nil
}
