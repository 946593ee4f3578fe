package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/compviz-xyz/go-compviz/pipeline"
	"github.com/compviz-xyz/go-compviz/render"
)

// parseTypeList turns "a=float,b=int" into a type table.
func parseTypeList(list string) (pipeline.TypeTable, error) {
	types := pipeline.TypeTable{}
	if list == "" {
		return types, nil
	}
	for _, pair := range strings.Split(list, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid type declaration %q, want name=type", pair)
		}
		t, ok := pipeline.ParseVarType(strings.TrimSpace(value))
		if !ok {
			return nil, fmt.Errorf("unknown type %q for %s, want int or float", value, name)
		}
		types[name] = t
	}
	return types, nil
}

func compile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	typeList := fs.String("types", "", "Variable types as name=type pairs, comma separated")
	serverURL := fs.String("server", "", "Remote service URL (default: in-process)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: compviz compile <source> [options]

Run the full pipeline and print every stage: tokens, symbol table,
intermediate code, optimized code, and assembly.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  compviz compile "y = 2 + 3.5"
  compviz compile "x = a + b" --types "a=float,b=int"
  compviz compile "x = a + b" --types "a=int,b=int" --server http://localhost:8080
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

	types, err := parseTypeList(*typeList)
	if err != nil {
		return err
	}

	c := pipeline.NewController(newService(*serverURL))
	ctx := context.Background()
	if err := c.Analyze(ctx, source); err != nil {
		return err
	}

	if missing := missingTypes(c.RequiredInputs(), types); len(missing) > 0 {
		return fmt.Errorf("missing type declarations for: %s (use --types)", strings.Join(missing, ", "))
	}

	if err := c.Compile(ctx, types); err != nil {
		return err
	}
	art := c.Artifacts()

	fmt.Println("=== Tokens ===")
	fmt.Println(render.TokenView(c.Tokens()))
	fmt.Println()
	fmt.Println("=== Symbol Table ===")
	fmt.Println(render.SymbolView(c.Symbols()))
	fmt.Println()
	fmt.Println("=== Intermediate Code ===")
	fmt.Println(render.CodeView(art.Intermediate))
	fmt.Println()
	fmt.Println("=== Optimized Code ===")
	fmt.Println(render.CodeView(art.Optimized))
	fmt.Println()
	fmt.Println("=== Assembly ===")
	fmt.Println(render.CodeView(art.Assembly))
	return nil
}

func missingTypes(required []string, types pipeline.TypeTable) []string {
	var missing []string
	for _, name := range required {
		if _, ok := types[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
