package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/compviz-xyz/go-compviz/layout"
	"github.com/compviz-xyz/go-compviz/pipeline"
	"github.com/compviz-xyz/go-compviz/render"
)

func renderCmd(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	typeList := fs.String("types", "", "Variable types as name=type pairs, comma separated")
	semantic := fs.Bool("semantic", false, "Render the annotated semantic tree instead of the syntax tree")
	output := fs.String("output", "", "Output file (default: stdout)")
	width := fs.Int("width", 0, "Canvas width in pixels (default: 1000)")
	serverURL := fs.String("server", "", "Remote service URL (default: in-process)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: compviz render <source> [options]

Compile the expression and render its parse tree as SVG.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  compviz render "y = 2 + 3.5" --output tree.svg
  compviz render "x = a + b" --types "a=float,b=int" --semantic --output tree.svg
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

	root := art.SyntaxTree
	if *semantic {
		root = art.SemanticTree
	}
	visual := layout.Layout(root, *semantic)

	opts := render.DefaultTreeSVGOptions()
	if *width > 0 {
		opts.Width = float64(*width)
	}
	svg := render.RenderTreeSVG(visual, opts)

	if *output == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(*output, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *output, err)
	}
	fmt.Printf("Wrote %s\n", *output)
	return nil
}
