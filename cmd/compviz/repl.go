package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/compviz-xyz/go-compviz/pipeline"
	"github.com/compviz-xyz/go-compviz/render"
)

func repl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	serverURL := fs.String("server", "", "Remote service URL (default: in-process)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: compviz repl [options]

Interactive session. Each line is analyzed, you are prompted for the
type of every free variable, and the full pipeline runs.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	rl, err := readline.New("compviz> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("Enter an assignment like \"x = a + b\". Ctrl-D exits.")

	c := pipeline.NewController(newService(*serverURL))
	for {
		if err := replStep(rl, c); err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}
	}
}

// replStep reads, analyzes, prompts, and compiles one expression.
// Pipeline errors are printed, not returned; only readline failures
// end the loop.
func replStep(rl *readline.Instance, c *pipeline.Controller) error {
	rl.SetPrompt("compviz> ")
	line, err := rl.Readline()
	if err != nil {
		return err
	}
	source := strings.TrimSpace(line)
	if source == "" {
		return nil
	}

	ctx := context.Background()
	if err := c.Analyze(ctx, source); err != nil {
		fmt.Println(err)
		return nil
	}

	fmt.Println(render.TokenView(c.Tokens()))
	fmt.Println(render.SymbolView(c.Symbols()))

	types := pipeline.Collect(c.RequiredInputs(), promptSelector(rl))
	if err := c.Compile(ctx, types); err != nil {
		fmt.Println(err)
		return nil
	}
	art := c.Artifacts()

	fmt.Println("intermediate:")
	fmt.Println(render.CodeView(art.Intermediate))
	fmt.Println("optimized:")
	fmt.Println(render.CodeView(art.Optimized))
	fmt.Println("assembly:")
	fmt.Println(render.CodeView(art.Assembly))
	return nil
}

// promptSelector asks for a type per name until the answer parses.
// A blank answer skips the name, leaving it to default to int.
func promptSelector(rl *readline.Instance) pipeline.TypeSelector {
	return pipeline.SelectorFunc(func(name string) (pipeline.VarType, bool) {
		for {
			rl.SetPrompt(fmt.Sprintf("type of %s (int/float)? ", name))
			line, err := rl.Readline()
			if err != nil {
				return "", false
			}
			answer := strings.TrimSpace(line)
			if answer == "" {
				return "", false
			}
			if t, ok := pipeline.ParseVarType(answer); ok {
				return t, true
			}
			fmt.Printf("unknown type %q, want int or float\n", answer)
		}
	})
}
