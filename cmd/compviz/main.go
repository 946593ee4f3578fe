package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "analyze":
		if err := analyze(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "compile":
		if err := compile(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "render":
		if err := renderCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := serve(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "repl":
		if err := repl(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("compviz version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`compviz - compiler pipeline visualizer

Usage:
  compviz <command> [options]

Commands:
  analyze    Run lexical analysis on a source expression
  compile    Run the full pipeline and print every artifact
  render     Render a tree artifact as SVG
  serve      Start the compilation service over HTTP
  repl       Interactive two-phase session
  help       Show this help message
  version    Show version information

Examples:
  # Inspect tokens and type prompts
  compviz analyze "Z = 2 * y + 2.9 * X"

  # Full pipeline with declared types
  compviz compile "Z = 2 * y + 2.9 * X" --types y=float

  # Render the semantic tree
  compviz render "y = 2 + 3.5" --semantic --output tree.svg

  # Serve the two contracts on :8080 with a run log
  compviz serve --addr :8080 --runlog runs.jsonl

For command-specific help, run:
  compviz <command> --help`)
}
