package service

import (
	"context"

	"github.com/compviz-xyz/go-compviz/compiler"
	"github.com/compviz-xyz/go-compviz/pipeline"
)

// Local implements pipeline.Service by calling the reference compiler
// in-process. The CLI and REPL use it when no remote service address is
// configured; the error taxonomy matches the HTTP client's.
type Local struct{}

// Analyze implements the analyze contract in-process.
func (Local) Analyze(ctx context.Context, code string) (*pipeline.AnalyzeResult, error) {
	tokens, symbols, err := compiler.Analyze(code)
	if err != nil {
		return nil, pipeline.ServiceFailure("analyze", err.Error(), "")
	}
	return &pipeline.AnalyzeResult{Tokens: tokens, Symbols: symbols}, nil
}

// Compile implements the compile contract in-process.
func (Local) Compile(ctx context.Context, code string, types pipeline.TypeTable) (*pipeline.Artifacts, error) {
	table := make(compiler.TypeTable, len(types))
	for name, t := range types {
		table[name] = string(t)
	}
	res, err := compiler.Compile(code, table)
	if err != nil {
		return nil, pipeline.ServiceFailure("compile", err.Error(), "")
	}
	return &pipeline.Artifacts{
		Tokens:       res.Tokens,
		Symbols:      res.Symbols,
		SyntaxTree:   res.SyntaxTree,
		SemanticTree: res.SemanticTree,
		Intermediate: res.Intermediate,
		Optimized:    res.Optimized,
		Assembly:     res.Assembly,
	}, nil
}
