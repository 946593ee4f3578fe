package compiler

import (
	"github.com/compviz-xyz/go-compviz/token"
	"github.com/compviz-xyz/go-compviz/tree"
)

// Result holds the full artifact set produced by a compile run.
type Result struct {
	Tokens       []token.Token
	Symbols      *token.SymbolTable
	SyntaxTree   *tree.Node
	SemanticTree *tree.Node
	Intermediate []string
	Optimized    []string
	Assembly     []string
}

// Analyze runs the lexical phase only and returns the token stream and
// symbol table.
func Analyze(source string) ([]token.Token, *token.SymbolTable, error) {
	lex := NewLexer(source)
	tokens, err := lex.Tokenize()
	if err != nil {
		return nil, nil, err
	}
	return tokens, lex.Symbols(), nil
}

// Compile runs the full pipeline. The syntax tree is parsed untouched;
// a second parse of the same token stream yields the semantic tree,
// which type analysis annotates in place under the given type table.
func Compile(source string, types TypeTable) (*Result, error) {
	lex := NewLexer(source)
	tokens, err := lex.Tokenize()
	if err != nil {
		return nil, err
	}

	syntaxTree, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, err
	}
	semanticTree, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, err
	}
	AnalyzeTypes(semanticTree, types)

	intermediate := GenerateIntermediate(syntaxTree)
	optimized := Optimize(intermediate)

	return &Result{
		Tokens:       tokens,
		Symbols:      lex.Symbols(),
		SyntaxTree:   syntaxTree,
		SemanticTree: semanticTree,
		Intermediate: Listing(intermediate),
		Optimized:    Listing(optimized),
		Assembly:     GenerateAssembly(optimized),
	}, nil
}
