// Package service carries the two request/response contracts between
// the front-end and the compilation service over HTTP JSON, plus a
// websocket channel broadcasting per-stage progress events.
package service

import (
	"github.com/compviz-xyz/go-compviz/token"
	"github.com/compviz-xyz/go-compviz/tree"
)

// AnalyzeRequest is the analyze contract's request body.
type AnalyzeRequest struct {
	Code string `json:"code"`
}

// AnalyzeResponse is the analyze contract's response body.
type AnalyzeResponse struct {
	Success     bool               `json:"success"`
	Tokens      []token.Token      `json:"tokens,omitempty"`
	SymbolTable *token.SymbolTable `json:"symbol_table,omitempty"`
	Detail      string             `json:"detail,omitempty"`
	Err         string             `json:"error,omitempty"`
}

// CompileRequest is the compile contract's request body. The type table
// is sent verbatim as collected; the service tolerates partial or empty
// tables.
type CompileRequest struct {
	Code      string            `json:"code"`
	TypeTable map[string]string `json:"type_table,omitempty"`
}

// LexicalArtifacts groups the lexical phase outputs inside a compile
// response.
type LexicalArtifacts struct {
	Tokens      []token.Token      `json:"tokens"`
	SymbolTable *token.SymbolTable `json:"symbol_table"`
}

// CompileResponse is the compile contract's response body.
type CompileResponse struct {
	Success          bool              `json:"success"`
	Lexical          *LexicalArtifacts `json:"lexical,omitempty"`
	SyntaxTree       *tree.Node        `json:"syntax_tree,omitempty"`
	SemanticTree     *tree.Node        `json:"semantic_tree,omitempty"`
	IntermediateCode []string          `json:"intermediate_code,omitempty"`
	OptimizedCode    []string          `json:"optimized_code,omitempty"`
	AssemblyCode     []string          `json:"assembly_code,omitempty"`
	Detail           string            `json:"detail,omitempty"`
	Err              string            `json:"error,omitempty"`
}

// StageEvent is one progress notification pushed over the websocket
// channel while a request runs.
type StageEvent struct {
	RequestID string `json:"request_id"`
	Stage     string `json:"stage"`
	Success   bool   `json:"success"`
	Detail    string `json:"detail,omitempty"`
}

// Pipeline stage names used in stage events.
const (
	StageLexical      = "lexical"
	StageSyntax       = "syntax"
	StageSemantic     = "semantic"
	StageIntermediate = "intermediate"
	StageOptimized    = "optimized"
	StageAssembly     = "assembly"
)
