package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/compviz-xyz/go-compviz/pipeline"
)

// Client talks to a compilation service over HTTP and implements
// pipeline.Service: failed responses become service errors with the
// detail/error/generic fallback chain, everything else a transport
// error.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Analyze implements the analyze contract.
func (c *Client) Analyze(ctx context.Context, code string) (*pipeline.AnalyzeResult, error) {
	var resp AnalyzeResponse
	if err := c.post(ctx, "/analyze", AnalyzeRequest{Code: code}, &resp); err != nil {
		return nil, pipeline.TransportFailure("analyze", err)
	}
	if !resp.Success {
		return nil, pipeline.ServiceFailure("analyze", resp.Detail, resp.Err)
	}
	return &pipeline.AnalyzeResult{Tokens: resp.Tokens, Symbols: resp.SymbolTable}, nil
}

// Compile implements the compile contract.
func (c *Client) Compile(ctx context.Context, code string, types pipeline.TypeTable) (*pipeline.Artifacts, error) {
	req := CompileRequest{Code: code, TypeTable: make(map[string]string, len(types))}
	for name, t := range types {
		req.TypeTable[name] = string(t)
	}

	var resp CompileResponse
	if err := c.post(ctx, "/compile", req, &resp); err != nil {
		return nil, pipeline.TransportFailure("compile", err)
	}
	if !resp.Success {
		return nil, pipeline.ServiceFailure("compile", resp.Detail, resp.Err)
	}

	arts := &pipeline.Artifacts{
		SyntaxTree:   resp.SyntaxTree,
		SemanticTree: resp.SemanticTree,
		Intermediate: resp.IntermediateCode,
		Optimized:    resp.OptimizedCode,
		Assembly:     resp.AssemblyCode,
	}
	if resp.Lexical != nil {
		arts.Tokens = resp.Lexical.Tokens
		arts.Symbols = resp.Lexical.SymbolTable
	}
	return arts, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
