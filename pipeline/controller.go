// Package pipeline holds the authoritative state machine of the
// visualizer front-end: it sequences the two-phase workflow (analyze,
// then compile), owns every piece of mutable state, and reduces all
// failures to a single user-visible error. Collaborators — the layout
// engine, connector geometry, and type prompts — are pure functions over
// data the controller hands them.
package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/compviz-xyz/go-compviz/token"
	"github.com/compviz-xyz/go-compviz/tree"
)

// Phase is the controller's position in the two-phase workflow.
type Phase int

const (
	// Idle: no source analyzed; compile is disabled.
	Idle Phase = iota
	// Analyzed: tokens and symbol table available, type prompts may be
	// pending.
	Analyzed
	// Compiled: full artifact set available.
	Compiled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Analyzed:
		return "analyzed"
	case Compiled:
		return "compiled"
	}
	return "unknown"
}

// AnalyzeResult is the lexical artifact set returned by the analyze
// contract.
type AnalyzeResult struct {
	Tokens  []token.Token
	Symbols *token.SymbolTable
}

// Artifacts is the full artifact set returned by the compile contract.
type Artifacts struct {
	Tokens       []token.Token
	Symbols      *token.SymbolTable
	SyntaxTree   *tree.Node
	SemanticTree *tree.Node
	Intermediate []string
	Optimized    []string
	Assembly     []string
}

// Service is the compilation service seen through its two
// request/response contracts. Implementations surface failed responses
// as *Error values; any other error is treated as a transport failure.
type Service interface {
	Analyze(ctx context.Context, code string) (*AnalyzeResult, error)
	Compile(ctx context.Context, code string, types TypeTable) (*Artifacts, error)
}

// Controller drives the two-phase workflow. All mutable state lives
// behind its mutex; responses are applied atomically in completion
// order, so when requests overlap the last completed response wins and
// torn state is never observable. In-flight requests cannot be
// cancelled by starting new ones.
type Controller struct {
	svc Service

	mu        sync.Mutex
	phase     Phase
	source    string
	tokens    []token.Token
	symbols   *token.SymbolTable
	required  []string
	artifacts *Artifacts
	lastErr   *Error

	onPhaseChange []func(Phase)
	onError       []func(*Error)
}

// NewController creates a controller in the Idle phase.
func NewController(svc Service) *Controller {
	return &Controller{svc: svc}
}

// OnPhaseChange registers a handler fired after every phase transition,
// including Reset.
func (c *Controller) OnPhaseChange(fn func(Phase)) *Controller {
	c.onPhaseChange = append(c.onPhaseChange, fn)
	return c
}

// OnError registers a handler fired for every surfaced error.
func (c *Controller) OnError(fn func(*Error)) *Controller {
	c.onError = append(c.onError, fn)
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// CanCompile reports whether the compile action is enabled.
func (c *Controller) CanCompile() bool {
	return c.Phase() != Idle
}

// Err returns the currently displayed error, or nil. A new attempt
// clears it before starting.
func (c *Controller) Err() *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Source returns the most recently analyzed source text.
func (c *Controller) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

// Tokens returns the current token stream in submission order.
func (c *Controller) Tokens() []token.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

// Symbols returns the current symbol table.
func (c *Controller) Symbols() *token.SymbolTable {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.symbols
}

// RequiredInputs returns the identifiers awaiting a declared type,
// re-derived on every successful analyze.
func (c *Controller) RequiredInputs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.required
}

// Artifacts returns the artifact set of the last successful compile.
// After a later analyze it may be stale; it is not cleared until the
// next successful compile replaces it or Reset runs.
func (c *Controller) Artifacts() *Artifacts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.artifacts
}

// Analyze runs the first phase. Empty or whitespace-only source fails
// fast with a validation error without contacting the service. On
// success the controller moves to Analyzed from any phase, replacing
// the token stream and symbol table and re-deriving the required type
// inputs. On failure nothing advances and prior artifacts stay intact.
func (c *Controller) Analyze(ctx context.Context, source string) error {
	c.clearError()

	if strings.TrimSpace(source) == "" {
		return c.fail(validationFailure("analyze", "source code is empty"))
	}

	res, err := c.svc.Analyze(ctx, source)
	if err != nil {
		return c.fail(classify("analyze", err))
	}

	c.mu.Lock()
	c.phase = Analyzed
	c.source = source
	c.tokens = res.Tokens
	c.symbols = res.Symbols
	c.required = RequiredInputs(res.Symbols, source)
	c.mu.Unlock()

	c.firePhaseChange(Analyzed)
	return nil
}

// Compile runs the second phase against the most recently analyzed
// source. It is rejected while Idle without a network call. On success
// the full artifact set is replaced atomically and the controller moves
// to Compiled; on failure the phase and any previously displayed
// artifacts are left as they are.
func (c *Controller) Compile(ctx context.Context, types TypeTable) error {
	c.clearError()

	c.mu.Lock()
	if c.phase == Idle {
		c.mu.Unlock()
		return c.fail(validationFailure("compile", "no source has been analyzed"))
	}
	source := c.source
	c.mu.Unlock()

	arts, err := c.svc.Compile(ctx, source, types)
	if err != nil {
		return c.fail(classify("compile", err))
	}

	c.mu.Lock()
	c.phase = Compiled
	c.tokens = arts.Tokens
	c.symbols = arts.Symbols
	c.artifacts = arts
	c.mu.Unlock()

	c.firePhaseChange(Compiled)
	return nil
}

// Reset unconditionally returns to Idle, clearing the stored source,
// symbol table, required inputs, artifacts, and any displayed error.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.phase = Idle
	c.source = ""
	c.tokens = nil
	c.symbols = nil
	c.required = nil
	c.artifacts = nil
	c.lastErr = nil
	c.mu.Unlock()

	c.firePhaseChange(Idle)
}

func (c *Controller) clearError() {
	c.mu.Lock()
	c.lastErr = nil
	c.mu.Unlock()
}

// fail records the error as the single displayed message and notifies
// handlers. State never advances on any error.
func (c *Controller) fail(e *Error) error {
	c.mu.Lock()
	c.lastErr = e
	c.mu.Unlock()

	for _, fn := range c.onError {
		fn(e)
	}
	return e
}

func (c *Controller) firePhaseChange(p Phase) {
	for _, fn := range c.onPhaseChange {
		fn(p)
	}
}

// classify turns a service call error into the taxonomy: typed errors
// pass through, anything else is a transport failure.
func classify(phase string, err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return TransportFailure(phase, err)
}
