package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/compviz-xyz/go-compviz/token"
	"github.com/compviz-xyz/go-compviz/tree"
)

// fakeService scripts the two contracts and counts calls.
type fakeService struct {
	analyzeRes  *AnalyzeResult
	analyzeErr  error
	compileRes  *Artifacts
	compileErr  error
	analyzeCall int
	compileCall int
}

func (s *fakeService) Analyze(ctx context.Context, code string) (*AnalyzeResult, error) {
	s.analyzeCall++
	if s.analyzeErr != nil {
		return nil, s.analyzeErr
	}
	return s.analyzeRes, nil
}

func (s *fakeService) Compile(ctx context.Context, code string, types TypeTable) (*Artifacts, error) {
	s.compileCall++
	if s.compileErr != nil {
		return nil, s.compileErr
	}
	return s.compileRes, nil
}

func analyzedService() *fakeService {
	symbols := symbolsFor("x", "a", "b")
	return &fakeService{
		analyzeRes: &AnalyzeResult{
			Tokens:  []token.Token{{Kind: token.ID, Text: "id0", Original: "x"}},
			Symbols: symbols,
		},
		compileRes: &Artifacts{
			Symbols:      symbols,
			SyntaxTree:   &tree.Node{Kind: tree.ID, Value: "id0", OriginalName: "x"},
			SemanticTree: &tree.Node{Kind: tree.ID, Value: "id0", OriginalName: "x"},
			Intermediate: []string{"x = a + b"},
			Optimized:    []string{"x = a + b"},
			Assembly:     []string{"LD R1, a"},
		},
	}
}

func TestAnalyzeTransitionsToAnalyzed(t *testing.T) {
	svc := analyzedService()
	c := NewController(svc)

	if c.Phase() != Idle {
		t.Fatalf("initial phase = %s, want idle", c.Phase())
	}
	if err := c.Analyze(context.Background(), "x = a + b"); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if c.Phase() != Analyzed {
		t.Errorf("phase = %s, want analyzed", c.Phase())
	}
	if got, want := c.RequiredInputs(), []string{"a", "b"}; !cmp.Equal(got, want) {
		t.Errorf("RequiredInputs = %v, want %v", got, want)
	}
}

func TestAnalyzeRejectsEmptySource(t *testing.T) {
	svc := analyzedService()
	c := NewController(svc)

	err := c.Analyze(context.Background(), "   \n\t ")
	if err == nil {
		t.Fatal("Analyze of blank source should fail")
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindValidation {
		t.Errorf("error = %v, want validation kind", err)
	}
	if svc.analyzeCall != 0 {
		t.Errorf("service contacted %d times, want 0", svc.analyzeCall)
	}
	if c.Phase() != Idle {
		t.Errorf("phase = %s, want idle", c.Phase())
	}
}

func TestCompileRejectedWhileIdle(t *testing.T) {
	svc := analyzedService()
	c := NewController(svc)

	err := c.Compile(context.Background(), nil)
	if err == nil {
		t.Fatal("Compile while idle should fail")
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindValidation {
		t.Errorf("error = %v, want validation kind", err)
	}
	if svc.compileCall != 0 {
		t.Errorf("service contacted %d times, want 0", svc.compileCall)
	}
}

func TestCompileTransitionsToCompiled(t *testing.T) {
	svc := analyzedService()
	c := NewController(svc)

	var phases []Phase
	c.OnPhaseChange(func(p Phase) { phases = append(phases, p) })

	ctx := context.Background()
	if err := c.Analyze(ctx, "x = a + b"); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if err := c.Compile(ctx, TypeTable{"a": TypeFloat}); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if c.Phase() != Compiled {
		t.Errorf("phase = %s, want compiled", c.Phase())
	}
	if c.Artifacts() == nil || len(c.Artifacts().Assembly) == 0 {
		t.Error("artifacts not stored")
	}
	if !cmp.Equal(phases, []Phase{Analyzed, Compiled}) {
		t.Errorf("phase changes = %v, want [analyzed compiled]", phases)
	}
}

func TestCompileFailureKeepsArtifacts(t *testing.T) {
	svc := analyzedService()
	c := NewController(svc)
	ctx := context.Background()

	if err := c.Analyze(ctx, "x = a + b"); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if err := c.Compile(ctx, nil); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	kept := c.Artifacts()

	// A later compile fails; displayed artifacts stay put
	svc.compileErr = ServiceFailure("compile", "type mismatch", "")
	err := c.Compile(ctx, nil)
	if err == nil {
		t.Fatal("expected compile failure")
	}
	if c.Phase() != Compiled {
		t.Errorf("phase = %s, want compiled (no advance on error)", c.Phase())
	}
	if c.Artifacts() != kept {
		t.Error("artifacts were cleared on a failed compile")
	}
	if c.Err() == nil || c.Err().Message != "type mismatch" {
		t.Errorf("Err() = %v, want type mismatch", c.Err())
	}
}

func TestAnalyzeFromCompiledReturnsToAnalyzed(t *testing.T) {
	svc := analyzedService()
	c := NewController(svc)
	ctx := context.Background()

	if err := c.Analyze(ctx, "x = a + b"); err != nil {
		t.Fatal(err)
	}
	if err := c.Compile(ctx, nil); err != nil {
		t.Fatal(err)
	}
	stale := c.Artifacts()

	if err := c.Analyze(ctx, "x = a - b"); err != nil {
		t.Fatal(err)
	}
	if c.Phase() != Analyzed {
		t.Errorf("phase = %s, want analyzed", c.Phase())
	}
	// Prior compile artifacts become stale but are not cleared yet
	if c.Artifacts() != stale {
		t.Error("stale artifacts should remain until the next successful compile")
	}
}

func TestAnalyzeFailureLeavesStateUntouched(t *testing.T) {
	svc := analyzedService()
	c := NewController(svc)
	ctx := context.Background()

	if err := c.Analyze(ctx, "x = a + b"); err != nil {
		t.Fatal(err)
	}
	symbols := c.Symbols()

	svc.analyzeErr = errors.New("connection refused")
	err := c.Analyze(ctx, "x = a * b")
	if err == nil {
		t.Fatal("expected analyze failure")
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindTransport {
		t.Errorf("error = %v, want transport kind", err)
	}
	if c.Phase() != Analyzed {
		t.Errorf("phase = %s, want analyzed", c.Phase())
	}
	if c.Symbols() != symbols {
		t.Error("prior symbol table replaced on failure")
	}
}

func TestResetFromAnyPhase(t *testing.T) {
	svc := analyzedService()
	ctx := context.Background()

	for _, setup := range []func(*Controller){
		func(c *Controller) {}, // idle
		func(c *Controller) { c.Analyze(ctx, "x = a + b") },
		func(c *Controller) {
			c.Analyze(ctx, "x = a + b")
			c.Compile(ctx, nil)
		},
	} {
		c := NewController(svc)
		setup(c)
		c.Reset()
		if c.Phase() != Idle {
			t.Errorf("phase after reset = %s, want idle", c.Phase())
		}
		if c.Symbols() != nil || c.Artifacts() != nil || c.Source() != "" || c.Err() != nil {
			t.Error("reset did not clear stored state")
		}
		if c.CanCompile() {
			t.Error("compile should be disabled after reset")
		}
	}
}

func TestNewAttemptClearsPreviousError(t *testing.T) {
	svc := analyzedService()
	c := NewController(svc)
	ctx := context.Background()

	svc.analyzeErr = ServiceFailure("analyze", "", "bad token")
	if err := c.Analyze(ctx, "x = $"); err == nil {
		t.Fatal("expected analyze failure")
	}
	if c.Err() == nil || c.Err().Message != "bad token" {
		t.Fatalf("Err() = %v, want bad token", c.Err())
	}

	svc.analyzeErr = nil
	if err := c.Analyze(ctx, "x = a + b"); err != nil {
		t.Fatal(err)
	}
	if c.Err() != nil {
		t.Errorf("Err() = %v, want nil after successful attempt", c.Err())
	}
}

func TestServiceFailureMessageFallbacks(t *testing.T) {
	tests := []struct {
		phase  string
		detail string
		errTxt string
		want   string
	}{
		{"analyze", "unexpected character", "boom", "unexpected character"},
		{"analyze", "", "boom", "boom"},
		{"analyze", "", "", "Analysis failed"},
		{"compile", "", "", "Compilation failed"},
	}
	for _, tc := range tests {
		e := ServiceFailure(tc.phase, tc.detail, tc.errTxt)
		if e.Message != tc.want {
			t.Errorf("ServiceFailure(%q,%q,%q) = %q, want %q",
				tc.phase, tc.detail, tc.errTxt, e.Message, tc.want)
		}
		if e.Kind != KindService {
			t.Errorf("kind = %v, want service", e.Kind)
		}
	}
}

func TestOnErrorHandler(t *testing.T) {
	svc := analyzedService()
	c := NewController(svc)

	var seen []*Error
	c.OnError(func(e *Error) { seen = append(seen, e) })

	c.Analyze(context.Background(), "")
	if len(seen) != 1 || seen[0].Kind != KindValidation {
		t.Errorf("error handler saw %v", seen)
	}
}
