package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/compviz-xyz/go-compviz/token"
)

func TestTokenize(t *testing.T) {
	lex := NewLexer("Z = 2 * y + 2.9 * X")
	tokens, err := lex.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := []token.Token{
		{Kind: token.ID, Text: "id0", Original: "Z"},
		{Kind: token.ASSIGN, Text: "="},
		{Kind: token.NUMBER, Text: "2"},
		{Kind: token.OP, Text: "*"},
		{Kind: token.ID, Text: "id1", Original: "y"},
		{Kind: token.OP, Text: "+"},
		{Kind: token.NUMBER, Text: "2.9"},
		{Kind: token.OP, Text: "*"},
		{Kind: token.ID, Text: "id2", Original: "X"},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}

	wantSymbols := []token.Entry{{Name: "Z", ID: 0}, {Name: "y", ID: 1}, {Name: "X", ID: 2}}
	if diff := cmp.Diff(wantSymbols, lex.Symbols().Entries()); diff != "" {
		t.Errorf("symbol table mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeRepeatedIdentifier(t *testing.T) {
	lex := NewLexer("a = a + a")
	tokens, err := lex.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if lex.Symbols().Len() != 1 {
		t.Errorf("symbol table has %d entries, want 1", lex.Symbols().Len())
	}
	for _, tok := range tokens {
		if tok.Kind == token.ID && tok.Text != "id0" {
			t.Errorf("repeated identifier renamed to %q, want id0", tok.Text)
		}
	}
}

func TestTokenizeParens(t *testing.T) {
	tokens, _, err := Analyze("x = (1 + 2) * 3")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{
		token.ID, token.ASSIGN, token.LPAREN, token.NUMBER, token.OP,
		token.NUMBER, token.RPAREN, token.OP, token.NUMBER,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("kind mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeRejectsUnknownCharacter(t *testing.T) {
	if _, err := NewLexer("x = 1 $ 2").Tokenize(); err == nil {
		t.Error("expected error for unknown character")
	}
}

func TestNumberLexing(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x = 42", "42"},
		{"x = 3.5", "3.5"},
		{"x = 10.25", "10.25"},
	}
	for _, tc := range tests {
		tokens, _, err := Analyze(tc.input)
		if err != nil {
			t.Fatalf("Analyze(%q) failed: %v", tc.input, err)
		}
		if got := tokens[2].Text; got != tc.want {
			t.Errorf("Analyze(%q) number = %q, want %q", tc.input, got, tc.want)
		}
	}
}
