package render

import (
	"fmt"
	"strings"

	"github.com/compviz-xyz/go-compviz/token"
)

// TokenView formats the token stream as (kind, literal) lines in
// submission order.
func TokenView(tokens []token.Token) string {
	var lines []string
	for _, tok := range tokens {
		lines = append(lines, fmt.Sprintf("%-8s %s", tok.Kind, tok.Literal()))
	}
	return strings.Join(lines, "\n")
}

// TokenStream formats the renamed token texts space-separated, the
// compact form shown after lexical analysis.
func TokenStream(tokens []token.Token) string {
	var parts []string
	for _, tok := range tokens {
		parts = append(parts, tok.Text)
	}
	return strings.Join(parts, " ")
}

// SymbolView formats the symbol table as (name, id) lines in insertion
// order.
func SymbolView(st *token.SymbolTable) string {
	if st == nil {
		return ""
	}
	var lines []string
	for _, e := range st.Entries() {
		lines = append(lines, fmt.Sprintf("%-8s %d", e.Name, e.ID))
	}
	return strings.Join(lines, "\n")
}

// CodeView joins a code listing with newlines in original order.
func CodeView(lines []string) string {
	return strings.Join(lines, "\n")
}
