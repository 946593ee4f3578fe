// Package token defines the lexical building blocks shared by the
// compilation service and the visualizer front-end: token kinds, tokens,
// and the insertion-ordered symbol table.
package token

// Kind classifies a lexical token.
type Kind string

const (
	NUMBER  Kind = "NUMBER"
	ASSIGN  Kind = "ASSIGN"
	ID      Kind = "ID"
	OP      Kind = "OP"
	LPAREN  Kind = "LPAREN"
	RPAREN  Kind = "RPAREN"
	ILLEGAL Kind = "ILLEGAL"
)

// Token is a single lexical unit in submission order.
// Text is the display form; for identifiers it is the renamed internal
// symbol (id0, id1, ...) while Original keeps the source lexeme.
type Token struct {
	Kind     Kind   `json:"type"`
	Text     string `json:"text"`
	Original string `json:"original,omitempty"`
}

// Literal returns the source form of the token: the original lexeme for
// identifiers, the text for everything else.
func (t Token) Literal() string {
	if t.Kind == ID && t.Original != "" {
		return t.Original
	}
	return t.Text
}
