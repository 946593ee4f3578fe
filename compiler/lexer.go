// Package compiler implements the reference compilation service: lexing,
// parsing, semantic analysis with implicit int-to-float coercion,
// three-address intermediate code, a constant-folding optimizer, and an
// assembly emitter. The front-end consumes it only through the analyze
// and compile contracts in the service package.
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/compviz-xyz/go-compviz/token"
)

// Lexer scans a single source expression into tokens, interning
// identifiers into a fresh symbol table as it goes.
type Lexer struct {
	input   string
	pos     int
	symbols *token.SymbolTable
}

// NewLexer creates a lexer over input with an empty symbol table.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, symbols: token.NewSymbolTable()}
}

// Symbols returns the symbol table accumulated so far.
func (l *Lexer) Symbols() *token.SymbolTable {
	return l.symbols
}

// Tokenize scans the whole input. Identifiers are renamed to their
// internal symbol (id0, id1, ...) with the source name kept in
// Token.Original. Whitespace is skipped; any other rune is an error.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			l.pos++
		case ch >= '0' && ch <= '9':
			tokens = append(tokens, l.readNumber())
		case isIdentStart(ch):
			tokens = append(tokens, l.readIdent())
		case ch == '=':
			tokens = append(tokens, token.Token{Kind: token.ASSIGN, Text: "="})
			l.pos++
		case ch == '+' || ch == '-' || ch == '*' || ch == '/':
			tokens = append(tokens, token.Token{Kind: token.OP, Text: string(ch)})
			l.pos++
		case ch == '(':
			tokens = append(tokens, token.Token{Kind: token.LPAREN, Text: "("})
			l.pos++
		case ch == ')':
			tokens = append(tokens, token.Token{Kind: token.RPAREN, Text: ")"})
			l.pos++
		default:
			return nil, fmt.Errorf("unexpected character %q", string(ch))
		}
	}
	return tokens, nil
}

func (l *Lexer) readNumber() token.Token {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	// Fractional part only when a digit follows the dot
	if l.pos+1 < len(l.input) && l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	return token.Token{Kind: token.NUMBER, Text: l.input[start:l.pos]}
}

func (l *Lexer) readIdent() token.Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	name := l.input[start:l.pos]
	id := l.symbols.Intern(name)
	return token.Token{
		Kind:     token.ID,
		Text:     internalName(id),
		Original: name,
	}
}

// internalName renders the renamed symbol displayed in token streams and
// tree nodes.
func internalName(id int) string {
	return "id" + strconv.Itoa(id)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// isFloatLiteral reports whether a NUMBER lexeme denotes a float.
func isFloatLiteral(text string) bool {
	return strings.Contains(text, ".")
}
