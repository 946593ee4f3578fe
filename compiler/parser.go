package compiler

import (
	"fmt"

	"github.com/compviz-xyz/go-compviz/token"
	"github.com/compviz-xyz/go-compviz/tree"
)

// Parser builds an expression tree from a token stream. The grammar is a
// single assignment statement:
//
//	statement  := ID '=' expression
//	expression := term (('+' | '-') term)*
//	term       := factor (('*' | '/') factor)*
//	factor     := NUMBER | ID | '(' expression ')'
type Parser struct {
	tokens []token.Token
	pos    int
}

// NewParser creates a parser over tokens.
func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) current() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Token{}
}

func (p *Parser) eat(kind token.Kind) (token.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		found := string(tok.Kind)
		if found == "" {
			found = "end of input"
		}
		return token.Token{}, fmt.Errorf("expected %s but found %s", kind, found)
	}
	p.pos++
	return tok, nil
}

// Parse parses the whole statement and returns its tree.
func (p *Parser) Parse() (*tree.Node, error) {
	node, err := p.statement()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %s after statement", p.current().Kind)
	}
	return node, nil
}

func (p *Parser) statement() (*tree.Node, error) {
	idTok, err := p.eat(token.ID)
	if err != nil {
		return nil, err
	}
	left := &tree.Node{Kind: tree.ID, Value: idTok.Text, OriginalName: idTok.Original}

	opTok, err := p.eat(token.ASSIGN)
	if err != nil {
		return nil, err
	}

	right, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &tree.Node{Kind: tree.ASSIGN, Value: opTok.Text, Left: left, Right: right}, nil
}

func (p *Parser) expression() (*tree.Node, error) {
	node, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == token.OP && (p.current().Text == "+" || p.current().Text == "-") {
		op, _ := p.eat(token.OP)
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		node = &tree.Node{Kind: tree.OP, Value: op.Text, Left: node, Right: right}
	}
	return node, nil
}

func (p *Parser) term() (*tree.Node, error) {
	node, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == token.OP && (p.current().Text == "*" || p.current().Text == "/") {
		op, _ := p.eat(token.OP)
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		node = &tree.Node{Kind: tree.OP, Value: op.Text, Left: node, Right: right}
	}
	return node, nil
}

func (p *Parser) factor() (*tree.Node, error) {
	tok := p.current()
	switch tok.Kind {
	case token.NUMBER:
		p.pos++
		return &tree.Node{Kind: tree.NUMBER, Value: tok.Text}, nil
	case token.ID:
		p.pos++
		return &tree.Node{Kind: tree.ID, Value: tok.Text, OriginalName: tok.Original}, nil
	case token.LPAREN:
		p.pos++
		node, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(token.RPAREN); err != nil {
			return nil, err
		}
		return node, nil
	}
	found := string(tok.Kind)
	if found == "" {
		found = "end of input"
	}
	return nil, fmt.Errorf("unexpected token %s", found)
}
