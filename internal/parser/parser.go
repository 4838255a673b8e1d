// Package parser turns the lexer's token stream into an AST via a
// hand-written recursive-descent precedence chain.
package parser

import (
	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/errors"
	"github.com/exprlang/exprlang/internal/lexer"
)

// Parser holds a token cursor with peek/advance/match/check/expect and
// savepoint/restore for bounded lookahead.
type Parser struct {
	tokens []lexer.Token
	pos    int
	depth  int
	cfg    config
	errs   []*errors.EngineError
}

// New builds a Parser over a finished token stream (EOF-terminated).
func New(tokens []lexer.Token, opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Parser{tokens: tokens, cfg: cfg}
}

// Parse consumes the whole token stream, producing a Program of
// semicolon-separated top-level statements (e.g.
// `fact(n) := ...; fact(5)`). Parsing continues past an error by
// synchronizing at the next `;`.
func (p *Parser) Parse() (*ast.Program, []*errors.EngineError) {
	start := p.peek().Pos
	prog := &ast.Program{Position: start}
	for !p.atEnd() {
		stmt := p.parseExpression()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.check(lexer.SEMICOLON) {
			p.advance()
			continue
		}
		if !p.atEnd() {
			if !p.check(lexer.EOF) {
				p.errorAt(p.peek(), "unexpected token %s, expected ';' or end of input", p.peek().Type)
				p.synchronize()
			}
		}
	}
	return prog, p.errs
}

// Errors returns accumulated parse errors.
func (p *Parser) Errors() []*errors.EngineError {
	return p.errs
}

func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.check(lexer.SEMICOLON) {
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[idx]
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of type t or records a ParseError describing
// what was expected.
func (p *Parser) expect(t lexer.TokenType, context string) (lexer.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.errorAt(p.peek(), "expected %s %s, got %s", t, context, p.peek().Type)
	return lexer.Token{}, false
}

// mark/reset implement the savepoint/restore the parser's lookahead
// (assignment detection, lambda detection) needs.
func (p *Parser) mark() int {
	return p.pos
}

func (p *Parser) reset(m int) {
	p.pos = m
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...any) {
	p.errs = append(p.errs, errors.New(errors.KindParse, tok.Pos, format, args...))
}

// enterDepth increments the nesting counter for `(`, `{`, `[` and
// reports a ParseError if it exceeds the configured ceiling, guarding
// against adversarial inputs overflowing the host stack. Callers must
// pair every enterDepth with exitDepth.
func (p *Parser) enterDepth(tok lexer.Token) bool {
	p.depth++
	if p.depth > p.cfg.maxExpressionDepth {
		p.errorAt(tok, "expression nesting exceeds maximum depth of %d", p.cfg.maxExpressionDepth)
		return false
	}
	return true
}

func (p *Parser) exitDepth() {
	p.depth--
}
