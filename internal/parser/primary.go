package parser

import (
	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/lexer"
)

func (p *Parser) parsePrimary() ast.Node {
	tok := p.peek()
	switch tok.Type {
	case lexer.INTEGER:
		p.advance()
		return &ast.NumberLiteral{Position: tok.Pos, Text: tok.Literal, NumKind: ast.NumberInteger, ForceDouble: tok.ForceDouble}
	case lexer.DECIMAL:
		p.advance()
		return &ast.NumberLiteral{Position: tok.Pos, Text: tok.Literal, NumKind: ast.NumberDecimal, ForceDouble: tok.ForceDouble}
	case lexer.SCIENTIFIC:
		p.advance()
		return &ast.NumberLiteral{Position: tok.Pos, Text: tok.Literal, NumKind: ast.NumberScientific, ForceDouble: tok.ForceDouble}
	case lexer.RATIONAL:
		p.advance()
		return &ast.NumberLiteral{Position: tok.Pos, Text: tok.Literal, NumKind: ast.NumberRational, ForceDouble: tok.ForceDouble}
	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Position: tok.Pos, Value: tok.Literal}
	case lexer.KEYWORD:
		switch tok.Literal {
		case "true":
			p.advance()
			return &ast.BooleanLiteral{Position: tok.Pos, Value: true}
		case "false":
			p.advance()
			return &ast.BooleanLiteral{Position: tok.Pos, Value: false}
		case "if":
			// `if` classifies as a reserved keyword, but is built into an
			// ordinary Identifier so the following `(args)` in
			// parseCallAndSubscript turns it into a CallExpr dispatched to
			// the lazy built-in.
			p.advance()
			return &ast.Identifier{Position: tok.Pos, Name: tok.Literal}
		}
		p.errorAt(tok, "unexpected keyword '%s'", tok.Literal)
		p.advance()
		return &ast.Identifier{Position: tok.Pos, Name: tok.Literal}
	case lexer.IDENTIFIER, lexer.FUNCTION:
		p.advance()
		return &ast.Identifier{Position: tok.Pos, Name: tok.Literal}
	case lexer.UNIT_REF:
		p.advance()
		return &ast.ExplicitRef{Position: tok.Pos, Namespace: ast.RefUnit, Name: tok.Literal}
	case lexer.VAR_REF:
		p.advance()
		return &ast.ExplicitRef{Position: tok.Pos, Namespace: ast.RefVar, Name: tok.Literal}
	case lexer.CONST_REF:
		p.advance()
		return &ast.ExplicitRef{Position: tok.Pos, Namespace: ast.RefConst, Name: tok.Literal}
	case lexer.LPAREN:
		return p.parseParenOrSequence()
	case lexer.LBRACE:
		return p.parseBraceLiteral()
	case lexer.LBRACKET:
		return p.parseMatrixLiteral()
	case lexer.MINUS, lexer.NOT_OP:
		// reached only if something upstream skipped parseUnary (should
		// not normally happen); treat as unary to stay recoverable.
		return p.parseUnary()
	}

	p.errorAt(tok, "unexpected token %s", tok.Type)
	if !p.atEnd() {
		p.advance()
	}
	return &ast.Identifier{Position: tok.Pos, Name: tok.Literal}
}

// parseParenOrSequence handles `( expr )` and `( stmt ; stmt ; ... )`,
// the fallback once a parenthesized group turns out not to be a lambda
// parameter list. By the time control reaches here, parseLambda has
// already tried and backed off the parameter-list-then-arrow form.
func (p *Parser) parseParenOrSequence() ast.Node {
	open := p.advance() // (
	if !p.enterDepth(open) {
		p.exitDepth()
		p.skipToMatchingParen()
		return &ast.Identifier{Position: open.Pos, Name: ""}
	}
	defer p.exitDepth()

	first := p.parseExpression()
	if !p.check(lexer.SEMICOLON) {
		p.expect(lexer.RPAREN, "to close parenthesized expression")
		return first
	}

	stmts := []ast.Node{first}
	for p.match(lexer.SEMICOLON) {
		if p.check(lexer.RPAREN) {
			break
		}
		stmts = append(stmts, p.parseExpression())
	}
	p.expect(lexer.RPAREN, "to close statement sequence")
	return &ast.Sequence{Position: open.Pos, Statements: stmts}
}

func (p *Parser) skipToMatchingParen() {
	depth := 1
	for !p.atEnd() && depth > 0 {
		switch p.advance().Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
		}
	}
}

// parseBraceLiteral handles `{ a, b, c }` (vector literal) and
// `{ expr for v in it ... if cond }` (comprehension), distinguished by
// whether a top-level `for` keyword appears before the first comma or
// the closing brace.
func (p *Parser) parseBraceLiteral() ast.Node {
	open := p.advance() // {
	if !p.enterDepth(open) {
		p.exitDepth()
		return &ast.VectorLiteral{Position: open.Pos}
	}
	defer p.exitDepth()

	if p.check(lexer.RBRACE) {
		p.advance()
		return &ast.VectorLiteral{Position: open.Pos}
	}

	first := p.parseExpression()

	if p.check(lexer.KEYWORD) && p.peek().Literal == "for" {
		return p.parseComprehensionTail(open, first)
	}

	elems := []ast.Node{first}
	for p.match(lexer.COMMA) {
		elems = append(elems, p.parseExpression())
	}
	p.expect(lexer.RBRACE, "to close vector literal")
	return &ast.VectorLiteral{Position: open.Pos, Elements: elems}
}

func (p *Parser) parseComprehensionTail(open lexer.Token, expr ast.Node) ast.Node {
	var iterators []ast.ComprehensionIterator
	for p.check(lexer.KEYWORD) && p.peek().Literal == "for" {
		p.advance()
		nameTok, ok := p.expect(lexer.IDENTIFIER, "comprehension variable")
		if !ok {
			break
		}
		if p.check(lexer.KEYWORD) && p.peek().Literal == "in" {
			p.advance()
		} else {
			p.errorAt(p.peek(), "expected 'in' in comprehension iterator")
		}
		iterable := p.parseExpression()
		iterators = append(iterators, ast.ComprehensionIterator{VarName: nameTok.Literal, Iterable: iterable})
	}

	var predicate ast.Node
	if p.check(lexer.KEYWORD) && p.peek().Literal == "if" {
		p.advance()
		predicate = p.parseExpression()
	}

	p.expect(lexer.RBRACE, "to close comprehension")
	return &ast.ComprehensionExpr{Position: open.Pos, Expr: expr, Iterators: iterators, Predicate: predicate}
}
