package parser

import (
	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/lexer"
)

// parseExpression is the chain's entry point, low to high precedence:
// Expression → Assignment → Lambda → LogicalOr → LogicalXor →
// LogicalAnd → Equality → Range → Relational → Additive →
// UnitConversion → Multiplicative → Unary → Power → Postfix →
// CallAndSubscript → Primary.
func (p *Parser) parseExpression() ast.Node {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Node {
	if node, ok := p.tryParseFunctionDef(); ok {
		return node
	}
	if node, ok := p.tryParseVarAssignment(); ok {
		return node
	}
	return p.parseLambda()
}

// tryParseVarAssignment detects a name token immediately followed by
// `:=`.
func (p *Parser) tryParseVarAssignment() (ast.Node, bool) {
	tok := p.peek()
	if tok.Type != lexer.IDENTIFIER && tok.Type != lexer.FUNCTION && tok.Type != lexer.UNIT_REF {
		return nil, false
	}
	if p.peekN(1).Type != lexer.ASSIGN {
		return nil, false
	}
	p.advance() // name
	p.advance() // :=
	value := p.parseAssignment()
	return &ast.Assignment{Position: tok.Pos, Name: tok.Literal, Value: value}, true
}

// tryParseFunctionDef looks for `name(params) :=`, found by scanning
// ahead for the matching `)` and checking the token after it is `:=`.
func (p *Parser) tryParseFunctionDef() (ast.Node, bool) {
	tok := p.peek()
	if tok.Type != lexer.IDENTIFIER && tok.Type != lexer.FUNCTION {
		return nil, false
	}
	// Pass 2 puts a synthetic `*` between a name and a following `(`;
	// look past it.
	open := 1
	if p.peekN(1).Type == lexer.STAR && p.peekN(1).Synthetic {
		open = 2
	}
	if p.peekN(open).Type != lexer.LPAREN {
		return nil, false
	}

	depth := 0
	j := p.pos + open
	for ; j < len(p.tokens); j++ {
		switch p.tokens[j].Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				goto found
			}
		case lexer.EOF:
			return nil, false
		}
	}
	return nil, false

found:
	closeIdx := j
	if closeIdx+1 >= len(p.tokens) || p.tokens[closeIdx+1].Type != lexer.ASSIGN {
		return nil, false
	}

	p.advance() // name
	if open == 2 {
		p.advance() // synthetic *
	}
	p.advance() // (
	var params []string
	if !p.check(lexer.RPAREN) {
		for {
			nameTok, ok := p.expect(lexer.IDENTIFIER, "parameter name")
			if !ok {
				break
			}
			params = append(params, nameTok.Literal)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RPAREN, "to close parameter list")
	p.expect(lexer.ASSIGN, "after function parameter list")
	body := p.parseAssignment()
	return &ast.FunctionDef{Position: tok.Pos, Name: tok.Literal, Params: params, Body: body}, true
}

// parseLambda detects a bare `ident -> body`, or `(ident, ident, ...)
// -> body` found by attempting
// the parenthesized-identifier-list form and backing off if it doesn't
// match.
func (p *Parser) parseLambda() ast.Node {
	if p.check(lexer.IDENTIFIER) && p.peekN(1).Type == lexer.ARROW {
		pos := p.peek().Pos
		param := p.advance().Literal
		p.advance() // ->
		body := p.parseLambda()
		return &ast.LambdaLiteral{Position: pos, Params: []string{param}, Body: body}
	}
	if p.check(lexer.LPAREN) {
		if node, ok := p.tryParseParenLambda(); ok {
			return node
		}
	}
	return p.parseLogicalOr()
}

func (p *Parser) tryParseParenLambda() (ast.Node, bool) {
	m := p.mark()
	pos := p.peek().Pos
	p.advance() // (

	var params []string
	ok := true
	if !p.check(lexer.RPAREN) {
		for {
			if !p.check(lexer.IDENTIFIER) {
				ok = false
				break
			}
			params = append(params, p.peek().Literal)
			p.advance()
			if p.check(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}

	if ok && p.check(lexer.RPAREN) {
		p.advance()
		if p.check(lexer.ARROW) {
			p.advance()
			body := p.parseLambda()
			return &ast.LambdaLiteral{Position: pos, Params: params, Body: body}, true
		}
	}

	p.reset(m)
	return nil, false
}

func (p *Parser) parseLogicalOr() ast.Node {
	left := p.parseLogicalXor()
	for p.check(lexer.OR_OP) || p.check(lexer.PIPEPIPE) {
		tok := p.advance()
		right := p.parseLogicalXor()
		left = &ast.BinaryExpr{Position: tok.Pos, Operator: "or", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalXor() ast.Node {
	left := p.parseLogicalAnd()
	for p.check(lexer.XOR_OP) {
		tok := p.advance()
		right := p.parseLogicalAnd()
		left = &ast.BinaryExpr{Position: tok.Pos, Operator: "xor", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Node {
	left := p.parseEquality()
	for p.check(lexer.AND_OP) || p.check(lexer.AMPAMP) {
		tok := p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Position: tok.Pos, Operator: "and", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Node {
	left := p.parseRange()
	for p.check(lexer.EQEQ) || p.check(lexer.NOTEQ) {
		tok := p.advance()
		op := "=="
		if tok.Type == lexer.NOTEQ {
			op = "!="
		}
		right := p.parseRange()
		left = &ast.BinaryExpr{Position: tok.Pos, Operator: op, Left: left, Right: right}
	}
	return left
}

// parseRange handles `start..end` with an optional `step` clause. It
// does not left-chain: a range is a single ternary-shaped production.
func (p *Parser) parseRange() ast.Node {
	left := p.parseRelational()
	if !p.check(lexer.DOTDOT) {
		return left
	}
	pos := p.advance().Pos
	end := p.parseRelational()
	var step ast.Node
	if p.check(lexer.KEYWORD) && p.peek().Literal == "step" {
		p.advance()
		step = p.parseRelational()
	}
	return &ast.RangeExpr{Position: pos, Start: left, End: end, Step: step}
}

func (p *Parser) parseRelational() ast.Node {
	left := p.parseAdditive()
	for {
		var op string
		switch p.peek().Type {
		case lexer.LT:
			op = "<"
		case lexer.GT:
			op = ">"
		case lexer.LE:
			op = "<="
		case lexer.GE:
			op = ">="
		default:
			return left
		}
		tok := p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Position: tok.Pos, Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() ast.Node {
	left := p.parseUnitConversion()
	for {
		var op string
		switch p.peek().Type {
		case lexer.PLUS:
			op = "+"
		case lexer.MINUS:
			op = "-"
		default:
			return left
		}
		tok := p.advance()
		right := p.parseUnitConversion()
		left = &ast.BinaryExpr{Position: tok.Pos, Operator: op, Left: left, Right: right}
	}
}

// parseUnitConversion handles `expr (in|to|as) unit`: it sits between
// Additive and Multiplicative, so `100m in feet + 5` groups as
// `(100m in feet) + 5`.
func (p *Parser) parseUnitConversion() ast.Node {
	left := p.parseMultiplicative()
	for p.check(lexer.KEYWORD) && isUnitConversionKeyword(p.peek().Literal) {
		tok := p.advance()
		unitTok := p.peek()
		if unitTok.Type != lexer.IDENTIFIER && unitTok.Type != lexer.UNIT_REF {
			p.errorAt(unitTok, "expected a unit name after '%s', got %s", tok.Literal, unitTok.Type)
			break
		}
		p.advance()
		left = &ast.UnitConversion{Position: tok.Pos, Expr: left, TargetUnit: unitTok.Literal}
	}
	return left
}

func isUnitConversionKeyword(lit string) bool {
	return lit == "in" || lit == "to" || lit == "as"
}

func (p *Parser) parseMultiplicative() ast.Node {
	left := p.parseUnary()
	for {
		var op string
		switch p.peek().Type {
		case lexer.STAR:
			op = "*"
		case lexer.SLASH:
			op = "/"
		case lexer.MOD_OP:
			op = "mod"
		case lexer.OF_OP:
			op = "of"
		case lexer.AT:
			op = "@"
		default:
			return left
		}
		tok := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Position: tok.Pos, Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Node {
	var op string
	switch p.peek().Type {
	case lexer.MINUS:
		op = "-"
	case lexer.NOT_OP:
		op = "not"
	default:
		return p.parsePower()
	}
	tok := p.advance()
	operand := p.parseUnary()
	return &ast.UnaryExpr{Position: tok.Pos, Operator: op, Operand: operand, Postfix: false}
}

// parsePower is right-associative: `2^3^2 ≡ 2^(3^2)`. The right
// operand recurses through parseUnary so a
// signed exponent (`2^-1`) is legal, and through it back into
// parsePower for chaining.
func (p *Parser) parsePower() ast.Node {
	left := p.parsePostfix()
	if p.check(lexer.CARET) {
		tok := p.advance()
		right := p.parseUnary()
		return &ast.BinaryExpr{Position: tok.Pos, Operator: "^", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parsePostfix() ast.Node {
	left := p.parseCallAndSubscript()
	for {
		var op string
		switch p.peek().Type {
		case lexer.BANG:
			op = "!"
		case lexer.BANGBANG:
			op = "!!"
		case lexer.PERCENT_OP:
			op = "%"
		default:
			return left
		}
		tok := p.advance()
		left = &ast.UnaryExpr{Position: tok.Pos, Operator: op, Operand: left, Postfix: true}
	}
}

// parseCallAndSubscript handles `(args)` call chains and `[args]`
// subscript chains. When the left side is a name, a call result, or a
// lambda literal, it also absorbs a synthetic `*` immediately followed
// by `(` as a continuation of the call chain, since Pass 2 cannot tell
// a chained call `f(x)(y)` apart from implicit multiplication without
// the parser's help; after any other operand the `*` stays a multiply.
func (p *Parser) parseCallAndSubscript() ast.Node {
	left := p.parsePrimary()
	for {
		switch {
		case p.check(lexer.LPAREN):
			left = p.parseCallArgs(left)
		case p.check(lexer.LBRACKET):
			left = p.parseSubscript(left)
		case p.check(lexer.STAR) && p.peek().Synthetic && p.peekN(1).Type == lexer.LPAREN && isCallTarget(left):
			p.advance() // drop the synthetic multiply; loop sees LPAREN next
		default:
			return left
		}
	}
}

// isCallTarget reports whether node can be the callee of a call chain.
func isCallTarget(node ast.Node) bool {
	switch node.(type) {
	case *ast.Identifier, *ast.CallExpr, *ast.LambdaLiteral:
		return true
	}
	return false
}

func (p *Parser) parseCallArgs(callee ast.Node) ast.Node {
	pos := p.peek().Pos
	p.advance() // (
	if !p.enterDepth(p.peek()) {
		p.exitDepth()
		return callee
	}
	defer p.exitDepth()

	var args []ast.Node
	if !p.check(lexer.RPAREN) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RPAREN, "to close call arguments")
	return &ast.CallExpr{Position: pos, Callee: callee, Args: args}
}
