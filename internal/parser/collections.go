package parser

import (
	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/lexer"
)

// parseSubscript handles `target[args]`, where each comma-separated arg
// is either a single index expression or a `start?:end?:step?` slice.
func (p *Parser) parseSubscript(target ast.Node) ast.Node {
	open := p.advance() // [
	if !p.enterDepth(open) {
		p.exitDepth()
		p.skipToMatchingBracket()
		return target
	}
	defer p.exitDepth()

	var args []ast.SliceArg
	if !p.check(lexer.RBRACKET) {
		for {
			args = append(args, p.parseSliceArg())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RBRACKET, "to close subscript")
	return &ast.SubscriptExpr{Position: open.Pos, Target: target, Args: args}
}

func (p *Parser) skipToMatchingBracket() {
	depth := 1
	for !p.atEnd() && depth > 0 {
		switch p.advance().Type {
		case lexer.LBRACKET:
			depth++
		case lexer.RBRACKET:
			depth--
		}
	}
}

// parseSliceArg parses one subscript argument. A bare `:` (or any form
// containing `:`) is a slice; otherwise it is a single index.
func (p *Parser) parseSliceArg() ast.SliceArg {
	if p.check(lexer.COLON) {
		return p.parseSliceTail(nil)
	}

	first := p.parseExpression()
	if p.check(lexer.COLON) {
		return p.parseSliceTail(first)
	}
	return ast.SliceArg{IsSlice: false, Index: first}
}

// parseSliceTail parses the `:end?:step?` portion of a slice once the
// optional start (already consumed, possibly nil) is known.
func (p *Parser) parseSliceTail(start ast.Node) ast.SliceArg {
	p.advance() // :
	var end, step ast.Node
	if !p.check(lexer.COLON) && !p.check(lexer.RBRACKET) && !p.check(lexer.COMMA) {
		end = p.parseExpression()
	}
	if p.check(lexer.COLON) {
		p.advance()
		if !p.check(lexer.RBRACKET) && !p.check(lexer.COMMA) {
			step = p.parseExpression()
		}
	}
	return ast.SliceArg{IsSlice: true, Start: start, End: end, Step: step}
}

// parseMatrixLiteral handles `[1,2;3,4]` (semicolon-separated rows) and
// the nested-vector form `[[1,2],[3,4]]`, flattening either into a
// rectangular ast.MatrixLiteral. A bare `[1,2,3]` with no `;` and no
// nested brackets is a single-row matrix.
func (p *Parser) parseMatrixLiteral() ast.Node {
	open := p.advance() // [
	if !p.enterDepth(open) {
		p.exitDepth()
		p.skipToMatchingBracket()
		return &ast.MatrixLiteral{Position: open.Pos}
	}
	defer p.exitDepth()

	if p.check(lexer.RBRACKET) {
		p.advance()
		return &ast.MatrixLiteral{Position: open.Pos}
	}

	if p.check(lexer.LBRACKET) {
		rows := p.parseNestedMatrixRows()
		p.expect(lexer.RBRACKET, "to close matrix literal")
		if err := validateRectangular(rows); err != "" {
			p.errorAt(open, "%s", err)
		}
		return &ast.MatrixLiteral{Position: open.Pos, Rows: rows}
	}

	rows := [][]ast.Node{p.parseMatrixRow()}
	for p.match(lexer.SEMICOLON) {
		rows = append(rows, p.parseMatrixRow())
	}
	p.expect(lexer.RBRACKET, "to close matrix literal")
	if err := validateRectangular(rows); err != "" {
		p.errorAt(open, "%s", err)
	}
	return &ast.MatrixLiteral{Position: open.Pos, Rows: rows}
}

func (p *Parser) parseMatrixRow() []ast.Node {
	var row []ast.Node
	row = append(row, p.parseExpression())
	for p.check(lexer.COMMA) {
		p.advance()
		row = append(row, p.parseExpression())
	}
	return row
}

func (p *Parser) parseNestedMatrixRows() [][]ast.Node {
	var rows [][]ast.Node
	for {
		p.expect(lexer.LBRACKET, "to open matrix row")
		rows = append(rows, p.parseMatrixRow())
		p.expect(lexer.RBRACKET, "to close matrix row")
		if !p.match(lexer.COMMA) {
			break
		}
	}
	return rows
}

func validateRectangular(rows [][]ast.Node) string {
	if len(rows) == 0 {
		return ""
	}
	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) != width {
			return "matrix rows must all have the same length"
		}
	}
	return ""
}
