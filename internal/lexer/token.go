package lexer

import "github.com/exprlang/exprlang/internal/errors"

// Token is an immutable lexical unit. A "retyping" operation (used by
// Pass 2's classification) returns a new Token with the same
// text/position rather than mutating the original.
type Token struct {
	Type        TokenType
	Literal     string
	Pos         errors.Position
	Synthetic   bool // true for implicit-multiplication tokens Pass 2 inserts
	ForceDouble bool // trailing d/D suffix on a numeric literal
}

// NewToken builds a Token at a given position.
func NewToken(tokenType TokenType, literal string, pos errors.Position) Token {
	return Token{Type: tokenType, Literal: literal, Pos: pos}
}

// WithType returns a copy of t retyped to newType, preserving text and
// position ("a retyping operation returns a new token with
// the same text/position").
func (t Token) WithType(newType TokenType) Token {
	return Token{Type: newType, Literal: t.Literal, Pos: t.Pos, Synthetic: t.Synthetic}
}

func (t Token) String() string {
	return t.Type.String() + "(" + t.Literal + ")"
}
