// Package ast defines the closed set of abstract syntax tree nodes the
// parser produces and the evaluator consumes. Nodes are a tagged
// variant: the evaluator type-switches exhaustively over this set
// rather than relying on virtual dispatch.
package ast

import "github.com/exprlang/exprlang/internal/errors"

// Node is implemented by every AST node.
type Node interface {
	Pos() errors.Position
	String() string
}

// Program is the root node: an ordered list of top-level statements,
// the last of which supplies the overall result.
type Program struct {
	Position   errors.Position
	Statements []Node
}

func (p *Program) Pos() errors.Position { return p.Position }
func (p *Program) String() string       { return stmtListString(p.Statements) }

// NumberKind distinguishes the lexical form a numeric literal arrived
// in, which determines how the evaluator builds a value.Value from it.
type NumberKind int

const (
	NumberInteger NumberKind = iota
	NumberDecimal
	NumberScientific
	NumberRational
)

// NumberLiteral carries the literal text rather than a parsed value:
// the ast package does not depend on the value package (value depends
// on ast, for Lambda/Function bodies), so numeric conversion happens in
// the evaluator.
type NumberLiteral struct {
	Position    errors.Position
	Text        string
	NumKind     NumberKind
	ForceDouble bool // trailing d/D suffix
}

func (n *NumberLiteral) Pos() errors.Position { return n.Position }
func (n *NumberLiteral) String() string       { return n.Text }

// StringLiteral holds the already-unescaped string content.
type StringLiteral struct {
	Position errors.Position
	Value    string
}

func (s *StringLiteral) Pos() errors.Position { return s.Position }
func (s *StringLiteral) String() string       { return quoteString(s.Value) }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Position errors.Position
	Value    bool
}

func (b *BooleanLiteral) Pos() errors.Position { return b.Position }
func (b *BooleanLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Identifier is a bare name resolved through the normal scope-chain
// priority order.
type Identifier struct {
	Position errors.Position
	Name     string
}

func (i *Identifier) Pos() errors.Position { return i.Position }
func (i *Identifier) String() string       { return i.Name }

// RefNamespace is the namespace an ExplicitRef forces resolution
// against, bypassing the normal priority order and any shadowing.
type RefNamespace int

const (
	RefUnit RefNamespace = iota
	RefVar
	RefConst
)

// ExplicitRef is a sigil-prefixed name: @unit, $var, #const.
type ExplicitRef struct {
	Position  errors.Position
	Namespace RefNamespace
	Name      string
}

func (e *ExplicitRef) Pos() errors.Position { return e.Position }
func (e *ExplicitRef) String() string {
	switch e.Namespace {
	case RefUnit:
		return "@" + e.Name
	case RefVar:
		return "$" + e.Name
	default:
		return "#" + e.Name
	}
}

func stmtListString(stmts []Node) string {
	s := ""
	for i, stmt := range stmts {
		if i > 0 {
			s += "; "
		}
		s += stmt.String()
	}
	return s
}

func quoteString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for _, r := range s {
		switch r {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\t':
			out = append(out, '\\', 't')
		case '\r':
			out = append(out, '\\', 'r')
		default:
			out = append(out, string(r)...)
		}
	}
	out = append(out, '"')
	return string(out)
}
