package ast

import (
	"strings"

	"github.com/exprlang/exprlang/internal/errors"
)

// FunctionDef is `name(params) := body`. It both creates a Function
// value and binds it under name.
type FunctionDef struct {
	Position errors.Position
	Name     string
	Params   []string
	Body     Node
}

func (f *FunctionDef) Pos() errors.Position { return f.Position }
func (f *FunctionDef) String() string {
	return f.Name + "(" + strings.Join(f.Params, ", ") + ") := " + f.Body.String()
}

// LambdaLiteral is `(params) -> body` (or `param -> body` for a single
// parameter written without parentheses).
type LambdaLiteral struct {
	Position errors.Position
	Params   []string
	Body     Node
}

func (l *LambdaLiteral) Pos() errors.Position { return l.Position }
func (l *LambdaLiteral) String() string {
	return "(" + strings.Join(l.Params, ", ") + ") -> " + l.Body.String()
}

// ComprehensionIterator binds VarName to each element of Iterable in
// turn, outermost iterator first.
type ComprehensionIterator struct {
	VarName  string
	Iterable Node
}

// ComprehensionExpr is `{ expr for v1 in it1 for v2 in it2 if cond }`.
type ComprehensionExpr struct {
	Position  errors.Position
	Expr      Node
	Iterators []ComprehensionIterator
	Predicate Node // nil if absent
}

func (c *ComprehensionExpr) Pos() errors.Position { return c.Position }
func (c *ComprehensionExpr) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	sb.WriteString(c.Expr.String())
	for _, it := range c.Iterators {
		sb.WriteString(" for ")
		sb.WriteString(it.VarName)
		sb.WriteString(" in ")
		sb.WriteString(it.Iterable.String())
	}
	if c.Predicate != nil {
		sb.WriteString(" if ")
		sb.WriteString(c.Predicate.String())
	}
	sb.WriteString("}")
	return sb.String()
}
