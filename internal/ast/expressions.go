package ast

import (
	"strings"

	"github.com/exprlang/exprlang/internal/errors"
)

// VectorLiteral is a `{a, b, c}` collection literal.
type VectorLiteral struct {
	Position errors.Position
	Elements []Node
}

func (v *VectorLiteral) Pos() errors.Position { return v.Position }
func (v *VectorLiteral) String() string {
	return "{" + joinNodes(v.Elements, ", ") + "}"
}

// MatrixLiteral is a `[[1,2],[3,4]]` or `[1,2;3,4]` literal, always
// flattened into rows by the parser.
type MatrixLiteral struct {
	Position errors.Position
	Rows     [][]Node
}

func (m *MatrixLiteral) Pos() errors.Position { return m.Position }
func (m *MatrixLiteral) String() string {
	rows := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		rows[i] = "[" + joinNodes(row, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// RangeExpr is `start..end` with an optional `step`.
type RangeExpr struct {
	Position   errors.Position
	Start, End Node
	Step       Node // nil if omitted
}

func (r *RangeExpr) Pos() errors.Position { return r.Position }
func (r *RangeExpr) String() string {
	if r.Step != nil {
		return r.Start.String() + ".." + r.End.String() + " step " + r.Step.String()
	}
	return r.Start.String() + ".." + r.End.String()
}

// UnaryExpr is a prefix (`-x`, `not x`) or postfix (`x!`, `x!!`, `x%`)
// operator application.
type UnaryExpr struct {
	Position errors.Position
	Operator string
	Operand  Node
	Postfix  bool
}

func (u *UnaryExpr) Pos() errors.Position { return u.Position }
func (u *UnaryExpr) String() string {
	if u.Postfix {
		return "(" + u.Operand.String() + u.Operator + ")"
	}
	sep := ""
	if isWordOperator(u.Operator) {
		sep = " "
	}
	return "(" + u.Operator + sep + u.Operand.String() + ")"
}

// BinaryExpr is any two-operand infix operator application, including
// the keyword-operators (and, or, xor, mod, of).
type BinaryExpr struct {
	Position    errors.Position
	Operator    string
	Left, Right Node
}

func (b *BinaryExpr) Pos() errors.Position { return b.Position }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// CallExpr applies a callee (identifier, lambda literal, or any
// expression yielding a Function/Lambda) to an ordered argument list.
type CallExpr struct {
	Position errors.Position
	Callee   Node
	Args     []Node
}

func (c *CallExpr) Pos() errors.Position { return c.Position }
func (c *CallExpr) String() string {
	return c.Callee.String() + "(" + joinNodes(c.Args, ", ") + ")"
}

// SliceArg is one comma-separated subscript argument: either a single
// index expression, or a `start?:end?:step?` slice.
type SliceArg struct {
	IsSlice            bool
	Index              Node // set when !IsSlice
	Start, End, Step   Node // any may be nil when IsSlice
}

func (s SliceArg) String() string {
	if !s.IsSlice {
		return s.Index.String()
	}
	parts := []string{"", "", ""}
	if s.Start != nil {
		parts[0] = s.Start.String()
	}
	if s.End != nil {
		parts[1] = s.End.String()
	}
	if s.Step != nil {
		parts[2] = s.Step.String()
	}
	if s.Step != nil {
		return parts[0] + ":" + parts[1] + ":" + parts[2]
	}
	return parts[0] + ":" + parts[1]
}

// SubscriptExpr is `target[args...]`.
type SubscriptExpr struct {
	Position errors.Position
	Target   Node
	Args     []SliceArg
}

func (s *SubscriptExpr) Pos() errors.Position { return s.Position }
func (s *SubscriptExpr) String() string {
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = a.String()
	}
	return s.Target.String() + "[" + strings.Join(parts, ", ") + "]"
}

// Assignment is `name := value`, itself an expression whose result is
// the assigned value.
type Assignment struct {
	Position errors.Position
	Name     string
	Value    Node
}

func (a *Assignment) Pos() errors.Position { return a.Position }
func (a *Assignment) String() string {
	return a.Name + " := " + a.Value.String()
}

// UnitConversion is `expr (in|to|as) unit`.
type UnitConversion struct {
	Position   errors.Position
	Expr       Node
	TargetUnit string
}

func (u *UnitConversion) Pos() errors.Position { return u.Position }
func (u *UnitConversion) String() string {
	return u.Expr.String() + " in " + u.TargetUnit
}

// Sequence is an ordered list of statements; its value is the last.
type Sequence struct {
	Position   errors.Position
	Statements []Node
}

func (s *Sequence) Pos() errors.Position { return s.Position }
func (s *Sequence) String() string       { return stmtListString(s.Statements) }

func joinNodes(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

func isWordOperator(op string) bool {
	switch op {
	case "not", "and", "or", "xor", "mod", "of":
		return true
	default:
		return false
	}
}
