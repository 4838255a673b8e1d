package evaluator

import (
	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/errors"
	"github.com/exprlang/exprlang/internal/value"
)

// evalSubscript implements subscript/slice access: integer indices
// accept negatives (modular from the end); slices with
// omitted bounds default to start=0, end=length, step=1; step=0 is an
// error. A one-arg subscript targets a Vector/Range/String, or a
// Matrix's rows. A two-arg subscript targets a Matrix's [row, col].
func (c *Context) evalSubscript(n *ast.SubscriptExpr, scope *Scope) (value.Value, error) {
	target, err := c.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}

	switch t := target.(type) {
	case value.Matrix:
		return c.evalMatrixSubscript(t, n, scope)
	case value.Range:
		return c.evalSequenceSubscript(t.Materialize(), n, scope)
	case value.Vector:
		return c.evalSequenceSubscript(t, n, scope)
	case value.String:
		return c.evalStringSubscript(t, n, scope)
	default:
		return nil, errors.New(errors.KindType, n.Position, "%s is not subscriptable", target.Kind())
	}
}

func (c *Context) evalSequenceSubscript(v value.Vector, n *ast.SubscriptExpr, scope *Scope) (value.Value, error) {
	if len(n.Args) != 1 {
		return nil, errors.New(errors.KindType, n.Position, "vector subscript takes exactly one index or slice")
	}
	arg := n.Args[0]
	if !arg.IsSlice {
		idx, err := c.evalIndex(arg.Index, scope)
		if err != nil {
			return nil, err
		}
		e, ok := v.At(idx)
		if !ok {
			return nil, errors.New(errors.KindDomain, n.Position, "index %d out of range (length %d)", idx, v.Len())
		}
		return e, nil
	}
	sl, err := c.evalSlice(arg, v.Len(), scope, n.Position)
	if err != nil {
		return nil, err
	}
	return value.Vector{Elements: sliceElements(v.Elements, sl)}, nil
}

func (c *Context) evalStringSubscript(s value.String, n *ast.SubscriptExpr, scope *Scope) (value.Value, error) {
	if len(n.Args) != 1 {
		return nil, errors.New(errors.KindType, n.Position, "string subscript takes exactly one index or slice")
	}
	runes := []rune(s.Raw())
	arg := n.Args[0]
	if !arg.IsSlice {
		idx, err := c.evalIndex(arg.Index, scope)
		if err != nil {
			return nil, err
		}
		i, ok := resolveIndex(idx, len(runes))
		if !ok {
			return nil, errors.New(errors.KindDomain, n.Position, "index %d out of range (length %d)", idx, len(runes))
		}
		return value.String(string(runes[i])), nil
	}
	sl, err := c.evalSlice(arg, len(runes), scope, n.Position)
	if err != nil {
		return nil, err
	}
	var out []rune
	for i := sl.start; sl.inBounds(i); i += sl.step {
		out = append(out, runes[i])
	}
	return value.String(string(out)), nil
}

func (c *Context) evalMatrixSubscript(m value.Matrix, n *ast.SubscriptExpr, scope *Scope) (value.Value, error) {
	switch len(n.Args) {
	case 1:
		arg := n.Args[0]
		if !arg.IsSlice {
			idx, err := c.evalIndex(arg.Index, scope)
			if err != nil {
				return nil, err
			}
			row, ok := m.Row(idx)
			if !ok {
				return nil, errors.New(errors.KindDomain, n.Position, "row index %d out of range (%d rows)", idx, m.NumRows())
			}
			return row, nil
		}
		sl, err := c.evalSlice(arg, m.NumRows(), scope, n.Position)
		if err != nil {
			return nil, err
		}
		var rows [][]value.Value
		for i := sl.start; sl.inBounds(i); i += sl.step {
			rows = append(rows, append([]value.Value(nil), m.Rows[i]...))
		}
		return value.Matrix{Rows: rows}, nil
	case 2:
		return c.evalMatrixRowCol(m, n.Args[0], n.Args[1], scope, n.Position)
	default:
		return nil, errors.New(errors.KindType, n.Position, "matrix subscript takes one or two index/slice arguments")
	}
}

func (c *Context) evalMatrixRowCol(m value.Matrix, rowArg, colArg ast.SliceArg, scope *Scope, pos errors.Position) (value.Value, error) {
	switch {
	case !rowArg.IsSlice && !colArg.IsSlice:
		i, err := c.evalIndex(rowArg.Index, scope)
		if err != nil {
			return nil, err
		}
		j, err := c.evalIndex(colArg.Index, scope)
		if err != nil {
			return nil, err
		}
		ri, ok := resolveIndex(i, m.NumRows())
		if !ok {
			return nil, errors.New(errors.KindDomain, pos, "row index %d out of range (%d rows)", i, m.NumRows())
		}
		cj, ok := resolveIndex(j, m.NumCols())
		if !ok {
			return nil, errors.New(errors.KindDomain, pos, "column index %d out of range (%d cols)", j, m.NumCols())
		}
		return m.Rows[ri][cj], nil

	case rowArg.IsSlice && !colArg.IsSlice:
		j, err := c.evalIndex(colArg.Index, scope)
		if err != nil {
			return nil, err
		}
		cj, ok := resolveIndex(j, m.NumCols())
		if !ok {
			return nil, errors.New(errors.KindDomain, pos, "column index %d out of range (%d cols)", j, m.NumCols())
		}
		sl, err := c.evalSlice(rowArg, m.NumRows(), scope, pos)
		if err != nil {
			return nil, err
		}
		var out []value.Value
		for i := sl.start; sl.inBounds(i); i += sl.step {
			out = append(out, m.Rows[i][cj])
		}
		return value.Vector{Elements: out}, nil

	case !rowArg.IsSlice && colArg.IsSlice:
		i, err := c.evalIndex(rowArg.Index, scope)
		if err != nil {
			return nil, err
		}
		ri, ok := resolveIndex(i, m.NumRows())
		if !ok {
			return nil, errors.New(errors.KindDomain, pos, "row index %d out of range (%d rows)", i, m.NumRows())
		}
		sl, err := c.evalSlice(colArg, m.NumCols(), scope, pos)
		if err != nil {
			return nil, err
		}
		return value.Vector{Elements: sliceElements(m.Rows[ri], sl)}, nil

	default:
		rowSl, err := c.evalSlice(rowArg, m.NumRows(), scope, pos)
		if err != nil {
			return nil, err
		}
		colSl, err := c.evalSlice(colArg, m.NumCols(), scope, pos)
		if err != nil {
			return nil, err
		}
		var rows [][]value.Value
		for i := rowSl.start; rowSl.inBounds(i); i += rowSl.step {
			rows = append(rows, sliceElements(m.Rows[i], colSl))
		}
		return value.Matrix{Rows: rows}, nil
	}
}

func (c *Context) evalIndex(node ast.Node, scope *Scope) (int, error) {
	v, err := c.Eval(node, scope)
	if err != nil {
		return 0, err
	}
	i, ok := toInt(v)
	if !ok {
		return 0, errors.New(errors.KindType, node.Pos(), "index must be an integer, got %s", v.Kind())
	}
	return i, nil
}

// resolvedSlice is an already-bounds-resolved start/step with a
// direction-aware inBounds check, used to drive a simple stepped loop
// over the underlying container.
type resolvedSlice struct {
	start, end, step int
}

func (s resolvedSlice) inBounds(i int) bool {
	if s.step > 0 {
		return i < s.end
	}
	return i > s.end
}

func (c *Context) evalSlice(arg ast.SliceArg, length int, scope *Scope, pos errors.Position) (resolvedSlice, error) {
	step := 1
	if arg.Step != nil {
		v, err := c.evalIndex(arg.Step, scope)
		if err != nil {
			return resolvedSlice{}, err
		}
		step = v
	}
	if step == 0 {
		return resolvedSlice{}, errors.New(errors.KindDomain, pos, "slice step must be non-zero")
	}

	start := 0
	if step < 0 {
		start = length - 1
	}
	if arg.Start != nil {
		v, err := c.evalIndex(arg.Start, scope)
		if err != nil {
			return resolvedSlice{}, err
		}
		start = wrapLoose(v, length)
	}

	end := length
	if step < 0 {
		end = -1
	}
	if arg.End != nil {
		v, err := c.evalIndex(arg.End, scope)
		if err != nil {
			return resolvedSlice{}, err
		}
		end = wrapLoose(v, length)
	}

	return resolvedSlice{start: start, end: end, step: step}, nil
}

// resolveIndex wraps a negative index modularly from the end; ok is
// false when the resolved index still falls out of [0, length).
func resolveIndex(i, length int) (int, bool) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

// wrapLoose wraps a negative slice bound modularly but, unlike
// resolveIndex, clamps rather than rejects out-of-range values, since
// Python-style slicing treats out-of-range bounds as saturating.
func wrapLoose(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func sliceElements(elements []value.Value, sl resolvedSlice) []value.Value {
	var out []value.Value
	for i := sl.start; sl.inBounds(i); i += sl.step {
		if i < 0 || i >= len(elements) {
			break
		}
		out = append(out, elements[i])
	}
	return out
}

func toInt(v value.Value) (int, bool) {
	f, ok := toNumericFloat(v)
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int(f), true
}
