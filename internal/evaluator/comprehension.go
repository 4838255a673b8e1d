package evaluator

import (
	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/errors"
	"github.com/exprlang/exprlang/internal/value"
)

// evalComprehension iterates the outer iterable, binding its variable
// in a fresh inner scope; it nests for each
// additional iterator (so a later iterator's Iterable expression may
// reference an earlier one's bound variable); at the innermost
// combination, apply the optional predicate and collect the body
// expression into a flat vector.
func (c *Context) evalComprehension(n *ast.ComprehensionExpr, scope *Scope) (value.Value, error) {
	var out []value.Value

	var walk func(depth int, sc *Scope) error
	walk = func(depth int, sc *Scope) error {
		if depth == len(n.Iterators) {
			if n.Predicate != nil {
				pv, err := c.Eval(n.Predicate, sc)
				if err != nil {
					return err
				}
				keep, ok := value.Truthy(pv)
				if !ok {
					return errors.New(errors.KindType, n.Predicate.Pos(), "comprehension predicate must be boolean, got %s", pv.Kind())
				}
				if !keep {
					return nil
				}
			}
			v, err := c.Eval(n.Expr, sc)
			if err != nil {
				return err
			}
			out = append(out, v)
			return nil
		}

		it := n.Iterators[depth]
		iterVal, err := c.Eval(it.Iterable, sc)
		if err != nil {
			return err
		}
		elems, err := iterableElements(iterVal, it.Iterable.Pos())
		if err != nil {
			return err
		}
		for _, e := range elems {
			child := NewScope(sc)
			child.Set(it.VarName, e)
			if err := walk(depth+1, child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(0, scope); err != nil {
		return nil, err
	}
	return value.Vector{Elements: out}, nil
}

// iterableElements flattens any of the container kinds a comprehension
// or higher-order built-in may iterate over.
func iterableElements(v value.Value, pos errors.Position) ([]value.Value, error) {
	switch t := v.(type) {
	case value.Vector:
		return t.Elements, nil
	case value.Range:
		return t.Materialize().Elements, nil
	case value.Matrix:
		var out []value.Value
		for _, row := range t.Rows {
			out = append(out, row...)
		}
		return out, nil
	default:
		return nil, errors.New(errors.KindType, pos, "%s is not iterable", v.Kind())
	}
}
