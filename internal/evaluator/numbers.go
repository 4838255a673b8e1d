package evaluator

import (
	"strconv"

	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/errors"
	"github.com/exprlang/exprlang/internal/value"
)

// evalNumber converts a NumberLiteral's literal text into a Value:
// integers, fractional literals ("3/4"), and decimals all parse exactly via
// math/big.Rat, unless forceDouble applies (the context's global
// setting, or the literal's own trailing d/D suffix), in which case
// the literal degrades straight to Double.
func (c *Context) evalNumber(n *ast.NumberLiteral) (value.Value, error) {
	if n.NumKind == ast.NumberScientific {
		f, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			return nil, errors.New(errors.KindType, n.Position, "invalid numeric literal %q", n.Text)
		}
		return value.Double(f), nil
	}

	r, ok := value.NewRationalFromString(n.Text)
	if !ok {
		return nil, errors.New(errors.KindType, n.Position, "invalid numeric literal %q", n.Text)
	}
	if c.cfg.forceDoubleArithmetic || n.ForceDouble {
		return value.Double(r.Float64()), nil
	}
	return r, nil
}

// toNumericFloat extracts a float64 from a Rational or Double, used by
// evaluator-level operators (postfix %, "of", range bounds) that are
// not part of the centralized value arithmetic dispatch.
func toNumericFloat(v value.Value) (float64, bool) {
	switch t := v.(type) {
	case value.Rational:
		return t.Float64(), true
	case value.Double:
		return float64(t), true
	default:
		return 0, false
	}
}
