package evaluator

import (
	"math/big"

	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/errors"
	"github.com/exprlang/exprlang/internal/value"
)

// Eval dispatches on node's concrete type, handling every AST node
// kind exhaustively: a closed-set AST with no virtual dispatch and no
// reflective traversal.
func (c *Context) Eval(node ast.Node, scope *Scope) (value.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return c.evalNumber(n)
	case *ast.StringLiteral:
		return value.String(n.Value), nil
	case *ast.BooleanLiteral:
		return value.Bool(n.Value), nil
	case *ast.Identifier:
		return c.evalIdentifier(n, scope)
	case *ast.ExplicitRef:
		return c.evalExplicitRef(n, scope)
	case *ast.VectorLiteral:
		return c.evalVectorLiteral(n, scope)
	case *ast.MatrixLiteral:
		return c.evalMatrixLiteral(n, scope)
	case *ast.RangeExpr:
		return c.evalRange(n, scope)
	case *ast.UnaryExpr:
		return c.evalUnary(n, scope)
	case *ast.BinaryExpr:
		return c.evalBinary(n, scope)
	case *ast.CallExpr:
		return c.evalCall(n, scope)
	case *ast.SubscriptExpr:
		return c.evalSubscript(n, scope)
	case *ast.Assignment:
		return c.evalAssignment(n, scope)
	case *ast.UnitConversion:
		return c.evalUnitConversion(n, scope)
	case *ast.Sequence:
		return c.evalSequence(n, scope)
	case *ast.FunctionDef:
		return c.evalFunctionDef(n, scope)
	case *ast.LambdaLiteral:
		return value.Lambda{Params: n.Params, Body: n.Body, Closure: scope}, nil
	case *ast.ComprehensionExpr:
		return c.evalComprehension(n, scope)
	default:
		return nil, errors.New(errors.KindType, node.Pos(), "unhandled AST node %T", node)
	}
}

// evalIdentifier resolves a bare name by priority order: scope chain
// (innermost-first, which already covers local scope and function
// parameters up to globals), then constants, then a built-in function
// referenced by bare name (so it can be passed as a value to a
// higher-order built-in), then a unit name (one of that unit, so
// `100 meters` multiplies into a Unit), then UndefinedVariable.
func (c *Context) evalIdentifier(id *ast.Identifier, scope *Scope) (value.Value, error) {
	if v, ok := scope.Get(id.Name); ok {
		return v, nil
	}
	if v, ok := c.Constants.ValueOf(id.Name); ok {
		return v, nil
	}
	if c.Functions.IsFunction(id.Name) {
		return BuiltinFunction{Name: id.Name}, nil
	}
	if c.Units.IsUnit(id.Name) {
		return value.Unit{Magnitude: value.NewRationalInt64(1), UnitName: id.Name}, nil
	}
	return nil, errors.New(errors.KindUndefinedVariable, id.Position, "undefined variable %q", id.Name)
}

// evalExplicitRef resolves a sigil-prefixed name: it forces resolution
// against one namespace, bypassing priority order and shadowing.
func (c *Context) evalExplicitRef(ref *ast.ExplicitRef, scope *Scope) (value.Value, error) {
	switch ref.Namespace {
	case ast.RefVar:
		if v, ok := scope.Get(ref.Name); ok {
			return v, nil
		}
		return nil, errors.New(errors.KindUndefinedVariable, ref.Position, "undefined variable %q", ref.Name)
	case ast.RefConst:
		if v, ok := c.Constants.ValueOf(ref.Name); ok {
			return v, nil
		}
		return nil, errors.New(errors.KindUndefinedVariable, ref.Position, "undefined constant %q", ref.Name)
	case ast.RefUnit:
		if c.Units.IsUnit(ref.Name) {
			return value.Unit{Magnitude: value.NewRationalInt64(1), UnitName: ref.Name}, nil
		}
		return nil, errors.New(errors.KindUnknownUnit, ref.Position, "unknown unit %q", ref.Name)
	default:
		return nil, errors.New(errors.KindType, ref.Position, "unrecognized explicit reference namespace")
	}
}

func (c *Context) evalVectorLiteral(n *ast.VectorLiteral, scope *Scope) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := c.Eval(e, scope)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.Vector{Elements: elems}, nil
}

func (c *Context) evalMatrixLiteral(n *ast.MatrixLiteral, scope *Scope) (value.Value, error) {
	rows := make([][]value.Value, len(n.Rows))
	for i, row := range n.Rows {
		vrow := make([]value.Value, len(row))
		for j, e := range row {
			v, err := c.Eval(e, scope)
			if err != nil {
				return nil, err
			}
			vrow[j] = v
		}
		rows[i] = vrow
	}
	m, err := value.NewMatrix(rows)
	if err != nil {
		return nil, errors.New(errors.KindType, n.Position, "%s", err.Error())
	}
	return m, nil
}

// evalRange evaluates start/end/step eagerly, producing a lazy Range
// that only materializes on demand (iteration, subscript, sum/map/...
// via elementsOf).
func (c *Context) evalRange(n *ast.RangeExpr, scope *Scope) (value.Value, error) {
	start, err := c.evalRangeBound(n.Start, scope)
	if err != nil {
		return nil, err
	}
	end, err := c.evalRangeBound(n.End, scope)
	if err != nil {
		return nil, err
	}
	step := 1.0
	if n.Step != nil {
		step, err = c.evalRangeBound(n.Step, scope)
		if err != nil {
			return nil, err
		}
		if step == 0 {
			return nil, errors.New(errors.KindDomain, n.Position, "range step must be non-zero")
		}
	} else if end < start {
		step = -1
	}
	return value.NewRange(start, end, step), nil
}

func (c *Context) evalRangeBound(node ast.Node, scope *Scope) (float64, error) {
	v, err := c.Eval(node, scope)
	if err != nil {
		return 0, err
	}
	f, ok := toNumericFloat(v)
	if !ok {
		return 0, errors.New(errors.KindType, node.Pos(), "range bound must be numeric, got %s", v.Kind())
	}
	return f, nil
}

func (c *Context) evalAssignment(n *ast.Assignment, scope *Scope) (value.Value, error) {
	v, err := c.Eval(n.Value, scope)
	if err != nil {
		return nil, err
	}
	scope.Set(n.Name, v)
	return v, nil
}

// evalFunctionDef binds the new Function at globals scope regardless
// of where the definition textually occurs, so late-binding recursive
// calls and subsequent top-level statements can always find it.
func (c *Context) evalFunctionDef(n *ast.FunctionDef, scope *Scope) (value.Value, error) {
	fn := value.Function{Name: n.Name, Params: n.Params, Body: n.Body}
	c.globals.Set(n.Name, fn)
	if scope != c.globals {
		scope.Set(n.Name, fn)
	}
	return fn, nil
}

func (c *Context) evalSequence(n *ast.Sequence, scope *Scope) (value.Value, error) {
	inner := NewScope(scope)
	var result value.Value
	for _, stmt := range n.Statements {
		v, err := c.Eval(stmt, inner)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// evalUnitConversion requires the left side to evaluate to a Unit (a
// bare numeric is treated as already being in the target unit, since
// there is no implied source unit without an explicit tag — a
// judgment call recorded in DESIGN.md); the value converts to
// TargetUnit via the unit registry.
func (c *Context) evalUnitConversion(n *ast.UnitConversion, scope *Scope) (value.Value, error) {
	if !c.Units.IsUnit(n.TargetUnit) {
		return nil, errors.New(errors.KindUnknownUnit, n.Position, "unknown unit %q", n.TargetUnit)
	}
	v, err := c.Eval(n.Expr, scope)
	if err != nil {
		return nil, err
	}
	u, ok := v.(value.Unit)
	if !ok {
		if !value.IsNumeric(v) {
			return nil, errors.New(errors.KindType, n.Position, "cannot convert %s to %s", v.Kind(), n.TargetUnit)
		}
		u = value.Unit{Magnitude: v, UnitName: n.TargetUnit}
	}
	converted, err := c.Units.Convert(u.Magnitude, u.UnitName, n.TargetUnit)
	if err != nil {
		return nil, errors.New(errors.KindType, n.Position, "%s", err.Error())
	}
	return value.Unit{Magnitude: converted, UnitName: n.TargetUnit}, nil
}

func (c *Context) evalBinary(n *ast.BinaryExpr, scope *Scope) (value.Value, error) {
	switch n.Operator {
	case "and":
		l, err := c.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		lb, ok := value.Truthy(l)
		if !ok {
			return nil, errors.New(errors.KindType, n.Position, "'and' requires boolean operands, got %s", l.Kind())
		}
		if !lb {
			return value.Bool(false), nil
		}
		r, err := c.Eval(n.Right, scope)
		if err != nil {
			return nil, err
		}
		rb, ok := value.Truthy(r)
		if !ok {
			return nil, errors.New(errors.KindType, n.Position, "'and' requires boolean operands, got %s", r.Kind())
		}
		return value.Bool(rb), nil
	case "or":
		l, err := c.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		lb, ok := value.Truthy(l)
		if !ok {
			return nil, errors.New(errors.KindType, n.Position, "'or' requires boolean operands, got %s", l.Kind())
		}
		if lb {
			return value.Bool(true), nil
		}
		r, err := c.Eval(n.Right, scope)
		if err != nil {
			return nil, err
		}
		rb, ok := value.Truthy(r)
		if !ok {
			return nil, errors.New(errors.KindType, n.Position, "'or' requires boolean operands, got %s", r.Kind())
		}
		return value.Bool(rb), nil
	case "xor":
		l, r, err := c.evalBothOperands(n, scope)
		if err != nil {
			return nil, err
		}
		lb, lok := value.Truthy(l)
		rb, rok := value.Truthy(r)
		if !lok || !rok {
			return nil, errors.New(errors.KindType, n.Position, "'xor' requires boolean operands")
		}
		return value.Bool(lb != rb), nil
	case "of":
		l, r, err := c.evalBothOperands(n, scope)
		if err != nil {
			return nil, err
		}
		return evalPercentOf(l, r, n.Position)
	case "@":
		l, r, err := c.evalBothOperands(n, scope)
		if err != nil {
			return nil, err
		}
		lm, lok := l.(value.Matrix)
		rm, rok := r.(value.Matrix)
		if !lok || !rok {
			return nil, errors.New(errors.KindType, n.Position, "'@' requires two matrices, got %s and %s", l.Kind(), r.Kind())
		}
		result, err := value.MatMul(lm, rm, c.arithmeticOptions())
		return result, wrapValueErr(n.Position, err)
	case "^":
		l, r, err := c.evalBothOperands(n, scope)
		if err != nil {
			return nil, err
		}
		if lm, ok := l.(value.Matrix); ok {
			result, err := evalMatrixPower(lm, r, n.Position, c.arithmeticOptions())
			return result, wrapValueErr(n.Position, err)
		}
		result, err := value.BinaryOp(n.Operator, l, r, c.arithmeticOptions())
		return result, wrapValueErr(n.Position, err)
	default:
		l, r, err := c.evalBothOperands(n, scope)
		if err != nil {
			return nil, err
		}
		result, err := value.BinaryOp(n.Operator, l, r, c.arithmeticOptions())
		return result, wrapValueErr(n.Position, err)
	}
}

func (c *Context) evalBothOperands(n *ast.BinaryExpr, scope *Scope) (value.Value, value.Value, error) {
	l, err := c.Eval(n.Left, scope)
	if err != nil {
		return nil, nil, err
	}
	r, err := c.Eval(n.Right, scope)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// evalMatrixPower implements `M ^ n` for a Matrix base: n must be an
// integer, and repeated matrix multiplication (or, for negative n, the
// matrix inverse) is performed rather than the broadcasting engine's
// usual element-wise lift of `^` over a container.
func evalMatrixPower(m value.Matrix, exp value.Value, pos errors.Position, opts value.Options) (value.Value, error) {
	er, ok := exp.(value.Rational)
	if !ok || !er.R.IsInt() {
		return nil, errors.New(errors.KindType, pos, "matrix power requires an integer exponent, got %s", exp.Kind())
	}
	n := er.R.Num()
	if !n.IsInt64() {
		return nil, errors.New(errors.KindDomain, pos, "matrix power exponent out of range")
	}
	return value.MatPow(m, n.Int64(), opts)
}

// evalPercentOf implements the "of" keyword-operator: `p% of n` yields
// the plain magnitude p% represents of n (e.g. `10% of 200` = `20`).
// The keyword-operator's arithmetic is a judgment call (see DESIGN.md);
// it mirrors how every other percent rule resolves to a plain Double
// once a Percent combines with a number under non-wrapper-preserving
// rules.
func evalPercentOf(l, r value.Value, pos errors.Position) (value.Value, error) {
	p, ok := l.(value.Percent)
	if !ok {
		return nil, errors.New(errors.KindType, pos, "'of' requires a percent on the left, got %s", l.Kind())
	}
	rf, ok := toNumericFloat(r)
	if !ok {
		return nil, errors.New(errors.KindType, pos, "'of' requires a numeric right operand, got %s", r.Kind())
	}
	return value.Double(p.Fraction * rf), nil
}

func (c *Context) evalUnary(n *ast.UnaryExpr, scope *Scope) (value.Value, error) {
	v, err := c.Eval(n.Operand, scope)
	if err != nil {
		return nil, err
	}
	if n.Postfix {
		return evalPostfix(n.Operator, v, n.Position)
	}
	switch n.Operator {
	case "not":
		b, ok := value.Truthy(v)
		if !ok {
			return nil, errors.New(errors.KindType, n.Position, "'not' requires a boolean operand, got %s", v.Kind())
		}
		return value.Bool(!b), nil
	case "-":
		result, err := value.UnaryOp("-", v, c.arithmeticOptions())
		return result, wrapValueErr(n.Position, err)
	default:
		return nil, errors.New(errors.KindType, n.Position, "unrecognized unary operator %q", n.Operator)
	}
}

// evalPostfix implements the postfix operators: `!` factorial, `!!`
// double factorial (both requiring a non-negative Rational integer),
// and `%` converting a plain number into a Percent of itself/100
// (judgment call, see DESIGN.md).
func evalPostfix(op string, v value.Value, pos errors.Position) (value.Value, error) {
	switch op {
	case "!", "!!":
		n, ok := v.(value.Rational)
		if !ok || !n.R.IsInt() || n.R.Sign() < 0 {
			return nil, errors.New(errors.KindDomain, pos, "%s requires a non-negative integer, got %s", op, v.String())
		}
		step := int64(1)
		if op == "!!" {
			step = 2
		}
		return value.Rational{R: new(big.Rat).SetInt(factorialStep(n.R.Num().Int64(), step))}, nil
	case "%":
		f, ok := toNumericFloat(v)
		if !ok {
			return nil, errors.New(errors.KindType, pos, "%% requires a numeric operand, got %s", v.Kind())
		}
		return value.NewPercent(f / 100), nil
	default:
		return nil, errors.New(errors.KindType, pos, "unrecognized postfix operator %q", op)
	}
}

func factorialStep(n, step int64) *big.Int {
	result := big.NewInt(1)
	for i := n; i > 0; i -= step {
		result.Mul(result, big.NewInt(i))
	}
	return result
}
