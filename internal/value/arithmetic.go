package value

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Options carries the evaluation-mode flags the arithmetic dispatcher
// consults: forceDoubleArithmetic and a unit converter for
// Unit-Unit and Unit-scalar operations. Units may be nil if no Unit
// value will ever reach the dispatcher (e.g. tests that never exercise
// units).
type Options struct {
	ForceDouble bool
	Units       UnitConverter
}

// TypeError is returned by the dispatcher for any operand combination
// the type-preservation table does not define.
type TypeError struct {
	Op          string
	Left, Right Kind
	Detail      string
}

func (e *TypeError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Right == -1 {
		return fmt.Sprintf("operator %q is not defined for %s", e.Op, e.Left)
	}
	return fmt.Sprintf("operator %q is not defined for %s and %s", e.Op, e.Left, e.Right)
}

// DomainError is returned for math-defined failures: singular matrix
// inverse, zero step, even root of a negative, etc.
type DomainError struct {
	Detail string
}

func (e *DomainError) Error() string { return e.Detail }

// Add implements the `+` operator's full type-preservation table,
// including the "number + percent" additive special case and string
// concatenation.
func Add(l, r Value, opts Options) (Value, error) {
	if ls, ok := l.(String); ok {
		return String(ls.Raw() + stringify(r)), nil
	}
	if rs, ok := r.(String); ok {
		return String(stringify(l) + rs.Raw()), nil
	}
	if lu, ok := l.(Unit); ok {
		return addUnit(lu, r, opts, false)
	}
	if ru, ok := r.(Unit); ok {
		return addUnit(ru, l, opts, false)
	}
	if lp, rp, ok := bothPercent(l, r); ok {
		return Percent{Fraction: lp.Fraction + rp.Fraction}, nil
	}
	if lp, ok := l.(Percent); ok && IsNumeric(r) {
		return numberPlusPercent(toFloat(r), lp, false)
	}
	if rp, ok := r.(Percent); ok && IsNumeric(l) {
		return numberPlusPercent(toFloat(l), rp, false)
	}
	return numericBinary(l, r, opts, "+",
		func(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) },
		func(a, b float64) float64 { return a + b },
	)
}

// Subtract implements `-` (binary).
func Subtract(l, r Value, opts Options) (Value, error) {
	if lu, ok := l.(Unit); ok {
		return addUnit(lu, r, opts, true)
	}
	if ru, ok := r.(Unit); ok {
		neg, err := Negate(ru.Magnitude, opts)
		if err != nil {
			return nil, err
		}
		return addUnit(Unit{Magnitude: neg, UnitName: ru.UnitName}, l, opts, false)
	}
	if lp, rp, ok := bothPercent(l, r); ok {
		return Percent{Fraction: lp.Fraction - rp.Fraction}, nil
	}
	if lp, ok := l.(Percent); ok && IsNumeric(r) {
		return numberPlusPercent(toFloat(r), lp, true)
	}
	if rp, ok := r.(Percent); ok && IsNumeric(l) {
		n := toFloat(l)
		return Double(n - n*rp.Fraction), nil
	}
	return numericBinary(l, r, opts, "-",
		func(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) },
		func(a, b float64) float64 { return a - b },
	)
}

// Multiply implements `*`.
func Multiply(l, r Value, opts Options) (Value, error) {
	if ls, ok := l.(String); ok {
		return repeatString(ls, r)
	}
	if rs, ok := r.(String); ok {
		return repeatString(rs, l)
	}
	if lu, ok := l.(Unit); ok {
		if _, ok := r.(Unit); ok {
			return nil, &TypeError{Op: "*", Left: l.Kind(), Right: r.Kind(), Detail: "cannot multiply two units"}
		}
		mag, err := Multiply(lu.Magnitude, r, opts)
		if err != nil {
			return nil, err
		}
		return Unit{Magnitude: mag, UnitName: lu.UnitName}, nil
	}
	if ru, ok := r.(Unit); ok {
		mag, err := Multiply(ru.Magnitude, l, opts)
		if err != nil {
			return nil, err
		}
		return Unit{Magnitude: mag, UnitName: ru.UnitName}, nil
	}
	if lp, ok := l.(Percent); ok {
		if IsNumeric(r) {
			return Percent{Fraction: lp.Fraction * toFloat(r)}, nil
		}
		if rp, ok := r.(Percent); ok {
			return Percent{Fraction: lp.Fraction * rp.Fraction}, nil
		}
	}
	if rp, ok := r.(Percent); ok && IsNumeric(l) {
		return Percent{Fraction: rp.Fraction * toFloat(l)}, nil
	}
	return numericBinary(l, r, opts, "*",
		func(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) },
		func(a, b float64) float64 { return a * b },
	)
}

// Divide implements `/`. Division by zero in Rational falls through to
// Double, yielding ±Inf/NaN per IEEE rules.
func Divide(l, r Value, opts Options) (Value, error) {
	if lu, ok := l.(Unit); ok {
		if ru, ok := r.(Unit); ok {
			if !opts.sameDimension(lu.UnitName, ru.UnitName) {
				return nil, &TypeError{Op: "/", Left: l.Kind(), Right: r.Kind(), Detail: "incompatible unit dimensions"}
			}
			converted, err := opts.convert(ru, lu.UnitName)
			if err != nil {
				return nil, err
			}
			return Divide(lu.Magnitude, converted.Magnitude, opts)
		}
		mag, err := Divide(lu.Magnitude, r, opts)
		if err != nil {
			return nil, err
		}
		return Unit{Magnitude: mag, UnitName: lu.UnitName}, nil
	}
	if _, ok := r.(Unit); ok {
		return nil, &TypeError{Op: "/", Left: l.Kind(), Right: r.Kind(), Detail: "cannot divide by a unit value"}
	}
	if lp, rp, ok := bothPercent(l, r); ok {
		if rp.Fraction == 0 {
			return Double(math.NaN()), nil
		}
		return Double(lp.Fraction / rp.Fraction), nil
	}
	if lp, ok := l.(Percent); ok && IsNumeric(r) {
		return Percent{Fraction: lp.Fraction / toFloat(r)}, nil
	}
	if rp, ok := r.(Percent); ok && IsNumeric(l) {
		return Double(toFloat(l) / rp.Fraction), nil
	}
	lr, lok := l.(Rational)
	rr, rok := r.(Rational)
	if lok && rok && !opts.ForceDouble {
		if rr.IsZero() {
			return Double(divFloat(lr.Float64(), 0)), nil
		}
		return Rational{R: new(big.Rat).Quo(lr.R, rr.R)}, nil
	}
	rf := toFloat(r)
	return Double(divFloat(toFloat(l), rf)), nil
}

// Power implements `^`. Integer exponent on Rational stays exact;
// Unit^scalar preserves the unit; Percent^scalar preserves percent;
// everything else degrades to Double.
func Power(base, exp Value, opts Options) (Value, error) {
	if bu, ok := base.(Unit); ok {
		mag, err := Power(bu.Magnitude, exp, opts)
		if err != nil {
			return nil, err
		}
		return Unit{Magnitude: mag, UnitName: bu.UnitName}, nil
	}
	if bp, ok := base.(Percent); ok {
		ef := toFloat(exp)
		return Percent{Fraction: math.Pow(bp.Fraction, ef)}, nil
	}
	if br, ok := base.(Rational); ok && !opts.ForceDouble {
		if er, ok := exp.(Rational); ok && er.R.IsInt() {
			n := er.R.Num()
			if n.IsInt64() {
				return rationalIntPow(br, n.Int64()), nil
			}
		}
	}
	return Double(math.Pow(toFloat(base), toFloat(exp))), nil
}

func rationalIntPow(base Rational, n int64) Value {
	if n >= 0 {
		result := new(big.Rat).SetInt64(1)
		b := new(big.Rat).Set(base.R)
		for n > 0 {
			if n&1 == 1 {
				result.Mul(result, b)
			}
			b.Mul(b, b)
			n >>= 1
		}
		return Rational{R: result}
	}
	if base.IsZero() {
		return Double(math.Inf(1))
	}
	positive := rationalIntPow(base, -n).(Rational)
	return Rational{R: new(big.Rat).Inv(positive.R)}
}

// Negate implements unary `-`.
func Negate(v Value, opts Options) (Value, error) {
	switch t := v.(type) {
	case Rational:
		return Rational{R: new(big.Rat).Neg(t.R)}, nil
	case Double:
		return Double(-t), nil
	case Percent:
		return Percent{Fraction: -t.Fraction}, nil
	case Unit:
		mag, err := Negate(t.Magnitude, opts)
		if err != nil {
			return nil, err
		}
		return Unit{Magnitude: mag, UnitName: t.UnitName}, nil
	default:
		return nil, &TypeError{Op: "-", Left: v.Kind(), Right: -1}
	}
}

// Modulo implements the `mod` keyword-operator on numeric operands.
func Modulo(l, r Value, opts Options) (Value, error) {
	if lr, ok := l.(Rational); ok {
		if rr, ok := r.(Rational); ok && !opts.ForceDouble && rr.R.IsInt() && lr.R.IsInt() {
			if rr.R.Num().Sign() == 0 {
				return Double(math.NaN()), nil
			}
			m := new(big.Int).Mod(lr.R.Num(), rr.R.Num())
			return Rational{R: new(big.Rat).SetInt(m)}, nil
		}
	}
	return Double(math.Mod(toFloat(l), toFloat(r))), nil
}

// Compare orders two values for <, >, <=, >=, ==, !=. It returns -1, 0,
// or 1, and ok=false when the values are incomparable: NaN comparisons
// and ordering across incompatible kinds.
func Compare(l, r Value, opts Options) (cmp int, ok bool, err error) {
	if ls, isStr := l.(String); isStr {
		rs, isStr2 := r.(String)
		if !isStr2 {
			return 0, false, nil
		}
		return strings.Compare(ls.Raw(), rs.Raw()), true, nil
	}
	if lu, isUnit := l.(Unit); isUnit {
		ru, isUnit2 := r.(Unit)
		if !isUnit2 {
			return 0, false, nil
		}
		converted, cerr := opts.convert(ru, lu.UnitName)
		if cerr != nil {
			return 0, false, cerr
		}
		return Compare(lu.Magnitude, converted, opts)
	}
	if lb, isBool := l.(Bool); isBool {
		rb, isBool2 := r.(Bool)
		if !isBool2 {
			return 0, false, nil
		}
		if lb == rb {
			return 0, true, nil
		}
		if !bool(lb) && bool(rb) {
			return -1, true, nil
		}
		return 1, true, nil
	}
	if !IsNumeric(l) && l.Kind() != KindPercent {
		return 0, false, nil
	}
	if !IsNumeric(r) && r.Kind() != KindPercent {
		return 0, false, nil
	}
	lr, lok := l.(Rational)
	rr, rok := r.(Rational)
	if lok && rok {
		return lr.R.Cmp(rr.R), true, nil
	}
	lf, rf := numericFloat(l), numericFloat(r)
	if math.IsNaN(lf) || math.IsNaN(rf) {
		return 0, false, nil
	}
	switch {
	case lf < rf:
		return -1, true, nil
	case lf > rf:
		return 1, true, nil
	default:
		return 0, true, nil
	}
}

func numericFloat(v Value) float64 {
	if p, ok := v.(Percent); ok {
		return p.Fraction
	}
	return toFloat(v)
}

// --- helpers ---

func numericBinary(l, r Value, opts Options, op string,
	ratOp func(a, b *big.Rat) *big.Rat, dblOp func(a, b float64) float64) (Value, error) {

	if !IsNumeric(l) || !IsNumeric(r) {
		return nil, &TypeError{Op: op, Left: l.Kind(), Right: r.Kind()}
	}
	lr, lok := l.(Rational)
	rr, rok := r.(Rational)
	if lok && rok && !opts.ForceDouble {
		return Rational{R: ratOp(lr.R, rr.R)}, nil
	}
	return Double(dblOp(toFloat(l), toFloat(r))), nil
}

func addUnit(u Unit, other Value, opts Options, subtract bool) (Value, error) {
	if ou, ok := other.(Unit); ok {
		if !opts.sameDimension(u.UnitName, ou.UnitName) {
			return nil, &TypeError{Op: "+", Left: KindUnit, Right: KindUnit, Detail: "incompatible unit dimensions"}
		}
		converted, err := opts.convert(ou, u.UnitName)
		if err != nil {
			return nil, err
		}
		var mag Value
		if subtract {
			mag, err = Subtract(u.Magnitude, converted.Magnitude, opts)
		} else {
			mag, err = Add(u.Magnitude, converted.Magnitude, opts)
		}
		if err != nil {
			return nil, err
		}
		return Unit{Magnitude: mag, UnitName: u.UnitName}, nil
	}
	var mag Value
	var err error
	if subtract {
		mag, err = Subtract(u.Magnitude, other, opts)
	} else {
		mag, err = Add(u.Magnitude, other, opts)
	}
	if err != nil {
		return nil, err
	}
	return Unit{Magnitude: mag, UnitName: u.UnitName}, nil
}

func (o Options) sameDimension(a, b string) bool {
	if o.Units == nil {
		return a == b
	}
	return o.Units.SameDimension(a, b)
}

func (o Options) convert(u Unit, toUnit string) (Unit, error) {
	if o.Units == nil {
		if u.UnitName != toUnit {
			return Unit{}, &TypeError{Op: "convert", Left: KindUnit, Right: -1, Detail: "no unit converter configured"}
		}
		return u, nil
	}
	converted, err := o.Units.Convert(u.Magnitude, u.UnitName, toUnit)
	if err != nil {
		return Unit{}, err
	}
	return Unit{Magnitude: converted, UnitName: toUnit}, nil
}

func bothPercent(l, r Value) (Percent, Percent, bool) {
	lp, lok := l.(Percent)
	rp, rok := r.(Percent)
	if lok && rok {
		return lp, rp, true
	}
	return Percent{}, Percent{}, false
}

// numberPlusPercent implements "100 + 10% = 110": n ± (n * p), always
// producing a plain Double.
func numberPlusPercent(n float64, p Percent, subtract bool) (Value, error) {
	if subtract {
		return Double(n - n*p.Fraction), nil
	}
	return Double(n + n*p.Fraction), nil
}

func repeatString(s String, count Value) (Value, error) {
	n, ok := count.(Rational)
	if !ok || !n.R.IsInt() {
		return nil, &TypeError{Op: "*", Left: KindString, Right: count.Kind(), Detail: "string repetition requires an integer count"}
	}
	times := n.R.Num().Int64()
	if times < 0 {
		times = 0
	}
	return String(strings.Repeat(s.Raw(), int(times))), nil
}

func stringify(v Value) string {
	if s, ok := v.(String); ok {
		return s.Raw()
	}
	return v.String()
}

func toFloat(v Value) float64 {
	switch t := v.(type) {
	case Rational:
		return t.Float64()
	case Double:
		return float64(t)
	case Percent:
		return t.Fraction
	default:
		return math.NaN()
	}
}

func divFloat(a, b float64) float64 {
	return a / b
}
