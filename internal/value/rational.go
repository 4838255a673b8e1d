package value

import (
	"math/big"
)

// Rational is an exact ratio of arbitrary-precision integers, always
// stored reduced with a positive denominator. There is no third-party
// arbitrary-precision rational library anywhere in the example corpus
// (see DESIGN.md), so this wraps the standard library's math/big.Rat.
type Rational struct {
	R *big.Rat
}

// NewRational builds a reduced Rational from a numerator/denominator
// pair. Denominator must be non-zero; callers that might pass zero
// should check first and fall back to Double (±Inf/NaN) themselves.
func NewRational(num, den *big.Int) Rational {
	return Rational{R: new(big.Rat).SetFrac(num, den)}
}

// NewRationalInt64 builds a Rational from a plain integer.
func NewRationalInt64(n int64) Rational {
	return Rational{R: new(big.Rat).SetInt64(n)}
}

// NewRationalFromString parses a reduced rational from a decimal or
// fractional string ("3", "3/4"), as produced by the lexer.
func NewRationalFromString(s string) (Rational, bool) {
	r := new(big.Rat)
	if _, ok := r.SetString(s); !ok {
		return Rational{}, false
	}
	return Rational{R: r}, true
}

func (Rational) Kind() Kind { return KindRational }

func (r Rational) String() string {
	if r.R.IsInt() {
		return r.R.Num().String()
	}
	return r.R.Num().String() + "/" + r.R.Denom().String()
}

// Float64 converts the rational to its nearest double.
func (r Rational) Float64() float64 {
	f, _ := r.R.Float64()
	return f
}

// IsZero reports whether the rational is exactly zero.
func (r Rational) IsZero() bool {
	return r.R.Sign() == 0
}
