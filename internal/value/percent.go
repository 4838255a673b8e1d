package value

import "strconv"

// Percent wraps a decimal fraction (50% stores 0.5) but displays with a
// trailing '%'.
type Percent struct {
	Fraction float64
}

func NewPercent(fraction float64) Percent {
	return Percent{Fraction: fraction}
}

func (Percent) Kind() Kind { return KindPercent }

func (p Percent) String() string {
	return strconv.FormatFloat(p.Fraction*100, 'g', -1, 64) + "%"
}
