package value

import "strconv"

// Double is an IEEE-754 double-precision value.
type Double float64

func (Double) Kind() Kind { return KindDouble }

func (d Double) String() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}
